package chart

// LayoutKind distinguishes stacked panels from side-by-side groups.
type LayoutKind int

const (
	// StackLayout places panels top to bottom.
	StackLayout LayoutKind = iota
	// RowLayout places stacks left to right.
	RowLayout
)

// Layout arranges panels for rendering.
type Layout struct {
	Kind    LayoutKind
	Stack   []Panel
	Columns []Layout
}

// Column stacks panels vertically.
func Column(panels ...Panel) Layout {
	return Layout{Kind: StackLayout, Stack: panels}
}

// Row places columns side by side. Nested rows are flattened.
func Row(columns ...Layout) Layout {
	out := Layout{Kind: RowLayout}
	for _, c := range columns {
		if c.Kind == RowLayout {
			out.Columns = append(out.Columns, c.Columns...)
			continue
		}
		out.Columns = append(out.Columns, c)
	}
	return out
}

func (l Layout) columns() []Layout {
	if l.Kind == StackLayout {
		return []Layout{l}
	}
	return l.Columns
}

// Dims returns the grid size: rows is the tallest column.
func (l Layout) Dims() (rows, cols int) {
	cs := l.columns()
	for _, c := range cs {
		rows = max(rows, len(c.Stack))
	}
	return rows, len(cs)
}

// Grid returns panels row-major; cells below a shorter column are nil.
func (l Layout) Grid() [][]*Panel {
	rows, cols := l.Dims()
	grid := make([][]*Panel, rows)
	for r := range grid {
		grid[r] = make([]*Panel, cols)
	}
	for c, col := range l.columns() {
		for r := range col.Stack {
			grid[r][c] = &col.Stack[r]
		}
	}
	return grid
}

// Panels returns every panel column by column.
func (l Layout) Panels() []Panel {
	var out []Panel
	for _, c := range l.columns() {
		out = append(out, c.Stack...)
	}
	return out
}
