package timeseries

import (
	"fmt"
	"strings"
)

// DataFormatError reports a malformed or incomplete input table. Line is the
// 1-based line in the source (1 is the header) and is zero when the problem
// is not tied to a line.
type DataFormatError struct {
	Path   string
	Line   int
	Column string
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("data format error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DataFormatError) Unwrap() error { return e.Err }
