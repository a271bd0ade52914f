// Package testutil provides shared test helpers and telemetry fixtures.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/banshee-data/telemetry/internal/fsutil"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// LinearCSV renders a CSV with a numeric ts column and the given columns,
// where row i holds ts=i and every column value i*step(column index + 1).
// With step 1 and one column, row i simply holds i.
func LinearCSV(rows int, step float64, columns ...string) string {
	var b strings.Builder
	b.WriteString("ts")
	for _, c := range columns {
		b.WriteString("," + c)
	}
	b.WriteString("\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d", i)
		for j := range columns {
			fmt.Fprintf(&b, ",%g", float64(i)*step*float64(j+1))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// MemFS returns an in-memory filesystem seeded with files.
func MemFS(t *testing.T, files map[string]string) *fsutil.MemoryFileSystem {
	t.Helper()
	m := fsutil.NewMemoryFileSystem()
	for name, contents := range files {
		if err := m.WriteFile(name, []byte(contents), 0644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	return m
}
