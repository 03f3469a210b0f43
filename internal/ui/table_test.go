package ui

import (
	"strings"
	"testing"
)

func TestColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"12345678", "short"},
			{"1", "a rather long title"},
		},
	}
	widths := table.ColumnWidths()
	if widths[0] != 8 {
		t.Errorf("widths[0] = %d, want 8", widths[0])
	}
	if widths[1] != len("a rather long title") {
		t.Errorf("widths[1] = %d, want content width", widths[1])
	}
}

func TestColumnWidthsMaxCap(t *testing.T) {
	table := &Table{
		Headers:  []string{"Title"},
		Rows:     [][]string{{strings.Repeat("x", 100)}},
		MaxWidth: 20,
	}
	if w := table.ColumnWidths()[0]; w != 20 {
		t.Errorf("capped width = %d, want 20", w)
	}
}

func TestRender(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows:    [][]string{{"abc", "Water the plants"}},
	}
	out := table.Render()
	if !strings.Contains(out, "Water the plants") {
		t.Errorf("rendered table missing cell content:\n%s", out)
	}
	if !strings.Contains(out, "ID") || !strings.Contains(out, "Title") {
		t.Errorf("rendered table missing headers:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("rendered %d lines, want header, separator and one row", lines)
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := (&Table{}).Render(); out != "" {
		t.Errorf("empty table rendered %q, want empty string", out)
	}
}

func TestRenderShortRow(t *testing.T) {
	table := &Table{
		Headers: []string{"A", "B", "C"},
		Rows:    [][]string{{"only"}},
	}
	// Rows narrower than the header set must not panic.
	if out := table.Render(); out == "" {
		t.Error("expected output for a short row")
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID = %q, want first 8 chars", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID of a short id = %q, want unchanged", got)
	}
}
