package domain

import "fmt"

// Grid is a parsed delimited file: rows of cells in source order.
// Rows keep their own width.
type Grid [][]string

// Columns selects the grid columns holding english and japanese text
type Columns struct {
	English  int
	Japanese int
	// Header marks the first row as column labels rather than data
	Header bool
}

// Validate checks that both column indices are usable
func (c Columns) Validate() error {
	if c.English < 0 || c.Japanese < 0 {
		return fmt.Errorf("%w: english=%d japanese=%d", ErrInvalidColumn, c.English, c.Japanese)
	}
	return nil
}

// Width returns the number of cells in the widest row
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Preview returns at most n leading rows
func (g Grid) Preview(n int) Grid {
	if n < 0 {
		n = 0
	}
	if len(g) < n {
		n = len(g)
	}
	return g[:n]
}

// ColumnLabels returns one label per column for the column picker.
// Labels come from the first row; blank or missing cells fall back to "column N".
func (g Grid) ColumnLabels(fallback func(index int) string) []string {
	width := g.Width()
	labels := make([]string, width)
	for i := 0; i < width; i++ {
		if len(g) > 0 && i < len(g[0]) && g[0][i] != "" {
			labels[i] = g[0][i]
			continue
		}
		labels[i] = fallback(i)
	}
	return labels
}
