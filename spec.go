package jigsaw

import (
	"fmt"
	"strings"
)

// PuzzleSpec fully determines a puzzle's geometry. It is immutable once a
// front image has been generated: rebuilding from an equal spec reproduces
// identical cut-lines and edge metadata, which is what keeps the back safe
// zones aligned with the front even when the two sides are rendered in
// separate passes.
type PuzzleSpec struct {
	// Width and Height are the canvas size in pixels.
	Width  int
	Height int
	// Rows and Cols are the grid counts.
	Rows int
	Cols int
	// Seed drives all edge-shape sampling.
	Seed uint32
}

// Pieces returns the total piece count.
func (s PuzzleSpec) Pieces() int {
	return s.Rows * s.Cols
}

// CellWidth returns the raw cell width in pixels.
func (s PuzzleSpec) CellWidth() float64 {
	return float64(s.Width) / float64(s.Cols)
}

// CellHeight returns the raw cell height in pixels.
func (s PuzzleSpec) CellHeight() float64 {
	return float64(s.Height) / float64(s.Rows)
}

// CellIndex returns the linear row-major index of a cell.
func (s PuzzleSpec) CellIndex(row, col int) int {
	return row*s.Cols + col
}

// CellAt returns the (row, col) of a linear cell index.
func (s PuzzleSpec) CellAt(index int) (row, col int) {
	return index / s.Cols, index % s.Cols
}

// Validate checks the spec for structural issues and returns an error
// describing all problems found, or nil if the spec is usable. Callers that
// build geometry from an invalid spec are misusing the package; the core
// fails fast rather than guessing.
func (s PuzzleSpec) Validate() error {
	var errs []string

	if s.Width <= 0 {
		errs = append(errs, "width must be positive")
	}
	if s.Height <= 0 {
		errs = append(errs, "height must be positive")
	}
	if s.Rows <= 0 {
		errs = append(errs, "rows must be positive")
	}
	if s.Cols <= 0 {
		errs = append(errs, "cols must be positive")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid puzzle spec:\n  %s", strings.Join(errs, "\n  "))
}
