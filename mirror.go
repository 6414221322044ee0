package jigsaw

import "fmt"

// Mirroring: the back of the printed sheet is physically flipped along the
// vertical axis relative to the front, so back content must be laid out in
// mirrored column order for the pieces to line up when cut. This is purely
// a positional remap of the fact collection; the back's own geometry and
// safe zones are computed for back-cell coordinates, never derived from the
// front's.

// MirrorIndex maps a front-logical row-major cell index to its back-logical
// index for a grid with the given column count.
func MirrorIndex(index, cols int) int {
	row := index / cols
	col := index % cols
	return row*cols + (cols - 1 - col)
}

// Mirror reorders a fully populated row-major fact collection into back
// order. Applying it twice returns the original arrangement.
func Mirror[T any](items []T, rows, cols int) ([]T, error) {
	if len(items) != rows*cols {
		return nil, fmt.Errorf("mirror: %d items for a %dx%d grid", len(items), rows, cols)
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[MirrorIndex(i, cols)] = item
	}
	return out, nil
}
