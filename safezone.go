package jigsaw

import (
	"math"

	"github.com/jbeda/geom"
)

// Safe-zone calculator: the sub-rectangle of each cell guaranteed free of
// tab overlap, used for text placement on the back side. Derived from the
// edge metadata only, never stored, so it can be recomputed from a spec at
// any time and still agree with a front render made earlier.

const (
	// maxInsetFraction caps the amplitude-driven inset per side.
	maxInsetFraction = 0.18
	// baselineInsetFraction applies on sides whose edge bulges away from
	// the cell (or is a flat border); it keeps text clear of the cut
	// stroke itself.
	baselineInsetFraction = 0.03
	// minSafeDim is the smallest acceptable safe width/height in pixels;
	// below it the computation is discarded in favor of the fallback box.
	minSafeDim = 10.0
	// fallbackFraction sizes the centered fallback box.
	fallbackFraction = 0.80
)

// CellSafeBox is the usable text rectangle of one cell, in pixels.
type CellSafeBox struct {
	Left    float64
	Right   float64
	Top     float64
	Bottom  float64
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
}

// Rect returns the box as a geom.Rect.
func (b CellSafeBox) Rect() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: b.Left, Y: b.Top},
		Max: geom.Coord{X: b.Right, Y: b.Bottom},
	}
}

// Padding returns the inner text padding for this box.
func (b CellSafeBox) Padding() float64 {
	p := math.Floor(0.08 * math.Min(b.Width, b.Height))
	if p < 4 {
		p = 4
	}
	return p
}

// SafeBox computes the safe zone of cell (row, col). Each side is inset by
// the adjacent edge's amplitude (capped) when that edge's tab bulges into
// this cell; sides whose tab bulges away, and flat borders, get only the
// baseline inset. The sign test is directional: the same shared edge insets
// exactly one of its two cells.
func (g *Geometry) SafeBox(row, col int) CellSafeBox {
	cellW := g.Spec.CellWidth()
	cellH := g.Spec.CellHeight()

	left := float64(col) * cellW
	top := float64(row) * cellH
	right := left + cellW
	bottom := top + cellH

	top += sideInset(g.Horizontal[row][col], +1, cellH)
	bottom -= sideInset(g.Horizontal[row+1][col], -1, cellH)
	left += sideInset(g.Vertical[col][row], +1, cellW)
	right -= sideInset(g.Vertical[col+1][row], -1, cellW)

	if right-left < minSafeDim || bottom-top < minSafeDim {
		// Randomized amplitudes can collapse small cells; substitute a
		// centered box so every cell stays usable.
		left = float64(col)*cellW + cellW*(1-fallbackFraction)/2
		top = float64(row)*cellH + cellH*(1-fallbackFraction)/2
		right = left + cellW*fallbackFraction
		bottom = top + cellH*fallbackFraction
	}

	return CellSafeBox{
		Left:    left,
		Right:   right,
		Top:     top,
		Bottom:  bottom,
		Width:   right - left,
		Height:  bottom - top,
		CenterX: (left + right) / 2,
		CenterY: (top + bottom) / 2,
	}
}

// SafeBoxes returns every cell's safe zone in row-major order.
func (g *Geometry) SafeBoxes() []CellSafeBox {
	boxes := make([]CellSafeBox, 0, g.Spec.Pieces())
	for row := 0; row < g.Spec.Rows; row++ {
		for col := 0; col < g.Spec.Cols; col++ {
			boxes = append(boxes, g.SafeBox(row, col))
		}
	}
	return boxes
}

// sideInset returns the inward inset contributed by one edge. intoSign is
// the metadata sign that means "bulges into the querying cell" for the side
// being computed.
func sideInset(e EdgeMeta, intoSign int, dim float64) float64 {
	if e.Sign == intoSign {
		return math.Min(e.AmplitudePx, maxInsetFraction*dim)
	}
	return baselineInsetFraction * dim
}
