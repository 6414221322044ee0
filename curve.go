package jigsaw

import (
	"fmt"
	"strings"

	"github.com/jbeda/geom"
)

// Curve builder: turns an edge's control points, already placed in absolute
// pixel space, into a renderable path. Interior edges (three or more
// points) get a smooth interpolating spline emitted as cubic Bézier
// segments; border edges degenerate to a straight line. The SVG "d" string
// is the canonical output consumed by vector renderers; the flattened
// polyline feeds the raster pass.

// curveFlattenSteps is the number of line segments each Bézier span is
// flattened into for rasterization.
const curveFlattenSteps = 8

// CutPath is one renderable cut-line.
type CutPath struct {
	// D is the SVG path data string.
	D string
	// Points is the path flattened to a polyline in pixel space.
	Points []geom.Coord
}

// buildPath converts absolute control points into a CutPath. Degenerate
// inputs (fewer than two points) produce a zero CutPath with an empty D,
// which callers omit rather than treat as an error.
func buildPath(pts []geom.Coord) CutPath {
	switch {
	case len(pts) < 2:
		return CutPath{}
	case len(pts) == 2:
		d := fmt.Sprintf("M%s,%s L%s,%s",
			coordNum(pts[0].X), coordNum(pts[0].Y),
			coordNum(pts[1].X), coordNum(pts[1].Y))
		return CutPath{D: d, Points: []geom.Coord{pts[0], pts[1]}}
	}
	return splinePath(pts)
}

// splinePath emits an interpolating spline through pts as cubic Bézier
// segments, Catmull-Rom tangents with endpoint duplication.
func splinePath(pts []geom.Coord) CutPath {
	var d strings.Builder
	fmt.Fprintf(&d, "M%s,%s", coordNum(pts[0].X), coordNum(pts[0].Y))

	flat := []geom.Coord{pts[0]}

	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[maxInt(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[minInt(i+2, len(pts)-1)]

		c1 := geom.Coord{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
		c2 := geom.Coord{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}

		fmt.Fprintf(&d, " C%s,%s %s,%s %s,%s",
			coordNum(c1.X), coordNum(c1.Y),
			coordNum(c2.X), coordNum(c2.Y),
			coordNum(p2.X), coordNum(p2.Y))

		for s := 1; s <= curveFlattenSteps; s++ {
			t := float64(s) / curveFlattenSteps
			flat = append(flat, cubicAt(p1, c1, c2, p2, t))
		}
	}

	return CutPath{D: d.String(), Points: flat}
}

// cubicAt evaluates a cubic Bézier at parameter t.
func cubicAt(p0, c1, c2, p1 geom.Coord, t float64) geom.Coord {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return geom.Coord{
		X: b0*p0.X + b1*c1.X + b2*c2.X + b3*p1.X,
		Y: b0*p0.Y + b1*c1.Y + b2*c2.Y + b3*p1.Y,
	}
}

// coordNum formats a coordinate with fixed precision so identical geometry
// always serializes to identical bytes.
func coordNum(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
