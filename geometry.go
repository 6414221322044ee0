package jigsaw

import "github.com/jbeda/geom"

// Geometry assembler. For an R×C grid there are (rows+1) horizontal edge
// rows of cols segments each and (cols+1) vertical edge columns of rows
// segments each. The outermost rows/columns are flat borders; every
// interior edge is sampled from the seeded generator. Both the renderable
// paths and the edge metadata come out of one pass over one generator, so
// identical specs always produce byte-identical output — the determinism
// contract that lets front and back renders agree without sharing state.

// EdgeMeta is the per-edge bulge metadata consumed by the safe-zone
// calculator. A shared interior edge has exactly one EdgeMeta; the two
// adjacent cells interpret Sign from their own side.
type EdgeMeta struct {
	// AmplitudePx is the maximum perpendicular bulge in pixels. Always >= 0.
	AmplitudePx float64
	// Sign is the bulge direction along the perpendicular axis: +1 bulges
	// toward increasing y (horizontal edges) or x (vertical edges), -1 the
	// other way, 0 for flat border edges.
	Sign int
}

// Geometry is the full derived cut-line set for one PuzzleSpec.
type Geometry struct {
	Spec PuzzleSpec

	// Paths holds every renderable cut-line: the outer rectangle first,
	// then horizontal edge rows top to bottom, then vertical edge columns
	// left to right.
	Paths []CutPath

	// Horizontal is indexed [row][col], row in [0,rows], col in [0,cols-1].
	Horizontal [][]EdgeMeta
	// Vertical is indexed [col][row], col in [0,cols], row in [0,rows-1].
	Vertical [][]EdgeMeta
}

// PathStrings returns the ordered SVG path data of every cut-line.
func (g *Geometry) PathStrings() []string {
	out := make([]string, 0, len(g.Paths))
	for _, p := range g.Paths {
		out = append(out, p.D)
	}
	return out
}

// BuildGeometry derives the complete cut-line set and edge metadata for a
// spec. It instantiates its own generator from the spec seed, so builds for
// different sessions never interfere and a rebuild is reproducible.
func BuildGeometry(spec PuzzleSpec) (*Geometry, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	cellW := spec.CellWidth()
	cellH := spec.CellHeight()
	r := NewRand(spec.Seed)

	// Sample every interior edge first, in fixed order: horizontal rows top
	// to bottom, then vertical columns left to right. Border edges are flat
	// and consume no randomness.
	hProfiles := make([][]EdgeProfile, spec.Rows+1)
	for row := 0; row <= spec.Rows; row++ {
		hProfiles[row] = make([]EdgeProfile, spec.Cols)
		for col := 0; col < spec.Cols; col++ {
			if row == 0 || row == spec.Rows {
				hProfiles[row][col] = flatProfile()
			} else {
				hProfiles[row][col] = sampleProfile(r)
			}
		}
	}
	vProfiles := make([][]EdgeProfile, spec.Cols+1)
	for col := 0; col <= spec.Cols; col++ {
		vProfiles[col] = make([]EdgeProfile, spec.Rows)
		for row := 0; row < spec.Rows; row++ {
			if col == 0 || col == spec.Cols {
				vProfiles[col][row] = flatProfile()
			} else {
				vProfiles[col][row] = sampleProfile(r)
			}
		}
	}

	g := &Geometry{
		Spec:       spec,
		Horizontal: make([][]EdgeMeta, spec.Rows+1),
		Vertical:   make([][]EdgeMeta, spec.Cols+1),
	}

	g.Paths = append(g.Paths, outerRect(spec))

	for row := 0; row <= spec.Rows; row++ {
		g.Horizontal[row] = make([]EdgeMeta, spec.Cols)
		for col := 0; col < spec.Cols; col++ {
			p := hProfiles[row][col]
			g.Horizontal[row][col] = EdgeMeta{
				AmplitudePx: p.Amplitude * cellH,
				Sign:        p.Sign,
			}
			g.Paths = append(g.Paths, buildPath(placeHorizontal(p, row, col, cellW, cellH)))
		}
	}
	for col := 0; col <= spec.Cols; col++ {
		g.Vertical[col] = make([]EdgeMeta, spec.Rows)
		for row := 0; row < spec.Rows; row++ {
			p := vProfiles[col][row]
			g.Vertical[col][row] = EdgeMeta{
				AmplitudePx: p.Amplitude * cellW,
				Sign:        p.Sign,
			}
			g.Paths = append(g.Paths, buildPath(placeVertical(p, row, col, cellW, cellH)))
		}
	}

	return g, nil
}

// placeHorizontal maps a normalized profile onto the horizontal edge above
// row `row` spanning column `col`. The along-axis becomes x, the bulge
// becomes y (transposed frame), scaled by the perpendicular cell dimension.
func placeHorizontal(p EdgeProfile, row, col int, cellW, cellH float64) []geom.Coord {
	x0 := float64(col) * cellW
	y0 := float64(row) * cellH
	pts := make([]geom.Coord, len(p.Points))
	for i, c := range p.Points {
		pts[i] = geom.Coord{X: x0 + c.X*cellW, Y: y0 + c.Y*cellH}
	}
	return pts
}

// placeVertical maps a normalized profile onto the vertical edge left of
// column `col` spanning row `row`: the along-axis is y, the bulge is x.
func placeVertical(p EdgeProfile, row, col int, cellW, cellH float64) []geom.Coord {
	x0 := float64(col) * cellW
	y0 := float64(row) * cellH
	pts := make([]geom.Coord, len(p.Points))
	for i, c := range p.Points {
		pts[i] = geom.Coord{X: x0 + c.Y*cellW, Y: y0 + c.X*cellH}
	}
	return pts
}

// outerRect is the closed canvas boundary.
func outerRect(spec PuzzleSpec) CutPath {
	w := float64(spec.Width)
	h := float64(spec.Height)
	corners := []geom.Coord{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
		{X: 0, Y: 0},
	}
	d := "M0.00,0.00 L" + coordNum(w) + ",0.00 L" + coordNum(w) + "," + coordNum(h) +
		" L0.00," + coordNum(h) + " Z"
	return CutPath{D: d, Points: corners}
}
