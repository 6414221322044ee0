package jigsaw

import (
	"fmt"
	"io"
)

// SVG export of the cut-line sheet. The path strings are the same bytes a
// raster pass flattens, so a vector cutter and a printed front stay in
// agreement by construction.

// cutLineStyle is the default stroke style for cut-line paths.
const cutLineStyle = "fill:none;stroke:black;stroke-width:2"

// WriteCutLinesSVG writes the full cut-line set as an SVG document.
func WriteCutLinesSVG(w io.Writer, g *Geometry) error {
	if _, err := fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n<svg version=\"1.1\" viewBox=\"0 0 %d %d\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		g.Spec.Width, g.Spec.Height); err != nil {
		return err
	}
	for _, p := range g.Paths {
		if p.D == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "  <path d=\"%s\" style=\"%s\"/>\n", p.D, cutLineStyle); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "</svg>\n")
	return err
}

// WriteBackSVG writes the back side: cut-lines plus each fact rendered as
// glyph outlines when an outliner is available, centered in its safe zone.
// facts must be in back-logical order. Facts are skipped (not failed) when
// the outliner cannot produce a path.
func WriteBackSVG(w io.Writer, g *Geometry, facts []*Fact, outliner TextOutliner, metrics FontMetrics) error {
	if len(facts) != g.Spec.Pieces() {
		return fmt.Errorf("back svg: %d facts for a %dx%d grid", len(facts), g.Spec.Rows, g.Spec.Cols)
	}
	if metrics == nil {
		metrics = ApproxMetrics{}
	}

	if _, err := fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n<svg version=\"1.1\" viewBox=\"0 0 %d %d\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		g.Spec.Width, g.Spec.Height); err != nil {
		return err
	}
	for _, p := range g.Paths {
		if p.D == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "  <path d=\"%s\" style=\"%s\"/>\n", p.D, cutLineStyle); err != nil {
			return err
		}
	}

	if outliner != nil {
		for i, fact := range facts {
			if fact == nil {
				continue
			}
			row, col := g.Spec.CellAt(i)
			box := g.SafeBox(row, col)

			lineH := fact.Fit.LineHeight
			baseY := box.CenterY - lineH*float64(len(fact.Fit.Lines))/2 + lineH*0.8
			for _, line := range fact.Fit.Lines {
				if line == "" {
					baseY += lineH
					continue
				}
				width := metrics.Measure(line, fact.Fit.FontSize)
				d := outliner.Outline(line, box.CenterX-width/2, baseY, fact.Fit.FontSize)
				if d != "" {
					if _, err := fmt.Fprintf(w, "  <path d=\"%s\" style=\"fill:black;stroke:none\"/>\n", d); err != nil {
						return err
					}
				}
				baseY += lineH
			}
		}
	}

	_, err := fmt.Fprint(w, "</svg>\n")
	return err
}
