package jigsaw

import "unicode/utf8"

// FontMetrics measures rendered text width. The layout engine only ever
// needs advance widths; shaping, kerning precision and rasterization stay
// with the renderer. A real implementation backed by parsed font files is
// in FontCache; ApproxMetrics is the always-available fallback.
type FontMetrics interface {
	// Measure returns the width in pixels of text drawn at the given font
	// size (pixels).
	Measure(text string, size float64) float64
}

// TextOutliner is the optional extension used by vector back-ends that want
// glyph outlines instead of raster text. Absence only costs output quality,
// never correctness.
type TextOutliner interface {
	// Outline returns SVG path data for text anchored at (x, y).
	Outline(text string, x, y, size float64) string
}

// approxGlyphWidth is the assumed average advance, as a fraction of the
// font size, when no real font is available.
const approxGlyphWidth = 0.52

// ApproxMetrics estimates widths from an average glyph advance. Wrapping
// driven by it is less precise than with real font metrics but never fails,
// which is exactly the degradation contract the layout engine needs.
type ApproxMetrics struct{}

// Measure implements FontMetrics.
func (ApproxMetrics) Measure(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * approxGlyphWidth
}
