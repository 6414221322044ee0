package jigsaw

import (
	"math"
	"strings"
)

// Text layout engine: finds the largest font size whose greedy word-wrap
// fits the text inside a safe box. "Does not fit" is a structured result
// (Truncated), never an error; the auto-rewrite reducer and ultimately the
// user decide what to do with it.

const (
	// minFontSize is the smallest size ever attempted, in pixels.
	minFontSize = 8
	// maxFontSize bounds the initial size before the piece-count scale.
	maxFontSize = 36
	// maxFitAttempts bounds the descending size search.
	maxFitAttempts = 40
	// maxTextLines is the policy cap on wrapped lines per cell, applied on
	// top of the height-derived cap.
	maxTextLines = 5
	// lineHeightFactor converts a font size to a line height.
	lineHeightFactor = 1.2
)

// TextFitResult is the outcome of fitting one fact into one cell.
type TextFitResult struct {
	// Lines is the wrapped text, top to bottom.
	Lines []string
	// FontSize and LineHeight are in pixels.
	FontSize   float64
	LineHeight float64
	// Truncated reports that the text did not fit at any attempted size.
	// The Lines then hold the last attempted layout, possibly cut short.
	Truncated bool
}

// FontScaleForPieces returns the font-scale multiplier for a total piece
// count. Larger puzzles have smaller cells; scaling the size range down
// keeps facts readable instead of letting the search bottom out.
func FontScaleForPieces(pieces int) float64 {
	switch {
	case pieces <= 12:
		return 1.0
	case pieces <= 24:
		return 0.88
	case pieces <= 48:
		return 0.76
	default:
		return 0.66
	}
}

// FitText lays out text inside box. The text must already be sanitized
// (§ sanitize.go). scale is the piece-count multiplier from
// FontScaleForPieces. metrics may be nil; ApproxMetrics is substituted.
func FitText(text string, box CellSafeBox, scale float64, metrics FontMetrics) TextFitResult {
	if metrics == nil {
		metrics = ApproxMetrics{}
	}
	if scale <= 0 {
		scale = 1
	}

	pad := box.Padding()
	availW := box.Width - 2*pad
	availH := box.Height - 2*pad

	scaledMax := math.Max(maxFontSize*scale, minFontSize)
	size := math.Floor(math.Min(box.Width, box.Height) / 4 * scale)
	if size > scaledMax {
		size = scaledMax
	}
	if size < minFontSize {
		size = minFontSize
	}

	if strings.TrimSpace(text) == "" {
		return TextFitResult{
			Lines:      []string{""},
			FontSize:   size,
			LineHeight: lineHeight(size),
		}
	}

	var last TextFitResult
	for attempt := 0; attempt < maxFitAttempts && size >= minFontSize; attempt++ {
		lines, fits := wrapAt(text, size, availW, availH, metrics)
		last = TextFitResult{
			Lines:      lines,
			FontSize:   size,
			LineHeight: lineHeight(size),
		}
		if fits {
			return last
		}
		size--
	}

	last.Truncated = true
	return last
}

func lineHeight(size float64) float64 {
	return math.Ceil(size * lineHeightFactor)
}

// wrapAt greedily wraps text at one candidate size and reports whether the
// result fits both the width and the line-count capacity. A single word
// wider than the available width fails the attempt even though the wrap
// itself proceeds.
func wrapAt(text string, size, availW, availH float64, metrics FontMetrics) ([]string, bool) {
	capacity := int(math.Floor(availH / lineHeight(size)))
	if capacity > maxTextLines {
		capacity = maxTextLines
	}

	words := strings.Fields(text)
	var lines []string
	cur := ""
	overflow := false

	for _, word := range words {
		if metrics.Measure(word, size) > availW {
			overflow = true
		}
		if cur == "" {
			cur = word
			continue
		}
		candidate := cur + " " + word
		if metrics.Measure(candidate, size) <= availW {
			cur = candidate
		} else {
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}

	fits := !overflow && capacity >= 1 && len(lines) <= capacity
	return lines, fits
}
