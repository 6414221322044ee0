package jigsaw

import "strings"

// Auto-rewrite reducer: shortens a fact that the layout engine reported as
// truncated, trying decreasingly aggressive candidates until one fits. The
// caller must surface any Changed substitution to the fact's author; the
// reducer never silently rewrites on its own authority.

// RewriteOptions configures the reducer.
type RewriteOptions struct {
	// RetentionRatio is the minimum fraction of the original character
	// length a stopword-filtered candidate must keep to be considered.
	// Guards against over-aggressive trims. Default: 0.60.
	RetentionRatio float64
}

// DefaultRewriteOptions returns the default reducer configuration.
func DefaultRewriteOptions() *RewriteOptions {
	return &RewriteOptions{RetentionRatio: 0.60}
}

// RewriteResult is the outcome of one reduction.
type RewriteResult struct {
	// Text is the accepted candidate, or the original text on failure.
	Text string
	// Changed reports that Text differs from the original.
	Changed bool
	// Failed reports that no candidate fit; Fit then holds the last
	// attempted layout.
	Failed bool
	// Fit is the layout of Text.
	Fit TextFitResult
}

// A rewriteStrategy produces shortening candidates in preference order.
type rewriteStrategy func(text string) []string

// Strategies are tried in order; within a strategy, candidates are tried in
// original text order. New strategies are list insertions, not call-site
// edits.
func strategiesFor(opts *RewriteOptions) []rewriteStrategy {
	return []rewriteStrategy{
		func(text string) []string { return []string{text} },
		splitSentences,
		splitClauses,
		func(text string) []string { return stopwordCandidates(text, opts.RetentionRatio) },
	}
}

// AutoRewrite finds the first candidate, across the ordered strategies,
// that fits box untruncated. Invoke it only after the full unmodified text
// failed to fit.
func AutoRewrite(text string, box CellSafeBox, scale float64, metrics FontMetrics, opts *RewriteOptions) RewriteResult {
	if opts == nil {
		opts = DefaultRewriteOptions()
	}

	var last TextFitResult
	for _, strategy := range strategiesFor(opts) {
		for _, candidate := range strategy(text) {
			candidate = strings.TrimSpace(candidate)
			if candidate == "" {
				continue
			}
			fit := FitText(candidate, box, scale, metrics)
			last = fit
			if !fit.Truncated {
				return RewriteResult{
					Text:    candidate,
					Changed: candidate != text,
					Fit:     fit,
				}
			}
		}
	}

	return RewriteResult{Text: text, Failed: true, Fit: last}
}

// splitSentences yields each sentence of text, split on ./!/?.
func splitSentences(text string) []string {
	return splitOn(text, ".!?")
}

// splitClauses yields each clause of text, split on ,/:/;.
func splitClauses(text string) []string {
	return splitOn(text, ",:;")
}

func splitOn(text, seps string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stopwordCandidates yields the token-filtered text with stopwords and
// short tokens removed, unless the trim is too lossy to keep.
func stopwordCandidates(text string, retention float64) []string {
	var kept []string
	for _, tok := range strings.Fields(text) {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if stopwords[strings.ToLower(strings.Trim(tok, ".,!?;:"))] {
			continue
		}
		kept = append(kept, tok)
	}
	filtered := strings.Join(kept, " ")
	if float64(len(filtered)) < retention*float64(len(text)) {
		return nil
	}
	return []string{filtered}
}

// stopwords are common low-information words dropped by the token filter.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "our": true,
	"she": true, "that": true, "the": true, "their": true, "then": true,
	"they": true, "this": true, "to": true, "very": true, "was": true,
	"were": true, "which": true, "with": true, "you": true, "your": true,
}
