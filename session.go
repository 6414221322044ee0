package jigsaw

import "fmt"

// Session owns the working set of one puzzle attempt: the spec, the cached
// geometry, and the facts assigned so far. A Session belongs to exactly one
// conversation and is not safe for concurrent use; concurrent puzzles get
// separate Sessions and never share generator state.

// Fact is one cell's back-side content with its resolved layout.
type Fact struct {
	// Index is the linear row-major cell index.
	Index int
	// Text is the sanitized fact as it will be printed, possibly shortened
	// by the auto-rewrite reducer.
	Text string
	// Original is the sanitized input before any shortening.
	Original string
	// Rewritten reports that Text differs from Original; the conversation
	// layer must surface this to the author rather than accept it silently.
	Rewritten bool
	// FitFailed reports that not even the reducer could make the text fit;
	// Fit then holds the truncated layout actually used.
	FitFailed bool
	// Fit is the resolved layout of Text.
	Fit TextFitResult
}

// Session accumulates fact assignments against one immutable PuzzleSpec.
type Session struct {
	spec        PuzzleSpec
	metrics     FontMetrics
	rewriteOpts *RewriteOptions

	geo   *Geometry
	facts map[int]*Fact
}

// NewSession starts a puzzle attempt. metrics may be nil (approximate
// measurement); rewriteOpts may be nil (defaults).
func NewSession(spec PuzzleSpec, metrics FontMetrics, rewriteOpts *RewriteOptions) (*Session, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		spec:        spec,
		metrics:     metrics,
		rewriteOpts: rewriteOpts,
		facts:       make(map[int]*Fact),
	}, nil
}

// Spec returns the session's puzzle spec.
func (s *Session) Spec() PuzzleSpec {
	return s.spec
}

// Geometry returns the cached cut-line geometry, building it on first use.
// Dropping the cache is harmless: a rebuild from the same spec is
// bit-for-bit identical.
func (s *Session) Geometry() (*Geometry, error) {
	if s.geo == nil {
		g, err := BuildGeometry(s.spec)
		if err != nil {
			return nil, err
		}
		s.geo = g
	}
	return s.geo, nil
}

// Restart discards the whole working set and starts over with a new spec.
// Nothing is carried across: a new photo or size invalidates all derived
// state.
func (s *Session) Restart(spec PuzzleSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	s.spec = spec
	s.geo = nil
	s.facts = make(map[int]*Fact)
	return nil
}

// AssignFact sanitizes raw text, fits it into the cell's safe zone, runs
// the auto-rewrite reducer when the full text does not fit, and records the
// result. The returned Fact carries the change record.
func (s *Session) AssignFact(index int, raw string) (*Fact, error) {
	if index < 0 || index >= s.spec.Pieces() {
		return nil, fmt.Errorf("cell index %d out of range (0-%d)", index, s.spec.Pieces()-1)
	}
	g, err := s.Geometry()
	if err != nil {
		return nil, err
	}

	row, col := s.spec.CellAt(index)
	box := g.SafeBox(row, col)
	scale := FontScaleForPieces(s.spec.Pieces())
	text := Sanitize(raw)

	fact := &Fact{Index: index, Text: text, Original: text}

	fit := FitText(text, box, scale, s.metrics)
	if fit.Truncated {
		rw := AutoRewrite(text, box, scale, s.metrics, s.rewriteOpts)
		fact.Text = rw.Text
		fact.Rewritten = rw.Changed
		fact.FitFailed = rw.Failed
		fact.Fit = rw.Fit
	} else {
		fact.Fit = fit
	}

	s.facts[index] = fact
	return fact, nil
}

// FactAt returns the assigned fact for a cell, or nil.
func (s *Session) FactAt(index int) *Fact {
	return s.facts[index]
}

// Complete reports whether every cell has a fact.
func (s *Session) Complete() bool {
	return len(s.facts) == s.spec.Pieces()
}

// FrontFacts returns all facts in front-logical row-major order, with nil
// entries for unassigned cells.
func (s *Session) FrontFacts() []*Fact {
	out := make([]*Fact, s.spec.Pieces())
	for i, f := range s.facts {
		out[i] = f
	}
	return out
}

// BackFacts returns the facts reordered for back-side rendering: mirrored
// along the vertical axis so the printed back lines up with the front once
// the sheet is flipped.
func (s *Session) BackFacts() ([]*Fact, error) {
	return Mirror(s.FrontFacts(), s.spec.Rows, s.spec.Cols)
}
