package jigsaw

import (
	"strings"
	"testing"
)

func newTestSession(t *testing.T, spec PuzzleSpec) *Session {
	t.Helper()
	s, err := NewSession(spec, nil, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionRejectsInvalidSpec(t *testing.T) {
	if _, err := NewSession(PuzzleSpec{Rows: -1}, nil, nil); err == nil {
		t.Error("expected error for invalid spec")
	}
}

func TestSessionGeometryCachedAndIdempotent(t *testing.T) {
	s := newTestSession(t, PuzzleSpec{Width: 800, Height: 600, Rows: 2, Cols: 3, Seed: 9})

	g1, err := s.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	g2, err := s.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if g1 != g2 {
		t.Error("second call should return the cached geometry")
	}

	// Dropping the cache and rebuilding must reproduce the same bytes.
	rebuilt := mustBuild(t, s.Spec())
	for i, d := range g1.PathStrings() {
		if rebuilt.PathStrings()[i] != d {
			t.Fatalf("rebuild diverged at path %d", i)
		}
	}
}

func TestSessionAssignFact(t *testing.T) {
	s := newTestSession(t, PuzzleSpec{Width: 1200, Height: 900, Rows: 3, Cols: 4, Seed: 42})

	fact, err := s.AssignFact(0, "The Eiffel Tower opened in 1889! ✨")
	if err != nil {
		t.Fatalf("AssignFact: %v", err)
	}
	if strings.ContainsRune(fact.Original, '✨') {
		t.Error("sanitizer let a symbol through")
	}
	if len(fact.Fit.Lines) == 0 {
		t.Error("assigned fact has no layout")
	}
	if s.FactAt(0) != fact {
		t.Error("FactAt(0) does not return the stored fact")
	}
	if s.Complete() {
		t.Error("session complete with 1 of 12 facts")
	}
}

func TestSessionAssignFactOutOfRange(t *testing.T) {
	s := newTestSession(t, PuzzleSpec{Width: 400, Height: 400, Rows: 2, Cols: 2, Seed: 1})
	for _, idx := range []int{-1, 4, 100} {
		if _, err := s.AssignFact(idx, "text"); err == nil {
			t.Errorf("expected error for index %d", idx)
		}
	}
}

func TestSessionRewriteSurfaced(t *testing.T) {
	// 12x12 on a small canvas: cells take the fallback safe box and long
	// facts must go through the reducer.
	s := newTestSession(t, PuzzleSpec{Width: 360, Height: 360, Rows: 12, Cols: 12, Seed: 2})

	fact, err := s.AssignFact(0, "Short bit. Then an enormously long second sentence that has no chance of fitting inside such a small puzzle piece.")
	if err != nil {
		t.Fatal(err)
	}
	if !fact.Rewritten && !fact.FitFailed {
		t.Errorf("long fact in a 30px cell accepted verbatim: %+v", fact)
	}
	if fact.Rewritten && fact.Text == fact.Original {
		t.Error("rewritten fact has unchanged text")
	}
}

func TestSessionMirroring(t *testing.T) {
	spec := PuzzleSpec{Width: 900, Height: 600, Rows: 2, Cols: 3, Seed: 5}
	s := newTestSession(t, spec)

	for i := 0; i < spec.Pieces(); i++ {
		if _, err := s.AssignFact(i, "fact"); err != nil {
			t.Fatal(err)
		}
	}
	if !s.Complete() {
		t.Fatal("session should be complete")
	}

	front := s.FrontFacts()
	back, err := s.BackFacts()
	if err != nil {
		t.Fatal(err)
	}
	for i := range front {
		if back[MirrorIndex(i, spec.Cols)] != front[i] {
			t.Errorf("back order wrong at index %d", i)
		}
	}
}

func TestSessionRestartDiscardsState(t *testing.T) {
	s := newTestSession(t, PuzzleSpec{Width: 400, Height: 400, Rows: 2, Cols: 2, Seed: 1})
	if _, err := s.AssignFact(0, "will be discarded"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Geometry(); err != nil {
		t.Fatal(err)
	}

	newSpec := PuzzleSpec{Width: 600, Height: 600, Rows: 3, Cols: 3, Seed: 2}
	if err := s.Restart(newSpec); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.FactAt(0) != nil {
		t.Error("restart kept an old fact")
	}
	if s.Spec() != newSpec {
		t.Error("restart did not adopt the new spec")
	}
	g, err := s.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if g.Spec != newSpec {
		t.Error("geometry built from the old spec after restart")
	}

	if err := s.Restart(PuzzleSpec{}); err == nil {
		t.Error("restart with an invalid spec should fail")
	}
}
