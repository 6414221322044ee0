package jigsaw

import "testing"

func TestSafeBoxesNonDegenerate(t *testing.T) {
	for rows := 1; rows <= 7; rows++ {
		for cols := 1; cols <= 7; cols++ {
			for _, seed := range []uint32{0, 1, 42, 99999} {
				spec := PuzzleSpec{Width: 700, Height: 700, Rows: rows, Cols: cols, Seed: seed}
				g := mustBuild(t, spec)
				for row := 0; row < rows; row++ {
					for col := 0; col < cols; col++ {
						box := g.SafeBox(row, col)
						if box.Width <= 0 || box.Height <= 0 {
							t.Fatalf("degenerate safe box at (%d,%d) rows=%d cols=%d seed=%d: %+v",
								row, col, rows, cols, seed, box)
						}
					}
				}
			}
		}
	}
}

func TestSafeBoxWithinCell(t *testing.T) {
	spec := PuzzleSpec{Width: 1200, Height: 900, Rows: 3, Cols: 4, Seed: 42}
	g := mustBuild(t, spec)

	cellW := spec.CellWidth()
	cellH := spec.CellHeight()

	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			box := g.SafeBox(row, col)
			if box.Left < float64(col)*cellW || box.Right > float64(col+1)*cellW {
				t.Errorf("(%d,%d) safe box exceeds cell horizontally: %+v", row, col, box)
			}
			if box.Top < float64(row)*cellH || box.Bottom > float64(row+1)*cellH {
				t.Errorf("(%d,%d) safe box exceeds cell vertically: %+v", row, col, box)
			}
			if box.CenterX != (box.Left+box.Right)/2 || box.CenterY != (box.Top+box.Bottom)/2 {
				t.Errorf("(%d,%d) center not centered: %+v", row, col, box)
			}
		}
	}
}

func TestSafeBoxDirectionalInset(t *testing.T) {
	// One shared interior edge insets exactly one of its two cells beyond
	// the baseline.
	spec := PuzzleSpec{Width: 600, Height: 600, Rows: 2, Cols: 1, Seed: 5}
	g := mustBuild(t, spec)

	edge := g.Horizontal[1][0]
	if edge.Sign == 0 {
		t.Fatal("interior edge unexpectedly flat")
	}

	cellH := spec.CellHeight()
	baseline := baselineInsetFraction * cellH
	amp := edge.AmplitudePx
	if amp > maxInsetFraction*cellH {
		amp = maxInsetFraction * cellH
	}

	upper := g.SafeBox(0, 0)
	lower := g.SafeBox(1, 0)

	upperBottomInset := cellH - upper.Bottom
	lowerTopInset := lower.Top - cellH

	if edge.Sign > 0 {
		// Bulges downward, into the lower cell.
		if lowerTopInset != amp {
			t.Errorf("lower top inset = %v, want amplitude inset %v", lowerTopInset, amp)
		}
		if upperBottomInset != baseline {
			t.Errorf("upper bottom inset = %v, want baseline %v", upperBottomInset, baseline)
		}
	} else {
		if upperBottomInset != amp {
			t.Errorf("upper bottom inset = %v, want amplitude inset %v", upperBottomInset, amp)
		}
		if lowerTopInset != baseline {
			t.Errorf("lower top inset = %v, want baseline %v", lowerTopInset, baseline)
		}
	}
}

func TestSafeBoxFallbackForTinyCells(t *testing.T) {
	// 10 px cells always drop below the minimum safe dimension and take
	// the centered fallback box.
	spec := PuzzleSpec{Width: 100, Height: 100, Rows: 10, Cols: 10, Seed: 8}
	g := mustBuild(t, spec)

	box := g.SafeBox(4, 4)
	if box.Width != 8 || box.Height != 8 {
		t.Errorf("fallback box = %vx%v, want 8x8", box.Width, box.Height)
	}
	if box.CenterX != 45 || box.CenterY != 45 {
		t.Errorf("fallback box center = (%v,%v), want (45,45)", box.CenterX, box.CenterY)
	}
}

func TestSafeBoxPadding(t *testing.T) {
	small := CellSafeBox{Width: 20, Height: 20}
	if got := small.Padding(); got != 4 {
		t.Errorf("small box padding = %v, want floor 4", got)
	}
	big := CellSafeBox{Width: 200, Height: 100}
	if got := big.Padding(); got != 8 {
		t.Errorf("big box padding = %v, want 8", got)
	}
}

func TestSafeBoxesRowMajorOrder(t *testing.T) {
	spec := PuzzleSpec{Width: 400, Height: 300, Rows: 2, Cols: 3, Seed: 1}
	g := mustBuild(t, spec)

	boxes := g.SafeBoxes()
	if len(boxes) != 6 {
		t.Fatalf("got %d boxes, want 6", len(boxes))
	}
	for i, box := range boxes {
		row, col := spec.CellAt(i)
		if box != g.SafeBox(row, col) {
			t.Errorf("boxes[%d] != SafeBox(%d,%d)", i, row, col)
		}
	}
}
