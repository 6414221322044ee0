package jigsaw

import "github.com/jbeda/geom"

// Edge-shape sampling. Every interior edge gets six control points in a
// normalized frame: x runs 0..1 along the edge, y is the perpendicular
// bulge in [-1,1]. The endpoints are fixed on the edge line; two "neck"
// points sit near the quarter positions with a small offset and two
// "shoulder" points establish the widest part of the tab. One shared sign
// flip decides which of the two adjacent cells the tab points into.

const (
	neckMinX     = 0.20
	neckMaxX     = 0.30
	shoulderMinX = 0.35
	shoulderMaxX = 0.45

	neckMinY     = 0.05
	neckMaxY     = 0.12
	shoulderMinY = 0.18
	shoulderMaxY = 0.30

	// amplitudeSafety pads the reported amplitude so the safe-zone inset
	// covers any overshoot introduced by curve smoothing.
	amplitudeSafety = 1.05
)

// EdgeProfile holds one edge's control points in normalized space together
// with the derived bulge metadata.
type EdgeProfile struct {
	// Points are ordered along the edge; Points[i].X is the position along
	// the edge in [0,1], Points[i].Y the perpendicular offset in [-1,1].
	Points []geom.Coord
	// Amplitude is the maximum absolute perpendicular offset across the
	// points, already scaled by the smoothing safety factor.
	Amplitude float64
	// Sign is the bulge direction: -1 or +1 for interior edges, 0 for flat
	// border edges.
	Sign int
}

// flatProfile is the shape of every border edge: endpoints only, no bulge.
func flatProfile() EdgeProfile {
	return EdgeProfile{
		Points: []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}
}

// sampleProfile draws one interior edge shape from the generator. The draw
// order is fixed; changing it changes every puzzle ever generated.
func sampleProfile(r *Rand) EdgeProfile {
	neck1 := geom.Coord{X: r.Between(neckMinX, neckMaxX), Y: r.Between(neckMinY, neckMaxY)}
	shoulder1 := geom.Coord{X: r.Between(shoulderMinX, shoulderMaxX), Y: r.Between(shoulderMinY, shoulderMaxY)}
	shoulder2 := geom.Coord{X: r.Between(1-shoulderMaxX, 1-shoulderMinX), Y: r.Between(shoulderMinY, shoulderMaxY)}
	neck2 := geom.Coord{X: r.Between(1-neckMaxX, 1-neckMinX), Y: r.Between(neckMinY, neckMaxY)}
	sign := r.Sign()

	pts := []geom.Coord{
		{X: 0, Y: 0},
		neck1,
		shoulder1,
		shoulder2,
		neck2,
		{X: 1, Y: 0},
	}

	amp := 0.0
	for i := 1; i < len(pts)-1; i++ {
		pts[i].Y *= float64(sign)
		if a := abs64(pts[i].Y); a > amp {
			amp = a
		}
	}

	return EdgeProfile{
		Points:    pts,
		Amplitude: amp * amplitudeSafety,
		Sign:      sign,
	}
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
