package layout

import "math"

// Tolerance for comparing cross-axis dimensions and positions.
const Tolerance = 1e-6

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Ratio returns width/height, or 0 for a zero height.
func (s Size) Ratio() float64 {
	if s.Height > 0 {
		return s.Width / s.Height
	}
	return 0
}

// Surface returns width*height.
func (s Size) Surface() float64 {
	return s.Width * s.Height
}

// Scale returns s with both dimensions divided by d.
func (s Size) Scale(d float64) Size {
	return Size{Width: s.Width / d, Height: s.Height / d}
}

// Position is an offset from the top-left corner of the parent container,
// growing right and down.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scale returns p with both coordinates divided by d.
func (p Position) Scale(d float64) Position {
	return Position{X: p.X / d, Y: p.Y / d}
}

func (p Position) near(q Position) bool {
	return math.Abs(p.X-q.X) < Tolerance && math.Abs(p.Y-q.Y) < Tolerance
}

// NormedRatio returns min(r, 1/r), the orientation-independent squareness
// of a ratio. It returns 0 for a non-positive ratio.
func NormedRatio(r float64) float64 {
	if r <= 0 {
		return 0
	}
	if r < 1 {
		return r
	}
	return 1 / r
}
