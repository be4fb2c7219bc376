// Package core holds the pure types shared by the simulation and the
// platform layer: world geometry, input frames, the cell screen and the
// runtime config. Nothing here imports Bubble Tea.
package core

import "math"

// Rect is a screen-space rectangle in cells, used for overlays.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Vec3 is a world-space position: X is the lane offset, Y the height above
// ground and Z the forward distance (negative is ahead of the player).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Span is a closed interval on one axis.
type Span struct {
	Min, Max float64
}

// NewSpan builds a span from two endpoints in any order.
func NewSpan(a, b float64) Span {
	if a > b {
		a, b = b, a
	}
	return Span{Min: a, Max: b}
}

// Grow widens the span by d on both sides.
func (s Span) Grow(d float64) Span {
	return Span{Min: s.Min - d, Max: s.Max + d}
}

// Contains reports whether v lies inside the span (inclusive).
func (s Span) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Overlaps reports whether two spans share any interior length.
// Touching endpoints do not count.
func (s Span) Overlaps(o Span) bool {
	return s.Min < o.Max && o.Min < s.Max
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	return math.Abs(x)
}
