// Package core provides fundamental types and utilities for the forager simulation.
// It contains no external UI dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

// Vec2 is a real-valued 2-D vector used for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rect represents an axis-aligned bounding box in world units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect returns true if other lies fully inside r (edges may touch).
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by m on every side.
// The result never has negative size; an over-large margin collapses to the center.
func (r Rect) Inset(m float64) Rect {
	w := r.W - 2*m
	h := r.H - 2*m
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cx, cy := r.Center()
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// ClampInside moves box so it lies fully within r, without resizing it.
// A box larger than r is pinned to r's top-left corner on that axis.
func (r Rect) ClampInside(box Rect) Rect {
	box.X = ClampF(box.X, r.X, r.Right()-box.W)
	if box.W > r.W {
		box.X = r.X
	}
	box.Y = ClampF(box.Y, r.Y, r.Bottom()-box.H)
	if box.H > r.H {
		box.Y = r.Y
	}
	return box
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
