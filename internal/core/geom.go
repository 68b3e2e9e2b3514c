// Package core provides fundamental types shared by the game packages.
// It contains no external dependencies (especially no Bubble Tea) to keep
// game logic pure and testable.
package core

import "math"

// Vec is a point or displacement in world units.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Box is an axis-aligned bounding box in world units, positioned by its centre.
// Overlap tests between the player, vedas and the gate all go through Box.
type Box struct {
	Center Vec
	W, H   float64
}

// BoxAt creates a box of size w x h centred on c.
func BoxAt(c Vec, w, h float64) Box {
	return Box{Center: c, W: w, H: h}
}

// Min returns the top-left corner.
func (b Box) Min() Vec {
	return Vec{X: b.Center.X - b.W/2, Y: b.Center.Y - b.H/2}
}

// Max returns the bottom-right corner.
func (b Box) Max() Vec {
	return Vec{X: b.Center.X + b.W/2, Y: b.Center.Y + b.H/2}
}

// Overlaps returns true if the two boxes share a region of positive area.
// Touching edges do not count as overlap.
func (b Box) Overlaps(o Box) bool {
	bmin, bmax := b.Min(), b.Max()
	omin, omax := o.Min(), o.Max()
	if bmin.X >= omax.X || omin.X >= bmax.X {
		return false
	}
	if bmin.Y >= omax.Y || omin.Y >= bmax.Y {
		return false
	}
	return true
}

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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
