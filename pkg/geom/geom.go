// Package geom holds the float64 geometry shared by the layout engine and its
// hosts.
//
// Coordinates follow the screen convention: X grows to the right and Y grows
// downward. A Rect's origin is its top-left corner.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by the approximate comparisons in this package.
const Epsilon = 1e-9

// Point is a position.
type Point struct {
	X, Y float64
}

// Add returns p offset by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Vector {
	return Vector{X: p.X - other.X, Y: p.Y - other.Y}
}

// Vector is a displacement or a per-axis factor (scale).
type Vector struct {
	X, Y float64
}

// Add returns v + other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Size represents dimensions (width and height).
type Size struct {
	Width  float64
	Height float64
}

// Scale returns the size with each axis multiplied by the matching factor.
func (s Size) Scale(f Vector) Size {
	return Size{Width: s.Width * f.X, Height: s.Height * f.Y}
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// XYWH is shorthand for a Rect literal.
func XYWH(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether other lies inside r, within Epsilon.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X-Epsilon &&
		other.Y >= r.Y-Epsilon &&
		other.Right() <= r.Right()+Epsilon &&
		other.Bottom() <= r.Bottom()+Epsilon
}

// Intersect returns the overlap of r and other. When they do not overlap the
// result has zero size and is pinned to the nearest edge of r.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())
	x0 = math.Min(x0, r.Right())
	y0 = math.Min(y0, r.Bottom())
	return Rect{X: x0, Y: y0, Width: math.Max(0, x1-x0), Height: math.Max(0, y1-y0)}
}

// Union returns the smallest rectangle containing r and other. An empty
// operand is ignored.
func (r Rect) Union(other Rect) Rect {
	switch {
	case other.Empty():
		return r
	case r.Empty():
		return other
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks r by e. The second result is false when the edges exceed the
// rectangle on some axis; the size on that axis is then clamped to zero and
// the origin sits inside r, split in proportion to the opposing edges.
func (r Rect) Inset(e Edges) (Rect, bool) {
	ok := true
	out := Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  r.Width - e.Left - e.Right,
		Height: r.Height - e.Top - e.Bottom,
	}
	if out.Width < 0 {
		ok = false
		out.X = r.X + r.Width*ratio(e.Left, e.Left+e.Right)
		out.Width = 0
	}
	if out.Height < 0 {
		ok = false
		out.Y = r.Y + r.Height*ratio(e.Top, e.Top+e.Bottom)
		out.Height = 0
	}
	return out, ok
}

// ApproxEqual compares two rectangles within tol.
func (r Rect) ApproxEqual(other Rect, tol float64) bool {
	return math.Abs(r.X-other.X) <= tol &&
		math.Abs(r.Y-other.Y) <= tol &&
		math.Abs(r.Width-other.Width) <= tol &&
		math.Abs(r.Height-other.Height) <= tol
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

func ratio(a, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return a / total
}
