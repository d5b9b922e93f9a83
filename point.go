package flatmesh

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) Splat() (float64, float64) {
	return pt.X, pt.Y
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

// Scale multiplies both coordinates by s.
func (pt Point) Scale(s float64) Point {
	return Point{
		X: pt.X * s,
		Y: pt.Y * s,
	}
}

// Sub computes p−o.
// To subtract a vector from p, use Translate with the negated vector.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// Fixed rounds the point to the nearest 26.6 fixed-point coordinate.
func (pt Point) Fixed() fixed.Point26_6 {
	return fixed.Point26_6{
		X: toFixed(pt.X),
		Y: toFixed(pt.Y),
	}
}

// PointFromFixed converts a 26.6 fixed-point coordinate back to a point.
func PointFromFixed(p fixed.Point26_6) Point {
	return Point{
		X: fromFixed(p.X),
		Y: fromFixed(p.Y),
	}
}

// Vertex returns the point as a float32 vertex.
func (pt Point) Vertex() Vertex {
	return Vertex{X: float32(pt.X), Y: float32(pt.Y)}
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

func toFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}

func fromFixed(i fixed.Int26_6) float64 {
	return float64(i) / 64
}
