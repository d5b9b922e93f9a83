package flatmesh

import (
	"iter"

	"golang.org/x/image/math/fixed"
)

// Subpath is a sequence of connected cubic Béziers. Points holds the start
// point followed by three points (two control points and an end point) per
// curve. Trailing points that do not form a complete curve are ignored.
type Subpath struct {
	Points []Point
	Closed bool
}

// NumCurves returns the number of complete curves in the subpath.
func (sp Subpath) NumCurves() int {
	if len(sp.Points) < 4 {
		return 0
	}
	return (len(sp.Points) - 1) / 3
}

// Curves yields the subpath's curves in order.
func (sp Subpath) Curves() iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		for i := range sp.NumCurves() {
			p := sp.Points[i*3:]
			if !yield(CubicBez{p[0], p[1], p[2], p[3]}) {
				return
			}
		}
	}
}

func (sp Subpath) finite() bool {
	if len(sp.Points) > 0 && (sp.Points[0].IsNaN() || sp.Points[0].IsInf()) {
		return false
	}
	for c := range sp.Curves() {
		if c.IsNaN() || c.IsInf() {
			return false
		}
	}
	return true
}

// PolygonPath is a polyline in 26.6 fixed-point coordinates, as consumed by
// polygon boolean and offsetting operations. Closed paths repeat their first
// point at the end.
type PolygonPath []fixed.Point26_6

// Closed reports whether the path ends where it starts.
func (p PolygonPath) Closed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// Points converts the path to floating point coordinates.
func (p PolygonPath) Points() []Point {
	out := make([]Point, len(p))
	for i, q := range p {
		out[i] = PointFromFixed(q)
	}
	return out
}

// Length returns the arc length of the path.
func (p PolygonPath) Length() float64 {
	var l float64
	for i := 1; i < len(p); i++ {
		l += PointFromFixed(p[i-1]).Distance(PointFromFixed(p[i]))
	}
	return l
}

func polygonFromPoints(pts []Point) PolygonPath {
	out := make(PolygonPath, 0, len(pts))
	for _, pt := range pts {
		q := pt.Fixed()
		if len(out) > 0 && out[len(out)-1] == q {
			continue
		}
		out = append(out, q)
	}
	return out
}
