package flatmesh

import "math"

// curveClass classifies a cubic by which of its inner control points deviate
// significantly from the chord between its end points.
type curveClass int

const (
	// P1, P2, P3 and P4 are collinear, or P1 == P4.
	classCollinear curveClass = iota
	// P1, P2 and P4 are collinear; P3 is significant.
	classP3Significant
	// P1, P3 and P4 are collinear; P2 is significant.
	classP2Significant
	// Both P2 and P3 are significant.
	classRegular
)

func classify(d2, d3, eps float64) curveClass {
	switch {
	case d2 > eps && d3 > eps:
		return classRegular
	case d2 > eps:
		return classP2Significant
	case d3 > eps:
		return classP3Significant
	default:
		return classCollinear
	}
}

// AdaptiveFlattener converts cubic Béziers to polylines by recursive
// subdivision, stopping as soon as a sub-curve is flat enough. The algorithm is
// the one used by Anti-Grain Geometry.
type AdaptiveFlattener struct {
	scale float64

	distanceTolerance       float64
	distanceToleranceSquare float64
	colinearityEpsilon      float64
	angleEpsilon            float64
	angleTolerance          float64
	cuspLimit               float64
	recursionLimit          int
}

// NewAdaptiveFlattener returns a flattener that multiplies all input
// coordinates by scale. If tol is nil, [DefaultTolerances] are used.
func NewAdaptiveFlattener(scale float64, tol *Tolerances) *AdaptiveFlattener {
	t := DefaultTolerances()
	if tol != nil {
		t = *tol
	}
	return &AdaptiveFlattener{
		scale:                   scale,
		distanceTolerance:       t.DistanceTolerance,
		distanceToleranceSquare: t.DistanceTolerance * t.DistanceTolerance,
		colinearityEpsilon:      t.ColinearityEpsilon,
		angleEpsilon:            t.AngleEpsilon,
		angleTolerance:          t.AngleTolerance,
		cuspLimit:               t.CuspLimit,
		recursionLimit:          min(MaxRecursionLimit, t.RecursionLimit),
	}
}

// Scale returns the factor applied to input coordinates.
func (f *AdaptiveFlattener) Scale() float64 {
	return f.scale
}

// Flatten appends a polyline approximating c to dst and returns the extended
// slice. The polyline starts at c.P0 and ends at c.P3. Scaling is not applied;
// see [AdaptiveFlattener.FlattenSubpath].
func (f *AdaptiveFlattener) Flatten(c CubicBez, dst []Point) []Point {
	dst = append(dst, c.P0)
	dst = f.recursive(c, dst, 0)
	return append(dst, c.P3)
}

// FlattenSubpath flattens all curves of sp, scaled, into a single polygon path.
// Closed subpaths end with their first point.
func (f *AdaptiveFlattener) FlattenSubpath(sp Subpath) PolygonPath {
	if len(sp.Points) == 0 {
		return nil
	}
	p0 := sp.Points[0].Scale(f.scale)
	pts := []Point{p0}
	for c := range sp.Curves() {
		c = c.Scale(f.scale)
		pts = f.recursive(c, pts, 0)
		pts = append(pts, c.P3)
	}
	if sp.Closed && pts[len(pts)-1] != p0 {
		pts = append(pts, p0)
	}
	out := make(PolygonPath, len(pts))
	for i, p := range pts {
		out[i] = p.Fixed()
	}
	return out
}

func angleBetween(a, b float64) float64 {
	da := math.Abs(a - b)
	if da >= math.Pi {
		da = 2*math.Pi - da
	}
	return da
}

func (f *AdaptiveFlattener) recursive(c CubicBez, dst []Point, level int) []Point {
	if level > f.recursionLimit {
		return append(dst, c.P3)
	}

	x1, y1 := c.P0.Splat()
	x2, y2 := c.P1.Splat()
	x3, y3 := c.P2.Splat()
	x4, y4 := c.P3.Splat()
	p23 := c.P1.Midpoint(c.P2)

	// Try to approximate the full cubic curve by a single straight line.
	dx := x4 - x1
	dy := y4 - y1
	d2 := math.Abs((x2-x4)*dy - (y2-y4)*dx)
	d3 := math.Abs((x3-x4)*dy - (y3-y4)*dx)

	switch classify(d2, d3, f.colinearityEpsilon) {
	case classCollinear:
		k := dx*dx + dy*dy
		if k == 0 {
			d2 = c.P0.DistanceSquared(c.P1)
			d3 = c.P3.DistanceSquared(c.P2)
		} else {
			k = 1 / k
			d2 = k * ((x2-x1)*dx + (y2-y1)*dy)
			d3 = k * ((x3-x1)*dx + (y3-y1)*dy)
			if d2 > 0 && d2 < 1 && d3 > 0 && d3 < 1 {
				// 1---2---3---4; the end points alone suffice.
				return dst
			}
			d2 = projectedDistance(c.P1, c.P0, c.P3, d2)
			d3 = projectedDistance(c.P2, c.P0, c.P3, d3)
		}
		if d2 > d3 {
			if d2 < f.distanceToleranceSquare {
				return append(dst, c.P1)
			}
		} else {
			if d3 < f.distanceToleranceSquare {
				return append(dst, c.P2)
			}
		}

	case classP3Significant:
		if d3*d3 <= f.distanceToleranceSquare*(dx*dx+dy*dy) {
			if f.angleTolerance < f.angleEpsilon {
				return append(dst, p23)
			}
			da1 := angleBetween(c.P3.Sub(c.P2).Angle(), c.P2.Sub(c.P1).Angle())
			if da1 < f.angleTolerance {
				return append(dst, c.P1, c.P2)
			}
			if f.cuspLimit != 0 && da1 > f.cuspLimit {
				return append(dst, c.P2)
			}
		}

	case classP2Significant:
		if d2*d2 <= f.distanceToleranceSquare*(dx*dx+dy*dy) {
			if f.angleTolerance < f.angleEpsilon {
				return append(dst, p23)
			}
			da1 := angleBetween(c.P2.Sub(c.P1).Angle(), c.P1.Sub(c.P0).Angle())
			if da1 < f.angleTolerance {
				return append(dst, c.P1, c.P2)
			}
			if f.cuspLimit != 0 && da1 > f.cuspLimit {
				return append(dst, c.P1)
			}
		}

	case classRegular:
		if (d2+d3)*(d2+d3) <= f.distanceToleranceSquare*(dx*dx+dy*dy) {
			// The curvature doesn't exceed the distance tolerance; we tend
			// to finish subdividing.
			if f.angleTolerance < f.angleEpsilon {
				return append(dst, p23)
			}
			k := c.P2.Sub(c.P1).Angle()
			da1 := angleBetween(k, c.P1.Sub(c.P0).Angle())
			da2 := angleBetween(c.P3.Sub(c.P2).Angle(), k)
			if da1+da2 < f.angleTolerance {
				return append(dst, p23)
			}
			if f.cuspLimit != 0 {
				if da1 > f.cuspLimit {
					return append(dst, c.P1)
				}
				if da2 > f.cuspLimit {
					return append(dst, c.P2)
				}
			}
		}

	default:
		panic("unreachable")
	}

	c0, c1 := c.Subdivide()
	dst = f.recursive(c0, dst, level+1)
	return f.recursive(c1, dst, level+1)
}

// projectedDistance returns the squared distance between p and its projection
// at parameter t onto the segment from a to b, clamping t to the segment.
func projectedDistance(p, a, b Point, t float64) float64 {
	switch {
	case t <= 0:
		return p.DistanceSquared(a)
	case t >= 1:
		return p.DistanceSquared(b)
	default:
		return p.DistanceSquared(a.Lerp(b, t))
	}
}
