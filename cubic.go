package flatmesh

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

// IsInf reports whether any control point has an infinite coordinate.
func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

// IsNaN reports whether any control point has a NaN coordinate.
func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	d := Vec2(c.P2).Mul(mt * 3.0)
	e := Vec2(c.P3)
	v := a.Add(b.Add(d.Add(e.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Midpoint(c.P1)
	p12 := c.P1.Midpoint(c.P2)
	p23 := c.P2.Midpoint(c.P3)
	p012 := p01.Midpoint(p12)
	p123 := p12.Midpoint(p23)
	pm := p012.Midpoint(p123)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

// Scale returns the cubic with all control points multiplied by s.
func (c CubicBez) Scale(s float64) CubicBez {
	return CubicBez{c.P0.Scale(s), c.P1.Scale(s), c.P2.Scale(s), c.P3.Scale(s)}
}
