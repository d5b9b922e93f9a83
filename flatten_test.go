package flatmesh

import (
	"fmt"
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		d2, d3 float64
		want   curveClass
	}{
		{0, 0, classCollinear},
		{0.5, 0.5, classCollinear},
		{1, 0, classP2Significant},
		{0, 1, classP3Significant},
		{1, 1, classRegular},
	}
	for _, tt := range tests {
		if got := classify(tt.d2, tt.d3, 0.5); got != tt.want {
			t.Errorf("classify(%g, %g) = %v, want %v", tt.d2, tt.d3, got, tt.want)
		}
	}
}

func TestFlattenCollinear(t *testing.T) {
	curves := []CubicBez{
		{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)},
		{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(30, 0)},
		{Pt(10, -5), Pt(8, -4), Pt(2, -1), Pt(0, 0)},
		{Pt(0, 0), Pt(0, 0.1), Pt(0, 99.9), Pt(0, 100)},
	}
	f := NewAdaptiveFlattener(1, nil)
	for _, c := range curves {
		got := f.Flatten(c, nil)
		diff(t, []Point{c.P0, c.P3}, got)
	}
}

func TestFlattenCoincident(t *testing.T) {
	c := CubicBez{Pt(1, 1), Pt(1, 1), Pt(1, 1), Pt(1, 1)}
	got := NewAdaptiveFlattener(1, nil).Flatten(c, nil)
	for _, pt := range got {
		if pt != Pt(1, 1) {
			t.Errorf("got point %v for a curve collapsed to (1, 1)", pt)
		}
	}
}

func TestFlattenEndpoints(t *testing.T) {
	curves := []CubicBez{
		{Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)},
		{Pt(0, 0), Pt(100, 100), Pt(0, 100), Pt(100, 0)},
		{Pt(0, 0), Pt(200, 0), Pt(-100, 0), Pt(100, 0)},
		{Pt(5, 5), Pt(-50, 30), Pt(60, 30), Pt(5, 5)},
	}
	tols := []Tolerances{
		DefaultTolerances(),
		{DistanceTolerance: 0.1, ColinearityEpsilon: 0.1, AngleEpsilon: 0.01, AngleTolerance: 0.2, CuspLimit: 0.5, RecursionLimit: 10},
		{DistanceTolerance: 2, ColinearityEpsilon: 1, AngleEpsilon: 0.01, RecursionLimit: 4},
	}
	for i, tol := range tols {
		f := NewAdaptiveFlattener(1, &tol)
		for _, c := range curves {
			t.Run(fmt.Sprintf("%d/%v", i, c), func(t *testing.T) {
				got := f.Flatten(c, nil)
				if len(got) < 2 {
					t.Fatalf("got %d points, want at least 2", len(got))
				}
				if got[0] != c.P0 {
					t.Errorf("first point is %v, want %v", got[0], c.P0)
				}
				if got[len(got)-1] != c.P3 {
					t.Errorf("last point is %v, want %v", got[len(got)-1], c.P3)
				}
			})
		}
	}
}

// distanceToCurve approximates the distance between pt and c by sampling.
func distanceToCurve(c CubicBez, pt Point) float64 {
	const n = 2000
	best := math.Inf(1)
	for i := range n + 1 {
		best = min(best, c.Eval(float64(i)/n).Distance(pt))
	}
	return best
}

func TestFlattenAccuracy(t *testing.T) {
	curves := []CubicBez{
		{Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)},
		{Pt(0, 0), Pt(10, 20), Pt(20, 20), Pt(30, 0)},
		{Pt(-40, 10), Pt(0, 80), Pt(90, -60), Pt(120, 30)},
	}
	f := NewAdaptiveFlattener(1, nil)
	for _, c := range curves {
		for _, pt := range f.Flatten(c, nil) {
			if d := distanceToCurve(c, pt); d > 1 {
				t.Errorf("point %v is %g away from %v", pt, d, c)
			}
		}
	}
}

func TestFlattenOrder(t *testing.T) {
	// x is monotonic along this curve, and so must be the emitted points.
	c := CubicBez{Pt(0, 0), Pt(10, 20), Pt(20, 20), Pt(30, 0)}
	got := NewAdaptiveFlattener(4, nil).Flatten(c.Scale(4), nil)
	if len(got) <= 2 {
		t.Fatalf("curve was not subdivided: %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].X < got[i-1].X {
			t.Errorf("point %d at %v precedes point %d at %v", i, got[i], i-1, got[i-1])
		}
	}
}

func TestFlattenRecursionLimit(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	for limit := range 6 {
		tol := Tolerances{
			DistanceTolerance:  1e-9,
			ColinearityEpsilon: 0,
			AngleEpsilon:       0.01,
			RecursionLimit:     limit,
		}
		got := NewAdaptiveFlattener(1, &tol).Flatten(c, nil)
		if want := 2 + 1<<(limit+1); len(got) != want {
			t.Errorf("recursion limit %d: got %d points, want %d", limit, len(got), want)
		}
	}

	tol := DefaultTolerances()
	tol.RecursionLimit = 1000
	if got := NewAdaptiveFlattener(1, &tol).recursionLimit; got != MaxRecursionLimit {
		t.Errorf("got recursion limit %d, want %d", got, MaxRecursionLimit)
	}
}

func TestFlattenSubpath(t *testing.T) {
	f := NewAdaptiveFlattener(10, nil)

	got := f.FlattenSubpath(square(3))
	want := polygon(Pt(0, 0), Pt(30, 0), Pt(30, 30), Pt(0, 30), Pt(0, 0))
	diff(t, want, got)
	if !got.Closed() {
		t.Error("flattened closed subpath is not closed")
	}

	open := Subpath{Points: []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}}
	diff(t, polygon(Pt(0, 0), Pt(30, 0)), f.FlattenSubpath(open))

	// Closed subpaths that don't return to their start are closed
	// explicitly.
	open.Closed = true
	diff(t, polygon(Pt(0, 0), Pt(30, 0), Pt(0, 0)), f.FlattenSubpath(open))

	if got := f.FlattenSubpath(Subpath{}); got != nil {
		t.Errorf("got %v for an empty subpath", got)
	}
}

func TestFlattenBranches(t *testing.T) {
	// All curves span the chord from (0, 0) to (100, 0) and are decided
	// without subdividing.
	angle := Tolerances{DistanceTolerance: 1, ColinearityEpsilon: 0.5, AngleEpsilon: 0.01, AngleTolerance: 0.1, RecursionLimit: 8}
	cusp := Tolerances{DistanceTolerance: 1, ColinearityEpsilon: 0.5, AngleEpsilon: 0.0001, AngleTolerance: 0.001, CuspLimit: 0.005, RecursionLimit: 8}
	noAngle := Tolerances{DistanceTolerance: 1, ColinearityEpsilon: 0.5, AngleEpsilon: 0.01, RecursionLimit: 8}

	p2Sig := CubicBez{Pt(0, 0), Pt(30, 0.25), Pt(60, 0), Pt(100, 0)}
	p3Sig := CubicBez{Pt(0, 0), Pt(40, 0), Pt(70, 0.25), Pt(100, 0)}
	regular := CubicBez{Pt(0, 0), Pt(30, 0.25), Pt(70, 0.25), Pt(100, 0)}
	// The first two control polygon edges are parallel, the last one turns.
	lateTurn := CubicBez{Pt(0, 0), Pt(30, 0.25), Pt(60, 0.5), Pt(100, 0)}

	tests := []struct {
		name string
		tol  Tolerances
		c    CubicBez
		want []Point
	}{
		{"P2 significant, no angle check", noAngle, p2Sig, []Point{Pt(0, 0), Pt(45, 0.125), Pt(100, 0)}},
		{"P2 significant, small angle", angle, p2Sig, []Point{Pt(0, 0), Pt(30, 0.25), Pt(60, 0), Pt(100, 0)}},
		{"P2 significant, cusp", cusp, p2Sig, []Point{Pt(0, 0), Pt(30, 0.25), Pt(100, 0)}},
		{"P3 significant, no angle check", noAngle, p3Sig, []Point{Pt(0, 0), Pt(55, 0.125), Pt(100, 0)}},
		{"P3 significant, small angle", angle, p3Sig, []Point{Pt(0, 0), Pt(40, 0), Pt(70, 0.25), Pt(100, 0)}},
		{"P3 significant, cusp", cusp, p3Sig, []Point{Pt(0, 0), Pt(70, 0.25), Pt(100, 0)}},
		{"regular, no angle check", noAngle, regular, []Point{Pt(0, 0), Pt(50, 0.25), Pt(100, 0)}},
		{"regular, small angle", angle, regular, []Point{Pt(0, 0), Pt(50, 0.25), Pt(100, 0)}},
		{"regular, cusp at P2", cusp, regular, []Point{Pt(0, 0), Pt(30, 0.25), Pt(100, 0)}},
		{"regular, cusp at P3", cusp, lateTurn, []Point{Pt(0, 0), Pt(60, 0.5), Pt(100, 0)}},
		{
			"collinear, control point beyond the end",
			DefaultTolerances(),
			CubicBez{Pt(0, 0), Pt(100.2, 0), Pt(50, 0), Pt(100, 0)},
			[]Point{Pt(0, 0), Pt(100.2, 0), Pt(100, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAdaptiveFlattener(1, &tt.tol).Flatten(tt.c, nil)
			diff(t, tt.want, got)
		})
	}
}
