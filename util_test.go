package flatmesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// fp returns the fixed-point representation of (x, y).
func fp(x, y float64) fixed.Point26_6 {
	return Pt(x, y).Fixed()
}

func polygon(pts ...Point) PolygonPath {
	out := make(PolygonPath, len(pts))
	for i, pt := range pts {
		out[i] = pt.Fixed()
	}
	return out
}

// square returns a closed subpath tracing the square from (0, 0) to (size,
// size) counterclockwise, made of straight cubics.
func square(size float64) Subpath {
	s := size
	return Subpath{
		Points: []Point{
			Pt(0, 0), Pt(s/3, 0), Pt(2*s/3, 0), Pt(s, 0),
			Pt(s, s/3), Pt(s, 2*s/3), Pt(s, s),
			Pt(2*s/3, s), Pt(s/3, s), Pt(0, s),
			Pt(0, 2*s/3), Pt(0, s/3), Pt(0, 0),
		},
		Closed: true,
	}
}
