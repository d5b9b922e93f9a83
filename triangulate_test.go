package flatmesh

import (
	"errors"
	"math"
	"testing"
)

func TestNewMesh(t *testing.T) {
	polys := []PolygonPath{
		polygon(Pt(0, 0), Pt(30, 0), Pt(30, 30), Pt(30, 30), Pt(0, 30), Pt(0, 0)),
		polygon(Pt(5, 5), Pt(6, 6)),
		polygon(Pt(40, 0), Pt(50, 0), Pt(45, 10)),
	}
	v, outlines, err := NewMesh(polys)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Vertices{{0, 0}, {30, 0}, {30, 30}, {0, 30}, {40, 0}, {50, 0}, {45, 10}}, v)
	diff(t, [][]uint16{{0, 1, 2, 3}, {4, 5, 6}}, outlines)
}

func TestNewMeshTooManyVertices(t *testing.T) {
	pts := make([]Point, math.MaxUint16+2)
	for i := range pts {
		pts[i] = Pt(float64(i), float64(i%2))
	}
	_, _, err := NewMesh([]PolygonPath{polygon(pts...)})
	if !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("got error %v, want %v", err, ErrTooManyVertices)
	}
}

func triangleArea(v Vertices, tris Triangles) float64 {
	var area float64
	for i := range tris.Count() {
		a, b, c := tris.At(i)
		area += math.Abs(float64(signedArea(v, []uint16{a, b, c}))) / 2
	}
	return area
}

func checkTriangulation(t *testing.T, v Vertices, tris Triangles, convex [][]uint16, area float64) {
	t.Helper()
	if got := triangleArea(v, tris); math.Abs(got-area) > 1e-6 {
		t.Errorf("triangles cover an area of %g, want %g", got, area)
	}
	if len(convex) != tris.Count() {
		t.Errorf("got %d parts for %d triangles", len(convex), tris.Count())
	}
	for _, part := range convex {
		if a := signedArea(v, part); a > 0 {
			t.Errorf("part %v winds counterclockwise", part)
		}
	}
	if !NewPartition(convex).Check(v) {
		t.Error("partition of a fresh triangulation is invalid")
	}
}

func TestEarClipper(t *testing.T) {
	tests := []struct {
		name string
		v    Vertices
		area float64
		// Expected number of triangles, or 0 if collinear vertices may be
		// skipped.
		count int
	}{
		{"counterclockwise square", Vertices{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, 16, 2},
		{"clockwise square", Vertices{{0, 0}, {0, 4}, {4, 4}, {4, 0}}, 16, 2},
		{"L shape", Vertices{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}, 3, 4},
		{"comb", Vertices{{0, 0}, {5, 0}, {5, 3}, {4, 3}, {4, 1}, {3, 1}, {3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3}}, 11, 10},
		{"collinear edges", Vertices{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 1}, {2, 1}, {1, 1}, {0, 1}}, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outline := make([]uint16, len(tt.v))
			for i := range outline {
				outline[i] = uint16(i)
			}
			tris, convex, err := EarClipper{}.Triangulate(tt.v, [][]uint16{outline})
			if err != nil {
				t.Fatal(err)
			}
			if tt.count != 0 && tris.Count() != tt.count {
				t.Errorf("got %d triangles, want %d", tris.Count(), tt.count)
			}
			checkTriangulation(t, tt.v, tris, convex, tt.area)
		})
	}
}

func TestEarClipperFixedDepthOutline(t *testing.T) {
	f := FixedFlattener{Depth: 2}
	sp := square(3)
	v := make(Vertices, Size(sp.NumCurves(), f.Depth))
	f.FlattenSubpath(v, sp)
	// The last vertex repeats the first.
	v = v[:len(v)-1]
	outline := make([]uint16, len(v))
	for i := range outline {
		outline[i] = uint16(i)
	}
	tris, convex, err := EarClipper{}.Triangulate(v, [][]uint16{outline})
	if err != nil {
		t.Fatal(err)
	}
	checkTriangulation(t, v, tris, convex, 9)
}

func TestEarClipperHoles(t *testing.T) {
	v := Vertices{
		// Counterclockwise outer square.
		{0, 0}, {4, 0}, {4, 4}, {0, 4},
		// Clockwise hole inside it.
		{1, 1}, {1, 3}, {3, 3}, {3, 1},
		// Clockwise square outside of every other outline.
		{10, 10}, {10, 11}, {11, 11}, {11, 10},
	}
	outlines := [][]uint16{{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}}
	tris, convex, err := EarClipper{}.Triangulate(v, outlines)
	if err != nil {
		t.Fatal(err)
	}
	checkTriangulation(t, v, tris, convex, 16-4+1)

	polys := groupHoles(v, outlines)
	if len(polys) != 2 {
		t.Fatalf("got %d polygons, want 2", len(polys))
	}
	diff(t, [][]uint16{{4, 5, 6, 7}}, polys[0].holes)
	if len(polys[1].holes) != 0 {
		t.Errorf("unexpected holes %v", polys[1].holes)
	}
}

func TestEarClipperAllocation(t *testing.T) {
	v := Vertices{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	_, _, err := EarClipper{MaxIndices: 3}.Triangulate(v, [][]uint16{{0, 1, 2, 3}})
	if !errors.Is(err, ErrAllocation) {
		t.Errorf("got error %v, want %v", err, ErrAllocation)
	}
}

func TestTriangleStore(t *testing.T) {
	var s TriangleStore
	dst, err := s.Allocate(1, false)
	if err != nil {
		t.Fatal(err)
	}
	copy(dst, []uint16{0, 1, 2})
	if len(s.indices) != 3 || cap(s.indices) != 4 {
		t.Errorf("got len %d and cap %d, want 3 and 4", len(s.indices), cap(s.indices))
	}

	dst, err = s.Allocate(2, false)
	if err != nil {
		t.Fatal(err)
	}
	copy(dst, []uint16{3, 4, 5, 6, 7, 8})
	if len(s.indices) != 9 || cap(s.indices) != 16 {
		t.Errorf("got len %d and cap %d, want 9 and 16", len(s.indices), cap(s.indices))
	}
	diff(t, Triangles{0, 1, 2, 3, 4, 5, 6, 7, 8}, s.Triangles())

	var exact TriangleStore
	if _, err := exact.Allocate(3, true); err != nil {
		t.Fatal(err)
	}
	if cap(exact.indices) != 9 {
		t.Errorf("got cap %d for final allocation, want 9", cap(exact.indices))
	}

	limited := TriangleStore{MaxIndices: 6}
	if _, err := limited.Allocate(2, false); err != nil {
		t.Fatal(err)
	}
	if _, err := limited.Allocate(1, false); !errors.Is(err, ErrAllocation) {
		t.Errorf("got error %v, want %v", err, ErrAllocation)
	}

	s.Reset()
	if n := s.Triangles().Count(); n != 0 {
		t.Errorf("got %d triangles after reset", n)
	}
}
