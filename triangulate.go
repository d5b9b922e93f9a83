package flatmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/rclancey/earcut"
)

var (
	ErrTooManyVertices = errors.New("flatmesh: too many vertices for 16-bit indices")
	// ErrTriangulation is returned when outlines cannot be triangulated.
	ErrTriangulation = errors.New("flatmesh: cannot triangulate outline")
)

// Triangulator decomposes polygon outlines, given as vertex indices into v,
// into triangles. It also returns the convex parts that the triangles were
// built from, for constructing a [Partition]. Every convex part must wind
// clockwise in a y-up coordinate system.
type Triangulator interface {
	Triangulate(v Vertices, outlines [][]uint16) (Triangles, [][]uint16, error)
}

// NewMesh converts polygon paths into a vertex buffer and one index outline
// per polygon. Closing points and consecutive duplicates are dropped, as are
// polygons with fewer than three distinct points.
func NewMesh(polys []PolygonPath) (Vertices, [][]uint16, error) {
	var v Vertices
	var outlines [][]uint16
	for _, poly := range polys {
		pts := poly
		for len(pts) > 1 && pts[len(pts)-1] == pts[0] {
			pts = pts[:len(pts)-1]
		}
		var outline []uint16
		for i, q := range pts {
			if i > 0 && q == pts[i-1] {
				continue
			}
			if len(v) > math.MaxUint16 {
				return nil, nil, fmt.Errorf("%w: more than %d vertices", ErrTooManyVertices, math.MaxUint16+1)
			}
			outline = append(outline, uint16(len(v)))
			v = append(v, PointFromFixed(q).Vertex())
		}
		if len(outline) < 3 {
			v = v[:len(v)-len(outline)]
			continue
		}
		outlines = append(outlines, outline)
	}
	return v, outlines, nil
}

// EarClipper triangulates polygons with the earcut algorithm. Each triangle is
// reported as its own convex part.
//
// Outlines winding opposite to the largest outline are holes. A hole is
// subtracted from the smallest outline that contains its first vertex; holes
// outside of every other outline are triangulated on their own.
type EarClipper struct {
	// Maximum number of indices in the result. 0 means no limit.
	MaxIndices int
}

var _ Triangulator = EarClipper{}

// polygonWithHoles is an outer outline together with the holes inside it.
type polygonWithHoles struct {
	outer []uint16
	holes [][]uint16
}

func (e EarClipper) Triangulate(v Vertices, outlines [][]uint16) (Triangles, [][]uint16, error) {
	store := TriangleStore{MaxIndices: e.MaxIndices}
	polys := groupHoles(v, outlines)
	for i, poly := range polys {
		if err := earClip(v, poly, &store, i == len(polys)-1); err != nil {
			return nil, nil, err
		}
	}
	tris := store.Triangles()
	convex := make([][]uint16, 0, tris.Count())
	for i := range tris.Count() {
		a, b, c := tris.At(i)
		convex = append(convex, []uint16{a, b, c})
	}
	return tris, convex, nil
}

func earClip(v Vertices, poly polygonWithHoles, store *TriangleStore, final bool) error {
	n := len(poly.outer)
	for _, h := range poly.holes {
		n += len(h)
	}
	// local maps earcut's vertex numbers back to indices into v.
	local := make([]uint16, 0, n)
	coords := make([]float64, 0, 2*n)
	var holeIndices []int
	add := func(outline []uint16) {
		for _, idx := range outline {
			local = append(local, idx)
			coords = append(coords, float64(v[idx].X), float64(v[idx].Y))
		}
	}
	add(poly.outer)
	for _, h := range poly.holes {
		holeIndices = append(holeIndices, len(local))
		add(h)
	}

	indices, err := earcut.Earcut(coords, holeIndices, 2)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTriangulation, err)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: got %d indices", ErrTriangulation, len(indices))
	}
	dst, err := store.Allocate(len(indices)/3, final)
	if err != nil {
		return err
	}
	for i := 0; i < len(indices); i += 3 {
		a, b, c := local[indices[i]], local[indices[i+1]], local[indices[i+2]]
		if cross(v[a], v[b], v[c]) > 0 {
			b, c = c, b
		}
		dst[i], dst[i+1], dst[i+2] = a, b, c
	}
	return nil
}

// groupHoles assigns every hole to the smallest outer outline containing it.
func groupHoles(v Vertices, outlines [][]uint16) []polygonWithHoles {
	var valid [][]uint16
	var areas []float32
	var largest float32
	for _, outline := range outlines {
		if len(outline) < 3 {
			continue
		}
		a := signedArea(v, outline)
		valid = append(valid, outline)
		areas = append(areas, a)
		if math32.Abs(a) > math32.Abs(largest) {
			largest = a
		}
	}

	var polys []polygonWithHoles
	var holes []int
	for i, outline := range valid {
		if areas[i]*largest < 0 {
			holes = append(holes, i)
			continue
		}
		polys = append(polys, polygonWithHoles{outer: outline})
	}
	outerAreas := make([]float32, len(polys))
	for i, p := range polys {
		outerAreas[i] = math32.Abs(signedArea(v, p.outer))
	}

	for _, h := range holes {
		hole := valid[h]
		best := -1
		for i, p := range polys {
			if !contains(v, p.outer, v[hole[0]]) {
				continue
			}
			if best < 0 || outerAreas[i] < outerAreas[best] {
				best = i
			}
		}
		if best < 0 {
			polys = append(polys, polygonWithHoles{outer: hole})
			outerAreas = append(outerAreas, math32.Abs(areas[h]))
			continue
		}
		polys[best].holes = append(polys[best].holes, hole)
	}
	return polys
}

// contains reports whether p lies inside the outline, using the even-odd rule.
func contains(v Vertices, outline []uint16, p Vertex) bool {
	in := false
	n := len(outline)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := v[outline[i]], v[outline[j]]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
