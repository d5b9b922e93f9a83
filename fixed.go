package flatmesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// FixedFlattener splits every cubic into exactly 2^Depth line segments,
// regardless of its curvature. The resulting vertex count depends only on the
// number of curves, so meshes built from it keep their topology while the
// control points move.
type FixedFlattener struct {
	// Number of halvings per curve. Must not be negative.
	Depth int
	// If non-zero, each emitted vertex is displaced by Offset perpendicular to
	// the chord of the sub-curve it ends.
	Offset float32
}

// Size returns the number of vertices written by
// [FixedFlattener.FlattenSubpath] for a subpath with curveCount curves.
// Size panics if depth is negative.
func Size(curveCount, depth int) int {
	return 1 + curveCount*leafCount(depth)
}

func leafCount(depth int) int {
	if depth < 0 {
		panic(fmt.Sprintf("flatmesh: negative subdivision depth %d", depth))
	}
	return 1 << depth
}

// Flatten writes exactly 2^Depth vertices, the end points of c's sub-curves,
// to dst and returns the number of vertices written. The start point of c is
// not written. Flatten panics if dst is too short or Depth is negative.
func (f FixedFlattener) Flatten(dst Vertices, c CubicBez) int {
	n := leafCount(f.Depth)
	if len(dst) < n {
		panic(fmt.Sprintf("flatmesh: vertex range of length %d cannot hold %d vertices", len(dst), n))
	}
	return f.flatten(dst, 0, 0, c)
}

func (f FixedFlattener) flatten(dst Vertices, index, level int, c CubicBez) int {
	if level >= f.Depth {
		v := &dst[index]
		x1, y1 := float32(c.P0.X), float32(c.P0.Y)
		x4, y4 := float32(c.P3.X), float32(c.P3.Y)
		v.X, v.Y = x4, y4
		if f.Offset != 0 {
			dx := x4 - x1
			dy := y4 - y1
			if d := math32.Sqrt(dx*dx + dy*dy); d > 0 {
				s := f.Offset / d
				v.X = x4 - s*dy
				v.Y = y4 + s*dx
			}
		}
		return index + 1
	}
	c0, c1 := c.Subdivide()
	index = f.flatten(dst, index, level+1, c0)
	return f.flatten(dst, index, level+1, c1)
}

// FlattenSubpath writes the start point of sp followed by 2^Depth vertices per
// curve to dst and returns the number of vertices written, which is always
// Size(sp.NumCurves(), f.Depth). dst must have been sized accordingly.
func (f FixedFlattener) FlattenSubpath(dst Vertices, sp Subpath) int {
	if len(sp.Points) == 0 {
		return 0
	}
	n := Size(sp.NumCurves(), f.Depth)
	dst = dst[:n]
	dst[0] = sp.Points[0].Vertex()

	per := leafCount(f.Depth)
	v := 1
	for c := range sp.Curves() {
		v0 := v
		v += f.Flatten(dst[v:v+per], c)
		if v-v0 != per {
			panic("unreachable")
		}
	}
	if v != n {
		panic("unreachable")
	}
	return n
}
