package flatmesh

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrAllocation is returned when triangle index storage cannot grow any
// further. It is distinct from producing no geometry and from cache misses.
var ErrAllocation = errors.New("flatmesh: triangle storage exhausted")

// Triangles is a flat list of vertex index triples.
type Triangles []uint16

// Count returns the number of triangles.
func (t Triangles) Count() int {
	return len(t) / 3
}

// At returns the indices of the i-th triangle.
func (t Triangles) At(i int) (uint16, uint16, uint16) {
	return t[i*3], t[i*3+1], t[i*3+2]
}

// TriangleStore accumulates triangle indices, growing its storage in powers of
// two.
type TriangleStore struct {
	// Maximum number of indices the store may hold. 0 means no limit.
	MaxIndices int

	indices []uint16
}

// Allocate reserves room for n more triangles and returns the slice of 3n
// indices to fill in. If final is set, no room is reserved for later
// allocations.
func (s *TriangleStore) Allocate(n int, final bool) ([]uint16, error) {
	offset := len(s.indices)
	size := offset + 3*n
	if s.MaxIndices > 0 && size > s.MaxIndices {
		return nil, fmt.Errorf("%w: %d indices exceed the limit of %d", ErrAllocation, size, s.MaxIndices)
	}
	if size > cap(s.indices) {
		count := size
		if !final {
			count = nextPow2(size)
		}
		grown := make([]uint16, offset, count)
		copy(grown, s.indices)
		s.indices = grown
	}
	s.indices = s.indices[:size]
	return s.indices[offset:size], nil
}

// Triangles returns the indices stored so far.
func (s *TriangleStore) Triangles() Triangles {
	return Triangles(s.indices)
}

// Reset empties the store, keeping its storage.
func (s *TriangleStore) Reset() {
	s.indices = s.indices[:0]
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
