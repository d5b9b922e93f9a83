package flatmesh

// PartitionEpsilon is the largest cross product a corner of a convex part
// may have. Larger values indicate a reflex corner or reversed winding.
const PartitionEpsilon = 0.1

type part struct {
	outline []uint16
	// Index into outline where the last check failed.
	fail int
}

// Partition is a convex decomposition of a polygon, recorded as outlines of
// vertex indices. Every part winds clockwise in a y-up coordinate system,
// that is, all of its corners have a non-positive cross product.
type Partition struct {
	parts []part
}

// NewPartition returns a partition of the given convex outlines.
func NewPartition(convex [][]uint16) *Partition {
	p := &Partition{parts: make([]part, 0, len(convex))}
	for _, outline := range convex {
		p.parts = append(p.parts, part{outline: outline})
	}
	return p
}

// Empty reports whether the partition has no parts. A nil partition is
// empty.
func (p *Partition) Empty() bool {
	return p.Len() == 0
}

func (p *Partition) Len() int {
	if p == nil {
		return 0
	}
	return len(p.parts)
}

// nextDistinct returns the index of the next vertex after i in outline whose
// position differs from that of outline[i], wrapping around. If all vertices
// coincide, it returns i.
func nextDistinct(v Vertices, outline []uint16, i int) int {
	n := len(outline)
	p := v[outline[i]]
	j := i
	for range n - 1 {
		j++
		if j == n {
			j = 0
		}
		if v[outline[j]] != p {
			return j
		}
	}
	return i
}

// Check reports whether every part is still convex and wound correctly for
// the vertex positions in v. An empty or nil partition is never valid.
//
// Check remembers where a part failed and moves failing parts to the front,
// so that repeated checks of an invalid partition fail early.
func (p *Partition) Check(v Vertices) bool {
	if p.Empty() {
		return false
	}

	for j := range p.parts {
		pt := &p.parts[j]
		outline := pt.outline
		n := len(outline)
		if n == 0 {
			continue
		}

		i := pt.fail
		k := 0
		for k < n {
			i1 := nextDistinct(v, outline, i)
			i2 := nextDistinct(v, outline, i1)
			if i1 == i {
				// All vertices coincide.
				break
			}
			if cross(v[outline[i]], v[outline[i1]], v[outline[i2]]) > PartitionEpsilon {
				pt.fail = i
				if j != 0 {
					p.parts[0], p.parts[j] = p.parts[j], p.parts[0]
				}
				return false
			}
			if i1 > i {
				k += i1 - i
			} else {
				k += n - i + i1
			}
			i = i1
		}
	}
	return true
}
