package flatmesh

import "math"

// Triangulation is a triangle list together with the convex decomposition
// that tells whether the triangles are still valid for moved vertices.
type Triangulation struct {
	Triangles Triangles
	// A nil Partition is never valid.
	Partition *Partition
	// Number of frames in which this triangulation was used.
	UseCount uint64
	// Keyframe triangulations are never evicted.
	Keyframe bool
}

// NewTriangulation returns a triangulation for triangles with the given
// convex parts.
func NewTriangulation(tris Triangles, convex [][]uint16) *Triangulation {
	return &Triangulation{
		Triangles: tris,
		Partition: NewPartition(convex),
	}
}

// TriangleCache holds several triangulations of one shape, for example the
// triangulations of different animation frames, and finds one that is valid
// for the current vertex positions.
//
// A TriangleCache is not safe for concurrent use, and vertices must not be
// modified during a call to Check.
type TriangleCache struct {
	// Maximum number of entries. Add evicts entries to stay below it. 0 means
	// no limit.
	Capacity int

	triangulations []*Triangulation
	current        int
}

func NewTriangleCache(capacity int) *TriangleCache {
	return &TriangleCache{Capacity: capacity}
}

func (c *TriangleCache) Len() int {
	return len(c.triangulations)
}

// Current returns the entry that was last found valid, or nil if the cache is
// empty.
func (c *TriangleCache) Current() *Triangulation {
	if len(c.triangulations) == 0 {
		return nil
	}
	return c.triangulations[c.current]
}

// Add inserts a triangulation and makes it the current entry. If the cache is
// full, entries are evicted first.
func (c *TriangleCache) Add(t *Triangulation) {
	if c.Capacity > 0 {
		for len(c.triangulations) >= c.Capacity {
			if !c.Evict() {
				break
			}
		}
	}
	c.triangulations = append(c.triangulations, t)
	c.current = len(c.triangulations) - 1
}

// Clear removes all entries, including keyframes.
func (c *TriangleCache) Clear() {
	clear(c.triangulations)
	c.triangulations = c.triangulations[:0]
	c.current = 0
}

// Evict removes the least used entry that is not a keyframe. It reports
// whether an entry was removed.
func (c *TriangleCache) Evict() bool {
	minCount := uint64(math.MaxUint64)
	minIndex := -1
	for i, t := range c.triangulations {
		if !t.Keyframe && t.UseCount < minCount {
			minCount = t.UseCount
			minIndex = i
		}
	}
	if minIndex < 0 {
		return false
	}

	Logger().Debug("evicting triangulation",
		"index", minIndex,
		"useCount", minCount,
		"remaining", len(c.triangulations)-1)
	c.triangulations[minIndex] = nil
	c.triangulations = append(c.triangulations[:minIndex], c.triangulations[minIndex+1:]...)
	// current may now refer to the entry that followed the evicted one.
	c.current = max(0, min(c.current, len(c.triangulations)-1))
	return true
}

// Check looks for an entry that is valid for the vertex positions in v. The
// current entry is tried first, then the others in order of increasing
// distance from it, alternating between later and earlier entries. A match
// is moved one slot toward the current entry and becomes current.
//
// valid is false if no entry matches; the caller then has to triangulate
// anew and Add the result. changed reports whether the current entry is a
// different one than before.
func (c *TriangleCache) Check(v Vertices) (valid, changed bool) {
	n := len(c.triangulations)
	if n == 0 {
		return false, false
	}

	if t := c.triangulations[c.current]; t.Partition.Check(v) {
		t.UseCount++
		return true, false
	}

	k := max(c.current, n-c.current)
	for i := 1; i <= k; i++ {
		if c.current+i < n {
			forward := c.current + i
			if c.triangulations[forward].Partition.Check(v) {
				c.moveTo(forward, c.current+1)
				return true, true
			}
		}
		if c.current-i >= 0 {
			backward := c.current - i
			if c.triangulations[backward].Partition.Check(v) {
				c.moveTo(backward, c.current-1)
				return true, true
			}
		}
	}

	Logger().Debug("no cached triangulation matches", "entries", n)
	return false, false
}

func (c *TriangleCache) moveTo(from, to int) {
	Logger().Debug("switching cached triangulation",
		"from", c.current,
		"found", from,
		"to", to)
	c.triangulations[to], c.triangulations[from] = c.triangulations[from], c.triangulations[to]
	c.current = to
	c.triangulations[to].UseCount++
}
