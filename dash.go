package flatmesh

import "math"

// DashPattern describes alternating on and off lengths, starting with "on".
type DashPattern struct {
	Array  []float64
	Offset float64
}

// Length returns the total length of one cycle of the pattern.
func (d DashPattern) Length() float64 {
	var total float64
	for _, l := range d.Array {
		total += math.Abs(l)
	}
	return total
}

// IsDashed reports whether the pattern produces any gaps.
func (d DashPattern) IsDashed() bool {
	return len(d.Array) > 0 && d.Length() > 0
}

const dashEpsilon = 1e-9

type dashWalker struct {
	dashes   []float64
	dashIdx  int
	isActive bool
	// Length left in the current dash entry.
	remaining float64

	run PolygonPath
	out []PolygonPath
}

// start positions the walker at the pattern's offset.
func (dw *dashWalker) start(offset float64) {
	total := 0.0
	for _, l := range dw.dashes {
		total += l
	}
	offset = math.Mod(offset, total)
	if offset < 0 {
		offset += total
	}
	dw.dashIdx = 0
	dw.isActive = true
	dw.remaining = dw.dashes[0] - offset
	// Find place in dashes array for initial offset.
	for dw.remaining < 0 {
		dw.dashIdx = (dw.dashIdx + 1) % len(dw.dashes)
		dw.remaining += dw.dashes[dw.dashIdx]
		dw.isActive = !dw.isActive
	}
}

func (dw *dashWalker) toggle() {
	dw.isActive = !dw.isActive
	dw.dashIdx = (dw.dashIdx + 1) % len(dw.dashes)
	dw.remaining = dw.dashes[dw.dashIdx]
}

func (dw *dashWalker) add(pt Point) {
	q := pt.Fixed()
	if n := len(dw.run); n > 0 && dw.run[n-1] == q {
		return
	}
	dw.run = append(dw.run, q)
}

func (dw *dashWalker) flush() {
	if len(dw.run) >= 2 {
		dw.out = append(dw.out, dw.run)
	}
	dw.run = nil
}

func (dw *dashWalker) walk(path PolygonPath) {
	pts := path.Points()
	if dw.isActive {
		dw.add(pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > dw.remaining+dashEpsilon {
			pos += dw.remaining
			pt := a.Lerp(b, pos/segLen)
			dw.add(pt)
			if dw.isActive {
				dw.flush()
			}
			dw.toggle()
		}
		dw.remaining -= segLen - pos
		if dw.isActive {
			dw.add(b)
		}
	}
	if dw.isActive {
		dw.flush()
	}
	dw.run = nil
}

// Dash splits paths into the runs that are "on" according to pattern. Paths
// with fewer than two points are skipped. Each path starts at the pattern's
// offset. If the pattern has no positive length, paths are returned as is.
func Dash(paths []PolygonPath, pattern DashPattern) []PolygonPath {
	if !pattern.IsDashed() {
		return paths
	}
	dashes := make([]float64, len(pattern.Array))
	for i, l := range pattern.Array {
		dashes[i] = math.Abs(l)
	}
	dw := &dashWalker{dashes: dashes}
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		dw.start(pattern.Offset)
		dw.walk(path)
	}
	return dw.out
}
