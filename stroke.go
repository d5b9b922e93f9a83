package flatmesh

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Join defines the connection between two segments of a stroke.
type Join int

const (
	// A straight line connecting the segments.
	BevelJoin Join = iota
	// The segments are extended to their natural intersection point.
	MiterJoin
	// An arc between the segments.
	RoundJoin
)

// Cap defines the shape to be drawn at the ends of a stroke.
type Cap int

const (
	// Flat cap.
	ButtCap Cap = iota
	// Square cap with dimensions equal to half the stroke width.
	SquareCap
	// Rounded cap with radius equal to half the stroke width.
	RoundCap
)

// OffsetOptions configures how polylines are expanded into outlines.
type OffsetOptions struct {
	Join       Join
	MiterLimit float64
	Cap        Cap
	// If set, closed paths are treated as rings without caps. Otherwise every
	// path gets caps at both ends.
	Closed bool
}

// Offsetter expands polylines into closed outlines that extend delta on each
// side of the lines.
type Offsetter interface {
	Offset(paths []PolygonPath, opts OffsetOptions, delta fixed.Int26_6) []PolygonPath
}

var _ Offsetter = (*Stroker)(nil)

// Stroker is the default [Offsetter]. Its outlines are meant to be filled with
// the non-zero rule: rings consist of an outer and an inner polygon of
// opposite orientation, and outlines may overlap themselves at sharp turns.
type Stroker struct {
	// Flattener used for round joins and caps. If nil, default tolerances
	// are used.
	Flattener *AdaptiveFlattener
}

// Below this deviation, in resolution units, joins are omitted.
const strokeTolerance = 0.1

type strokeCtx struct {
	opts      OffsetOptions
	halfWidth float64
	flattener *AdaptiveFlattener
	// If hypot < (hypot + dot) * joinThresh omit join altogether.
	joinThresh float64

	emitted   bool
	forward   []Point
	backward  []Point
	startPt   Point
	startNorm Vec2
	startTan  Vec2
	lastPt    Point
	lastTan   Vec2

	out []PolygonPath
}

func (s *Stroker) Offset(paths []PolygonPath, opts OffsetOptions, delta fixed.Int26_6) []PolygonPath {
	if delta <= 0 {
		return nil
	}
	f := s.Flattener
	if f == nil {
		f = NewAdaptiveFlattener(1, nil)
	}
	hw := fromFixed(delta)
	ctx := &strokeCtx{
		opts:       opts,
		halfWidth:  hw,
		flattener:  f,
		joinThresh: strokeTolerance / hw,
	}
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		ctx.stroke(path.Points(), opts.Closed && path.Closed())
	}
	return ctx.out
}

func (ctx *strokeCtx) stroke(pts []Point, closed bool) {
	ctx.startPt = pts[0]
	ctx.lastPt = pts[0]
	for _, p1 := range pts[1:] {
		p0 := ctx.lastPt
		if p1 == p0 {
			continue
		}
		tangent := p1.Sub(p0)
		ctx.doJoin(tangent)
		ctx.lastTan = tangent
		ctx.doLine(tangent, p1)
	}
	if closed {
		ctx.finishClosed()
	} else {
		ctx.finish()
	}
}

func (ctx *strokeCtx) norm(tan Vec2) Vec2 {
	return tan.Turn90().Mul(ctx.halfWidth / tan.Hypot())
}

func (ctx *strokeCtx) emit(pts []Point) {
	path := polygonFromPoints(pts)
	if len(path) < 3 {
		return
	}
	if !path.Closed() {
		path = append(path, path[0])
	}
	ctx.out = append(ctx.out, path)
}

// finish caps an open path and emits it as a single outline.
func (ctx *strokeCtx) finish() {
	if !ctx.emitted {
		return
	}
	returnPt := ctx.backward[len(ctx.backward)-1]
	d := ctx.lastPt.Sub(returnPt)
	switch ctx.opts.Cap {
	case ButtCap:
		ctx.forward = append(ctx.forward, returnPt)
	case RoundCap:
		ctx.forward = ctx.arc(ctx.forward, ctx.lastPt, d, math.Pi)
	case SquareCap:
		e := d.Turn90()
		ctx.forward = append(ctx.forward,
			ctx.lastPt.Translate(d.Add(e)),
			ctx.lastPt.Translate(d.Negate().Add(e)),
			returnPt)
	}
	for i := len(ctx.backward) - 2; i >= 0; i-- {
		ctx.forward = append(ctx.forward, ctx.backward[i])
	}
	switch ctx.opts.Cap {
	case ButtCap:
	case RoundCap:
		ctx.forward = ctx.arc(ctx.forward, ctx.startPt, ctx.startNorm, math.Pi)
	case SquareCap:
		n := ctx.startNorm
		e := n.Turn90()
		ctx.forward = append(ctx.forward,
			ctx.startPt.Translate(n.Add(e)),
			ctx.startPt.Translate(n.Negate().Add(e)))
	}
	ctx.emit(ctx.forward)
	ctx.reset()
}

// finishClosed emits a closed path as an outer and an inner ring.
func (ctx *strokeCtx) finishClosed() {
	if !ctx.emitted {
		return
	}
	ctx.doJoin(ctx.startTan)
	ctx.emit(ctx.forward)
	rev := make([]Point, 0, len(ctx.backward))
	for i := len(ctx.backward) - 1; i >= 0; i-- {
		rev = append(rev, ctx.backward[i])
	}
	ctx.emit(rev)
	ctx.reset()
}

func (ctx *strokeCtx) reset() {
	ctx.emitted = false
	ctx.forward = nil
	ctx.backward = nil
}

func (ctx *strokeCtx) doJoin(tan0 Vec2) {
	norm := ctx.norm(tan0)
	p0 := ctx.lastPt
	if !ctx.emitted {
		ctx.forward = append(ctx.forward, p0.Translate(norm.Negate()))
		ctx.backward = append(ctx.backward, p0.Translate(norm))
		ctx.startTan = tan0
		ctx.startNorm = norm
		ctx.emitted = true
		return
	}

	ab := ctx.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)
	if dot > 0.0 && math.Abs(cross) < hypot*ctx.joinThresh {
		return
	}
	switch ctx.opts.Join {
	case BevelJoin:
		ctx.forward = append(ctx.forward, p0.Translate(norm.Negate()))
		ctx.backward = append(ctx.backward, p0.Translate(norm))
	case MiterJoin:
		limit := ctx.opts.MiterLimit
		if 2.0*hypot < (hypot+dot)*limit*limit {
			lastNorm := ctx.norm(ab)
			if cross > 0.0 {
				fpLast := p0.Translate(lastNorm.Negate())
				fpThis := p0.Translate(norm.Negate())
				h := ab.Cross(fpThis.Sub(fpLast)) / cross
				ctx.forward = append(ctx.forward, fpThis.Translate(cd.Mul(h).Negate()))
			} else if cross < 0.0 {
				fpLast := p0.Translate(lastNorm)
				fpThis := p0.Translate(norm)
				h := ab.Cross(fpThis.Sub(fpLast)) / cross
				ctx.backward = append(ctx.backward, fpThis.Translate(cd.Mul(h).Negate()))
			}
		}
		ctx.forward = append(ctx.forward, p0.Translate(norm.Negate()))
		ctx.backward = append(ctx.backward, p0.Translate(norm))
	case RoundJoin:
		angle := math.Atan2(cross, dot)
		lastNorm := ctx.norm(ab)
		if angle > 0.0 {
			ctx.backward = append(ctx.backward, p0.Translate(norm))
			ctx.forward = ctx.arc(ctx.forward, p0, lastNorm.Negate(), angle)
		} else {
			ctx.forward = append(ctx.forward, p0.Translate(norm.Negate()))
			ctx.backward = ctx.arc(ctx.backward, p0, lastNorm, angle)
		}
	}
}

func (ctx *strokeCtx) doLine(tangent Vec2, p1 Point) {
	norm := ctx.norm(tangent)
	ctx.forward = append(ctx.forward, p1.Translate(norm.Negate()))
	ctx.backward = append(ctx.backward, p1.Translate(norm))
	ctx.lastPt = p1
}

// arc appends a circular arc around center, starting at center+from and
// rotating counterclockwise by angle (clockwise if negative). The start point
// is not appended.
func (ctx *strokeCtx) arc(dst []Point, center Point, from Vec2, angle float64) []Point {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n == 0 {
		return dst
	}
	theta := angle / float64(n)
	k := 4.0 / 3.0 * math.Tan(theta/4)
	sin, cos := math.Sincos(theta)
	v0 := from
	for range n {
		v1 := Vec(v0.X*cos-v0.Y*sin, v0.X*sin+v0.Y*cos)
		c := CubicBez{
			center.Translate(v0),
			center.Translate(v0.Add(v0.Turn90().Mul(k))),
			center.Translate(v1.Sub(v1.Turn90().Mul(k))),
			center.Translate(v1),
		}
		dst = ctx.flattener.recursive(c, dst, 0)
		dst = append(dst, c.P3)
		v0 = v1
	}
	return dst
}
