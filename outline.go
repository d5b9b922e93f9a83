package flatmesh

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFillRule is returned by [Builder.Build] for fill rules
	// other than NonZero and EvenOdd. The shape produces no tessellation.
	ErrUnsupportedFillRule = errors.New("flatmesh: unsupported fill rule")
	// ErrStrokeTooThin is recorded in [Tessellation.Warnings] when a stroke's
	// scaled half width is below one resolution unit. The stroke is offset by
	// zero instead.
	ErrStrokeTooThin = errors.New("flatmesh: stroke narrower than the coordinate resolution")
	// ErrNonFinite is returned by [Builder.Build] for shapes with NaN or
	// infinite coordinates.
	ErrNonFinite = errors.New("flatmesh: shape has non-finite coordinates")
)

// FillRule determines which regions of self-overlapping paths are inside.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

// StrokeStyle describes the visual style of a stroke.
type StrokeStyle struct {
	// Width of the stroke, in shape coordinates.
	Width float64
	// Style for connecting segments of the stroke.
	Join Join
	// Limit for miter joins.
	MiterLimit float64
	// Style for capping the ends of open subpaths.
	Cap Cap
	Dash DashPattern
}

// Shape is the outline of a single filled and optionally stroked shape.
type Shape struct {
	Subpaths []Subpath
	FillRule FillRule
	// Stroke is nil for shapes without stroke paint.
	Stroke *StrokeStyle
}

// Clipper performs polygon boolean operations on fixed-point paths.
type Clipper interface {
	// Simplify resolves self-intersections and overlaps of paths under the
	// given fill rule.
	Simplify(paths []PolygonPath, rule FillRule) []PolygonPath
	// Difference subtracts clip, filled with the non-zero rule, from subject.
	Difference(subject, clip []PolygonPath) []PolygonPath
}

// Tessellation is the polygonal outline of a shape.
type Tessellation struct {
	// Fill regions, with the stroke region subtracted.
	Fill []PolygonPath
	// Stroke outlines, to be filled with the non-zero rule.
	Stroke []PolygonPath
	// Recoverable problems encountered while building.
	Warnings []error
}

// Builder converts shapes into polygon outlines.
type Builder struct {
	// Flattener for curves. Its scale maps shape coordinates to resolution
	// units. If nil, a flattener with scale 1 and default tolerances is used.
	Flattener *AdaptiveFlattener
	// Clipper for simplifying fills and subtracting strokes. If nil, fills
	// are passed through unmodified.
	Clipper Clipper
	// Offsetter for building stroke outlines. If nil, a [Stroker] sharing
	// the builder's flattener is used.
	Offsetter Offsetter
}

// NewBuilder returns a builder with the default [Stroker] and no [Clipper].
func NewBuilder(scale float64, tol *Tolerances) *Builder {
	f := NewAdaptiveFlattener(scale, tol)
	return &Builder{
		Flattener: f,
		Offsetter: &Stroker{Flattener: f},
	}
}

// Build flattens all subpaths of shape and, if the shape is stroked, computes
// the stroke outline and removes it from the fill.
func (b *Builder) Build(shape Shape) (*Tessellation, error) {
	f := b.Flattener
	if f == nil {
		f = NewAdaptiveFlattener(1, nil)
	}

	for i, sp := range shape.Subpaths {
		if !sp.finite() {
			return nil, fmt.Errorf("%w: subpath %d", ErrNonFinite, i)
		}
	}

	t := &Tessellation{}
	closed := true
	for _, sp := range shape.Subpaths {
		t.Fill = append(t.Fill, f.FlattenSubpath(sp))
		closed = closed && sp.Closed
	}

	switch shape.FillRule {
	case NonZero, EvenOdd:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFillRule, shape.FillRule)
	}

	style := shape.Stroke
	hasStroke := style != nil && style.Width > 0

	var lines []PolygonPath
	if hasStroke {
		lines = Dash(t.Fill, style.Dash)
	}

	if b.Clipper != nil {
		t.Fill = b.Clipper.Simplify(t.Fill, shape.FillRule)
	}

	if !hasStroke {
		return t, nil
	}

	offset := style.Width * f.Scale() * 0.5
	delta := toFixed(offset)
	if offset < 1 {
		// Offsets below one unit produce artefacts at the fixed-point
		// resolution.
		delta = 0
		Logger().Warn("ignoring stroke narrower than two resolution units; increase the scale",
			"width", style.Width,
			"scale", f.Scale())
		t.Warnings = append(t.Warnings, ErrStrokeTooThin)
	}

	offsetter := b.Offsetter
	if offsetter == nil {
		offsetter = &Stroker{Flattener: f}
	}
	opts := OffsetOptions{
		Join:       style.Join,
		MiterLimit: style.MiterLimit,
		Cap:        style.Cap,
		Closed:     closed && !style.Dash.IsDashed(),
	}
	t.Stroke = offsetter.Offset(lines, opts, delta)

	if b.Clipper != nil {
		t.Fill = b.Clipper.Difference(t.Fill, t.Stroke)
	}
	return t, nil
}
