// Package flatmesh converts shapes made of cubic Bézier curves into polygons
// and triangles, and keeps triangulations of deforming shapes around for
// reuse.
//
// # Flattening
//
// [AdaptiveFlattener] subdivides curves until each piece is flat enough for
// the configured [Tolerances], producing fixed-point [PolygonPath] values.
// [FixedFlattener] subdivides every curve to the same depth into a
// preallocated [Vertices] buffer, which is what per-frame vertex animation
// needs: the number and order of vertices never change.
//
// # Outlines
//
// [Builder] turns a [Shape] into the outlines of its fill and its stroke.
// Strokes are optionally dashed (see [Dash]) and expanded by an [Offsetter],
// [Stroker] by default. Polygon booleans are delegated to a [Clipper]
// supplied by the caller.
//
// # Triangulation cache
//
// A triangulation stays valid as vertices move as long as every part of its
// convex decomposition stays convex and keeps its winding. [Partition] checks
// exactly that, and [TriangleCache] holds several triangulations of a shape,
// finding one that is valid for the current frame. [Mesh] ties the two
// together with a [Triangulator].
//
// # Coordinate system
//
// Coordinates are y-up. Convex parts of a [Partition] wind clockwise.
package flatmesh
