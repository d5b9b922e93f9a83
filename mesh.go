package flatmesh

// Mesh is the triangulated interior of a shape whose vertices move from frame
// to frame while their number and order stay the same.
type Mesh struct {
	// Current vertex positions. Callers update them between frames.
	Vertices Vertices
	// Polygon outlines as indices into Vertices.
	Outlines [][]uint16

	Triangulator Triangulator
	Cache        *TriangleCache
}

// NewMeshFromPolygons builds a mesh for the given fill polygons, triangulated
// with tri and caching up to capacity triangulations.
func NewMeshFromPolygons(polys []PolygonPath, tri Triangulator, capacity int) (*Mesh, error) {
	v, outlines, err := NewMesh(polys)
	if err != nil {
		return nil, err
	}
	return &Mesh{
		Vertices:     v,
		Outlines:     outlines,
		Triangulator: tri,
		Cache:        NewTriangleCache(capacity),
	}, nil
}

// Triangles returns triangles that are valid for the current vertex
// positions, reusing a cached triangulation if possible. changed reports
// whether the triangles differ from those returned by the previous call.
// Errors come from the triangulator; a cache miss is not an error.
func (m *Mesh) Triangles() (tris Triangles, changed bool, err error) {
	if valid, changed := m.Cache.Check(m.Vertices); valid {
		return m.Cache.Current().Triangles, changed, nil
	}
	tris, convex, err := m.Triangulator.Triangulate(m.Vertices, m.Outlines)
	if err != nil {
		return nil, false, err
	}
	m.Cache.Add(NewTriangulation(tris, convex))
	return tris, true, nil
}

// Keyframe marks the current triangulation as a keyframe, protecting it from
// eviction.
func (m *Mesh) Keyframe() {
	if t := m.Cache.Current(); t != nil {
		t.Keyframe = true
	}
}
