package flatmesh

// Vertex is a single vertex position as stored in a mesh.
type Vertex struct {
	X float32
	Y float32
}

// Vertices is a shape's vertex buffer. Vertex count and index identity stay
// stable across frames; only the positions move.
type Vertices []Vertex

// cross returns the cross product of the edges (p0, p1) and (p1, p2). It is
// positive when the corner at p1 turns counterclockwise in a y-up system.
func cross(p0, p1, p2 Vertex) float32 {
	return (p1.X-p0.X)*(p2.Y-p1.Y) - (p1.Y-p0.Y)*(p2.X-p1.X)
}

// signedArea returns twice the signed area of the polygon formed by the
// indexed vertices. Polygons whose corners all have a non-positive cross
// product have a negative area.
func signedArea(v Vertices, outline []uint16) float32 {
	var a float32
	n := len(outline)
	for i := range n {
		p := v[outline[i]]
		q := v[outline[(i+1)%n]]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}
