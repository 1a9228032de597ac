// Package models loads modular garment assets: a Model is a set of named
// Parts, each an independently visible triangle mesh.
package models

import "github.com/taigrr/bespoke/pkg/math3d"

// Vertex holds the attributes of one mesh vertex.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Part is a named sub-mesh of a garment asset. Faces are stored clockwise
// when viewed from their front side.
type Part struct {
	Name     string
	Vertices []Vertex
	Faces    [][3]int

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewPart creates an empty part.
func NewPart(name string) *Part {
	return &Part{Name: name}
}

// NewPlane creates a width x height rectangle centered on the origin and
// facing +Z, with UVs spanning [0,1] and V pointing up.
func NewPlane(name string, width, height float64) *Part {
	w, h := width/2, height/2
	n := math3d.V3(0, 0, 1)
	p := &Part{
		Name: name,
		Vertices: []Vertex{
			{Position: math3d.V3(-w, -h, 0), Normal: n, UV: math3d.V2(0, 0)},
			{Position: math3d.V3(w, -h, 0), Normal: n, UV: math3d.V2(1, 0)},
			{Position: math3d.V3(w, h, 0), Normal: n, UV: math3d.V2(1, 1)},
			{Position: math3d.V3(-w, h, 0), Normal: n, UV: math3d.V2(0, 1)},
		},
		Faces: [][3]int{{0, 2, 1}, {0, 3, 2}},
	}
	p.CalculateBounds()
	return p
}

// CalculateBounds recomputes the axis-aligned bounding box.
func (p *Part) CalculateBounds() {
	if len(p.Vertices) == 0 {
		p.BoundsMin, p.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}
	p.BoundsMin = p.Vertices[0].Position
	p.BoundsMax = p.Vertices[0].Position
	for _, v := range p.Vertices[1:] {
		p.BoundsMin = p.BoundsMin.Min(v.Position)
		p.BoundsMax = p.BoundsMax.Max(v.Position)
	}
}

// CalculateSmoothNormals averages area-weighted face normals per vertex.
func (p *Part) CalculateSmoothNormals() {
	for i := range p.Vertices {
		p.Vertices[i].Normal = math3d.Vec3{}
	}
	for _, f := range p.Faces {
		a := p.Vertices[f[0]].Position
		b := p.Vertices[f[1]].Position
		c := p.Vertices[f[2]].Position
		// clockwise storage, so c-a comes first
		n := c.Sub(a).Cross(b.Sub(a))
		for _, idx := range f {
			p.Vertices[idx].Normal = p.Vertices[idx].Normal.Add(n)
		}
	}
	for i := range p.Vertices {
		p.Vertices[i].Normal = p.Vertices[i].Normal.Normalize()
	}
}

// hasNormals reports whether any vertex carries a usable normal.
func (p *Part) hasNormals() bool {
	for _, v := range p.Vertices {
		if v.Normal.Len() > 1e-6 {
			return true
		}
	}
	return false
}

// Transform bakes m into positions and normals.
func (p *Part) Transform(m math3d.Mat4) {
	nm := m.NormalMatrix()
	for i := range p.Vertices {
		p.Vertices[i].Position = m.MulVec3(p.Vertices[i].Position)
		p.Vertices[i].Normal = nm.MulVec3Dir(p.Vertices[i].Normal).Normalize()
	}
	p.CalculateBounds()
}

// append merges the geometry of o into p.
func (p *Part) append(o *Part) {
	base := len(p.Vertices)
	p.Vertices = append(p.Vertices, o.Vertices...)
	for _, f := range o.Faces {
		p.Faces = append(p.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
	}
	p.CalculateBounds()
}

// VertexCount returns the number of vertices.
func (p *Part) VertexCount() int {
	return len(p.Vertices)
}

// TriangleCount returns the number of triangles.
func (p *Part) TriangleCount() int {
	return len(p.Faces)
}

// GetVertex returns the attributes of vertex i.
func (p *Part) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := p.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices of triangle i.
func (p *Part) GetFace(i int) [3]int {
	return p.Faces[i]
}

// GetBounds returns the local bounding box.
func (p *Part) GetBounds() (min, max math3d.Vec3) {
	return p.BoundsMin, p.BoundsMax
}
