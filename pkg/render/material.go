package render

// Material describes how a surface is shaded. The base Color modulates the
// texture Map when one is set.
type Material struct {
	Name  string
	Color Color
	Map   *Texture

	Unlit       bool
	DoubleSided bool
	Transparent bool
	// AlphaTest discards fragments whose alpha (0..1) is below the
	// threshold. Zero disables the test.
	AlphaTest  float64
	DepthTest  bool
	DepthWrite bool

	disposed bool
}

// NewMaterial creates an opaque lit material.
func NewMaterial(name string, c Color) *Material {
	return &Material{
		Name:       name,
		Color:      c,
		DepthTest:  true,
		DepthWrite: true,
	}
}

// Dispose marks the material unusable. The texture map has its own owner
// and is not released here.
func (m *Material) Dispose() {
	m.Map = nil
	m.disposed = true
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m.disposed
}

// shade returns the unlit surface color at uv with the given mip level.
func (m *Material) shade(u, v, lod float64) Color {
	if m.Map == nil {
		return m.Color
	}
	return ModulateColor(m.Map.SampleLevel(u, v, lod), m.Color)
}
