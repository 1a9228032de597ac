package render

import (
	"math"
	"testing"

	"github.com/taigrr/bespoke/pkg/math3d"
)

type mockVertex struct {
	pos    math3d.Vec3
	normal math3d.Vec3
	uv     math3d.Vec2
}

// mockMesh implements BoundedMeshRenderer for testing.
type mockMesh struct {
	vertices []mockVertex
	faces    [][3]int
}

func (m *mockMesh) VertexCount() int     { return len(m.vertices) }
func (m *mockMesh) TriangleCount() int   { return len(m.faces) }
func (m *mockMesh) GetFace(i int) [3]int { return m.faces[i] }
func (m *mockMesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.vertices[i]
	return v.pos, v.normal, v.uv
}

func (m *mockMesh) GetBounds() (lo, hi math3d.Vec3) {
	lo, hi = m.vertices[0].pos, m.vertices[0].pos
	for _, v := range m.vertices[1:] {
		lo, hi = lo.Min(v.pos), hi.Max(v.pos)
	}
	return lo, hi
}

// quad is a square in the z plane, clockwise seen from +Z.
func quad(z, half float64, normal math3d.Vec3) *mockMesh {
	return &mockMesh{
		vertices: []mockVertex{
			{math3d.V3(-half, -half, z), normal, math3d.V2(0, 0)},
			{math3d.V3(half, -half, z), normal, math3d.V2(1, 0)},
			{math3d.V3(half, half, z), normal, math3d.V2(1, 1)},
			{math3d.V3(-half, half, z), normal, math3d.V2(0, 1)},
		},
		faces: [][3]int{{0, 2, 1}, {0, 3, 2}},
	}
}

// reversed flips the winding so the quad faces away from +Z.
func reversed(m *mockMesh) *mockMesh {
	for i, f := range m.faces {
		m.faces[i] = [3]int{f[0], f[2], f[1]}
	}
	return m
}

func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	fb.Clear(RGB(0, 0, 0))
	camera := NewCamera()
	camera.SetPosition(math3d.V3(0, 0, 10))
	camera.SetAspectRatio(float64(width) / float64(height))
	r := NewRasterizer(camera, fb)
	r.BeginFrame()
	return r, fb
}

func frontLight() *LightRig {
	return &LightRig{
		Ambient:  0.3,
		Lights:   []DirectionalLight{{Position: math3d.V3(0, 0, 5), Intensity: 0.7}},
		Exposure: 1,
	}
}

func countLit(fb *Framebuffer) int {
	n := 0
	for _, c := range fb.Pixels {
		if c.R > 0 || c.G > 0 || c.B > 0 {
			n++
		}
	}
	return n
}

func TestDrawMeshLitQuad(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	mat := NewMaterial("red", RGB(255, 0, 0))

	r.DrawMesh(quad(0, 2, math3d.V3(0, 0, 1)), math3d.Identity(), mat, frontLight())

	c := fb.GetPixel(20, 20)
	if c.R < 250 || c.G != 0 || c.B != 0 {
		t.Errorf("center pixel = %v, want fully lit red", c)
	}
	if fb.GetPixel(1, 1) != RGB(0, 0, 0) {
		t.Error("corner outside the quad should stay clear")
	}
}

func TestDrawMeshGouraudFalloff(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	mat := NewMaterial("white", RGB(255, 255, 255))

	// left edge normals face the light, right edge normals face sideways
	m := quad(0, 2, math3d.V3(0, 0, 1))
	m.vertices[1].normal = math3d.V3(1, 0, 0)
	m.vertices[2].normal = math3d.V3(1, 0, 0)
	r.DrawMesh(m, math3d.Identity(), mat, frontLight())

	left, right := fb.GetPixel(12, 20), fb.GetPixel(28, 20)
	if left.R <= right.R {
		t.Errorf("left %d should be brighter than right %d", left.R, right.R)
	}
	if right.R < 60 {
		t.Errorf("ambient term missing: right = %d", right.R)
	}
}

func TestBackfaceCulling(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	mat := NewMaterial("white", RGB(255, 255, 255))

	r.DrawMesh(reversed(quad(0, 2, math3d.V3(0, 0, -1))), math3d.Identity(), mat, frontLight())

	if n := countLit(fb); n > 0 {
		t.Errorf("back-facing quad should be culled, got %d pixels", n)
	}
}

func TestDoubleSidedLightsVisibleSide(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	mat := NewMaterial("white", RGB(255, 255, 255))
	mat.DoubleSided = true

	// normals point away from the viewer and the light
	r.DrawMesh(reversed(quad(0, 2, math3d.V3(0, 0, -1))), math3d.Identity(), mat, frontLight())

	if c := fb.GetPixel(20, 20); c.R < 250 {
		t.Errorf("back face should be lit as seen, got %v", c)
	}
}

func TestUnlitIgnoresLights(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	mat := NewMaterial("button", RGB(200, 100, 50))
	mat.Unlit = true

	dark := &LightRig{Ambient: 0, Exposure: 1}
	r.DrawMesh(quad(0, 2, math3d.V3(0, 0, 1)), math3d.Identity(), mat, dark)

	if c := fb.GetPixel(20, 20); c != RGB(200, 100, 50) {
		t.Errorf("unlit pixel = %v, want material color", c)
	}
}

func TestDepthOrdering(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	near := NewMaterial("near", RGB(255, 0, 0))
	far := NewMaterial("far", RGB(0, 0, 255))
	near.Unlit, far.Unlit = true, true

	r.DrawMesh(quad(1, 2, math3d.V3(0, 0, 1)), math3d.Identity(), near, nil)
	r.DrawMesh(quad(-1, 3, math3d.V3(0, 0, 1)), math3d.Identity(), far, nil)

	if c := fb.GetPixel(20, 20); c.R != 255 || c.B != 0 {
		t.Errorf("nearer surface should win, got %v", c)
	}
}

func TestDepthWriteDisabled(t *testing.T) {
	r, _ := createTestRasterizer(40, 40)
	mat := NewMaterial("decal", RGB(255, 255, 255))
	mat.DepthWrite = false

	r.DrawMesh(quad(0, 2, math3d.V3(0, 0, 1)), math3d.Identity(), mat, nil)

	if d := r.getDepth(20, 20); d != math.MaxFloat64 {
		t.Errorf("depth = %v, want untouched", d)
	}
}

func TestTexturedQuadOrientation(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	red, blue := RGB(255, 0, 0), RGB(0, 0, 255)
	mat := NewMaterial("checker", RGB(255, 255, 255))
	mat.Unlit = true
	mat.Map = NewCheckerTexture(2, 2, red, blue)

	r.DrawMesh(quad(0, 2, math3d.V3(0, 0, 1)), math3d.Identity(), mat, nil)

	// image row 0 is the top of the surface
	if c := fb.GetPixel(14, 14); c != red {
		t.Errorf("top-left = %v, want red", c)
	}
	if c := fb.GetPixel(14, 26); c != blue {
		t.Errorf("bottom-left = %v, want blue", c)
	}
}

func TestAlphaTestDiscards(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	tex := NewTexture(1, 1)
	tex.Pixels[0] = RGBA(255, 255, 255, 10)
	mat := NewMaterial("text", RGB(255, 255, 255))
	mat.Map = tex
	mat.AlphaTest = 0.1
	mat.Unlit = true

	r.DrawMesh(quad(0, 2, math3d.V3(0, 0, 1)), math3d.Identity(), mat, nil)

	if n := countLit(fb); n > 0 {
		t.Errorf("alpha below threshold should be discarded, got %d pixels", n)
	}
}

func TestTransparentBlends(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	tex := NewTexture(1, 1)
	tex.Pixels[0] = RGBA(255, 255, 255, 128)
	mat := NewMaterial("glass", RGB(255, 255, 255))
	mat.Map = tex
	mat.Transparent = true
	mat.Unlit = true

	r.DrawMesh(quad(0, 2, math3d.V3(0, 0, 1)), math3d.Identity(), mat, nil)

	if c := fb.GetPixel(20, 20); c.R < 126 || c.R > 130 {
		t.Errorf("blended = %v, want about half white", c)
	}
}

func TestDisposedMaterialIsSkipped(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	mat := NewMaterial("gone", RGB(255, 255, 255))
	mat.Dispose()

	r.DrawMesh(quad(0, 2, math3d.V3(0, 0, 1)), math3d.Identity(), mat, nil)

	if n := countLit(fb); n > 0 {
		t.Errorf("disposed material drew %d pixels", n)
	}
}

func TestFrustumCullingStats(t *testing.T) {
	r, _ := createTestRasterizer(40, 40)
	mat := NewMaterial("white", RGB(255, 255, 255))

	r.DrawMesh(quad(0, 1, math3d.V3(0, 0, 1)), math3d.Translate(math3d.V3(100, 0, 0)), mat, nil)
	r.DrawMesh(quad(0, 1, math3d.V3(0, 0, 1)), math3d.Identity(), mat, nil)

	if r.CullingStats.MeshesTested != 2 || r.CullingStats.MeshesCulled != 1 || r.CullingStats.MeshesDrawn != 1 {
		t.Errorf("stats = %+v, want 2 tested, 1 culled, 1 drawn", r.CullingStats)
	}
}

func TestRasterizerClearDepth(t *testing.T) {
	r, _ := createTestRasterizer(10, 10)
	r.zbuffer[55] = 1.0

	r.ClearDepth()

	if r.getDepth(5, 5) != math.MaxFloat64 {
		t.Error("ClearDepth should reset to MaxFloat64")
	}
	if r.getDepth(-1, 0) != math.MaxFloat64 || r.getDepth(100, 0) != math.MaxFloat64 {
		t.Error("out of bounds getDepth should return MaxFloat64")
	}
}

func BenchmarkDrawMesh(b *testing.B) {
	r, _ := createTestRasterizer(160, 96)
	mat := NewMaterial("white", RGB(255, 255, 255))
	m := quad(0, 3, math3d.V3(0, 0, 1))
	lights := frontLight()
	for b.Loop() {
		r.BeginFrame()
		r.DrawMesh(m, math3d.Identity(), mat, lights)
	}
}
