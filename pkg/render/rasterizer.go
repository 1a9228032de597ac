package render

import (
	"math"

	"github.com/taigrr/bespoke/pkg/math3d"
)

// MeshRenderer is the geometry a Rasterizer can draw. Faces are clockwise
// when seen from the front.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer adds a local bounding box for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// CullingStats tracks frustum culling per frame.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// Rasterizer draws triangles into a framebuffer with a depth buffer, using
// edge functions stepped incrementally across the bounding box.
type Rasterizer struct {
	camera       *Camera
	fb           *Framebuffer
	zbuffer      []float64
	frustum      Frustum
	frustumDirty bool
	CullingStats CullingStats
}

// NewRasterizer creates a rasterizer for camera and fb.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb, frustumDirty: true}
	r.Resize()
	return r
}

// Resize matches the depth buffer to the framebuffer.
func (r *Rasterizer) Resize() {
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.frustumDirty = true
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int { return r.fb.Width }

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int { return r.fb.Height }

// BeginFrame clears depth, refreshes the frustum and resets culling stats.
func (r *Rasterizer) BeginFrame() {
	r.ClearDepth()
	r.frustumDirty = true
	r.CullingStats = CullingStats{}
}

// ClearDepth resets every depth sample to the far limit.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// IsVisible tests a world-space box against the camera frustum.
func (r *Rasterizer) IsVisible(box AABB) bool {
	if r.frustumDirty {
		r.frustum = ExtractFrustum(r.camera.ViewProjectionMatrix())
		r.frustumDirty = false
	}
	return r.frustum.IntersectAABB(box)
}

func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// culled reports whether a bounded mesh lies outside the frustum.
func (r *Rasterizer) culled(mesh MeshRenderer, transform math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}
	r.CullingStats.MeshesTested++
	lo, hi := bounded.GetBounds()
	if !r.IsVisible(AABB{Min: lo, Max: hi}.Transform(transform)) {
		r.CullingStats.MeshesCulled++
		return true
	}
	r.CullingStats.MeshesDrawn++
	return false
}

// screenVertex is a vertex after projection and lighting.
type screenVertex struct {
	X, Y, Z   float64
	InvW      float64
	U, V      float64
	Intensity float64
}

// DrawMesh renders mesh with a model transform, material and light rig.
// Lighting is per vertex (Gouraud); texture coordinates are interpolated
// perspective-correct.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, mat *Material, lights *LightRig) {
	if mat == nil || mat.Disposed() || r.culled(mesh, transform) {
		return
	}
	viewProj := r.camera.ViewProjectionMatrix()
	normalMat := transform.NormalMatrix()
	w, h := float64(r.Width()), float64(r.Height())

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)
		var sv [3]screenVertex
		var normals [3]math3d.Vec3
		clipped := false
		for k := range 3 {
			pos, n, uv := mesh.GetVertex(face[k])
			clip := viewProj.MulVec4(math3d.Point(transform.MulVec3(pos)))
			if clip.W <= 1e-6 {
				clipped = true
				break
			}
			invW := 1 / clip.W
			sv[k] = screenVertex{
				X:    (clip.X*invW + 1) * 0.5 * w,
				Y:    (1 - clip.Y*invW) * 0.5 * h,
				Z:    clip.Z * invW,
				InvW: invW,
				U:    uv.X,
				V:    uv.Y,
			}
			normals[k] = normalMat.MulVec3Dir(n).Normalize()
		}
		if clipped {
			continue
		}

		cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
		if cross == 0 {
			continue
		}
		if cross < 0 {
			if !mat.DoubleSided {
				continue
			}
			// back face: light the side the viewer sees
			for k := range normals {
				normals[k] = normals[k].Negate()
			}
			sv[1], sv[2] = sv[2], sv[1]
			normals[1], normals[2] = normals[2], normals[1]
			cross = -cross
		}
		for k := range sv {
			if mat.Unlit {
				sv[k].Intensity = 1
			} else {
				sv[k].Intensity = lights.Intensity(normals[k])
			}
		}
		r.drawTriangle(&sv, cross, mat)
	}
}

// edgeCoeffs returns A, B, C for edge(x, y) = A*x + B*y + C.
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

func (r *Rasterizer) drawTriangle(sv *[3]screenVertex, area2 float64, mat *Material) {
	minX := int(math.Max(0, math.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}

	lod := 0.0
	if mat.Map != nil {
		// UV Jacobian of the triangle in screen space
		dx1, dy1 := sv[1].X-sv[0].X, sv[1].Y-sv[0].Y
		dx2, dy2 := sv[2].X-sv[0].X, sv[2].Y-sv[0].Y
		du1, dv1 := sv[1].U-sv[0].U, sv[1].V-sv[0].V
		du2, dv2 := sv[2].U-sv[0].U, sv[2].V-sv[0].V
		inv := 1 / area2
		lod = mat.Map.LOD(
			(du1*dy2-du2*dy1)*inv, (dv1*dy2-dv2*dy1)*inv,
			(dx1*du2-dx2*du1)*inv, (dx1*dv2-dx2*dv1)*inv,
		)
	}

	a0, b0, c0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	a1, b1, c1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	a2, b2, c2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)
	invArea := 1 / area2

	px, py := float64(minX)+0.5, float64(minY)+0.5
	w0Row := a0*px + b0*py + c0
	w1Row := a1*px + b1*py + c1
	w2Row := a2*px + b2*py + c2

	width := r.Width()
	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				r.shadePixel(sv, x, y, y*width+x, w0*invArea, w1*invArea, w2*invArea, lod, mat)
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}
		w0Row += b0
		w1Row += b1
		w2Row += b2
	}
}

func (r *Rasterizer) shadePixel(sv *[3]screenVertex, x, y, idx int, bc0, bc1, bc2, lod float64, mat *Material) {
	z := bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z
	if mat.DepthTest && z >= r.zbuffer[idx] {
		return
	}

	// perspective-correct weights
	p0, p1, p2 := bc0*sv[0].InvW, bc1*sv[1].InvW, bc2*sv[2].InvW
	sum := p0 + p1 + p2
	if sum == 0 {
		return
	}
	inv := 1 / sum
	u := (p0*sv[0].U + p1*sv[1].U + p2*sv[2].U) * inv
	v := (p0*sv[0].V + p1*sv[1].V + p2*sv[2].V) * inv
	intensity := (p0*sv[0].Intensity + p1*sv[1].Intensity + p2*sv[2].Intensity) * inv

	c := mat.shade(u, v, lod)
	if mat.AlphaTest > 0 && float64(c.A)/255 < mat.AlphaTest {
		return
	}
	c = MultiplyColor(c, intensity)

	if mat.Transparent {
		r.fb.Blend(x, y, c)
	} else {
		c.A = 255
		r.fb.SetPixel(x, y, c)
	}
	if mat.DepthWrite {
		r.zbuffer[idx] = z
	}
}
