package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/anthonynsimon/bild/blur"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/math3d"
	"github.com/taigrr/bespoke/pkg/models"
	"github.com/taigrr/bespoke/pkg/render"
)

// Monogram raster and surface geometry.
const (
	MonogramWidth     = 1024
	MonogramHeight    = 512
	MonogramFontSize  = 200
	MonogramAlphaTest = 0.1
	MonogramPlaneW    = 0.8
	MonogramPlaneH    = 0.4

	shadowBlur   = 4
	shadowOffset = 2
	shadowAlpha  = uint8(76) // 30% black
)

// Placement positions the monogram plane in pivot space.
type Placement struct {
	Position math3d.Vec3
	Rotation math3d.Vec3 // XYZ Euler angles
	Scale    float64
}

// Matrix returns translate * rotate * scale.
func (p Placement) Matrix() math3d.Mat4 {
	return math3d.Translate(p.Position).
		Mul(math3d.Euler(p.Rotation.X, p.Rotation.Y, p.Rotation.Z)).
		Mul(math3d.ScaleUniform(p.Scale))
}

var placements = map[garment.Anchor]Placement{
	garment.AnchorCollar:    {math3d.V3(0.42, 1.82, 0.32), math3d.V3(-0.15, -0.35, 0.08), 0.75},
	garment.AnchorChest:     {math3d.V3(0.45, 1.0, 0.56), math3d.Vec3{}, 0.65},
	garment.AnchorSleeve:    {math3d.V3(1.55, 0.5, 0.15), math3d.V3(0, 0.5, 0), 0.55},
	garment.AnchorCuffLeft:  {math3d.V3(-2.40, -1.30, 1.0), math3d.Vec3{}, 0.35},
	garment.AnchorCuffRight: {math3d.V3(2.40, -1.30, 1.0), math3d.Vec3{}, 0.35},
	garment.AnchorWaist:     {math3d.V3(0.4, -0.95, 0.55), math3d.Vec3{}, 0.6},
	garment.AnchorPlacket:   {math3d.V3(0, 0.35, 0.62), math3d.Vec3{}, 0.8},
}

var defaultPlacement = Placement{Position: math3d.V3(0, 0.8, 0.6), Scale: 1}

// PlacementFor returns where an anchor's monogram sits.
func PlacementFor(a garment.Anchor) Placement {
	if p, ok := placements[a]; ok {
		return p
	}
	return defaultPlacement
}

var (
	fontMu    sync.Mutex
	fontCache = map[string]*opentype.Font{}
)

// fontData picks the face for a monogram font id.
func fontData(f garment.Font) (string, []byte) {
	switch f {
	case garment.FontBlock:
		return "gobold", gobold.TTF
	case garment.FontScript:
		return "lmroman10italic", lmroman10italic.TTF
	case garment.FontOldEnglish:
		return "lmroman10bold", lmroman10bold.TTF
	}
	return "gomedium", gomedium.TTF
}

func face(f garment.Font, size float64) (font.Face, error) {
	name, data := fontData(f)
	fontMu.Lock()
	parsed, ok := fontCache[name]
	if !ok {
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			fontMu.Unlock()
			return nil, fmt.Errorf("parse font %s: %w", name, err)
		}
		fontCache[name] = parsed
	}
	fontMu.Unlock()
	return opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
}

// RasterizeMonogram draws the text centred on a transparent canvas with a
// soft drop shadow.
func RasterizeMonogram(spec garment.MonogramSpec) (*image.NRGBA, error) {
	spec = spec.Normalized()
	fc, err := face(spec.Font, MonogramFontSize)
	if err != nil {
		return nil, err
	}
	defer fc.Close()

	ink := garment.ColorOr(spec.Color, render.RGB(0xDC, 0x14, 0x3C))
	bounds := image.Rect(0, 0, MonogramWidth, MonogramHeight)

	d := &font.Drawer{Face: fc}
	adv := d.MeasureString(spec.Text)
	m := fc.Metrics()
	x := (fixed.I(MonogramWidth) - adv) / 2
	y := (fixed.I(MonogramHeight) + m.Ascent - m.Descent) / 2
	dot := fixed.Point26_6{X: x, Y: y}

	shadow := image.NewRGBA(bounds)
	d.Dst = shadow
	d.Src = image.NewUniform(color.NRGBA{A: shadowAlpha})
	d.Dot = dot.Add(fixed.P(shadowOffset, shadowOffset))
	d.DrawString(spec.Text)
	blurred := blur.Gaussian(shadow, shadowBlur/2)

	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, blurred, image.Point{}, draw.Src)
	d.Dst = out
	d.Src = image.NewUniform(ink)
	d.Dot = dot
	d.DrawString(spec.Text)
	return out, nil
}

// Surface is the placed monogram: a textured plane parented to the pivot.
type Surface struct {
	Spec      garment.MonogramSpec
	Plane     *models.Part
	Material  *render.Material
	Texture   *render.Texture
	Transform math3d.Mat4
}

// Compositor keeps at most one monogram surface alive.
type Compositor struct {
	registry *render.Registry
	current  *Surface
}

// NewCompositor creates a compositor allocating through registry.
func NewCompositor(registry *render.Registry) *Compositor {
	return &Compositor{registry: registry}
}

// Surface returns the live surface, or nil.
func (c *Compositor) Surface() *Surface { return c.current }

// Update makes the surface match spec. An inactive spec removes the
// surface; an unchanged one is left alone.
func (c *Compositor) Update(spec garment.MonogramSpec) error {
	if !spec.Active() {
		c.Clear()
		return nil
	}
	spec = spec.Normalized()
	if c.current != nil && c.current.Spec == spec {
		return nil
	}
	img, err := RasterizeMonogram(spec)
	if err != nil {
		return fmt.Errorf("monogram: %w", err)
	}
	c.Clear()

	tex := render.TextureFromImage(img)
	tex.WrapU, tex.WrapV = render.WrapClamp, render.WrapClamp
	tex.FilterMode = render.FilterTrilinear
	tex.Anisotropy = 16
	tex.GenerateMipmaps()

	mat := render.NewMaterial("monogram", render.RGB(255, 255, 255))
	mat.Map = c.registry.TrackTexture(tex)
	mat.Unlit = true
	mat.Transparent = true
	mat.DoubleSided = true
	mat.AlphaTest = MonogramAlphaTest
	mat.DepthWrite = false

	c.current = &Surface{
		Spec:      spec,
		Plane:     models.NewPlane("monogram", MonogramPlaneW, MonogramPlaneH),
		Material:  c.registry.TrackMaterial(mat),
		Texture:   tex,
		Transform: PlacementFor(spec.Anchor).Matrix(),
	}
	return nil
}

// Clear removes and disposes the surface.
func (c *Compositor) Clear() {
	if c.current == nil {
		return
	}
	c.registry.DisposeTexture(c.current.Texture)
	c.registry.DisposeMaterial(c.current.Material)
	c.current = nil
}
