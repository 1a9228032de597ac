package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/taigrr/bespoke/pkg/math3d"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
	WrapMirror                 // Tile, flipping every other copy
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest   FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                    // Bilinear interpolation (smooth)
	FilterTrilinear                   // Bilinear within and linear between mip levels
)

// Texture holds a 2D image for texture mapping. Repeat multiplies incoming
// UVs before wrapping; a zero component means 1.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color // Row-major, straight alpha
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
	Repeat     math3d.Vec2
	Anisotropy float64

	mips     []*Texture
	disposed bool
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:      width,
		Height:     height,
		Pixels:     make([]Color, width*height),
		WrapU:      WrapRepeat,
		WrapV:      WrapRepeat,
		FilterMode: FilterNearest,
		Repeat:     math3d.V2(1, 1),
		Anisotropy: 1,
	}
}

// TextureFromImage copies an image into a new texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	tex := NewTexture(b.Dx(), b.Dy())
	for y := range tex.Height {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := range tex.Width {
			o := x * 4
			tex.Pixels[y*tex.Width+x] = Color{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
		}
	}
	return tex
}

// NewCheckerTexture creates a size x size checkerboard of cells x cells
// squares with c1 in the top-left cell.
func NewCheckerTexture(size, cells int, c1, c2 Color) *Texture {
	tex := NewTexture(size, size)
	for y := range size {
		cy := y * cells / size
		for x := range size {
			cx := x * cells / size
			if (cx+cy)%2 == 0 {
				tex.Pixels[y*size+x] = c1
			} else {
				tex.Pixels[y*size+x] = c2
			}
		}
	}
	return tex
}

// ToImage converts the texture to a standard Go image.
func (t *Texture) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for i, c := range t.Pixels {
		copy(img.Pix[i*4:], []uint8{c.R, c.G, c.B, c.A})
	}
	return img
}

// GenerateMipmaps builds the chain of successively halved levels down to
// 1x1 using a box filter.
func (t *Texture) GenerateMipmaps() {
	t.mips = t.mips[:0]
	src := image.Image(t.ToImage())
	w, h := t.Width, t.Height
	for w > 1 || h > 1 {
		w, h = max(1, w/2), max(1, h/2)
		level := TextureFromImage(transform.Resize(src, w, h, transform.Box))
		level.WrapU, level.WrapV = t.WrapU, t.WrapV
		t.mips = append(t.mips, level)
		src = level.ToImage()
	}
}

// MipLevels returns the number of levels including the base image.
func (t *Texture) MipLevels() int {
	return len(t.mips) + 1
}

// Dispose releases pixel storage. A disposed texture samples as
// transparent black.
func (t *Texture) Dispose() {
	t.Pixels = nil
	t.mips = nil
	t.disposed = true
}

// Disposed reports whether Dispose has been called.
func (t *Texture) Disposed() bool {
	return t.disposed
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height || t.disposed {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height || t.disposed {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

func (t *Texture) repeat() (float64, float64) {
	rx, ry := t.Repeat.X, t.Repeat.Y
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	return rx, ry
}

// Sample samples the base level at UV coordinates.
func (t *Texture) Sample(u, v float64) Color {
	return t.SampleLevel(u, v, 0)
}

// SampleLevel samples at a fractional mip level. Only trilinear textures
// with a generated chain read past level 0.
func (t *Texture) SampleLevel(u, v, lod float64) Color {
	rx, ry := t.repeat()
	u, v = u*rx, v*ry
	if t.FilterMode != FilterTrilinear || len(t.mips) == 0 || lod <= 0 {
		return t.sampleWrapped(u, v)
	}
	lod = math.Min(lod, float64(len(t.mips)))
	lo := int(lod)
	frac := lod - float64(lo)
	a := t.level(lo).sampleWrapped(u, v)
	if frac == 0 {
		return a
	}
	return lerpColor(a, t.level(lo+1).sampleWrapped(u, v), frac)
}

func (t *Texture) level(i int) *Texture {
	if i <= 0 {
		return t
	}
	return t.mips[min(i, len(t.mips))-1]
}

// LOD selects a mip level from the UV derivatives of one screen pixel,
// letting up to Anisotropy samples cover the long axis of the footprint.
func (t *Texture) LOD(dudx, dvdx, dudy, dvdy float64) float64 {
	if len(t.mips) == 0 {
		return 0
	}
	rx, ry := t.repeat()
	w, h := float64(t.Width)*rx, float64(t.Height)*ry
	px := math.Hypot(dudx*w, dvdx*h)
	py := math.Hypot(dudy*w, dvdy*h)
	pmax, pmin := math.Max(px, py), math.Min(px, py)
	if pmax == 0 {
		return 0
	}
	n := math.Max(1, t.Anisotropy)
	if pmin > 0 {
		n = math.Min(math.Ceil(pmax/pmin), n)
	}
	return math3d.Clamp(math.Log2(pmax/n), 0, float64(len(t.mips)))
}

func (t *Texture) sampleWrapped(u, v float64) Color {
	if t.disposed || t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)

	// image Y=0 at top, UV V=0 at bottom
	v = 1.0 - v

	if t.FilterMode == FilterNearest {
		return t.sampleNearest(u, v)
	}
	return t.sampleBilinear(u, v)
}

// wrapCoord applies the wrap mode to a coordinate.
func wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord -= math.Floor(coord)
	case WrapMirror:
		coord -= 2 * math.Floor(coord/2)
		if coord > 1 {
			coord = 2 - coord
		}
	case WrapClamp:
		coord = math3d.Clamp(coord, 0, 1)
	}
	return coord
}

// sampleNearest returns the nearest pixel.
func (t *Texture) sampleNearest(u, v float64) Color {
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.GetPixel(x, y)
}

// sampleBilinear returns bilinearly interpolated color.
func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrapPixel(x0+1, t.Width, t.WrapU)
	y1 := wrapPixel(y0+1, t.Height, t.WrapV)
	x0 = wrapPixel(x0, t.Width, t.WrapU)
	y0 = wrapPixel(y0, t.Height, t.WrapV)

	top := lerpColor(t.GetPixel(x0, y0), t.GetPixel(x1, y0), tx)
	bot := lerpColor(t.GetPixel(x0, y1), t.GetPixel(x1, y1), tx)
	return lerpColor(top, bot, ty)
}

// wrapPixel wraps a texel index.
func wrapPixel(x, size int, mode WrapMode) int {
	switch mode {
	case WrapRepeat:
		x %= size
		if x < 0 {
			x += size
		}
	case WrapMirror:
		period := 2 * size
		x %= period
		if x < 0 {
			x += period
		}
		if x >= size {
			x = period - 1 - x
		}
	case WrapClamp:
		x = max(0, min(x, size-1))
	}
	return x
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// MultiplyColor multiplies a color by a scalar (for lighting).
func MultiplyColor(c Color, intensity float64) Color {
	return Color{
		R: uint8(math.Min(255, float64(c.R)*intensity)),
		G: uint8(math.Min(255, float64(c.G)*intensity)),
		B: uint8(math.Min(255, float64(c.B)*intensity)),
		A: c.A,
	}
}

// ModulateColor modulates one color by another (texture * material color).
func ModulateColor(a, b Color) Color {
	return Color{
		R: uint8((int(a.R) * int(b.R)) / 255),
		G: uint8((int(a.G) * int(b.G)) / 255),
		B: uint8((int(a.B) * int(b.B)) / 255),
		A: uint8((int(a.A) * int(b.A)) / 255),
	}
}
