package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/bespoke/pkg/math3d"
)

func TestWrapCoord(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		mode WrapMode
		want float64
	}{
		{"repeat", 1.25, WrapRepeat, 0.25},
		{"repeat negative", -0.25, WrapRepeat, 0.75},
		{"mirror forward", 0.25, WrapMirror, 0.25},
		{"mirror flipped", 1.25, WrapMirror, 0.75},
		{"mirror second period", 2.25, WrapMirror, 0.25},
		{"clamp", 1.5, WrapClamp, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapCoord(tc.in, tc.mode); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("wrapCoord(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWrapPixelMirror(t *testing.T) {
	want := []int{0, 1, 2, 3, 3, 2, 1, 0, 0}
	for i, w := range want {
		if got := wrapPixel(i, 4, WrapMirror); got != w {
			t.Errorf("wrapPixel(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestCheckerTextureCells(t *testing.T) {
	a, b := RGB(255, 255, 255), RGB(74, 144, 217)
	tex := NewCheckerTexture(16, 8, a, b)

	if tex.GetPixel(0, 0) != a || tex.GetPixel(1, 1) != a {
		t.Error("top-left cell should use the first color")
	}
	if tex.GetPixel(2, 0) != b || tex.GetPixel(0, 2) != b {
		t.Error("neighbouring cells should alternate")
	}
	if tex.GetPixel(15, 15) != a {
		t.Error("opposite corner of an even grid should match the first cell")
	}
}

func TestRepeatScalesUV(t *testing.T) {
	red, blue := RGB(255, 0, 0), RGB(0, 0, 255)
	tex := NewTexture(2, 1)
	tex.Pixels[0], tex.Pixels[1] = red, blue

	if got := tex.Sample(0.3, 0.5); got != red {
		t.Errorf("unrepeated sample = %v, want red", got)
	}
	tex.Repeat = math3d.V2(2, 1)
	if got := tex.Sample(0.3, 0.5); got != blue {
		t.Errorf("repeated sample = %v, want blue", got)
	}
}

func TestGenerateMipmaps(t *testing.T) {
	tex := NewCheckerTexture(128, 8, RGB(255, 255, 255), RGB(0, 0, 0))
	tex.GenerateMipmaps()

	if tex.MipLevels() != 8 {
		t.Fatalf("levels = %d, want 8", tex.MipLevels())
	}
	last := tex.level(7)
	if last.Width != 1 || last.Height != 1 {
		t.Errorf("last level is %dx%d, want 1x1", last.Width, last.Height)
	}
	if c := last.GetPixel(0, 0); c.R < 100 || c.R > 155 {
		t.Errorf("1x1 level of a balanced checker = %v, want mid gray", c)
	}
}

func TestTrilinearBlendsLevels(t *testing.T) {
	tex := NewCheckerTexture(64, 8, RGB(255, 255, 255), RGB(0, 0, 0))
	tex.FilterMode = FilterTrilinear
	tex.GenerateMipmaps()

	base := tex.SampleLevel(0.01, 0.99, 0)
	far := tex.SampleLevel(0.01, 0.99, float64(tex.MipLevels()-1))
	if base.R != 255 {
		t.Errorf("level 0 = %v, want white", base)
	}
	if far.R > 160 || far.R < 95 {
		t.Errorf("coarsest level = %v, want the average", far)
	}
}

func TestLOD(t *testing.T) {
	tex := NewTexture(64, 64)
	tex.GenerateMipmaps()
	tex.Anisotropy = 16

	if lod := tex.LOD(1.0/8, 0, 0, 1.0/8); math.Abs(lod-3) > 1e-9 {
		t.Errorf("isotropic 8 texels/pixel lod = %v, want 3", lod)
	}
	if lod := tex.LOD(1.0/4, 0, 0, 1.0/64); math.Abs(lod) > 1e-9 {
		t.Errorf("16:1 footprint with 16x anisotropy lod = %v, want 0", lod)
	}
	tex.Anisotropy = 4
	if lod := tex.LOD(1.0/4, 0, 0, 1.0/64); math.Abs(lod-2) > 1e-9 {
		t.Errorf("16:1 footprint with 4x anisotropy lod = %v, want 2", lod)
	}
	if lod := tex.LOD(0, 0, 0, 0); lod != 0 {
		t.Errorf("magnified lod = %v, want 0", lod)
	}
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.RGBA{255, 0, 0, 255})
	img.Set(11, 10, color.RGBA{0, 0, 0, 0})

	tex := TextureFromImage(img)

	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width, tex.Height)
	}
	if tex.GetPixel(0, 0) != RGB(255, 0, 0) {
		t.Errorf("pixel = %v, want red", tex.GetPixel(0, 0))
	}
}

func TestDisposedTextureSamplesTransparent(t *testing.T) {
	tex := NewCheckerTexture(8, 2, RGB(255, 255, 255), RGB(0, 0, 0))
	tex.Dispose()
	if !tex.Disposed() || tex.Sample(0.5, 0.5) != (Color{}) {
		t.Error("disposed texture should sample transparent black")
	}
}
