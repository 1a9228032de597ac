package viewer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/math3d"
	"github.com/taigrr/bespoke/pkg/render"
)

func inkPixels(t *testing.T, spec garment.MonogramSpec, ink color.NRGBA) (opaque, shadow int) {
	opaque, shadow, _ = rasterStats(t, spec, ink)
	return opaque, shadow
}

// rasterStats counts exact ink pixels and translucent shadow pixels, and
// reports the densest shadow alpha seen.
func rasterStats(t *testing.T, spec garment.MonogramSpec, ink color.NRGBA) (opaque, shadow int, peak uint8) {
	t.Helper()
	img, err := RasterizeMonogram(spec)
	require.NoError(t, err)
	require.Equal(t, MonogramWidth, img.Bounds().Dx())
	require.Equal(t, MonogramHeight, img.Bounds().Dy())
	assert.Zero(t, img.NRGBAAt(0, 0).A, "corners stay transparent")
	for y := range MonogramHeight {
		for x := range MonogramWidth {
			c := img.NRGBAAt(x, y)
			switch {
			case c == ink:
				opaque++
			case c.A > 0 && c.A < 128 && c.R == 0 && c.B == 0:
				shadow++
				peak = max(peak, c.A)
			}
		}
	}
	return opaque, shadow, peak
}

func TestRasterizeMonogram(t *testing.T) {
	opaque, shadow := inkPixels(t, garment.MonogramSpec{
		Anchor: garment.AnchorChest, Text: "AB", Font: garment.FontBlock, Color: "#000080",
	}, color.NRGBA{0, 0, 0x80, 255})
	assert.Greater(t, opaque, 1000)
	assert.Greater(t, shadow, 100)
}

func TestMonogramShadowOpacity(t *testing.T) {
	_, shadow, peak := rasterStats(t, garment.MonogramSpec{
		Anchor: garment.AnchorWaist, Text: "W", Font: garment.FontBlock, Color: "#FFFFFF",
	}, color.NRGBA{255, 255, 255, 255})
	require.Positive(t, shadow)
	assert.LessOrEqual(t, peak, shadowAlpha, "shadow never exceeds 30% black")
	assert.Greater(t, peak, shadowAlpha/4, "blur keeps a visible shadow edge")
}

func TestMonogramFonts(t *testing.T) {
	seen := map[int]bool{}
	for _, f := range []garment.Font{garment.FontBlock, garment.FontScript, garment.FontOldEnglish, "comic"} {
		n, _ := inkPixels(t, garment.MonogramSpec{Anchor: garment.AnchorChest, Text: "JK", Font: f},
			color.NRGBA{0xDC, 0x14, 0x3C, 255})
		assert.Positive(t, n, f)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1, "fonts render differently")
}

func TestPlacement(t *testing.T) {
	p := PlacementFor(garment.AnchorCuffLeft)
	assert.Equal(t, math3d.V3(-2.40, -1.30, 1.0), p.Matrix().Translation())
	assert.Equal(t, 0.35, p.Scale)

	def := PlacementFor("hem")
	assert.Equal(t, math3d.V3(0, 0.8, 0.6), def.Position)
}

func TestCompositorLifecycle(t *testing.T) {
	reg := render.NewRegistry()
	c := NewCompositor(reg)
	spec := garment.MonogramSpec{Anchor: garment.AnchorCollar, Text: "JD", Font: garment.FontScript}

	require.NoError(t, c.Update(spec))
	first := c.Surface()
	require.NotNil(t, first)
	assert.Equal(t, MonogramAlphaTest, first.Material.AlphaTest)
	assert.True(t, first.Material.Transparent)
	assert.False(t, first.Material.DepthWrite)
	assert.Equal(t, garment.DefaultThreadColor, first.Spec.Color)
	textures, materials := reg.Live()
	assert.Equal(t, 1, textures)
	assert.Equal(t, 1, materials)

	require.NoError(t, c.Update(spec))
	assert.Same(t, first, c.Surface(), "unchanged spec keeps the surface")

	spec.Text = "JDX"
	require.NoError(t, c.Update(spec))
	assert.NotSame(t, first, c.Surface())
	assert.True(t, first.Texture.Disposed())
	assert.True(t, first.Material.Disposed())
	textures, materials = reg.Live()
	assert.Equal(t, 1, textures)
	assert.Equal(t, 1, materials)

	spec.Text = ""
	require.NoError(t, c.Update(spec))
	assert.Nil(t, c.Surface())
	textures, materials = reg.Live()
	assert.Zero(t, textures)
	assert.Zero(t, materials)

	require.NoError(t, c.Update(garment.MonogramSpec{Anchor: garment.AnchorNone, Text: "A"}))
	assert.Nil(t, c.Surface())
}
