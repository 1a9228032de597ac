// Package fabric turns fabric selections into materials: flat colors,
// synthesized check patterns and asynchronously loaded images.
package fabric

import (
	"image/color"

	"github.com/taigrr/bespoke/pkg/math3d"
	"github.com/taigrr/bespoke/pkg/render"
)

// Cells is the number of check squares along each side of a tile.
const Cells = 8

// Anisotropy is the sampling anisotropy of fabric textures.
const Anisotropy = 16

// Synthesize builds a tileable checkerboard of Cells x Cells squares with
// a in the top-left cell, repeated tile times across the surface. The
// result is deterministic and carries a full mip chain.
func Synthesize(a, b color.RGBA, resolution int, tile float64) *render.Texture {
	tex := render.NewCheckerTexture(resolution, Cells, a, b)
	configure(tex, render.WrapRepeat, tile)
	return tex
}

func configure(tex *render.Texture, wrap render.WrapMode, tile float64) {
	tex.WrapU, tex.WrapV = wrap, wrap
	tex.Repeat = math3d.V2(tile, tile)
	tex.FilterMode = render.FilterTrilinear
	tex.Anisotropy = Anisotropy
	tex.GenerateMipmaps()
}
