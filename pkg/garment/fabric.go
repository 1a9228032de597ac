// Package garment holds the data model of a configurable garment: style
// options, fabrics, contrast overrides, monograms and the mapping from
// asset parts to fabric regions.
package garment

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// White is the appearance of a region with no fabric.
const White = "#FFFFFF"

// Checker colors used when a check fabric lists fewer than two colors.
const (
	DefaultCheckA = "#FFFFFF"
	DefaultCheckB = "#4A90D9"
)

// ErrUnknownFabric is returned when a fabric id is not in the catalog.
var ErrUnknownFabric = errors.New("unknown fabric")

// Pattern names a procedural fabric pattern.
type Pattern string

// PatternCheck is an 8x8 checkerboard of the first two colors.
const PatternCheck Pattern = "check"

// Fabric describes one selectable cloth: a flat color, a check pattern or
// a raster image. Metadata fields are carried for the caller only.
type Fabric struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Color   string   `yaml:"color,omitempty"`
	Pattern Pattern  `yaml:"pattern,omitempty"`
	Colors  []string `yaml:"colors,omitempty"`
	Image   string   `yaml:"image,omitempty"`

	Category string  `yaml:"category,omitempty"`
	Weave    string  `yaml:"weave,omitempty"`
	Weight   string  `yaml:"weight,omitempty"`
	Yarn     string  `yaml:"yarn,omitempty"`
	Price    float64 `yaml:"price,omitempty"`
	Promo    bool    `yaml:"promo,omitempty"`
}

// HasImage reports whether the fabric is backed by a raster image.
func (f *Fabric) HasImage() bool {
	return f != nil && f.Image != ""
}

// IsCheck reports whether the fabric is a check pattern.
func (f *Fabric) IsCheck() bool {
	return f != nil && f.Pattern == PatternCheck
}

// FlatColor is the single color that stands in for the fabric: its color,
// the first check color, or white.
func (f *Fabric) FlatColor() string {
	switch {
	case f == nil:
		return White
	case f.Color != "":
		return f.Color
	case len(f.Colors) > 0:
		return f.Colors[0]
	default:
		return White
	}
}

// CheckColors returns the two checkerboard colors.
func (f *Fabric) CheckColors() (a, b string) {
	a, b = DefaultCheckA, DefaultCheckB
	if f == nil {
		return a, b
	}
	if len(f.Colors) > 0 && f.Colors[0] != "" {
		a = f.Colors[0]
	}
	if len(f.Colors) > 1 && f.Colors[1] != "" {
		b = f.Colors[1]
	}
	return a, b
}

// ParseColor decodes a #rrggbb or #rgb hex color.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ColorOr decodes s, returning fallback when s is empty or malformed.
func ColorOr(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
