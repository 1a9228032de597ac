// Package profile holds per-garment calibration: which asset to load, how
// to resolve styles against it, how to light and tile it.
package profile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/math3d"
	"github.com/taigrr/bespoke/pkg/render"
)

// ErrUnknownKind is returned for a garment kind with no built-in profile.
var ErrUnknownKind = errors.New("unknown garment kind")

// Garment kinds.
const (
	KindShirt = "shirt"
	KindKurta = "kurta"
)

// Resolver strategies.
const (
	// ResolveTable maps symbolic option codes through fixed part tables.
	ResolveTable = "table"
	// ResolveDirect treats option keys as part names.
	ResolveDirect = "direct"
)

// Image wrap modes.
const (
	WrapRepeat = "repeat"
	WrapMirror = "mirror"
)

// Pose is a viewing pose of the garment pivot and camera.
type Pose struct {
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	Distance float64 `yaml:"distance"`
	Offset   float64 `yaml:"offset"`
}

// Light is one directional light.
type Light struct {
	Position  [3]float64 `yaml:"position"`
	Intensity float64    `yaml:"intensity"`
}

// Lens is the perspective camera setup.
type Lens struct {
	FOV  float64 `yaml:"fov"` // degrees
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// TileOverride sets the tiling of parts whose lowercased name contains
// Match, ahead of the region scale.
type TileOverride struct {
	Match string  `yaml:"match"`
	Scale float64 `yaml:"scale"`
}

// Profile is the calibration of one garment family.
type Profile struct {
	Kind     string  `yaml:"kind"`
	Asset    string  `yaml:"asset"`
	Resolver string  `yaml:"resolver"`
	Size     float64 `yaml:"size"`

	Ambient float64 `yaml:"ambient"`
	Lights  []Light `yaml:"lights"`
	Lens    Lens    `yaml:"lens"`
	Neutral Pose    `yaml:"neutral"`

	Tiling        map[garment.Region]float64 `yaml:"tiling"`
	TileOverrides []TileOverride             `yaml:"tileOverrides"`
	TextureSize   int                        `yaml:"textureSize"`
	ImageWrap     string                     `yaml:"imageWrap"`
	// Placeholder is shown for an image fabric that has no color of its
	// own while the image loads.
	Placeholder string `yaml:"placeholder"`
	DoubleSided bool   `yaml:"doubleSided"`

	Required []garment.Region `yaml:"required"`
}

// Shirt returns the built-in shirt profile.
func Shirt() *Profile {
	return &Profile{
		Kind:     KindShirt,
		Asset:    "models/shirt-modular.glb",
		Resolver: ResolveTable,
		Size:     5.0,
		Ambient:  1.8,
		Lights: []Light{
			{Position: [3]float64{3, 5, 5}, Intensity: 1.2},
			{Position: [3]float64{-3, 3, 3}, Intensity: 0.6},
			{Position: [3]float64{0, 3, -5}, Intensity: 0.5},
			{Position: [3]float64{0, -5, 0}, Intensity: 0.3},
		},
		Lens:    Lens{FOV: 45, Near: 0.1, Far: 1000},
		Neutral: Pose{Distance: 6},
		Tiling: map[garment.Region]float64{
			garment.RegionBody:    4,
			garment.RegionSleeve:  3.5,
			garment.RegionCollar:  2,
			garment.RegionCuff:    1.5,
			garment.RegionPocket:  2,
			garment.RegionPlacket: 1,
			garment.RegionBottom:  6,
		},
		TextureSize: 128,
		ImageWrap:   WrapMirror,
		Placeholder: garment.White,
		DoubleSided: true,
		Required: []garment.Region{
			garment.RegionBody, garment.RegionSleeve, garment.RegionCollar,
			garment.RegionCuff, garment.RegionPocket, garment.RegionPlacket,
		},
	}
}

// Kurta returns the built-in kurta profile.
func Kurta() *Profile {
	return &Profile{
		Kind:     KindKurta,
		Asset:    "models/Kurtha6_no_avatar.glb",
		Resolver: ResolveDirect,
		Size:     4.5,
		Ambient:  1.2,
		Lights: []Light{
			{Position: [3]float64{3, 5, 5}, Intensity: 1.2},
			{Position: [3]float64{-3, 3, 3}, Intensity: 0.8},
			{Position: [3]float64{0, 3, -5}, Intensity: 0.8},
			{Position: [3]float64{0, -5, 0}, Intensity: 0.8},
		},
		Lens:    Lens{FOV: 45, Near: 0.1, Far: 1000},
		Neutral: Pose{Distance: 6},
		Tiling: map[garment.Region]float64{
			garment.RegionBody:   4,
			garment.RegionSleeve: 3.5,
			garment.RegionBottom: 10,
		},
		TileOverrides: []TileOverride{{Match: "high_low", Scale: 14}},
		TextureSize:   128,
		ImageWrap:     WrapRepeat,
		Placeholder:   "#4A235A",
		DoubleSided:   true,
		Required: []garment.Region{
			garment.RegionBody, garment.RegionSleeve, garment.RegionBottom,
		},
	}
}

// ForKind returns the built-in profile of a kind.
func ForKind(kind string) (*Profile, error) {
	switch kind {
	case KindShirt, "":
		return Shirt(), nil
	case KindKurta:
		return Kurta(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Load reads a YAML profile. The file's kind selects the built-in profile
// it starts from, and only the fields it sets are replaced.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML profile over its kind's defaults.
func Parse(data []byte) (*Profile, error) {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	p, err := ForKind(head.Kind)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the fields a viewer depends on.
func (p *Profile) Validate() error {
	switch p.Resolver {
	case ResolveTable, ResolveDirect:
	default:
		return fmt.Errorf("profile %s: unknown resolver %q", p.Kind, p.Resolver)
	}
	switch p.ImageWrap {
	case WrapRepeat, WrapMirror:
	default:
		return fmt.Errorf("profile %s: unknown image wrap %q", p.Kind, p.ImageWrap)
	}
	if p.Size <= 0 {
		return fmt.Errorf("profile %s: size must be positive", p.Kind)
	}
	if p.TextureSize <= 0 {
		return fmt.Errorf("profile %s: texture size must be positive", p.Kind)
	}
	return nil
}

// TileScale returns the pattern repeat for a part.
func (p *Profile) TileScale(part string, r garment.Region) float64 {
	name := strings.ToLower(part)
	for _, o := range p.TileOverrides {
		if o.Match != "" && strings.Contains(name, o.Match) {
			return o.Scale
		}
	}
	if s, ok := p.Tiling[r]; ok && s > 0 {
		return s
	}
	if s, ok := p.Tiling[garment.RegionBody]; ok && s > 0 {
		return s
	}
	return 1
}

// Wrap returns the texture wrap mode for image fabrics.
func (p *Profile) Wrap() render.WrapMode {
	if p.ImageWrap == WrapMirror {
		return render.WrapMirror
	}
	return render.WrapRepeat
}

// LightRig builds the render light rig.
func (p *Profile) LightRig() *render.LightRig {
	rig := &render.LightRig{Ambient: p.Ambient}
	for _, l := range p.Lights {
		rig.Lights = append(rig.Lights, render.DirectionalLight{
			Position:  math3d.V3(l.Position[0], l.Position[1], l.Position[2]),
			Intensity: l.Intensity,
		})
	}
	return rig
}
