package render

import (
	"math"

	"github.com/taigrr/bespoke/pkg/math3d"
)

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Position  math3d.Vec3
	Intensity float64
}

// LightRig is an ambient term plus directional lights. Summed irradiance is
// divided by Exposure so a rig calibrated for a tone-mapped display lands
// in [0,1]; zero Exposure means ambient plus the strongest light.
type LightRig struct {
	Ambient  float64
	Lights   []DirectionalLight
	Exposure float64
}

// Intensity returns the diffuse lighting factor for a world-space normal.
func (l *LightRig) Intensity(n math3d.Vec3) float64 {
	if l == nil {
		return 1
	}
	sum := l.Ambient
	for _, d := range l.Lights {
		dir := d.Position.Normalize()
		sum += d.Intensity * math.Max(0, n.Dot(dir))
	}
	return math3d.Clamp(sum/l.exposure(), 0, 1)
}

func (l *LightRig) exposure() float64 {
	if l.Exposure > 0 {
		return l.Exposure
	}
	e := l.Ambient
	strongest := 0.0
	for _, d := range l.Lights {
		strongest = math.Max(strongest, d.Intensity)
	}
	e += strongest
	if e <= 0 {
		return 1
	}
	return e
}
