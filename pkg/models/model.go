package models

import (
	"github.com/taigrr/bespoke/pkg/math3d"
)

// Model is a modular asset: an ordered collection of uniquely named parts.
type Model struct {
	Name  string
	Parts []*Part

	index map[string]*Part
}

// NewModel creates a model from parts. Parts sharing a name are merged.
func NewModel(name string, parts ...*Part) *Model {
	m := &Model{Name: name, index: make(map[string]*Part)}
	for _, p := range parts {
		m.Add(p)
	}
	return m
}

// Add inserts a part, merging its geometry into an existing part of the
// same name.
func (m *Model) Add(p *Part) {
	if existing, ok := m.index[p.Name]; ok {
		existing.append(p)
		return
	}
	m.index[p.Name] = p
	m.Parts = append(m.Parts, p)
}

// Part looks up a part by its exact name.
func (m *Model) Part(name string) (*Part, bool) {
	p, ok := m.index[name]
	return p, ok
}

// Manifest lists the part names in asset order.
func (m *Model) Manifest() []string {
	names := make([]string, len(m.Parts))
	for i, p := range m.Parts {
		names[i] = p.Name
	}
	return names
}

// TriangleCount sums triangles across all parts.
func (m *Model) TriangleCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.TriangleCount()
	}
	return n
}

// Bounds returns the box enclosing every part. ok is false for a model
// without geometry.
func (m *Model) Bounds() (min, max math3d.Vec3, ok bool) {
	for _, p := range m.Parts {
		if len(p.Vertices) == 0 {
			continue
		}
		if !ok {
			min, max, ok = p.BoundsMin, p.BoundsMax, true
			continue
		}
		min = min.Min(p.BoundsMin)
		max = max.Max(p.BoundsMax)
	}
	return min, max, ok
}

// Normalize uniformly scales the model so its longest side equals size and
// moves its bounding-box center to the origin.
func (m *Model) Normalize(size float64) {
	lo, hi, ok := m.Bounds()
	if !ok {
		return
	}
	longest := hi.Sub(lo).MaxComponent()
	if longest <= 0 {
		return
	}
	center := lo.Add(hi).Scale(0.5)
	t := math3d.ScaleUniform(size / longest).Mul(math3d.Translate(center.Negate()))
	for _, p := range m.Parts {
		p.Transform(t)
	}
}
