package garment

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownSwatch is returned for a button or thread id that is neither a
// built-in swatch nor a hex color.
var ErrUnknownSwatch = errors.New("unknown swatch")

// Design is a saved selection as written in a YAML file. Fabric and
// swatch references are catalog ids; buttons and threads may also be hex
// colors.
//
//	garment: shirt
//	style: {collar: co5, bottom: bt2}
//	fabrics: {body: c1, collar: f1}
//	contrast: {collar-out: f7}
//	button: btn-bl
//	monogram: {anchor: cuff-left, text: ABC, font: script, thread: th15}
type Design struct {
	Garment  string            `yaml:"garment"`
	Style    map[string]string `yaml:"style"`
	Fabrics  map[string]string `yaml:"fabrics"`
	Contrast map[string]string `yaml:"contrast"`
	Button   string            `yaml:"button"`
	Monogram DesignMonogram    `yaml:"monogram"`
}

// DesignMonogram is the monogram block of a Design.
type DesignMonogram struct {
	Anchor string `yaml:"anchor"`
	Text   string `yaml:"text"`
	Font   string `yaml:"font"`
	Thread string `yaml:"thread"`
}

// ParseDesign decodes a YAML design.
func ParseDesign(data []byte) (*Design, error) {
	var d Design
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse design: %w", err)
	}
	return &d, nil
}

// LoadDesign reads a YAML design file.
func LoadDesign(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design: %w", err)
	}
	return ParseDesign(data)
}

// Selection resolves the design against a catalog. Style categories the
// design omits take the catalog default; unknown option ids are kept so
// the resolver can fall back on them.
func (d *Design) Selection(cat *Catalog) (Selection, error) {
	sel := Selection{
		Style:    cat.Defaults(),
		Fabrics:  make(PartFabricAssignment),
		Contrast: make(ContrastOverrides),
		Monogram: MonogramSpec{Anchor: AnchorNone},
	}
	for k, id := range d.Style {
		c := Category(k)
		if o, ok := cat.Lookup(c, id); ok {
			sel.Style[c] = o
		} else {
			sel.Style[c] = StyleOption{ID: id, Key: id}
		}
	}
	for slot, id := range d.Fabrics {
		f, err := FabricByID(id)
		if err != nil {
			return Selection{}, fmt.Errorf("fabric %s: %w", slot, err)
		}
		sel.Fabrics[FabricSlot(slot)] = f
	}
	for id, fid := range d.Contrast {
		f, err := FabricByID(fid)
		if err != nil {
			return Selection{}, fmt.Errorf("contrast %s: %w", id, err)
		}
		sel.Contrast[ContrastID(id)] = ContrastOverride{Enabled: true, Fabric: f}
	}
	if d.Button != "" {
		c, ok := swatchColor(buttons, d.Button)
		if !ok {
			return Selection{}, fmt.Errorf("button: %w: %q", ErrUnknownSwatch, d.Button)
		}
		sel.ButtonColor = c
	}
	m := d.Monogram
	if m.Anchor != "" {
		sel.Monogram.Anchor = Anchor(m.Anchor)
	}
	sel.Monogram.Text = m.Text
	sel.Monogram.Font = Font(m.Font)
	if m.Thread != "" {
		c, ok := swatchColor(threads, m.Thread)
		if !ok {
			return Selection{}, fmt.Errorf("thread: %w: %q", ErrUnknownSwatch, m.Thread)
		}
		sel.Monogram.Color = c
	}
	sel.Monogram = sel.Monogram.Normalized()
	return sel, nil
}
