package fabric

import (
	"context"
	"image"
	"sync"

	"fortio.org/log"

	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/profile"
	"github.com/taigrr/bespoke/pkg/render"
)

// Kind is the appearance source of a bound part.
type Kind int

const (
	KindNone     Kind = iota
	KindButton        // solid unlit button color
	KindContrast      // flat contrast override color
	KindPending       // placeholder color while an image loads
	KindImage         // loaded image texture
	KindChecker       // synthesized check pattern
	KindFlat          // flat fabric color
)

func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindContrast:
		return "contrast"
	case KindPending:
		return "pending"
	case KindImage:
		return "image"
	case KindChecker:
		return "checker"
	case KindFlat:
		return "flat"
	}
	return "none"
}

// binding is the single owner of one part's material and texture.
type binding struct {
	version  uint64
	kind     Kind
	want     appearance
	material *render.Material
	texture  *render.Texture
}

// appearance is the resolved assignment of a part. A binding is rebuilt,
// and its version bumped, only when this changes.
type appearance struct {
	kind   Kind // KindPending for image fabrics
	color  string
	colorB string
	ref    string
	tile   float64
}

// completion is a finished image load.
type completion struct {
	part    string
	version uint64
	tex     *render.Texture
	err     error
}

// Binder assigns materials to visible parts. Bind, Drain and Close must be
// called from one goroutine; image decoding runs in the background and is
// applied by Drain.
type Binder struct {
	profile  *profile.Profile
	regions  *garment.RegionTable
	registry *render.Registry
	loader   *Loader

	bindings map[string]*binding
	version  uint64
	done     chan completion

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBinder creates a binder. A nil loader disables image fabrics, which
// then keep their placeholder color.
func NewBinder(p *profile.Profile, regions *garment.RegionTable, registry *render.Registry, loader *Loader) *Binder {
	ctx, cancel := context.WithCancel(context.Background())
	return &Binder{
		profile:  p,
		regions:  regions,
		registry: registry,
		loader:   loader,
		bindings: make(map[string]*binding),
		done:     make(chan completion, 64),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Bind gives every visible part exactly one appearance and releases the
// bindings of parts that are no longer visible. Parts whose assignment is
// unchanged keep their material, texture and any load in flight.
func (b *Binder) Bind(visible garment.PartSet, sel garment.Selection) {
	for part, bd := range b.bindings {
		if !visible.Has(part) {
			b.release(bd)
			delete(b.bindings, part)
		}
	}
	for _, part := range visible.Sorted() {
		b.bind(part, sel)
	}
}

func (b *Binder) appearance(part string, sel garment.Selection) appearance {
	region := b.regions.Region(part)
	if region == garment.RegionButton {
		return appearance{kind: KindButton, color: sel.ButtonColorOr()}
	}
	if c, ok := sel.Contrast.Color(region); ok {
		return appearance{kind: KindContrast, color: c}
	}
	fab := sel.Fabrics.For(region)
	tile := b.profile.TileScale(part, region)
	switch {
	case fab.HasImage():
		placeholder := fab.Color
		if placeholder == "" {
			placeholder = b.profile.Placeholder
		}
		return appearance{kind: KindPending, color: placeholder, ref: fab.Image, tile: tile}
	case fab.IsCheck():
		ca, cb := fab.CheckColors()
		return appearance{kind: KindChecker, color: ca, colorB: cb, tile: tile}
	}
	return appearance{kind: KindFlat, color: fab.FlatColor()}
}

func (b *Binder) bind(part string, sel garment.Selection) {
	want := b.appearance(part, sel)
	bd, ok := b.bindings[part]
	if ok && bd.material != nil && bd.want == want {
		return
	}
	if !ok {
		bd = &binding{}
		b.bindings[part] = bd
	}
	b.release(bd)
	b.version++
	bd.version = b.version
	bd.want = want
	bd.kind = want.kind

	switch want.kind {
	case KindButton:
		bd.material = b.material(part, want.color)
		bd.material.Unlit = true
	case KindPending:
		bd.material = b.material(part, want.color)
		b.request(part, bd.version, want.ref, want.tile)
	case KindChecker:
		tex := Synthesize(
			garment.ColorOr(want.color, render.RGB(255, 255, 255)),
			garment.ColorOr(want.colorB, render.RGB(0x4A, 0x90, 0xD9)),
			b.profile.TextureSize, want.tile,
		)
		bd.texture = b.registry.TrackTexture(tex)
		bd.material = b.material(part, garment.White)
		bd.material.Map = bd.texture
	default:
		bd.material = b.material(part, want.color)
	}
}

func (b *Binder) material(part, hex string) *render.Material {
	m := render.NewMaterial(part, garment.ColorOr(hex, render.RGB(255, 255, 255)))
	m.DoubleSided = b.profile.DoubleSided
	return b.registry.TrackMaterial(m)
}

// release disposes a binding's resources, texture first.
func (b *Binder) release(bd *binding) {
	b.registry.DisposeTexture(bd.texture)
	b.registry.DisposeMaterial(bd.material)
	bd.texture, bd.material, bd.kind = nil, nil, KindNone
}

func (b *Binder) request(part string, version uint64, ref string, tile float64) {
	if b.loader == nil {
		return
	}
	wrap := b.profile.Wrap()
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		img, err := b.loader.Load(b.ctx, ref)
		c := completion{part: part, version: version, err: err}
		if err == nil {
			c.tex = textureFrom(img, wrap, tile)
		}
		select {
		case b.done <- c:
		case <-b.ctx.Done():
			if c.tex != nil {
				c.tex.Dispose()
			}
		}
	}()
}

func textureFrom(img image.Image, wrap render.WrapMode, tile float64) *render.Texture {
	tex := render.TextureFromImage(img)
	configure(tex, wrap, tile)
	return tex
}

// Drain applies finished image loads without blocking and returns how many
// were installed. Loads for a binding that has since been reassigned are
// discarded.
func (b *Binder) Drain() int {
	applied := 0
	for {
		select {
		case c := <-b.done:
			if b.apply(c) {
				applied++
			}
		default:
			return applied
		}
	}
}

func (b *Binder) apply(c completion) bool {
	bd, ok := b.bindings[c.part]
	if !ok || bd.version != c.version || bd.kind != KindPending {
		if c.tex != nil {
			c.tex.Dispose()
		}
		log.Debugf("discarded stale texture for %s (v%d)", c.part, c.version)
		return false
	}
	if c.err != nil {
		log.Warnf("texture %s for %s: %v", bd.want.ref, c.part, c.err)
		bd.kind = KindFlat
		return false
	}
	bd.texture = b.registry.TrackTexture(c.tex)
	bd.material.Map = bd.texture
	bd.material.Color = render.RGB(255, 255, 255)
	bd.kind = KindImage
	return true
}

// Material returns the material bound to a part, or nil.
func (b *Binder) Material(part string) *render.Material {
	if bd, ok := b.bindings[part]; ok {
		return bd.material
	}
	return nil
}

// Kind returns the appearance source of a part.
func (b *Binder) Kind(part string) Kind {
	if bd, ok := b.bindings[part]; ok {
		return bd.kind
	}
	return KindNone
}

// Pending reports how many parts are waiting on an image.
func (b *Binder) Pending() int {
	n := 0
	for _, bd := range b.bindings {
		if bd.kind == KindPending {
			n++
		}
	}
	return n
}

// Close cancels outstanding loads, waits for them and releases every
// binding.
func (b *Binder) Close() {
	b.cancel()
	b.wg.Wait()
	for drained := false; !drained; {
		select {
		case c := <-b.done:
			if c.tex != nil {
				c.tex.Dispose()
			}
		default:
			drained = true
		}
	}
	for part, bd := range b.bindings {
		b.release(bd)
		delete(b.bindings, part)
	}
}
