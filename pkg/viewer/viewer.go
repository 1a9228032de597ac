// Package viewer is the interactive garment preview: it owns the scene,
// resolves selections into visible parts and materials, animates the
// camera and composites the monogram.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"math"
	"sync/atomic"
	"time"

	"fortio.org/log"

	"github.com/taigrr/bespoke/pkg/fabric"
	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/math3d"
	"github.com/taigrr/bespoke/pkg/models"
	"github.com/taigrr/bespoke/pkg/profile"
	"github.com/taigrr/bespoke/pkg/render"
	"github.com/taigrr/bespoke/pkg/resolve"
)

// ErrAssetLoad wraps every failure to load or validate a garment asset.
var ErrAssetLoad = errors.New("asset load failed")

// ErrClosed is returned by operations on a closed viewer.
var ErrClosed = errors.New("viewer closed")

// Options configures a Viewer.
type Options struct {
	Profile *profile.Profile
	Catalog *garment.Catalog
	// Fabrics serves fabric images. Nil disables image fabrics.
	Fabrics    fs.FS
	Width      int
	Height     int
	FPS        int
	Background color.RGBA
}

// Viewer renders one garment. Methods must be called from the goroutine
// running the frame loop; other goroutines use Post.
type Viewer struct {
	profile *profile.Profile
	catalog *garment.Catalog
	bg      color.RGBA
	fps     int

	fb       *render.Framebuffer
	camera   *render.Camera
	raster   *render.Rasterizer
	lights   *render.LightRig
	registry *render.Registry
	loader   *fabric.Loader

	model    *models.Model
	regions  *garment.RegionTable
	resolver resolve.Resolver
	binder   *fabric.Binder
	choreo   *Choreographer
	monogram *Compositor

	selection garment.Selection
	applied   bool
	visible   garment.PartSet

	failed  error
	ready   bool
	onReady func()
	onError func(error)

	events chan Event
	lastX  int
	lastY  int
	closed atomic.Bool
}

// New creates a viewer with no asset loaded.
func New(opts Options) *Viewer {
	if opts.Profile == nil {
		opts.Profile = profile.Shirt()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalogFor(opts.Profile)
	}
	if opts.Width <= 0 {
		opts.Width = 160
	}
	if opts.Height <= 0 {
		opts.Height = 90
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	p := opts.Profile

	fb := render.NewFramebuffer(opts.Width, opts.Height)
	camera := render.NewCamera()
	camera.FOV = p.Lens.FOV * math.Pi / 180
	camera.SetClipPlanes(p.Lens.Near, p.Lens.Far)
	camera.SetAspectRatio(float64(opts.Width) / float64(opts.Height))

	v := &Viewer{
		profile:  p,
		catalog:  opts.Catalog,
		bg:       opts.Background,
		fps:      opts.FPS,
		fb:       fb,
		camera:   camera,
		raster:   render.NewRasterizer(camera, fb),
		lights:   p.LightRig(),
		registry: render.NewRegistry(),
		choreo:   NewChoreographer(p.Neutral, opts.FPS),
		visible:  make(garment.PartSet),
		events:   make(chan Event, 256),
	}
	if opts.Fabrics != nil {
		v.loader = fabric.NewLoader(opts.Fabrics)
	}
	v.monogram = NewCompositor(v.registry)
	return v
}

func catalogFor(p *profile.Profile) *garment.Catalog {
	if p.Kind == profile.KindKurta {
		return garment.KurtaCatalog()
	}
	return garment.ShirtCatalog()
}

// OnReady registers a callback for the first rendered frame of a loaded
// asset.
func (v *Viewer) OnReady(fn func()) { v.onReady = fn }

// OnError registers a callback for asset load failures.
func (v *Viewer) OnError(fn func(error)) { v.onError = fn }

// Load reads a GLB asset and installs it.
func (v *Viewer) Load(path string) error {
	if v.closed.Load() {
		return ErrClosed
	}
	m, err := models.Load(path)
	if err != nil {
		return v.fail(err)
	}
	return v.LoadModel(m)
}

// LoadModel installs an already loaded asset. The asset is normalised to
// the profile size and must cover every required region.
func (v *Viewer) LoadModel(m *models.Model) error {
	if v.closed.Load() {
		return ErrClosed
	}
	manifest := m.Manifest()
	regions := garment.NewRegionTable(manifest)
	if err := regions.Validate(v.profile.Required...); err != nil {
		return v.fail(fmt.Errorf("%s: %w", m.Name, err))
	}
	resolver, err := resolve.New(v.profile, v.catalog, manifest)
	if err != nil {
		return v.fail(err)
	}
	m.Normalize(v.profile.Size)

	if v.binder != nil {
		v.binder.Close()
	}
	v.model = m
	v.regions = regions
	v.resolver = resolver
	v.binder = fabric.NewBinder(v.profile, regions, v.registry, v.loader)
	v.failed = nil
	v.ready = false
	log.Infof("loaded %s: %d parts, %d triangles", m.Name, len(manifest), m.TriangleCount())

	sel := v.selection
	if !v.applied {
		sel = garment.Selection{Style: v.catalog.Defaults(), Monogram: garment.MonogramSpec{Anchor: garment.AnchorNone}}
	}
	return v.Apply(sel)
}

func (v *Viewer) fail(err error) error {
	err = fmt.Errorf("%w: %w", ErrAssetLoad, err)
	v.failed = err
	v.model = nil
	log.Errf("%v", err)
	if v.onError != nil {
		v.onError(err)
	}
	return err
}

// Err returns the asset failure, if any.
func (v *Viewer) Err() error { return v.failed }

// Apply replaces the whole selection: visible parts, materials, camera
// anchor and monogram.
func (v *Viewer) Apply(sel garment.Selection) error {
	if v.closed.Load() {
		return ErrClosed
	}
	v.selection = sel
	v.applied = true
	if v.model == nil {
		return nil
	}

	resolved := v.resolver.Resolve(sel.Style)
	visible := make(garment.PartSet, len(resolved))
	for name := range resolved {
		if v.regions.Has(name) {
			visible.Add(name)
		} else {
			log.Debugf("%s not in asset, skipped", name)
		}
	}
	v.visible = visible
	v.binder.Bind(visible, sel)
	v.choreo.SelectAnchor(sel.Monogram.Anchor)
	return v.monogram.Update(sel.Monogram)
}

// Selection returns the last applied selection.
func (v *Viewer) Selection() garment.Selection { return v.selection }

// Visible returns the parts currently shown.
func (v *Viewer) Visible() garment.PartSet { return v.visible }

// Regions lists the fabric regions present in the visible set.
func (v *Viewer) Regions() []garment.Region {
	if v.regions == nil {
		return nil
	}
	return v.regions.Present(v.visible)
}

// State snapshots the orientation and interaction state.
func (v *Viewer) State() SceneState { return v.choreo.State() }

// Mode returns the choreographer state.
func (v *Viewer) Mode() Mode { return v.choreo.Mode() }

// Framebuffer returns the render target.
func (v *Viewer) Framebuffer() *render.Framebuffer { return v.fb }

// Snapshot copies the current frame.
func (v *Viewer) Snapshot() image.Image { return v.fb.ToImage() }

// Live reports live textures and materials.
func (v *Viewer) Live() (textures, materials int) { return v.registry.Live() }

// Binder exposes the material bindings.
func (v *Viewer) Binder() *fabric.Binder { return v.binder }

// Monogram returns the live monogram surface, or nil.
func (v *Viewer) Monogram() *Surface { return v.monogram.Surface() }

// PointerDown starts a drag at a pixel position.
func (v *Viewer) PointerDown(x, y int) {
	if v.choreo.BeginDrag() {
		v.lastX, v.lastY = x, y
	}
}

// PointerMove drags to a pixel position.
func (v *Viewer) PointerMove(x, y int) {
	if v.choreo.Mode() != ModeDragging {
		return
	}
	v.choreo.Drag(float64(x-v.lastX), float64(y-v.lastY))
	v.lastX, v.lastY = x, y
}

// PointerUp ends a drag.
func (v *Viewer) PointerUp() { v.choreo.EndDrag() }

// Wheel zooms by a wheel delta; positive moves away.
func (v *Viewer) Wheel(deltaY float64) { v.choreo.Wheel(deltaY) }

// ResetView eases back to the neutral pose when unlocked.
func (v *Viewer) ResetView() bool { return v.choreo.Reset() }

// Resize changes the framebuffer size.
func (v *Viewer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.fb.Resize(width, height)
	v.raster.Resize()
	v.camera.SetAspectRatio(float64(width) / float64(height))
}

// Frame advances by dt and renders: finished texture loads are applied,
// the camera steps and the visible parts are drawn.
func (v *Viewer) Frame(dt time.Duration) {
	if v.closed.Load() {
		return
	}
	if v.binder != nil {
		if n := v.binder.Drain(); n > 0 {
			log.LogVf("applied %d textures", n)
		}
	}
	v.choreo.Step(dt)
	v.render()

	if v.model != nil && !v.ready {
		v.ready = true
		if v.onReady != nil {
			v.onReady()
		}
	}
}

func (v *Viewer) render() {
	pose := v.choreo.Pose()
	v.camera.SetPosition(math3d.V3(0, pose.Offset, pose.Distance))
	pivot := math3d.RotateX(pose.Pitch).Mul(math3d.RotateY(pose.Yaw))

	v.fb.Clear(v.bg)
	v.raster.BeginFrame()
	if v.model == nil {
		return
	}
	for _, part := range v.model.Parts {
		if !v.visible.Has(part.Name) {
			continue
		}
		v.raster.DrawMesh(part, pivot, v.binder.Material(part.Name), v.lights)
	}
	if s := v.monogram.Surface(); s != nil {
		v.raster.DrawMesh(s.Plane, pivot.Mul(s.Transform), s.Material, nil)
	}
}

// Post queues an event for the frame loop. It reports false when the
// queue is full or the viewer is closed.
func (v *Viewer) Post(ev Event) bool {
	if v.closed.Load() {
		return false
	}
	select {
	case v.events <- ev:
		return true
	default:
		return false
	}
}

// Run drives frames at the configured rate until ctx is done, calling
// present after each frame, then closes the viewer.
func (v *Viewer) Run(ctx context.Context, present func(*render.Framebuffer) error) error {
	defer v.Close()
	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			v.dispatch()
			dt := min(now.Sub(last), 100*time.Millisecond)
			last = now
			v.Frame(dt)
			if present != nil {
				if err := present(v.fb); err != nil {
					return fmt.Errorf("present: %w", err)
				}
			}
		}
	}
}

// dispatch applies queued events in arrival order.
func (v *Viewer) dispatch() {
	for {
		select {
		case ev := <-v.events:
			if err := ev.apply(v); err != nil {
				log.Warnf("%T: %v", ev, err)
			}
		default:
			return
		}
	}
}

// Close stops loads and releases every texture and material.
func (v *Viewer) Close() {
	if v.closed.Swap(true) {
		return
	}
	if v.binder != nil {
		v.binder.Close()
	}
	v.monogram.Clear()
	v.registry.DisposeAll()
	if v.loader != nil {
		v.loader.Forget()
	}
	textures, materials := v.registry.Live()
	log.Infof("viewer closed, %d textures and %d materials live", textures, materials)
}
