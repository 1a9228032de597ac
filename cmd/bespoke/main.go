// bespoke - Terminal garment configurator preview
// Renders a shirt or kurta with a chosen style, fabrics and monogram in
// the terminal, or writes a single frame to a WebP file.
//
// Controls:
//
//	Mouse drag  - Rotate the garment
//	Scroll      - Zoom in/out
//	R           - Ease back to the front view
//	M           - Move the monogram to the next anchor
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/HugoSmits86/nativewebp"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/profile"
	"github.com/taigrr/bespoke/pkg/render"
	"github.com/taigrr/bespoke/pkg/viewer"
)

var (
	assetsDir   string
	profilePath string
	designPath  string
	kind        string
	snapshot    string
	size        string
	targetFPS   int
	bgColor     string
)

func main() {
	flag.StringVar(&assetsDir, "assets", ".", "Directory holding models/ and fabrics/")
	flag.StringVar(&profilePath, "profile", "", "Garment profile YAML (overrides -kind)")
	flag.StringVar(&designPath, "design", "", "Design YAML with style, fabrics and monogram")
	flag.StringVar(&kind, "kind", "", "Built-in garment profile: shirt or kurta (default from design, else shirt)")
	flag.StringVar(&snapshot, "snapshot", "", "Render one settled frame to this WebP file and exit")
	flag.StringVar(&size, "size", "640x360", "Snapshot size WxH")
	flag.IntVar(&targetFPS, "fps", 60, "Target FPS")
	flag.StringVar(&bgColor, "bg", "#1E1E28", "Background color")
	cli.ArgsHelp = "[model.glb] (default: the profile's asset under -assets)"
	cli.MinArgs = 0
	cli.MaxArgs = 1
	cli.Main()

	if err := run(flag.Arg(0)); err != nil {
		log.FErrf("%v", err)
	}
}

func run(modelPath string) error {
	var design *garment.Design
	if designPath != "" {
		d, err := garment.LoadDesign(designPath)
		if err != nil {
			return err
		}
		design = d
	}
	p, err := loadProfile(design)
	if err != nil {
		return err
	}
	if modelPath == "" {
		modelPath = filepath.Join(assetsDir, p.Asset)
	}

	cat := garment.KurtaCatalog()
	if p.Kind == profile.KindShirt {
		cat = garment.ShirtCatalog()
	}
	opts := viewer.Options{
		Profile:    p,
		Catalog:    cat,
		Fabrics:    os.DirFS(assetsDir),
		FPS:        targetFPS,
		Background: garment.ColorOr(bgColor, render.RGB(30, 30, 40)),
	}

	if snapshot != "" {
		if _, err := fmt.Sscanf(size, "%dx%d", &opts.Width, &opts.Height); err != nil {
			return fmt.Errorf("size %q: %w", size, err)
		}
		v := viewer.New(opts)
		defer v.Close()
		if err := setup(v, modelPath, design, cat); err != nil {
			return err
		}
		return writeSnapshot(v, snapshot)
	}
	return interactive(opts, modelPath, design, cat)
}

func loadProfile(design *garment.Design) (*profile.Profile, error) {
	if profilePath != "" {
		return profile.Load(profilePath)
	}
	k := kind
	if k == "" && design != nil {
		k = design.Garment
	}
	return profile.ForKind(k)
}

func setup(v *viewer.Viewer, modelPath string, design *garment.Design, cat *garment.Catalog) error {
	if err := v.Load(modelPath); err != nil {
		return err
	}
	if design == nil {
		return nil
	}
	sel, err := design.Selection(cat)
	if err != nil {
		return err
	}
	return v.Apply(sel)
}

// writeSnapshot waits for pending fabric images and the camera before
// encoding a frame.
func writeSnapshot(v *viewer.Viewer, path string) error {
	deadline := time.Now().Add(10 * time.Second)
	for v.Binder().Pending() > 0 && time.Now().Before(deadline) {
		v.Binder().Drain()
		time.Sleep(10 * time.Millisecond)
	}
	if n := v.Binder().Pending(); n > 0 {
		log.Warnf("%d fabric images still loading", n)
	}
	v.Frame(viewer.AnchorDuration)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := nativewebp.Encode(f, v.Snapshot(), nil); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	log.Infof("wrote %s", path)
	return nil
}

func interactive(opts viewer.Options, modelPath string, design *garment.Design, cat *garment.Catalog) error {
	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode
	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	// two pixel rows per cell
	opts.Width, opts.Height = width, height*2
	v := viewer.New(opts)
	if err := setup(v, modelPath, design, cat); err != nil {
		v.Close()
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go forward(ctx, cancel, term, v)

	return v.Run(ctx, func(fb *render.Framebuffer) error {
		fb.Draw(term, uv.Rect(0, 0, fb.Width, fb.Height/2))
		return term.Display()
	})
}

// forward turns terminal input into viewer events.
func forward(ctx context.Context, cancel context.CancelFunc, term *uv.Terminal, v *viewer.Viewer) {
	for {
		var ev uv.Event
		select {
		case <-ctx.Done():
			return
		case e, ok := <-term.Events():
			if !ok {
				cancel()
				return
			}
			ev = e
		}
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			term.Erase()
			term.Resize(ev.Width, ev.Height)
			v.Post(viewer.Resize{Width: ev.Width, Height: ev.Height * 2})
		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "ctrl+c", "q"):
				cancel()
				return
			case ev.MatchString("r"):
				v.Post(viewer.ResetView{})
			case ev.MatchString("m"):
				v.Post(viewer.CycleAnchor{})
			}
		case uv.MouseClickEvent:
			v.Post(viewer.PointerDown{X: ev.X, Y: ev.Y * 2})
		case uv.MouseMotionEvent:
			v.Post(viewer.PointerMove{X: ev.X, Y: ev.Y * 2})
		case uv.MouseReleaseEvent:
			v.Post(viewer.PointerUp{})
		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				v.Post(viewer.Wheel{DeltaY: -100})
			case uv.MouseWheelDown:
				v.Post(viewer.Wheel{DeltaY: 100})
			}
		}
	}
}
