package viewer

import "github.com/taigrr/bespoke/pkg/garment"

// Event is input queued for the frame loop.
type Event interface {
	apply(v *Viewer) error
}

// PointerDown presses the pointer at a pixel.
type PointerDown struct{ X, Y int }

// PointerMove moves the pointer to a pixel.
type PointerMove struct{ X, Y int }

// PointerUp releases the pointer.
type PointerUp struct{}

// Wheel scrolls by DeltaY.
type Wheel struct{ DeltaY float64 }

// Resize changes the framebuffer size.
type Resize struct{ Width, Height int }

// ResetView requests the neutral pose.
type ResetView struct{}

// Apply replaces the selection.
type Apply struct{ Selection garment.Selection }

// CycleAnchor moves the monogram to the next anchor, wrapping through
// none.
type CycleAnchor struct{}

func (e PointerDown) apply(v *Viewer) error {
	v.PointerDown(e.X, e.Y)
	return nil
}

func (e PointerMove) apply(v *Viewer) error {
	v.PointerMove(e.X, e.Y)
	return nil
}

func (PointerUp) apply(v *Viewer) error {
	v.PointerUp()
	return nil
}

func (e Wheel) apply(v *Viewer) error {
	v.Wheel(e.DeltaY)
	return nil
}

func (e Resize) apply(v *Viewer) error {
	v.Resize(e.Width, e.Height)
	return nil
}

func (ResetView) apply(v *Viewer) error {
	v.ResetView()
	return nil
}

func (e Apply) apply(v *Viewer) error {
	return v.Apply(e.Selection)
}

func (CycleAnchor) apply(v *Viewer) error {
	sel := v.Selection()
	anchors := garment.Anchors()
	next := anchors[0]
	for i, a := range anchors {
		if a == sel.Monogram.Anchor {
			next = anchors[(i+1)%len(anchors)]
			break
		}
	}
	sel.Monogram.Anchor = next
	return v.Apply(sel)
}
