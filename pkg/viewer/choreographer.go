package viewer

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/math3d"
	"github.com/taigrr/bespoke/pkg/profile"
)

// Pose is a viewing pose: pivot yaw and pitch, camera distance and camera
// height offset.
type Pose = profile.Pose

// Viewport tuning.
const (
	DragSensitivity = 0.01  // radians per pixel
	AutoRotateStep  = 0.005 // radians per frame
	ZoomSensitivity = 0.001
	MinDistance     = 3.0
	MaxDistance     = 15.0

	AnchorDuration = 800 * time.Millisecond
	ResetDuration  = 600 * time.Millisecond
)

var presets = map[garment.Anchor]Pose{
	garment.AnchorCollar:    {Yaw: -0.6, Pitch: 0, Distance: 5, Offset: 0.3},
	garment.AnchorChest:     {Yaw: 0, Pitch: 0, Distance: 6, Offset: 0},
	garment.AnchorSleeve:    {Yaw: -1.0, Pitch: 0.1, Distance: 5.5, Offset: 0},
	garment.AnchorCuffLeft:  {Yaw: 1.0, Pitch: 0.15, Distance: 6, Offset: -0.5},
	garment.AnchorCuffRight: {Yaw: -1.0, Pitch: 0.15, Distance: 6, Offset: -0.5},
	garment.AnchorWaist:     {Yaw: 0, Pitch: 0.15, Distance: 5.5, Offset: -0.5},
	garment.AnchorPlacket:   {Yaw: 0, Pitch: 0, Distance: 5, Offset: 0.2},
}

// Preset returns the camera pose for an anchor.
func Preset(a garment.Anchor) (Pose, bool) {
	p, ok := presets[a]
	return p, ok
}

// Mode is a state of the camera choreographer.
type Mode int

const (
	ModeIdle      Mode = iota // auto-rotating, drag enabled
	ModeDragging              // pointer held down
	ModeLocked                // framing a monogram anchor, input ignored
	ModeResetting             // easing back to the neutral pose
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeLocked:
		return "locked"
	case ModeResetting:
		return "resetting"
	}
	return "unknown"
}

// SceneState is the orientation and interaction state read by the frame.
type SceneState struct {
	Pose
	Locked     bool
	Dragging   bool
	AutoRotate bool
}

// Choreographer owns the viewing pose. Pointer input and anchor
// transitions both write to it and cancel each other; Step advances it once
// per frame.
type Choreographer struct {
	mode    Mode
	pose    Pose
	neutral Pose
	anchor  garment.Anchor

	// transition
	from, to Pose
	elapsed  time.Duration
	duration time.Duration
	moving   bool

	// zoom follows its target through a critically damped spring
	zoomTarget float64
	zoomVel    float64
	spring     harmonica.Spring
}

// NewChoreographer starts idle at the neutral pose. fps sets the zoom
// spring's time step.
func NewChoreographer(neutral Pose, fps int) *Choreographer {
	if neutral.Distance == 0 {
		neutral.Distance = 6
	}
	return &Choreographer{
		mode:       ModeIdle,
		pose:       neutral,
		neutral:    neutral,
		anchor:     garment.AnchorNone,
		zoomTarget: neutral.Distance,
		spring:     harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Mode returns the current state.
func (c *Choreographer) Mode() Mode { return c.mode }

// Pose returns the current pose.
func (c *Choreographer) Pose() Pose { return c.pose }

// Anchor returns the anchor being framed.
func (c *Choreographer) Anchor() garment.Anchor { return c.anchor }

// Transitioning reports whether an eased transition is in flight.
func (c *Choreographer) Transitioning() bool { return c.moving }

// State snapshots the scene state.
func (c *Choreographer) State() SceneState {
	return SceneState{
		Pose:       c.pose,
		Locked:     c.mode == ModeLocked,
		Dragging:   c.mode == ModeDragging,
		AutoRotate: c.mode == ModeIdle && !c.moving,
	}
}

// SelectAnchor frames an anchor, or releases the lock when a is none.
// Reselecting the anchor already framed does nothing.
func (c *Choreographer) SelectAnchor(a garment.Anchor) {
	if !a.Placed() {
		if c.mode == ModeLocked {
			c.anchor = garment.AnchorNone
			c.mode = ModeResetting
			c.start(c.neutral, ResetDuration)
		}
		return
	}
	target, ok := Preset(a)
	if !ok {
		return
	}
	if c.mode == ModeLocked && c.anchor == a {
		return
	}
	c.anchor = a
	c.mode = ModeLocked
	c.start(target, AnchorDuration)
}

// Reset eases back to the neutral pose. Only available while unlocked.
func (c *Choreographer) Reset() bool {
	if c.mode != ModeIdle && c.mode != ModeDragging {
		return false
	}
	c.mode = ModeResetting
	c.start(c.neutral, ResetDuration)
	return true
}

func (c *Choreographer) start(to Pose, d time.Duration) {
	c.from, c.to = c.pose, to
	c.elapsed, c.duration = 0, d
	c.moving = true
	c.zoomVel = 0
}

// BeginDrag starts a drag. It fails while locked or resetting.
func (c *Choreographer) BeginDrag() bool {
	if c.mode != ModeIdle {
		return false
	}
	c.mode = ModeDragging
	return true
}

// Drag rotates by a pointer delta in pixels.
func (c *Choreographer) Drag(dx, dy float64) {
	if c.mode != ModeDragging {
		return
	}
	c.pose.Yaw += dx * DragSensitivity
	c.pose.Pitch = math3d.Clamp(c.pose.Pitch+dy*DragSensitivity, -math.Pi/2, math.Pi/2)
}

// EndDrag releases the pointer and resumes auto-rotation.
func (c *Choreographer) EndDrag() {
	if c.mode == ModeDragging {
		c.mode = ModeIdle
	}
}

// Wheel moves the zoom target proportionally to the current target.
func (c *Choreographer) Wheel(deltaY float64) {
	if c.mode != ModeIdle && c.mode != ModeDragging {
		return
	}
	c.zoomTarget = math3d.Clamp(c.zoomTarget+deltaY*ZoomSensitivity*c.zoomTarget, MinDistance, MaxDistance)
}

// ZoomTarget returns the distance the zoom spring is heading for.
func (c *Choreographer) ZoomTarget() float64 { return c.zoomTarget }

// Step advances one frame of dt.
func (c *Choreographer) Step(dt time.Duration) {
	if c.moving {
		c.elapsed += dt
		p := 1.0
		if c.duration > 0 {
			p = math.Min(1, float64(c.elapsed)/float64(c.duration))
		}
		e := math3d.EaseOutCubic(p)
		c.pose = Pose{
			Yaw:      math3d.Lerp(c.from.Yaw, c.to.Yaw, e),
			Pitch:    math3d.Lerp(c.from.Pitch, c.to.Pitch, e),
			Distance: math3d.Lerp(c.from.Distance, c.to.Distance, e),
			Offset:   math3d.Lerp(c.from.Offset, c.to.Offset, e),
		}
		if p >= 1 {
			c.pose = c.to
			c.moving = false
			c.zoomTarget = c.pose.Distance
			if c.mode == ModeResetting {
				c.mode = ModeIdle
			}
		}
		return
	}
	switch c.mode {
	case ModeIdle:
		c.pose.Yaw += AutoRotateStep
		fallthrough
	case ModeDragging:
		c.pose.Distance, c.zoomVel = c.spring.Update(c.pose.Distance, c.zoomVel, c.zoomTarget)
	}
}
