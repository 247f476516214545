package amino

import (
	"github.com/go-gl/mathgl/mgl64"
)

// dragScale slows mouse drags relative to key presses and wheel notches.
const dragScale = 0.1

// ViewerState is the mutable state one poll pass works on. The scheduler owns every part of
// it and lends it to the dispatcher for the duration of a pass.
type ViewerState struct {
	Input    *Input
	Camera   *Camera
	Loop     *LoopControl
	Viewport *Viewport
}

type keyAxis int

const (
	axisPitch keyAxis = iota
	axisYaw
	axisDolly
)

type keyBinding struct {
	axis keyAxis
	sign float64
}

var keypadBindings = map[Key]keyBinding{
	KeyKP8:     {axis: axisPitch, sign: 1},
	KeyKP2:     {axis: axisPitch, sign: -1},
	KeyKP6:     {axis: axisYaw, sign: 1},
	KeyKP4:     {axis: axisYaw, sign: -1},
	KeyKPPlus:  {axis: axisDolly, sign: 1},
	KeyKPMinus: {axis: axisDolly, sign: -1},
}

// ClassifyKey maps a key press to a camera motion.
func ClassifyKey(key Key, mods Modifiers, r Ratios) MotionIntent {
	if key == KeyHome {
		return MotionIntent{Kind: MotionHome}
	}
	b, ok := keypadBindings[key]
	if !ok {
		return MotionIntent{}
	}
	switch b.axis {
	case axisPitch:
		if mods.Ctrl {
			return Translate(0, b.sign*r.Scroll, 0)
		}
		return Rotate(b.sign*r.Angle, 0)
	case axisYaw:
		if mods.Ctrl {
			return Translate(b.sign*r.Scroll, 0, 0)
		}
		return Rotate(0, b.sign*r.Angle)
	default:
		// plus moves toward what the camera looks at, down its -Z
		return Translate(0, 0, -b.sign*r.Scroll)
	}
}

// ClassifyDrag maps cursor motion since last to an orbit (left button) or a pan (right button).
// Modifiers are not consulted.
func ClassifyDrag(ev MouseMotionEvent, last mgl64.Vec2, r Ratios) MotionIntent {
	dx := ev.X - last.X()
	dy := ev.Y - last.Y()
	switch {
	case ev.Buttons.Has(MouseButtonLeft):
		return Rotate(-dragScale*r.Angle*dy, -dragScale*r.Angle*dx)
	case ev.Buttons.Has(MouseButtonRight):
		return Translate(-dragScale*r.Scroll*dx, dragScale*r.Scroll*dy, 0)
	}
	return MotionIntent{}
}

type wheelRule struct {
	when   func(m Modifiers, held ButtonMask) bool
	motion func(notches float64, r Ratios) MotionIntent
}

// wheelRules is matched top to bottom; the first rule that applies wins.
var wheelRules = []wheelRule{
	{
		when: func(m Modifiers, held ButtonMask) bool {
			return (m.Ctrl && m.Shift) || held.Has(MouseButtonLeft)
		},
		motion: func(n float64, r Ratios) MotionIntent { return Roll(r.Angle * n) },
	},
	{
		when:   func(m Modifiers, _ ButtonMask) bool { return m.Alt && m.Shift },
		motion: func(n float64, r Ratios) MotionIntent { return Rotate(r.Angle*n, 0) },
	},
	{
		when:   func(m Modifiers, _ ButtonMask) bool { return m.Alt && m.Ctrl },
		motion: func(n float64, r Ratios) MotionIntent { return Rotate(0, r.Angle*n) },
	},
	{
		when:   func(m Modifiers, _ ButtonMask) bool { return m.Ctrl && !m.Alt && !m.Shift },
		motion: func(n float64, r Ratios) MotionIntent { return Translate(r.Scroll*n, 0, 0) },
	},
	{
		when:   func(m Modifiers, _ ButtonMask) bool { return m.Shift && !m.Alt && !m.Ctrl },
		motion: func(n float64, r Ratios) MotionIntent { return Translate(0, r.Scroll*n, 0) },
	},
	{
		when:   func(m Modifiers, _ ButtonMask) bool { return m.None() },
		motion: func(n float64, r Ratios) MotionIntent { return Translate(0, 0, -r.Scroll*n) },
	},
}

// ClassifyWheel maps a wheel turn under the given modifiers to a camera motion.
// Combinations no rule covers, alt alone for instance, are ignored.
func ClassifyWheel(ev MouseWheelEvent, mods Modifiers, r Ratios) MotionIntent {
	for _, rule := range wheelRules {
		if rule.when(mods, ev.Buttons) {
			return rule.motion(ev.Delta, r)
		}
	}
	return MotionIntent{}
}

// Dispatcher turns one poll pass of events into camera and loop updates.
type Dispatcher struct {
	log Logger
}

func NewDispatcher(log Logger) *Dispatcher {
	if log == nil {
		log = NewNopLogger()
	}
	return &Dispatcher{log: log}
}

// Dispatch handles every event of st.Input in order. It clears NeedsRedraw first and sets it
// again when the camera or the window changed.
func (d *Dispatcher) Dispatch(st ViewerState, win WindowControl) {
	in, loop := st.Input, st.Loop
	loop.NeedsRedraw = false

	for _, ev := range in.Events {
		var intent MotionIntent
		switch e := ev.(type) {
		case ResizeEvent:
			st.Viewport.Resize(e.Width, e.Height)
			win.SetViewport(e.Width, e.Height)
			loop.NeedsRedraw = true
		case ExposeEvent:
			loop.NeedsRedraw = true
		case QuitEvent:
			loop.QuitRequested = true
		case KeyDownEvent:
			if e.Key == KeyF11 {
				on := !win.Fullscreen()
				win.SetFullscreen(on)
				d.log.Debugf("fullscreen %v", on)
				continue
			}
			intent = ClassifyKey(e.Key, in.Modifiers, st.Camera.Ratios)
		case MouseButtonEvent:
			in.Cursor = mgl64.Vec2{e.X, e.Y}
		case MouseMotionEvent:
			intent = ClassifyDrag(e, in.Cursor, st.Camera.Ratios)
			in.Cursor = mgl64.Vec2{e.X, e.Y}
		case MouseWheelEvent:
			intent = ClassifyWheel(e, in.Modifiers, st.Camera.Ratios)
		}

		if intent.Kind == MotionNone {
			continue
		}
		d.apply(st.Camera, intent)
		loop.NeedsRedraw = true
	}
}

func (d *Dispatcher) apply(cam *Camera, intent MotionIntent) {
	if intent.Kind == MotionHome {
		cam.GoHome()
		d.log.Debugf("camera home")
		return
	}
	pre, post := Compose(CameraAxes(cam.Pose), intent)
	cam.Fold(pre, post)
	if d.log.DebugEnabled() {
		d.log.Debugf("camera %s: %+v", intent.Kind, cam.Pose)
	}
}
