package amino

import (
	"github.com/go-gl/mathgl/mgl64"
)

// InputModule adds the Input resource and the poll system that fills it once per tick.
type InputModule struct {
	// CapsLockAsCtrl makes caps-lock count as ctrl, for keyboards with swapped keys.
	CapsLockAsCtrl bool
}

// Input holds one poll pass worth of input. Cursor is the last recorded cursor position,
// the baseline mouse-drag deltas are measured against.
type Input struct {
	Modifiers Modifiers
	Events    []Event
	Cursor    mgl64.Vec2

	capsLockAsCtrl bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{capsLockAsCtrl: mod.CapsLockAsCtrl}

	var ws *WindowState
	if app.Resource(&ws) {
		x, y := ws.platform.CursorPosition()
		input.Cursor = mgl64.Vec2{x, y}
	}

	cmd.AddResources(input)
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	input.Poll(s.platform)
}

// Poll drains every event the platform has queued. It never blocks.
func (input *Input) Poll(p EventSource) {
	p.PumpEvents()

	mods := p.Modifiers()
	if input.capsLockAsCtrl && mods.CapsLock {
		mods.Ctrl = true
	}
	input.Modifiers = mods

	input.Events = input.Events[:0]
	for {
		ev, ok := p.PollEvent()
		if !ok {
			break
		}
		input.Events = append(input.Events, ev)
	}
}
