package amino

// ScriptStep is what a ScriptedPlatform delivers on one pump: the modifier keys held during the
// pass and the events that arrived since the previous one.
type ScriptStep struct {
	Mods   Modifiers
	Events []Event
}

// ScriptedPlatform is an in-memory Platform that replays a fixed script, one step per pump.
// Once the script runs out, pumps deliver nothing.
type ScriptedPlatform struct {
	steps   []ScriptStep
	pending []Event
	mods    Modifiers

	Cursor        [2]float64
	Width, Height int
	IsFullscreen  bool

	Pumps     int
	Presented int
	Viewports [][2]int
	Closed    bool
}

var _ Platform = &ScriptedPlatform{}

func NewScriptedPlatform(width, height int, steps ...ScriptStep) *ScriptedPlatform {
	return &ScriptedPlatform{steps: steps, Width: width, Height: height}
}

// Events is shorthand for a step without modifiers.
func Events(evs ...Event) ScriptStep {
	return ScriptStep{Events: evs}
}

func (p *ScriptedPlatform) PumpEvents() {
	p.Pumps++
	if len(p.steps) == 0 {
		return
	}
	step := p.steps[0]
	p.steps = p.steps[1:]
	p.mods = step.Mods
	p.pending = append(p.pending, step.Events...)
}

func (p *ScriptedPlatform) PollEvent() (Event, bool) {
	if len(p.pending) == 0 {
		return nil, false
	}
	ev := p.pending[0]
	p.pending = p.pending[1:]
	return ev, true
}

// Remaining reports how many script steps have not been pumped yet.
func (p *ScriptedPlatform) Remaining() int {
	return len(p.steps)
}

func (p *ScriptedPlatform) Modifiers() Modifiers {
	return p.mods
}

func (p *ScriptedPlatform) CursorPosition() (float64, float64) {
	return p.Cursor[0], p.Cursor[1]
}

func (p *ScriptedPlatform) Fullscreen() bool {
	return p.IsFullscreen
}

func (p *ScriptedPlatform) SetFullscreen(on bool) {
	p.IsFullscreen = on
}

func (p *ScriptedPlatform) SetViewport(width, height int) {
	p.Width, p.Height = width, height
	p.Viewports = append(p.Viewports, [2]int{width, height})
}

func (p *ScriptedPlatform) Size() (int, int) {
	return p.Width, p.Height
}

func (p *ScriptedPlatform) Present() {
	p.Presented++
}

func (p *ScriptedPlatform) Close() error {
	p.Closed = true
	return nil
}
