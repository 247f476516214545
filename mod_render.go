package amino

import (
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/prasuchit/amino/tf"
)

// LoopControl carries the scheduler's two flags. The poll pass resets NeedsRedraw and sets it
// again on change; QuitRequested is terminal.
type LoopControl struct {
	NeedsRedraw   bool
	QuitRequested bool

	Frames    uint64
	IdleTicks uint64
}

// Layers are the auxiliary layer toggles passed through to the renderer.
type Layers struct {
	Visual    bool
	Collision bool
}

// RenderView is what the render callback gets to draw from. It is refreshed once per tick,
// before the callback runs.
type RenderView struct {
	Pose          tf.QuTr
	View          mgl64.Mat4
	Aspect        float64
	Width, Height int
	Layers        Layers
	// Overlay is the HUD image, nil when the HUD is off.
	Overlay *image.RGBA
}

// DrawFunc draws one frame. The platform presents it right after.
type DrawFunc func(view *RenderView)

type frameRenderer struct {
	draw DrawFunc
}

// RenderModule installs the render scheduler: render when something changed, otherwise idle
// for one quantum, and stop the app once a quit was requested.
type RenderModule struct {
	Name   string
	Draw   DrawFunc
	FPS    float64
	Layers Layers
	// Sleep replaces time.Sleep for the idle wait.
	Sleep func(time.Duration)
}

func NewRenderModule(draw DrawFunc, fps float64) *RenderModule {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &RenderModule{
		Name: "callback",
		Draw: draw,
		FPS:  fps,
	}
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	name := m.Name
	if name == "" {
		name = "callback"
	}
	ensureSingleRenderer(app, name)

	draw := m.Draw
	if draw == nil {
		draw = func(*RenderView) {}
	}
	pacer := NewPacer(m.FPS, m.Sleep)
	app.Logger().Debugf("render pacing quantum %v", pacer.Quantum)

	cmd.AddResources(
		&LoopControl{NeedsRedraw: true},
		pacer,
		&RenderView{Layers: m.Layers},
		&frameRenderer{draw: draw},
	)

	app.UseSystem(
		System(publishViewSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(quitSystem).
				InStage(PostUpdate).
				InState(OnExecute(ViewerRunning)),
		)
		app.UseSystem(
			System(shutdownReportSystem).
				InStage(Finale).
				InState(OnEnter(ViewerQuit)),
		)
	}
}

func publishViewSystem(cam *Camera, vp *Viewport, view *RenderView) {
	view.Pose = cam.Pose
	view.View = cam.ViewMatrix()
	view.Aspect = vp.Aspect
	view.Width = vp.Width
	view.Height = vp.Height
}

func renderSystem(loop *LoopControl, pacer *Pacer, s *WindowState, r *frameRenderer, view *RenderView) {
	if !loop.NeedsRedraw {
		pacer.Idle()
		loop.IdleTicks++
		return
	}
	r.draw(view)
	s.platform.Present()
	loop.NeedsRedraw = false
	loop.Frames++
}

func quitSystem(loop *LoopControl, cmd *Commands) {
	if loop.QuitRequested {
		cmd.ChangeState(ViewerQuit)
	}
}

func shutdownReportSystem(loop *LoopControl, t *Time, cmd *Commands) {
	cmd.Logger().Infof("viewer stopped after %v: %d frames, %d idle ticks", t.Elapsed().Round(time.Millisecond), loop.Frames, loop.IdleTicks)
}
