package amino

import (
	"time"

	"github.com/prasuchit/amino/tf"
)

// ViewerConfig collects the knobs of a complete viewer app.
type ViewerConfig struct {
	Platform Platform
	Draw     DrawFunc
	Logger   *DefaultLogger

	FPS         float64
	AngleRatio  float64
	ScrollRatio float64
	Home        *tf.QuTr

	Layers         Layers
	HUD            bool
	CapsLockAsCtrl bool

	// Sleep replaces time.Sleep for the idle wait.
	Sleep func(time.Duration)
}

// NewViewerBuilder returns a builder with the viewer's Running/Quit states and modules in
// install order. More modules may be added before Build.
func NewViewerBuilder(cfg ViewerConfig) *AppBuilder {
	camera := NewCameraModule(cfg.AngleRatio, cfg.ScrollRatio)
	camera.Home = cfg.Home

	render := NewRenderModule(cfg.Draw, cfg.FPS)
	render.Layers = cfg.Layers
	render.Sleep = cfg.Sleep

	b := NewAppBuilder().UseStates(ViewerRunning, ViewerQuit)
	if cfg.Logger != nil {
		b.UseModule(LoggingModule{Logger: cfg.Logger})
	}
	return b.UseModule(
		PlatformWindowModule{Platform: cfg.Platform},
		TimeModule{},
		render,
		InputModule{CapsLockAsCtrl: cfg.CapsLockAsCtrl},
		camera,
		HUDModule{Enabled: cfg.HUD},
	)
}

// NewViewer builds the viewer app; Run blocks until the platform delivers a quit.
func NewViewer(cfg ViewerConfig) *App {
	return NewViewerBuilder(cfg).Build()
}
