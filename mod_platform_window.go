package amino

// EventSource is the non-blocking event queue of a window system.
type EventSource interface {
	// PumpEvents moves whatever the window system has accumulated into the queue.
	PumpEvents()
	// PollEvent pops one queued event; ok is false once the queue is empty.
	PollEvent() (ev Event, ok bool)
	Modifiers() Modifiers
	CursorPosition() (x, y float64)
}

// WindowControl is the part of the window system the dispatcher drives.
type WindowControl interface {
	Fullscreen() bool
	SetFullscreen(on bool)
	SetViewport(width, height int)
}

// Platform is the window and graphics context the viewer runs in. Creating it is the
// platform's business; a failure there is fatal and never reaches the viewer.
type Platform interface {
	EventSource
	WindowControl
	Size() (width, height int)
	// Present shows the frame the render callback just drew.
	Present()
	Close() error
}

// WindowState is the resource that carries the platform shared by the viewer systems.
type WindowState struct {
	platform Platform
}

func (s *WindowState) Platform() Platform {
	return s.platform
}

// PlatformWindowModule installs an already created platform as the WindowState resource, plus
// the Viewport it starts with.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Platform Platform
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if app.hasResource((*WindowState)(nil)) {
		// Already created by another module (or user code); no-op to preserve single-window invariant.
		return
	}
	if m.Platform == nil {
		panic("PlatformWindowModule: Platform is nil")
	}

	w, h := m.Platform.Size()
	app.addResources(&WindowState{platform: m.Platform}, NewViewport(w, h))
	app.Logger().Infof("Using window (%dx%d)", w, h)

	if app.stateful {
		app.UseSystem(
			System(closeWindowSystem).
				InStage(Finale).
				InState(OnExit(ViewerQuit)),
		)
	}
}

func closeWindowSystem(s *WindowState, cmd *Commands) {
	if err := s.platform.Close(); err != nil {
		cmd.Logger().Warnf("closing window: %v", err)
	}
}
