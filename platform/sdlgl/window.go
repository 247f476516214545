// Package sdlgl runs the viewer in an SDL2 window with a double-buffered OpenGL context.
package sdlgl

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/prasuchit/amino"
)

type Config struct {
	Width  int
	Height int
	Title  string
	Logger amino.Logger
}

// Window is an amino.Platform backed by SDL. The GL context is current on the thread that
// called New; the render callback may issue GL calls before Present swaps the buffers.
type Window struct {
	win    *sdl.Window
	ctx    sdl.GLContext
	log    amino.Logger
	queue  []amino.Event
	width  int
	height int
}

var _ amino.Platform = &Window{}

func New(cfg Config) (*Window, error) {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "amino"
	}
	if cfg.Logger == nil {
		cfg.Logger = amino.NewNopLogger()
	}

	runtime.LockOSThread()
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 2)
	sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

	win, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height), sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE|sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create SDL window: %w", err)
	}
	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create GL context: %w", err)
	}
	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to load GL functions: %w", err)
	}

	w, h := win.GLGetDrawableSize()
	gl.Viewport(0, 0, w, h)
	gl.ClearColor(0.1, 0.2, 0.3, 1.0)
	cfg.Logger.Infof("Created window (%dx%d) '%s'", w, h, cfg.Title)
	return &Window{
		win:    win,
		ctx:    ctx,
		log:    cfg.Logger,
		width:  int(w),
		height: int(h),
	}, nil
}

// PumpEvents moves everything SDL has queued into the window's own queue, dropping
// events the viewer has no use for.
func (w *Window) PumpEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if e, ok := w.translate(ev); ok {
			w.queue = append(w.queue, e)
		}
	}
}

func (w *Window) translate(ev sdl.Event) (amino.Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return amino.QuitEvent{}, true
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_EXPOSED:
			return amino.ExposeEvent{}, true
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			w.width, w.height = int(e.Data1), int(e.Data2)
			return amino.ResizeEvent{Width: w.width, Height: w.height}, true
		}
	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return nil, false
		}
		if k, ok := keyFromSdl[e.Keysym.Sym]; ok {
			return amino.KeyDownEvent{Key: k}, true
		}
	case *sdl.MouseButtonEvent:
		b, ok := buttonFromSdl[e.Button]
		if !ok {
			return nil, false
		}
		return amino.MouseButtonEvent{
			Button:  b,
			Pressed: e.State == sdl.PRESSED,
			X:       float64(e.X),
			Y:       float64(e.Y),
		}, true
	case *sdl.MouseMotionEvent:
		return amino.MouseMotionEvent{X: float64(e.X), Y: float64(e.Y), Buttons: buttonMask(e.State)}, true
	case *sdl.MouseWheelEvent:
		_, _, state := sdl.GetMouseState()
		return amino.MouseWheelEvent{Delta: float64(e.Y), Buttons: buttonMask(state)}, true
	}
	return nil, false
}

func (w *Window) PollEvent() (amino.Event, bool) {
	if len(w.queue) == 0 {
		return nil, false
	}
	ev := w.queue[0]
	w.queue = w.queue[1:]
	return ev, true
}

func (w *Window) Modifiers() amino.Modifiers {
	keys := sdl.GetKeyboardState()
	held := func(codes ...sdl.Scancode) bool {
		for _, c := range codes {
			if keys[c] != 0 {
				return true
			}
		}
		return false
	}
	return amino.Modifiers{
		Shift:    held(sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT),
		Ctrl:     held(sdl.SCANCODE_LCTRL, sdl.SCANCODE_RCTRL),
		Alt:      held(sdl.SCANCODE_LALT, sdl.SCANCODE_RALT),
		CapsLock: held(sdl.SCANCODE_CAPSLOCK),
	}
}

func (w *Window) CursorPosition() (float64, float64) {
	x, y, _ := sdl.GetMouseState()
	return float64(x), float64(y)
}

func (w *Window) Fullscreen() bool {
	return w.win.GetFlags()&(sdl.WINDOW_FULLSCREEN|sdl.WINDOW_FULLSCREEN_DESKTOP) != 0
}

func (w *Window) SetFullscreen(on bool) {
	var flags uint32
	if on {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.win.SetFullscreen(flags); err != nil {
		w.log.Warnf("fullscreen: %v", err)
	}
}

// SetViewport resizes the GL viewport to the drawable; a zero size keeps the previous one.
func (w *Window) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width, w.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetClearColor clears the back buffer to the given color. Call it from the render callback,
// before drawing the scene.
func (w *Window) SetClearColor(r, g, b float64) {
	gl.ClearColor(float32(r), float32(g), float32(b), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) Present() {
	w.win.GLSwap()
}

func (w *Window) Close() error {
	sdl.GLDeleteContext(w.ctx)
	err := w.win.Destroy()
	sdl.Quit()
	if err != nil {
		return fmt.Errorf("failed to destroy SDL window: %w", err)
	}
	return nil
}

func buttonMask(state uint32) amino.ButtonMask {
	var m amino.ButtonMask
	if state&sdl.ButtonLMask() != 0 {
		m |= amino.Buttons(amino.MouseButtonLeft)
	}
	if state&sdl.ButtonRMask() != 0 {
		m |= amino.Buttons(amino.MouseButtonRight)
	}
	if state&sdl.ButtonMMask() != 0 {
		m |= amino.Buttons(amino.MouseButtonMiddle)
	}
	return m
}

var keyFromSdl = map[sdl.Keycode]amino.Key{
	sdl.K_KP_2:     amino.KeyKP2,
	sdl.K_KP_4:     amino.KeyKP4,
	sdl.K_KP_6:     amino.KeyKP6,
	sdl.K_KP_8:     amino.KeyKP8,
	sdl.K_KP_PLUS:  amino.KeyKPPlus,
	sdl.K_KP_MINUS: amino.KeyKPMinus,
	sdl.K_HOME:     amino.KeyHome,
	sdl.K_F11:      amino.KeyF11,
	sdl.K_ESCAPE:   amino.KeyEscape,
}

var buttonFromSdl = map[uint8]amino.MouseButton{
	sdl.BUTTON_LEFT:   amino.MouseButtonLeft,
	sdl.BUTTON_RIGHT:  amino.MouseButtonRight,
	sdl.BUTTON_MIDDLE: amino.MouseButtonMiddle,
}
