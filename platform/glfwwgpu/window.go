// Package glfwwgpu runs the viewer in a GLFW window presented through a WebGPU surface.
package glfwwgpu

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/prasuchit/amino"
)

type Config struct {
	Width  int
	Height int
	Title  string
	Logger amino.Logger
}

// Window is an amino.Platform. GLFW callbacks feed an event queue that PollEvent drains.
// All methods must be called from the thread that called New.
type Window struct {
	win *glfw.Window
	gpu *gpuState
	log amino.Logger

	queue   []amino.Event
	buttons amino.ButtonMask
	clear   wgpu.Color

	// windowed geometry to restore when leaving fullscreen
	windowed [4]int
}

var _ amino.Platform = &Window{}

var ErrNoWindow = errors.New("glfwwgpu: window is closed")

// New opens the window and its WebGPU surface. It locks the calling goroutine to its OS thread.
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
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU owns the surface, no OpenGL context
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	fbWidth, fbHeight := win.GetFramebufferSize()
	gpu, err := createGpuState(win, fbWidth, fbHeight)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	w := &Window{
		win:   win,
		gpu:   gpu,
		log:   cfg.Logger,
		clear: wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
	}
	w.installCallbacks()
	w.log.Infof("Created window (%dx%d) '%s'", fbWidth, fbHeight, cfg.Title)
	return w, nil
}

func (w *Window) push(ev amino.Event) {
	w.queue = append(w.queue, ev)
}

func (w *Window) installCallbacks() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if k, ok := keyFromGlfw[key]; ok {
			w.push(amino.KeyDownEvent{Key: k})
		}
	})

	w.win.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := buttonFromGlfw[button]
		if !ok {
			return
		}
		pressed := action == glfw.Press
		if pressed {
			w.buttons |= amino.Buttons(b)
		} else {
			w.buttons &^= amino.Buttons(b)
		}
		x, y := win.GetCursorPos()
		w.push(amino.MouseButtonEvent{Button: b, Pressed: pressed, X: x, Y: y})
	})

	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(amino.MouseMotionEvent{X: x, Y: y, Buttons: w.buttons})
	})

	w.win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.push(amino.MouseWheelEvent{Delta: yoff, Buttons: w.buttons})
	})

	// Framebuffer size, not window size: the surface is configured in pixels.
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(amino.ResizeEvent{Width: width, Height: height})
	})

	w.win.SetRefreshCallback(func(_ *glfw.Window) {
		w.push(amino.ExposeEvent{})
	})

	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.push(amino.QuitEvent{})
	})
}

func (w *Window) PumpEvents() {
	glfw.PollEvents()
}

func (w *Window) PollEvent() (amino.Event, bool) {
	if len(w.queue) == 0 {
		return nil, false
	}
	ev := w.queue[0]
	w.queue = w.queue[1:]
	return ev, true
}

func (w *Window) pressed(keys ...glfw.Key) bool {
	for _, k := range keys {
		if w.win.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

func (w *Window) Modifiers() amino.Modifiers {
	return amino.Modifiers{
		Shift:    w.pressed(glfw.KeyLeftShift, glfw.KeyRightShift),
		Ctrl:     w.pressed(glfw.KeyLeftControl, glfw.KeyRightControl),
		Alt:      w.pressed(glfw.KeyLeftAlt, glfw.KeyRightAlt),
		CapsLock: w.pressed(glfw.KeyCapsLock),
	}
}

func (w *Window) CursorPosition() (float64, float64) {
	return w.win.GetCursorPos()
}

func (w *Window) Fullscreen() bool {
	return w.win.GetMonitor() != nil
}

func (w *Window) SetFullscreen(on bool) {
	if on == w.Fullscreen() {
		return
	}
	if !on {
		g := w.windowed
		w.win.SetMonitor(nil, g[0], g[1], g[2], g[3], 0)
		return
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		w.log.Warnf("fullscreen: no primary monitor")
		return
	}
	x, y := w.win.GetPos()
	width, height := w.win.GetSize()
	w.windowed = [4]int{x, y, width, height}
	mode := monitor.GetVideoMode()
	w.win.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
}

func (w *Window) SetViewport(width, height int) {
	w.gpu.resize(width, height)
}

func (w *Window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

// SetClearColor sets the color the next presented frames are cleared to.
func (w *Window) SetClearColor(r, g, b float64) {
	w.clear = wgpu.Color{R: r, G: g, B: b, A: 1.0}
}

func (w *Window) Present() {
	if err := w.gpu.present(w.clear); err != nil {
		w.log.Warnf("present: %v", err)
	}
}

func (w *Window) Close() error {
	if w.win == nil {
		return ErrNoWindow
	}
	w.gpu.release()
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	return nil
}

var keyFromGlfw = map[glfw.Key]amino.Key{
	glfw.KeyKP2:        amino.KeyKP2,
	glfw.KeyKP4:        amino.KeyKP4,
	glfw.KeyKP6:        amino.KeyKP6,
	glfw.KeyKP8:        amino.KeyKP8,
	glfw.KeyKPAdd:      amino.KeyKPPlus,
	glfw.KeyKPSubtract: amino.KeyKPMinus,
	glfw.KeyHome:       amino.KeyHome,
	glfw.KeyF11:        amino.KeyF11,
	glfw.KeyEscape:     amino.KeyEscape,
}

var buttonFromGlfw = map[glfw.MouseButton]amino.MouseButton{
	glfw.MouseButtonLeft:   amino.MouseButtonLeft,
	glfw.MouseButtonRight:  amino.MouseButtonRight,
	glfw.MouseButtonMiddle: amino.MouseButtonMiddle,
}
