// aminoview opens a window and drives the amino camera from keyboard and mouse.
//
// Controls:
//
//	Left drag         - orbit
//	Right drag        - pan
//	Wheel             - dolly (shift: y, ctrl: x, ctrl+shift: roll, alt+shift: pitch, alt+ctrl: yaw)
//	Keypad 8/2/4/6    - pitch/yaw (ctrl: translate)
//	Keypad +/-        - dolly
//	Home              - reset view
//	F11               - toggle fullscreen
package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prasuchit/amino"
	"github.com/prasuchit/amino/platform/glfwwgpu"
	"github.com/prasuchit/amino/platform/sdlgl"
)

type options struct {
	backend       string
	width         int
	height        int
	title         string
	fps           float64
	angleRatio    float64
	scrollRatio   float64
	showVisual    bool
	showCollision bool
	hud           bool
	capsCtrl      bool
	debug         bool
}

func main() {
	session := uuid.New().String()[:8]
	logger := amino.NewDefaultLogger("aminoview "+session, false)
	if err := newCommand(session, logger).Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// newCommand builds the root command. Errors come back from Execute unprinted; the caller
// reports them once through logger.
func newCommand(session string, logger *amino.DefaultLogger) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "aminoview",
		Short: "Interactive 3D camera viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetDebug(opts.debug)
			return run(opts, session, logger)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.backend, "backend", "glfw", "Window backend (glfw|sdl)")
	f.IntVar(&opts.width, "width", 1280, "Window width")
	f.IntVar(&opts.height, "height", 720, "Window height")
	f.StringVar(&opts.title, "title", "amino", "Window title")
	f.Float64Var(&opts.fps, "fps", amino.DefaultFPS, "Idle poll rate in Hz")
	f.Float64Var(&opts.angleRatio, "angle-ratio", amino.DefaultAngleRatio, "Radians per rotation step")
	f.Float64Var(&opts.scrollRatio, "scroll-ratio", amino.DefaultScrollRatio, "Units per translation step")
	f.BoolVar(&opts.showVisual, "show-visual", true, "Draw the visual layer")
	f.BoolVar(&opts.showCollision, "show-collision", false, "Draw the collision layer")
	f.BoolVar(&opts.hud, "hud", false, "Show the camera readout overlay")
	f.BoolVar(&opts.capsCtrl, "caps-ctrl", true, "Treat caps-lock as ctrl")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	return cmd
}

// clearColorer is implemented by platforms that can tint the frame without a scene renderer.
type clearColorer interface {
	SetClearColor(r, g, b float64)
}

var (
	_ clearColorer = (*glfwwgpu.Window)(nil)
	_ clearColorer = (*sdlgl.Window)(nil)
)

func run(opts options, session string, logger *amino.DefaultLogger) error {
	title := fmt.Sprintf("%s [%s]", opts.title, session)

	platform, err := openPlatform(opts, title, logger)
	if err != nil {
		return err
	}

	app := amino.NewViewer(amino.ViewerConfig{
		Platform:    platform,
		Draw:        demoDraw(platform, logger),
		Logger:      logger,
		FPS:         opts.fps,
		AngleRatio:  opts.angleRatio,
		ScrollRatio: opts.scrollRatio,
		Layers: amino.Layers{
			Visual:    opts.showVisual,
			Collision: opts.showCollision,
		},
		HUD:            opts.hud,
		CapsLockAsCtrl: opts.capsCtrl,
	})
	app.Run()
	return nil
}

func openPlatform(opts options, title string, logger amino.Logger) (amino.Platform, error) {
	switch strings.ToLower(opts.backend) {
	case "glfw", "wgpu":
		return glfwwgpu.New(glfwwgpu.Config{Width: opts.width, Height: opts.height, Title: title, Logger: logger})
	case "sdl", "gl":
		return sdlgl.New(sdlgl.Config{Width: opts.width, Height: opts.height, Title: title, Logger: logger})
	}
	return nil, fmt.Errorf("unknown backend %q (want glfw or sdl)", opts.backend)
}

// demoDraw stands in for a scene renderer: it maps the camera's viewing direction to the
// clear color, so every camera change is visible.
func demoDraw(platform amino.Platform, logger amino.Logger) amino.DrawFunc {
	tint, _ := platform.(clearColorer)
	return func(view *amino.RenderView) {
		fwd := view.Pose.Axis(2).Mul(-1)
		if tint != nil {
			if view.Layers.Visual {
				tint.SetClearColor(channel(fwd[0]), channel(fwd[1]), channel(fwd[2]))
			} else {
				tint.SetClearColor(0.15, 0.15, 0.15)
			}
		}
		if view.Layers.Collision {
			logger.Debugf("collision layer: camera at %.3f", view.Pose.T)
		}
		if view.Overlay != nil {
			logger.Debugf("hud overlay %v", view.Overlay.Bounds().Size())
		}
	}
}

func channel(v float64) float64 {
	return 0.15 + 0.35*(1+math.Max(-1, math.Min(1, v)))
}
