package amino

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/prasuchit/amino/tf"
)

const (
	DefaultAngleRatio  = 0.05
	DefaultScrollRatio = 0.05
)

// Ratios scale raw input into camera motion.
type Ratios struct {
	// Angle is radians per key press or wheel notch.
	Angle float64
	// Scroll is world units per key press or wheel notch.
	Scroll float64
}

// Camera is the persisted camera pose: camera frame to world frame.
// Only the dispatcher changes it; renderers read it through RenderView.
type Camera struct {
	Pose   tf.QuTr
	Home   tf.QuTr
	Ratios Ratios
}

// DefaultHomePose looks at the world origin from (3, 2, 1.5) with +Z up.
func DefaultHomePose() tf.QuTr {
	return tf.LookAt(mgl64.Vec3{3, 2, 1.5}, mgl64.Vec3{}, tf.UnitZ)
}

func (c *Camera) GoHome() {
	c.Pose = c.Home
}

// Fold applies a composed pair to the pose: pre in the world frame, post in the camera frame.
func (c *Camera) Fold(pre, post tf.QuTr) {
	c.Pose = tf.Chain(pre, c.Pose, post)
}

// ViewMatrix maps world points into the camera frame.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return c.Pose.Inverse().Mat4()
}

// CameraModule installs the Camera resource and the system that feeds it from Input.
type CameraModule struct {
	AngleRatio  float64
	ScrollRatio float64
	// Home overrides DefaultHomePose.
	Home *tf.QuTr
}

// NewCameraModule creates a camera module. Non-positive ratios fall back to the defaults.
func NewCameraModule(angleRatio, scrollRatio float64) *CameraModule {
	if angleRatio <= 0 {
		angleRatio = DefaultAngleRatio
	}
	if scrollRatio <= 0 {
		scrollRatio = DefaultScrollRatio
	}
	return &CameraModule{
		AngleRatio:  angleRatio,
		ScrollRatio: scrollRatio,
	}
}

func (m CameraModule) Install(app *App, cmd *Commands) {
	home := DefaultHomePose()
	if m.Home != nil {
		home = *m.Home
	}
	ratios := Ratios{Angle: m.AngleRatio, Scroll: m.ScrollRatio}
	if ratios.Angle <= 0 {
		ratios.Angle = DefaultAngleRatio
	}
	if ratios.Scroll <= 0 {
		ratios.Scroll = DefaultScrollRatio
	}
	cmd.AddResources(&Camera{Pose: home, Home: home, Ratios: ratios})

	d := &Dispatcher{log: app.Logger()}
	app.UseSystem(
		System(func(input *Input, cam *Camera, loop *LoopControl, vp *Viewport, ws *WindowState) {
			d.Dispatch(ViewerState{Input: input, Camera: cam, Loop: loop, Viewport: vp}, ws.platform)
		}).
			InStage(Update).
			RunAlways(),
	)
}
