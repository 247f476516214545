package amino

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasuchit/amino/tf"
)

const poseEpsilon = 1e-9

type dispatchFixture struct {
	d   *Dispatcher
	st  ViewerState
	win *ScriptedPlatform
}

func newDispatchFixture(pose tf.QuTr, r Ratios) *dispatchFixture {
	return &dispatchFixture{
		d: NewDispatcher(nil),
		st: ViewerState{
			Input:    &Input{},
			Camera:   &Camera{Pose: pose, Home: DefaultHomePose(), Ratios: r},
			Loop:     &LoopControl{},
			Viewport: NewViewport(800, 600),
		},
		win: NewScriptedPlatform(800, 600),
	}
}

func (f *dispatchFixture) pass(mods Modifiers, evs ...Event) {
	f.st.Input.Modifiers = mods
	f.st.Input.Events = evs
	f.d.Dispatch(f.st, f.win)
}

func (f *dispatchFixture) pose() tf.QuTr {
	return f.st.Camera.Pose
}

func TestDispatch_HomeThenPitchAndBack(t *testing.T) {
	f := newDispatchFixture(tf.Ident(), Ratios{Angle: 0.1, Scroll: 0.05})
	home := DefaultHomePose()

	f.pass(Modifiers{}, KeyDownEvent{Key: KeyHome})
	require.True(t, f.pose().ApproxEqual(home, poseEpsilon))
	assert.True(t, f.st.Loop.NeedsRedraw)

	right := home.Axis(0)
	f.pass(Modifiers{}, KeyDownEvent{Key: KeyKP8})
	want := mgl64.QuatRotate(0.1, right).Mul(home.R)
	assert.True(t, tf.SameOrientation(f.pose().R, want, poseEpsilon), "got %v want %v", f.pose().R, want)

	rel := f.pose().R.Mul(home.R.Conjugate())
	assert.InDelta(t, 0.1, 2*math.Acos(math.Min(1, math.Abs(rel.W))), 1e-9)

	f.pass(Modifiers{}, KeyDownEvent{Key: KeyKP2})
	assert.True(t, f.pose().ApproxEqual(home, poseEpsilon), "got %+v", f.pose())
}

func TestDispatch_HomeIgnoresHistory(t *testing.T) {
	f := newDispatchFixture(tf.Ident(), Ratios{Angle: 0.05, Scroll: 0.05})
	f.pass(Modifiers{Ctrl: true}, KeyDownEvent{Key: KeyKP6}, MouseWheelEvent{Delta: 3})
	f.pass(Modifiers{}, MouseButtonEvent{Button: MouseButtonLeft, Pressed: true, X: 1, Y: 1},
		MouseMotionEvent{X: 40, Y: -12, Buttons: Buttons(MouseButtonLeft)})
	f.pass(Modifiers{}, KeyDownEvent{Key: KeyHome})
	assert.Equal(t, DefaultHomePose(), f.pose())
}

func TestDispatch_WheelModifierRouting(t *testing.T) {
	r := Ratios{Angle: 0.05, Scroll: 0.05}
	cases := []struct {
		name    string
		mods    Modifiers
		wantT   mgl64.Vec3
		rotates bool
	}{
		{name: "none dollies", mods: Modifiers{}, wantT: mgl64.Vec3{0, 0, -0.05}},
		{name: "ctrl moves x", mods: Modifiers{Ctrl: true}, wantT: mgl64.Vec3{0.05, 0, 0}},
		{name: "shift moves y", mods: Modifiers{Shift: true}, wantT: mgl64.Vec3{0, 0.05, 0}},
		{name: "alt+shift pitches", mods: Modifiers{Alt: true, Shift: true}, rotates: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newDispatchFixture(tf.Ident(), r)
			f.pass(tc.mods, MouseWheelEvent{Delta: 1})
			got := f.pose()

			assert.True(t, tf.VecApproxEqual(got.T, tc.wantT, poseEpsilon), "translation %v", got.T)
			if tc.rotates {
				want := mgl64.QuatRotate(0.05, tf.UnitX)
				assert.True(t, tf.SameOrientation(got.R, want, poseEpsilon), "rotation %v", got.R)
			} else {
				assert.True(t, tf.SameOrientation(got.R, mgl64.QuatIdent(), poseEpsilon), "rotation %v", got.R)
			}
			assert.True(t, f.st.Loop.NeedsRedraw)
		})
	}
}

func TestClassifyWheel_Table(t *testing.T) {
	r := Ratios{Angle: 2, Scroll: 3}
	left := Buttons(MouseButtonLeft)

	assert.Equal(t, Roll(2), ClassifyWheel(MouseWheelEvent{Delta: 1, Buttons: left}, Modifiers{}, r))
	assert.Equal(t, Roll(-2), ClassifyWheel(MouseWheelEvent{Delta: -1}, Modifiers{Ctrl: true, Shift: true}, r))
	// ctrl+shift wins over alt
	assert.Equal(t, Roll(2), ClassifyWheel(MouseWheelEvent{Delta: 1}, Modifiers{Ctrl: true, Shift: true, Alt: true}, r))
	assert.Equal(t, Rotate(2, 0), ClassifyWheel(MouseWheelEvent{Delta: 1}, Modifiers{Alt: true, Shift: true}, r))
	assert.Equal(t, Rotate(0, 2), ClassifyWheel(MouseWheelEvent{Delta: 1}, Modifiers{Alt: true, Ctrl: true}, r))
	assert.Equal(t, Translate(3, 0, 0), ClassifyWheel(MouseWheelEvent{Delta: 1}, Modifiers{Ctrl: true}, r))
	assert.Equal(t, Translate(0, 3, 0), ClassifyWheel(MouseWheelEvent{Delta: 1}, Modifiers{Shift: true}, r))
	assert.Equal(t, Translate(0, 0, -3), ClassifyWheel(MouseWheelEvent{Delta: 1}, Modifiers{}, r))
	assert.Equal(t, MotionNone, ClassifyWheel(MouseWheelEvent{Delta: 1}, Modifiers{Alt: true}, r).Kind)
}

func TestClassifyKey_Table(t *testing.T) {
	r := Ratios{Angle: 2, Scroll: 3}
	ctrl := Modifiers{Ctrl: true}

	assert.Equal(t, Rotate(2, 0), ClassifyKey(KeyKP8, Modifiers{}, r))
	assert.Equal(t, Rotate(-2, 0), ClassifyKey(KeyKP2, Modifiers{}, r))
	assert.Equal(t, Rotate(0, 2), ClassifyKey(KeyKP6, Modifiers{}, r))
	assert.Equal(t, Rotate(0, -2), ClassifyKey(KeyKP4, Modifiers{}, r))
	assert.Equal(t, Translate(0, 3, 0), ClassifyKey(KeyKP8, ctrl, r))
	assert.Equal(t, Translate(0, -3, 0), ClassifyKey(KeyKP2, ctrl, r))
	assert.Equal(t, Translate(3, 0, 0), ClassifyKey(KeyKP6, ctrl, r))
	assert.Equal(t, Translate(-3, 0, 0), ClassifyKey(KeyKP4, ctrl, r))
	assert.Equal(t, Translate(0, 0, -3), ClassifyKey(KeyKPPlus, Modifiers{Shift: true}, r))
	assert.Equal(t, Translate(0, 0, 3), ClassifyKey(KeyKPMinus, ctrl, r))
	assert.Equal(t, MotionHome, ClassifyKey(KeyHome, Modifiers{Alt: true}, r).Kind)
	assert.Equal(t, MotionNone, ClassifyKey(KeyEscape, Modifiers{}, r).Kind)
}

func TestDispatch_OrbitDragIsReversible(t *testing.T) {
	f := newDispatchFixture(DefaultHomePose(), Ratios{Angle: 0.05, Scroll: 0.05})
	start := f.pose()
	left := Buttons(MouseButtonLeft)

	f.pass(Modifiers{},
		MouseButtonEvent{Button: MouseButtonLeft, Pressed: true, X: 100, Y: 100},
		MouseMotionEvent{X: 130, Y: 80, Buttons: left},
	)
	require.False(t, f.pose().ApproxEqual(start, 1e-6), "drag should move the camera")

	f.pass(Modifiers{}, MouseMotionEvent{X: 100, Y: 100, Buttons: left})
	assert.True(t, f.pose().ApproxEqual(start, poseEpsilon), "got %+v want %+v", f.pose(), start)
}

func TestDispatch_PanDragIsReversible(t *testing.T) {
	f := newDispatchFixture(DefaultHomePose(), Ratios{Angle: 0.05, Scroll: 0.05})
	start := f.pose()
	right := Buttons(MouseButtonRight)

	f.pass(Modifiers{},
		MouseButtonEvent{Button: MouseButtonRight, Pressed: true, X: 10, Y: 10},
		MouseMotionEvent{X: 25, Y: -5, Buttons: right},
	)
	moved := f.pose()
	assert.True(t, tf.SameOrientation(moved.R, start.R, poseEpsilon), "pan must not rotate")
	assert.False(t, tf.VecApproxEqual(moved.T, start.T, 1e-6))

	// local offset is (-0.1*0.05*15, 0.1*0.05*-15, 0)
	local := start.Inverse().Apply(moved.T)
	assert.True(t, tf.VecApproxEqual(local, mgl64.Vec3{-0.075, -0.075, 0}, poseEpsilon), "local offset %v", local)

	f.pass(Modifiers{}, MouseMotionEvent{X: 10, Y: 10, Buttons: right})
	assert.True(t, f.pose().ApproxEqual(start, poseEpsilon))
}

func TestDispatch_CursorBaseline(t *testing.T) {
	f := newDispatchFixture(DefaultHomePose(), Ratios{Angle: 0.05, Scroll: 0.05})
	start := f.pose()

	// hover without buttons still records the cursor
	f.pass(Modifiers{}, MouseMotionEvent{X: 500, Y: 500})
	assert.Equal(t, mgl64.Vec2{500, 500}, f.st.Input.Cursor)
	assert.False(t, f.st.Loop.NeedsRedraw)

	f.pass(Modifiers{},
		MouseButtonEvent{Button: MouseButtonLeft, Pressed: true, X: 50, Y: 60},
		MouseMotionEvent{X: 50, Y: 60, Buttons: Buttons(MouseButtonLeft)},
	)
	assert.True(t, f.pose().ApproxEqual(start, poseEpsilon))
	assert.Equal(t, mgl64.Vec2{50, 60}, f.st.Input.Cursor)
}

func TestDispatch_ZeroDeltasLeavePoseUnchanged(t *testing.T) {
	f := newDispatchFixture(DefaultHomePose(), Ratios{Angle: 0.05, Scroll: 0.05})
	start := f.pose()

	f.pass(Modifiers{}, MouseWheelEvent{Delta: 0})
	f.pass(Modifiers{Alt: true, Shift: true}, MouseWheelEvent{Delta: 0})
	f.pass(Modifiers{Ctrl: true, Shift: true}, MouseWheelEvent{Delta: 0})
	f.pass(Modifiers{}, MouseMotionEvent{X: 0, Y: 0, Buttons: Buttons(MouseButtonLeft)})

	assert.True(t, f.pose().ApproxEqual(start, 1e-15), "got %+v", f.pose())
}

func TestDispatch_UnitNormAfterManyRotations(t *testing.T) {
	f := newDispatchFixture(DefaultHomePose(), Ratios{Angle: 0.05, Scroll: 0.05})
	left := Buttons(MouseButtonLeft)
	for i := 0; i < 2000; i++ {
		x := 300 + 200*math.Sin(float64(i)*0.37)
		y := 300 + 150*math.Cos(float64(i)*0.21)
		f.pass(Modifiers{}, MouseMotionEvent{X: x, Y: y, Buttons: left})
		f.pass(Modifiers{Ctrl: true, Shift: true}, MouseWheelEvent{Delta: 1})
	}
	assert.InDelta(t, 1.0, f.pose().R.Len(), 1e-9)
	assert.True(t, f.pose().Valid())
}

func TestDispatch_WindowEvents(t *testing.T) {
	f := newDispatchFixture(DefaultHomePose(), Ratios{Angle: 0.05, Scroll: 0.05})
	start := f.pose()

	f.pass(Modifiers{}, ResizeEvent{Width: 800, Height: 400})
	assert.Equal(t, 2.0, f.st.Viewport.Aspect)
	assert.Equal(t, [][2]int{{800, 400}}, f.win.Viewports)
	assert.True(t, f.st.Loop.NeedsRedraw)

	f.pass(Modifiers{}, ResizeEvent{Width: 800, Height: 0})
	assert.Equal(t, 2.0, f.st.Viewport.Aspect)

	f.pass(Modifiers{})
	assert.False(t, f.st.Loop.NeedsRedraw)

	f.pass(Modifiers{}, ExposeEvent{})
	assert.True(t, f.st.Loop.NeedsRedraw)

	f.pass(Modifiers{}, KeyDownEvent{Key: KeyF11})
	assert.True(t, f.win.IsFullscreen)
	assert.False(t, f.st.Loop.NeedsRedraw)
	f.pass(Modifiers{}, KeyDownEvent{Key: KeyF11})
	assert.False(t, f.win.IsFullscreen)

	assert.False(t, f.st.Loop.QuitRequested)
	f.pass(Modifiers{}, QuitEvent{})
	assert.True(t, f.st.Loop.QuitRequested)

	assert.Equal(t, start, f.pose())
}

type unknownEvent struct{}

func (unknownEvent) isEvent() {}

func TestDispatch_IgnoresUnknownInput(t *testing.T) {
	f := newDispatchFixture(DefaultHomePose(), Ratios{Angle: 0.05, Scroll: 0.05})
	start := f.pose()

	f.pass(Modifiers{}, unknownEvent{}, KeyDownEvent{Key: KeyEscape}, KeyDownEvent{Key: KeyUnknown})
	f.pass(Modifiers{Alt: true}, MouseWheelEvent{Delta: 2})
	f.pass(Modifiers{}, MouseMotionEvent{X: 9, Y: 9, Buttons: Buttons(MouseButtonMiddle)})

	assert.Equal(t, start, f.pose())
	assert.False(t, f.st.Loop.NeedsRedraw)
	assert.False(t, f.st.Loop.QuitRequested)
}
