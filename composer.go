package amino

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/prasuchit/amino/tf"
)

type MotionKind int

const (
	MotionNone MotionKind = iota
	// MotionRotate turns the camera in the world frame, before its current pose.
	MotionRotate
	// MotionTranslate moves the camera along its own axes, after its current pose.
	MotionTranslate
	// MotionRoll turns the camera about its own viewing axis.
	MotionRoll
	// MotionHome puts the camera back on its home pose.
	MotionHome
)

func (k MotionKind) String() string {
	switch k {
	case MotionRotate:
		return "rotate"
	case MotionTranslate:
		return "translate"
	case MotionRoll:
		return "roll"
	case MotionHome:
		return "home"
	}
	return "none"
}

// MotionIntent is what one input event asks of the camera, before it becomes a transform.
type MotionIntent struct {
	Kind MotionKind
	// Delta holds rotation angles in radians: X about the primary axis, Y about the secondary.
	Delta mgl64.Vec2
	// Offset is a translation in the camera's local frame.
	Offset mgl64.Vec3
	// Angle is the roll angle in radians.
	Angle float64
}

func Rotate(aboutPrimary, aboutSecondary float64) MotionIntent {
	return MotionIntent{Kind: MotionRotate, Delta: mgl64.Vec2{aboutPrimary, aboutSecondary}}
}

func Translate(x, y, z float64) MotionIntent {
	return MotionIntent{Kind: MotionTranslate, Offset: mgl64.Vec3{x, y, z}}
}

func Roll(angle float64) MotionIntent {
	return MotionIntent{Kind: MotionRoll, Angle: angle}
}

// Axes are the two unit axes rotations are taken about.
type Axes struct {
	Primary   mgl64.Vec3
	Secondary mgl64.Vec3
}

// CameraAxes returns the camera's current right axis as primary and world up (+Z) as secondary.
func CameraAxes(pose tf.QuTr) Axes {
	return Axes{Primary: pose.Axis(0), Secondary: tf.UnitZ}
}

// Compose turns an intent into the pair folded around the camera pose as pre ∘ pose ∘ post.
// Rotations land in pre: a turn about the secondary axis by Delta.Y composed with a turn about
// the primary axis by Delta.X, the secondary one outermost. Translations and rolls land in post
// and leave pre at identity. Zero deltas, MotionNone and MotionHome give two identities.
func Compose(axes Axes, m MotionIntent) (pre, post tf.QuTr) {
	pre, post = tf.Ident(), tf.Ident()
	switch m.Kind {
	case MotionRotate:
		pre = tf.Mul(
			tf.Rotation(axes.Secondary, m.Delta.Y()),
			tf.Rotation(axes.Primary, m.Delta.X()),
		)
	case MotionTranslate:
		post = tf.Translation(m.Offset)
	case MotionRoll:
		post = tf.ZRotation(m.Angle)
	}
	return pre, post
}
