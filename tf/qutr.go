package tf

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuTr is a rigid transform: a unit quaternion orientation followed by a translation.
// Applied to a point p it yields R·p + T.
type QuTr struct {
	R mgl64.Quat
	T mgl64.Vec3
}

// Epsilon is the tolerance used by Valid and the Approx helpers.
const Epsilon = 1e-9

var (
	// UnitX, UnitY and UnitZ are the basis axes. UnitZ is the viewer's world "up".
	UnitX = mgl64.Vec3{1, 0, 0}
	UnitY = mgl64.Vec3{0, 1, 0}
	UnitZ = mgl64.Vec3{0, 0, 1}
)

func Ident() QuTr {
	return QuTr{R: mgl64.QuatIdent()}
}

func Translation(v mgl64.Vec3) QuTr {
	return QuTr{R: mgl64.QuatIdent(), T: v}
}

// Rotation returns a pure rotation of angle radians about axis.
// A zero angle returns the exact identity, whatever the axis.
func Rotation(axis mgl64.Vec3, angle float64) QuTr {
	if angle == 0 {
		return Ident()
	}
	return QuTr{R: mgl64.QuatRotate(angle, axis).Normalize()}
}

// ZRotation rotates about the local Z axis.
func ZRotation(angle float64) QuTr {
	return Rotation(UnitZ, angle)
}

// Mul composes a then b: the result maps points first through b, then through a.
// The orientation is renormalized after every product.
func Mul(a, b QuTr) QuTr {
	return QuTr{
		R: a.R.Mul(b.R).Normalize(),
		T: a.R.Rotate(b.T).Add(a.T),
	}
}

// Chain composes left to right: Chain(a, b, c) == Mul(Mul(a, b), c).
func Chain(first QuTr, rest ...QuTr) QuTr {
	out := first
	for _, e := range rest {
		out = Mul(out, e)
	}
	return out
}

func (e QuTr) Inverse() QuTr {
	inv := e.R.Conjugate()
	return QuTr{R: inv, T: inv.Rotate(e.T).Mul(-1)}
}

func (e QuTr) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return e.R.Rotate(p).Add(e.T)
}

// Axis returns column i of the rotation, i.e. the local basis axis i expressed in the parent frame.
func (e QuTr) Axis(i int) mgl64.Vec3 {
	switch i {
	case 0:
		return e.R.Rotate(UnitX)
	case 1:
		return e.R.Rotate(UnitY)
	default:
		return e.R.Rotate(UnitZ)
	}
}

func (e QuTr) IsIdent() bool {
	return e.ApproxEqual(Ident(), Epsilon)
}

// Valid reports whether e has a unit quaternion and finite components.
func (e QuTr) Valid() bool {
	for _, v := range [...]float64{e.R.W, e.R.V[0], e.R.V[1], e.R.V[2], e.T[0], e.T[1], e.T[2]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(e.R.Len()-1) <= Epsilon
}

// ApproxEqual reports whether every quaternion component (up to the sign of the whole
// quaternion) and every translation component of e is within eps of o's.
func (e QuTr) ApproxEqual(o QuTr, eps float64) bool {
	return SameOrientation(e.R, o.R, eps) && VecApproxEqual(e.T, o.T, eps)
}

// SameOrientation compares a to b and to -b component by component; q and -q are the same rotation.
func SameOrientation(a, b mgl64.Quat, eps float64) bool {
	return quatWithin(a, b, eps) || quatWithin(a, b.Scale(-1), eps)
}

func quatWithin(a, b mgl64.Quat, eps float64) bool {
	return math.Abs(a.W-b.W) <= eps && VecApproxEqual(a.V, b.V, eps)
}

// VecApproxEqual compares with an absolute tolerance per component. mgl64's ApproxEqualThreshold
// is relative and collapses to eps² next to zero.
func VecApproxEqual(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Mat4 returns the homogeneous matrix of e.
func (e QuTr) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(e.T[0], e.T[1], e.T[2]).Mul4(e.R.Mat4())
}

// LookAt builds the camera-to-world pose of a camera at eye looking at center.
// The camera looks down its local -Z with local +Y toward up, the OpenGL convention.
// Degenerate input (eye == center, or up parallel to the view) yields a translation only.
func LookAt(eye, center, up mgl64.Vec3) QuTr {
	f := center.Sub(eye)
	if f.Len() == 0 {
		return Translation(eye)
	}
	f = f.Normalize()
	r := f.Cross(up)
	if r.Len() < Epsilon {
		return Translation(eye)
	}
	r = r.Normalize()
	u := r.Cross(f)
	rot := mgl64.Mat3FromCols(r, u, f.Mul(-1))
	return QuTr{R: mgl64.Mat4ToQuat(rot.Mat4()).Normalize(), T: eye}
}
