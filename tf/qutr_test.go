package tf

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul_IdentityIsNeutral(t *testing.T) {
	e := QuTr{R: mgl64.QuatRotate(0.7, mgl64.Vec3{1, 2, 3}.Normalize()), T: mgl64.Vec3{1, -2, 0.5}}

	assert.True(t, Mul(Ident(), e).ApproxEqual(e, Epsilon))
	assert.True(t, Mul(e, Ident()).ApproxEqual(e, Epsilon))
}

func TestMul_AppliesRightOperandFirst(t *testing.T) {
	rot := Rotation(UnitZ, math.Pi/2)
	move := Translation(mgl64.Vec3{1, 0, 0})

	// rotate after moving: (1,0,0) -> (0,1,0)
	p := Mul(rot, move).Apply(mgl64.Vec3{})
	assert.InDelta(t, 0, p[0], Epsilon)
	assert.InDelta(t, 1, p[1], Epsilon)

	// move after rotating: origin stays at (1,0,0)
	p = Mul(move, rot).Apply(mgl64.Vec3{})
	assert.InDelta(t, 1, p[0], Epsilon)
	assert.InDelta(t, 0, p[1], Epsilon)
}

func TestMul_KeepsUnitNorm(t *testing.T) {
	e := Ident()
	step := Rotation(mgl64.Vec3{0.3, -0.4, 0.866}.Normalize(), 0.0123)
	for i := 0; i < 10000; i++ {
		e = Mul(step, e)
	}
	assert.InDelta(t, 1.0, e.R.Len(), 1e-9)
	assert.True(t, e.Valid())
}

func TestRotation_ZeroAngleIsExactIdentity(t *testing.T) {
	r := Rotation(mgl64.Vec3{}, 0)
	assert.Equal(t, Ident(), r)
	assert.True(t, r.Valid())
}

func TestInverse(t *testing.T) {
	e := Chain(Rotation(UnitY, 0.4), Translation(mgl64.Vec3{3, 1, -2}), ZRotation(-1.1))
	assert.True(t, Mul(e, e.Inverse()).IsIdent())
	assert.True(t, Mul(e.Inverse(), e).IsIdent())
}

func TestAxis_ReturnsRotatedBasis(t *testing.T) {
	e := Rotation(UnitZ, math.Pi/2)
	x := e.Axis(0)
	assert.True(t, VecApproxEqual(x, UnitY, Epsilon), "got %v", x)
	z := e.Axis(2)
	assert.True(t, VecApproxEqual(z, UnitZ, Epsilon), "got %v", z)
}

func TestMat4_MatchesApply(t *testing.T) {
	e := Chain(Translation(mgl64.Vec3{1, 2, 3}), Rotation(UnitX, 0.3))
	p := mgl64.Vec3{0.5, -1, 2}
	want := e.Apply(p)
	got := e.Mat4().Mul4x1(p.Vec4(1)).Vec3()
	assert.True(t, VecApproxEqual(got, want, Epsilon), "got %v want %v", got, want)
}

func TestLookAt(t *testing.T) {
	eye := mgl64.Vec3{3, 2, 1.5}
	e := LookAt(eye, mgl64.Vec3{}, UnitZ)
	require.True(t, e.Valid())

	forward := e.Axis(2).Mul(-1)
	want := eye.Mul(-1).Normalize()
	assert.True(t, VecApproxEqual(forward, want, 1e-9), "forward %v want %v", forward, want)
	// right axis stays horizontal for a Z-up look-at
	assert.InDelta(t, 0, e.Axis(0)[2], 1e-9)
	assert.Equal(t, eye, e.T)
}

func TestLookAt_Degenerate(t *testing.T) {
	e := LookAt(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, UnitZ)
	assert.True(t, e.Valid())
	assert.Equal(t, mgl64.QuatIdent(), e.R)
}

func TestValid_RejectsNaN(t *testing.T) {
	e := Ident()
	e.T[1] = math.NaN()
	assert.False(t, e.Valid())
}

func TestApproxEqual_OrientationTolerance(t *testing.T) {
	pose := LookAt(mgl64.Vec3{3, 2, 1.5}, mgl64.Vec3{}, UnitZ)
	turned := func(angle float64) QuTr {
		e := Mul(Rotation(UnitZ, angle), pose)
		e.T = pose.T
		return e
	}

	for _, angle := range []float64{1e-8, 1e-6, 1e-5, 5e-5, 1e-4} {
		assert.False(t, turned(angle).ApproxEqual(pose, Epsilon), "%g rad apart", angle)
	}
	assert.True(t, turned(1e-12).ApproxEqual(pose, Epsilon))

	flipped := pose
	flipped.R = pose.R.Scale(-1)
	assert.True(t, flipped.ApproxEqual(pose, Epsilon))
}

func TestVecApproxEqual_AbsoluteNearZero(t *testing.T) {
	assert.True(t, VecApproxEqual(mgl64.Vec3{1e-12, 0, -1e-12}, mgl64.Vec3{}, Epsilon))
	assert.False(t, VecApproxEqual(mgl64.Vec3{0, 2e-9, 0}, mgl64.Vec3{}, Epsilon))
}
