package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Deg2Rad converts degrees to radians.
const Deg2Rad = math.Pi / 180

// Quat is a rotation stored as a unit quaternion.
//
// The zero value is not a valid rotation; IsZero reports it so callers can
// substitute Identity for unset fields.
type Quat struct {
	X, Y, Z, W float64
}

// Identity returns the rotation that leaves vectors unchanged.
func Identity() Quat {
	return QuatFromMgl(mgl64.QuatIdent())
}

// QuatFromMgl converts an mgl64 quaternion.
func QuatFromMgl(q mgl64.Quat) Quat {
	return Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// Mgl returns q as an mgl64 quaternion.
func (q Quat) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

// AngleAxis returns a rotation of angle degrees around axis.
func AngleAxis(angle float64, axis Vec3) Quat {
	return QuatFromMgl(mgl64.QuatRotate(mgl64.DegToRad(angle), axis.Normalize().Mgl()))
}

// Euler returns a rotation of z degrees around Z, then x degrees around X,
// then y degrees around Y.
//
// mgl64 names the order by multiplication from the left, so Y*X*Z is YXZ.
func Euler(x, y, z float64) Quat {
	return QuatFromMgl(mgl64.AnglesToQuat(
		mgl64.DegToRad(y), mgl64.DegToRad(x), mgl64.DegToRad(z), mgl64.YXZ))
}

// IsZero reports whether q is the zero value.
func (q Quat) IsZero() bool {
	return q == Quat{}
}

// Mul returns the composition q*r: r is applied first, then q.
func (q Quat) Mul(r Quat) Quat {
	return QuatFromMgl(q.Mgl().Mul(r.Mgl()))
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return FromMgl(q.Mgl().Rotate(v.Mgl()))
}

// Inverse returns the opposite rotation.
func (q Quat) Inverse() Quat {
	if q.IsZero() {
		return Identity()
	}
	return QuatFromMgl(q.Mgl().Inverse())
}

// Normalize returns q scaled to unit length.
// The zero quaternion normalizes to Identity.
func (q Quat) Normalize() Quat {
	return QuatFromMgl(q.Mgl().Normalize())
}

// Mat4 returns the homogeneous rotation matrix of q.
func (q Quat) Mat4() mgl64.Mat4 {
	return q.Mgl().Normalize().Mat4()
}

// Forward returns the +Z axis after rotation.
func (q Quat) Forward() Vec3 {
	return q.Rotate(Forward)
}

// Up returns the +Y axis after rotation.
func (q Quat) Up() Vec3 {
	return q.Rotate(Up)
}

// Right returns the +X axis after rotation.
func (q Quat) Right() Vec3 {
	return q.Rotate(Right)
}
