// Package quat adds the small set of quaternion operations the pose and IK
// code needs on top of github.com/go-gl/mathgl/mgl32.Quat: composition,
// conjugate/inverse, axis-angle construction and extraction, the shortest
// rotation arc between two vectors, and Euler decomposition/recomposition in
// the two rotation orders the humanoid rig uses (YXZ and YZX). mgl32 exposes
// Quat's W/V fields, Normalize, Rotate, Mat4, QuatSlerp and QuatIdent
// directly; everything here is built from those.
package quat

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// EulerOrder names the axis order used to decompose/recompose a quaternion
// into three angles, matching the orders the rig's constraints are
// authored in.
type EulerOrder int

const (
	// OrderYXZ applies yaw (Y) first, then pitch (X), then roll (Z):
	// q = Ry(yaw) * Rx(pitch) * Rz(roll).
	OrderYXZ EulerOrder = iota
	// OrderYZX applies yaw (Y) first, then roll (Z), then pitch (X):
	// q = Ry(yaw) * Rz(roll) * Rx(pitch).
	OrderYZX
)

// Mul composes two rotations: Mul(a, b) rotates by b first, then a.
func Mul(a, b mgl32.Quat) mgl32.Quat {
	return mgl32.Quat{
		W: a.W*b.W - a.V.Dot(b.V),
		V: a.V.Cross(b.V).Add(b.V.Mul(a.W)).Add(a.V.Mul(b.W)),
	}
}

// Conjugate returns the conjugate of q (its inverse, when q is unit length).
func Conjugate(q mgl32.Quat) mgl32.Quat {
	return mgl32.Quat{W: q.W, V: q.V.Mul(-1)}
}

// Inverse returns the inverse of q, handling non-unit q.
func Inverse(q mgl32.Quat) mgl32.Quat {
	n := q.W*q.W + q.V.Dot(q.V)
	if n == 0 {
		return mgl32.QuatIdent()
	}
	c := Conjugate(q)
	return mgl32.Quat{W: c.W / n, V: c.V.Mul(1 / n)}
}

// FromAxisAngle builds the rotation of angle radians about axis (which need
// not be normalized).
func FromAxisAngle(axis mgl32.Vec3, angle float32) mgl32.Quat {
	if axis.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	half := angle * 0.5
	s := float32(math.Sin(float64(half)))
	return mgl32.Quat{W: float32(math.Cos(float64(half))), V: axis.Normalize().Mul(s)}
}

// ScaledAxis returns the axis-angle representation of q as a single vector
// whose direction is the rotation axis and whose length is the angle in
// radians, the quaternion analogue of a Rodrigues rotation vector.
func ScaledAxis(q mgl32.Quat) mgl32.Vec3 {
	q = clampW(q)
	angle := 2 * float32(math.Acos(float64(q.W)))
	s := q.V.Len()
	if s < 1e-8 {
		return mgl32.Vec3{}
	}
	return q.V.Mul(angle / s)
}

// AngleBetween returns the angle in radians needed to rotate from a to b,
// i.e. the angle of Mul(Inverse(a), b) (or equivalently Mul(b, Inverse(a))
// measured as an unsigned rotation).
func AngleBetween(a, b mgl32.Quat) float32 {
	d := a.W*b.W + a.V.Dot(b.V)
	if d < -1 {
		d = -1
	}
	if d > 1 {
		d = 1
	}
	if d < 0 {
		d = -d
	}
	return 2 * float32(math.Acos(float64(d)))
}

// RotationArc returns the shortest rotation that carries unit vector from
// onto unit vector to.
func RotationArc(from, to mgl32.Vec3) mgl32.Quat {
	from = from.Normalize()
	to = to.Normalize()
	d := from.Dot(to)

	if d > 0.999999 {
		return mgl32.QuatIdent()
	}
	if d < -0.999999 {
		axis := mgl32.Vec3{1, 0, 0}.Cross(from)
		if axis.LenSqr() < 1e-8 {
			axis = mgl32.Vec3{0, 1, 0}.Cross(from)
		}
		return FromAxisAngle(axis, math.Pi)
	}

	axis := from.Cross(to)
	w := 1 + d
	return mgl32.Quat{W: w, V: axis}.Normalize()
}

// Rotate applies q to v. Thin wrapper kept alongside the rest of this
// package's functions so call sites read uniformly; mgl32.Quat.Rotate does
// the work.
func Rotate(q mgl32.Quat, v mgl32.Vec3) mgl32.Vec3 {
	return q.Rotate(v)
}

// ToEuler decomposes q into three angles (radians) in the given order,
// returned in (first, second, third) application order — i.e. for OrderYXZ
// this is (yaw, pitch, roll); for OrderYZX it's (yaw, roll, pitch).
func ToEuler(q mgl32.Quat, order EulerOrder) (a, b, c float32) {
	m := q.Normalize().Mat4()

	switch order {
	case OrderYXZ:
		// m = Ry(yaw) * Rx(pitch) * Rz(roll)
		sx := clamp(-m.At(1, 2), -1, 1)
		pitch := float32(math.Asin(float64(sx)))
		if math.Abs(float64(sx)) > 0.9999 {
			yaw := float32(math.Atan2(float64(-m.At(2, 0)), float64(m.At(0, 0))))
			return yaw, pitch, 0
		}
		yaw := float32(math.Atan2(float64(m.At(0, 2)), float64(m.At(2, 2))))
		roll := float32(math.Atan2(float64(m.At(1, 0)), float64(m.At(1, 1))))
		return yaw, pitch, roll

	case OrderYZX:
		// m = Ry(yaw) * Rz(roll) * Rx(pitch)
		sz := clamp(m.At(1, 0), -1, 1)
		roll := float32(math.Asin(float64(sz)))
		if math.Abs(float64(sz)) > 0.9999 {
			yaw := float32(math.Atan2(float64(m.At(2, 1)), float64(m.At(2, 2))))
			return yaw, roll, 0
		}
		yaw := float32(math.Atan2(float64(-m.At(2, 0)), float64(m.At(0, 0))))
		pitch := float32(math.Atan2(float64(-m.At(1, 2)), float64(m.At(1, 1))))
		return yaw, roll, pitch
	}

	return 0, 0, 0
}

// FromEuler recomposes a quaternion from three angles (radians) in the given
// order and application order, inverse of ToEuler.
func FromEuler(order EulerOrder, a, b, c float32) mgl32.Quat {
	switch order {
	case OrderYXZ:
		yaw, pitch, roll := a, b, c
		return Mul(FromAxisAngle(mgl32.Vec3{0, 1, 0}, yaw),
			Mul(FromAxisAngle(mgl32.Vec3{1, 0, 0}, pitch), FromAxisAngle(mgl32.Vec3{0, 0, 1}, roll)))
	case OrderYZX:
		yaw, roll, pitch := a, b, c
		return Mul(FromAxisAngle(mgl32.Vec3{0, 1, 0}, yaw),
			Mul(FromAxisAngle(mgl32.Vec3{0, 0, 1}, roll), FromAxisAngle(mgl32.Vec3{1, 0, 0}, pitch)))
	}
	return mgl32.QuatIdent()
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampW(q mgl32.Quat) mgl32.Quat {
	q = q.Normalize()
	q.W = clamp(q.W, -1, 1)
	return q
}
