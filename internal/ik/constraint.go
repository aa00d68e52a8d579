// Package ik implements the triangle-chain inverse kinematics solver used to
// drive a hand onto a target position and orientation through a
// shoulder/upper-arm/lower-arm/hand chain, plus the angular constraints that
// keep each joint within an anatomically plausible range.
package ik

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// AngularRange is an inclusive (min, max) pair of angles, in radians unless
// stated otherwise by the caller.
type AngularRange struct {
	Min, Max float32
}

// Constraint restricts the rotations a joint may take. An unconstrained
// joint uses NoConstraint{}; a nil Constraint is not accepted by Solve.
type Constraint interface {
	// Apply clamps rot to the constraint, returning the nearest allowed
	// rotation.
	Apply(rot mgl32.Quat) mgl32.Quat
}

// NoConstraint passes every rotation through unchanged.
type NoConstraint struct{}

func (NoConstraint) Apply(rot mgl32.Quat) mgl32.Quat { return rot }

// HingeConstraint restricts rotation to a single axis, within an angular
// range.
type HingeConstraint struct {
	Axis  mgl32.Vec3
	Range AngularRange
}

func (h HingeConstraint) Apply(rot mgl32.Quat) mgl32.Quat {
	scaled := quat.ScaledAxis(rot)
	angle := scaled.Dot(h.Axis.Normalize())
	angle = clampAngle(angle, h.Range.Min, h.Range.Max)
	return quat.FromAxisAngle(h.Axis, angle)
}

// EulerConstraint decomposes a rotation in a fixed axis order and clamps
// each of the three angles independently, recomposing afterward.
type EulerConstraint struct {
	Order      quat.EulerOrder
	First      AngularRange
	Second     AngularRange
	Third      AngularRange
}

func (e EulerConstraint) Apply(rot mgl32.Quat) mgl32.Quat {
	a, b, c := quat.ToEuler(rot, e.Order)
	a = clampAngle(a, e.First.Min, e.First.Max)
	b = clampAngle(b, e.Second.Min, e.Second.Max)
	c = clampAngle(c, e.Third.Min, e.Third.Max)
	return quat.FromEuler(e.Order, a, b, c)
}

// clampAngle clamps x to [min, max] after re-centering it into the window
// nearest the range's midpoint, so that angles which wrap past +-pi are
// still compared against the intended interval rather than an arbitrarily
// shifted copy of it.
func clampAngle(x, min, max float32) float32 {
	halfSpan := 0.5 * (max - min)
	center := min + halfSpan
	delta := normalizeAnglePi(x - center)
	if delta < -halfSpan {
		delta = -halfSpan
	}
	if delta > halfSpan {
		delta = halfSpan
	}
	return center + delta
}

func normalizeAnglePi(x float32) float32 {
	return normalizeAngle2Pi(x+math.Pi) - math.Pi
}

func normalizeAngle2Pi(x float32) float32 {
	const tau = 2 * math.Pi
	r := float32(math.Mod(float64(x), tau))
	if r < 0 {
		r += tau
	}
	return r
}
