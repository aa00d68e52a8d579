package device

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// Glue rigidly attaches both hands to the wheel rim at fixed angles: the
// hands turn with the wheel exactly, with no release or cross-over.
type Glue struct {
	leftHandAngle  float32
	rightHandAngle float32
}

// NewGlue builds a Glue technique. The angles are in the internal radian
// representation produced by ParseWheelPosition.
func NewGlue(leftHandAngle, rightHandAngle float32) *Glue {
	return &Glue{leftHandAngle: leftHandAngle, rightHandAngle: rightHandAngle}
}

func (g *Glue) PoseForward(f ForwardFunc) {
	emitCurlTable(true, 1.0, f)
	emitCurlTable(false, 1.0, f)
}

func (g *Glue) PoseInverse(w *Wheel, pose PoseReader, f InverseFunc) {
	f(gluePose(w, humanoid.LeftHandLimb, g.leftHandAngle, 0.25*tau))
	f(gluePose(w, humanoid.RightHandLimb, g.rightHandAngle, -0.25*tau))
}

func (g *Glue) Update(dt float32) {}

func gluePose(w *Wheel, limb humanoid.Limb, angle, yaw float32) InversePose {
	localPos := mgl32.Vec3{w.Radius() * cosf(angle), w.Radius() * sinf(angle), 0}
	sign := signf(yaw)
	localRot := quat.FromEuler(quat.OrderYXZ, yaw, yaw-sign*angle, 0)

	return InversePose{
		Limb:   limb,
		Weight: 1.0,
		Pos:    w.Pos().Add(w.Rot().Rotate(localPos)),
		Rot:    quat.Mul(w.Rot(), localRot),
	}
}
