package device

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/mathutil"
	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// RotationalConfig holds the (radian- and plain-float-valued) tuning
// parameters for a Rotational technique. Angle fields are already
// radians, converted from configured degrees at load time.
type RotationalConfig struct {
	CrossStart   float32
	CrossGrip    float32
	CrossOut     float32
	CrossRetract float32
	CrossEnd     float32

	TurnStart float32
	TurnGrip  float32
	TurnLift  float32
	TurnOut   float32
	TurnEnd   float32
}

// DefaultRotationalConfig mirrors the tuned defaults: cross-over starts at
// 110 degrees and completes by 250, the turn release starts at 270 and
// completes by 290, each with a 5 degree grip window.
func DefaultRotationalConfig() RotationalConfig {
	deg := float32(math.Pi) / 180
	return RotationalConfig{
		CrossStart:   110 * deg,
		CrossGrip:    5 * deg,
		CrossOut:     0.25,
		CrossRetract: 1.3,
		CrossEnd:     250 * deg,

		TurnStart: 270 * deg,
		TurnGrip:  5 * deg,
		TurnLift:  0.6,
		TurnOut:   0.25,
		TurnEnd:   290 * deg,
	}
}

// Rotational carries the hands through a release/cross-over animation as
// the wheel turns past the neutral range, rather than gluing them rigidly
// to the rim.
type Rotational struct {
	cfg RotationalConfig

	rotationBase   float32
	rotationOffset float32
}

// NewRotational validates cfg and builds a Rotational technique at the
// neutral (zero-rotation) state.
func NewRotational(cfg RotationalConfig) (*Rotational, error) {
	switch {
	case cfg.CrossGrip < 0:
		return nil, fmt.Errorf("device: cross-grip must be at least 0 degrees")
	case cfg.CrossRetract < 0:
		return nil, fmt.Errorf("device: cross-retract must be at least 0")
	case cfg.TurnGrip < 0:
		return nil, fmt.Errorf("device: turn-grip must be at least 0 degrees")
	case cfg.TurnLift < 0:
		return nil, fmt.Errorf("device: turn-lift must be at least 0")
	case cfg.CrossStart <= 0:
		return nil, fmt.Errorf("device: cross-start must be greater than 0 degrees")
	case cfg.CrossEnd <= cfg.CrossStart:
		return nil, fmt.Errorf("device: cross-end must be greater than cross-start")
	case cfg.CrossEnd >= tau:
		return nil, fmt.Errorf("device: cross-end must be less than 360 degrees")
	case cfg.TurnStart <= 0:
		return nil, fmt.Errorf("device: turn-start must be greater than 0 degrees")
	case cfg.TurnEnd <= cfg.TurnStart:
		return nil, fmt.Errorf("device: turn-end must be greater than turn-start")
	case cfg.TurnEnd >= tau:
		return nil, fmt.Errorf("device: turn-end must be less than 360 degrees")
	}

	return &Rotational{cfg: cfg}, nil
}

// SetRotation updates the technique's internal rotation-offset bookkeeping
// from the wheel's current steering angle in degrees.
func (r *Rotational) SetRotation(angleDeg float32) {
	base := r.rotationBase
	offset := angleDeg*math.Pi/180 - base
	wrap := maxf(r.cfg.CrossEnd+r.cfg.CrossGrip, r.cfg.TurnEnd+r.cfg.TurnGrip)

	for offset < -wrap {
		base -= tau
		offset += tau
	}
	for offset > wrap {
		base += tau
		offset -= tau
	}

	r.rotationBase = base
	r.rotationOffset = offset
}

func (r *Rotational) Update(dt float32) {}

func (r *Rotational) PoseForward(f ForwardFunc) {
	leftOpen := r.poseForwardSingle(-r.rotationOffset)
	emitCurlTable(true, leftOpen, f)

	rightOpen := r.poseForwardSingle(r.rotationOffset)
	emitCurlTable(false, rightOpen, f)
}

func (r *Rotational) PoseInverse(w *Wheel, pose PoseReader, f InverseFunc) {
	type limbSpec struct {
		limb                       humanoid.Limb
		shoulder                   humanoid.Bone
		finger                     humanoid.Bone
		posOffset, rotOffset       float32
		lift, retract              float32
		angle, yaw, scale          float32
	}

	leftOff, leftRotOff, leftLift, leftRetract := r.poseInverseSingle(-r.rotationOffset)
	rightOff, rightRotOff, rightLift, rightRetract := r.poseInverseSingle(r.rotationOffset)

	limbs := [2]limbSpec{
		{humanoid.LeftHandLimb, humanoid.LeftUpperArm, humanoid.LeftMiddleDistal, leftOff, leftRotOff, leftLift, leftRetract, 0.5 * tau, 0.25 * tau, 1.0},
		{humanoid.RightHandLimb, humanoid.RightUpperArm, humanoid.RightMiddleDistal, rightOff, rightRotOff, rightLift, rightRetract, 0.0, -0.25 * tau, -1.0},
	}

	for _, l := range limbs {
		posOffset := l.scale * l.posOffset
		rotOffset := l.scale * l.rotOffset

		localPos := mgl32.Vec3{
			w.Radius() * cosf(posOffset+l.angle),
			w.Radius() * sinf(posOffset+l.angle),
			0,
		}

		if l.lift > 0 {
			length := boneChainLengthToLimbEnd(pose, l.limb, l.finger)
			localPos = localPos.Mul(1 + r.cfg.TurnOut*l.lift)
			localPos[2] = -length * l.lift
		}

		if l.retract > 0 {
			out, ok := mathutil.InvLerpChecked(l.retract, 0, 0.25)
			if !ok {
				out = mathutil.InvLerp(l.retract, 1, 0.25)
			}
			out = mathutil.Ease(out, -1.5)
			localPos = localPos.Mul(1 + r.cfg.CrossOut*out)
		}

		globalPos := w.Pos().Add(w.BaseRot().Rotate(localPos))
		yawSign := signf(l.yaw)
		globalRot := quat.Mul(w.BaseRot(), quat.FromEuler(quat.OrderYXZ, l.yaw, l.yaw-yawSign*(rotOffset+l.angle), 0))

		if l.retract > 0 {
			thisShoulderPos, _ := pose.GlobalTransform(l.shoulder)
			forwardDir := w.BaseRot().Rotate(mgl32.Vec3{0, 0, 1})
			reachDir := safeNormalizeV(globalPos.Sub(thisShoulderPos))

			globalRot = quat.Mul(mgl32.QuatSlerp(mgl32.QuatIdent(), quat.RotationArc(forwardDir, reachDir), l.retract), globalRot)

			otherHandLocal := mgl32.Vec3{w.Radius() * cosf(l.angle+0.5*tau), w.Radius() * sinf(l.angle+0.5*tau), 0}
			otherHandPos := w.Pos().Add(w.Rot().Rotate(otherHandLocal))
			otherShoulderPos, _ := pose.GlobalTransform(l.shoulder.Mirror())

			retractPoint := otherShoulderPos.Add(projectOnto(globalPos.Sub(otherShoulderPos), otherHandPos.Sub(otherShoulderPos)))
			retractPoint = lerpVec(retractPoint, otherHandPos, 0.5)
			retractPoint[1] = globalPos[1]

			globalPos = lerpVec(globalPos, retractPoint, l.retract*r.cfg.CrossRetract)
		}

		f(InversePose{Limb: l.limb, Weight: 1.0, Pos: globalPos, Rot: globalRot})
	}
}

// poseForwardSingle returns the finger-curl amount in [0, 1] for a signed
// rotation offset, which PoseForward slerps the curl table by: 1 means the
// hand grips the wheel (fully curled), 0 means the hand is open. It drops
// toward 0 inside the cross and turn release windows and is 1 elsewhere.
func (r *Rotational) poseForwardSingle(offset float32) float32 {
	switch {
	case offset > 0:
		if t, ok := mathutil.InvLerpChecked(offset, r.cfg.CrossStart-r.cfg.CrossGrip, r.cfg.CrossStart+r.cfg.CrossGrip); ok {
			return 1 - mathutil.Ease(t, -2.0)
		}
		if t, ok := mathutil.InvLerpChecked(offset, r.cfg.CrossStart+r.cfg.CrossGrip, r.cfg.CrossEnd-r.cfg.CrossGrip); ok {
			return 0.5 * mathutil.Ease(mathutil.PingPong(t, 0.5), -3.0)
		}
		if t, ok := mathutil.InvLerpChecked(offset, r.cfg.CrossEnd-r.cfg.CrossGrip, r.cfg.CrossEnd+r.cfg.CrossGrip); ok {
			return mathutil.Ease(t, -2.0)
		}

	case offset < 0:
		posOffset := -offset
		if t, ok := mathutil.InvLerpChecked(posOffset, r.cfg.TurnStart-r.cfg.TurnGrip, r.cfg.TurnStart+r.cfg.TurnGrip); ok {
			return 1 - mathutil.Ease(t, -2.0)
		}
		if t, ok := mathutil.InvLerpChecked(posOffset, r.cfg.TurnStart+r.cfg.TurnGrip, r.cfg.TurnEnd-r.cfg.TurnGrip); ok {
			return 0.5 * mathutil.Ease(mathutil.PingPong(t, 0.5), -3.0)
		}
		if t, ok := mathutil.InvLerpChecked(posOffset, r.cfg.TurnEnd-r.cfg.TurnGrip, r.cfg.TurnEnd+r.cfg.TurnGrip); ok {
			return mathutil.Ease(t, -2.0)
		}
	}

	return 1.0
}

// poseInverseSingle returns (posOffset, rotOffset, lift, retract) for a
// signed rotation offset.
func (r *Rotational) poseInverseSingle(offset float32) (posOffset, rotOffset, lift, retract float32) {
	switch {
	case offset > 0:
		if t, ok := mathutil.InvLerpChecked(offset, r.cfg.CrossStart, r.cfg.CrossEnd); ok {
			posOffset = mathutil.Lerp(mathutil.Lerp(t, t, mathutil.Ease(t, 0.5)), r.cfg.CrossStart, r.cfg.CrossEnd)
			rotOffset = mathutil.Lerp(mathutil.Ease(t, -2.0), r.cfg.CrossStart, r.cfg.CrossEnd-tau)
			lift = 0
			retract = r.cfg.CrossRetract * mathutil.Ease(mathutil.PingPong(t, 0.5), -3.0)
			return
		}

	case offset < 0:
		posOff := -offset
		if t, ok := mathutil.InvLerpChecked(posOff, r.cfg.TurnStart, r.cfg.TurnEnd); ok {
			posOffset = offset
			rotOffset = -mathutil.Lerp(mathutil.Ease(t, -3.0), r.cfg.TurnStart, r.cfg.TurnEnd-tau)
			lift = r.cfg.TurnLift * mathutil.Ease(mathutil.PingPong(t, 0.5), -2.0)
			retract = 0
			return
		}
	}

	return offset, offset, 0, 0
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func safeNormalizeV(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() == 0 {
		return v
	}
	return v.Normalize()
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func projectOnto(v, onto mgl32.Vec3) mgl32.Vec3 {
	denom := onto.Dot(onto)
	if denom == 0 {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / denom)
}

// boneChainLengthToLimbEnd sums the local-transform lengths from finger up
// to (but not including) limb's end bone, matching the original's
// "distance along the finger chain back to the wrist" measurement used to
// scale how far a lifted hand pulls back.
func boneChainLengthToLimbEnd(pose PoseReader, limb humanoid.Limb, finger humanoid.Bone) float32 {
	root := limb.EndBone()
	var length float32
	end := finger

	for end != root {
		localPos, _ := pose.LocalTransform(end)
		length += localPos.Len()

		parent, ok := end.Parent()
		if !ok {
			break
		}
		end = parent
	}

	return length
}
