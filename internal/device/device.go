// Package device models steering-wheel peripherals that claim a share of an
// avatar's hand/finger poses: a Wheel tracks a configured position and
// steering angle, and delegates the actual pose contribution to one of two
// interchangeable techniques (glue or rotational hand engagement).
package device

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
)

// ForwardKind distinguishes whether a forward-pose rotation is expressed in
// the bone's local frame or directly in avatar-global space.
type ForwardKind int

const (
	ForwardLocal ForwardKind = iota
	ForwardGlobal
)

// ForwardPose is one contribution to a bone's rotation, yielded by
// PoseForward.
type ForwardPose struct {
	Kind ForwardKind
	Rot  mgl32.Quat
}

// InversePose is one contribution to a limb's end-effector target, yielded
// by PoseInverse.
type InversePose struct {
	Limb   humanoid.Limb
	Weight float32
	Pos    mgl32.Vec3
	Rot    mgl32.Quat
}

// ForwardFunc receives one (bone, weight, pose) contribution at a time.
type ForwardFunc func(bone humanoid.Bone, weight float32, pose ForwardPose)

// InverseFunc receives one InversePose contribution at a time.
type InverseFunc func(contribution InversePose)

// TrackerFunc receives one auxiliary tracker's name and transform.
type TrackerFunc func(name string, pos mgl32.Vec3, rot mgl32.Quat)

// PoseReader is the subset of pose.Pose a Device needs to compute its
// contributions: it must be able to read bones' current global transforms
// (the shoulder positions used by cross/retract geometry, for instance)
// without depending on the pose package directly; avatar adapts
// *pose.Pose to it.
type PoseReader interface {
	GlobalTransform(bone humanoid.Bone) (pos mgl32.Vec3, rot mgl32.Quat)
	LocalTransform(bone humanoid.Bone) (pos mgl32.Vec3, rot mgl32.Quat)
}

// Device is a steering peripheral that contributes to an avatar's pose.
type Device interface {
	// SetValue updates the device's primary control value (e.g. a wheel's
	// steering angle, in degrees).
	SetValue(value float32)
	// Trackers reports any auxiliary trackers this device publishes.
	Trackers(f TrackerFunc)
	// PoseForward yields direct bone-rotation contributions (fingers,
	// mainly).
	PoseForward(f ForwardFunc)
	// PoseInverse yields end-effector targets for limbs this device
	// engages.
	PoseInverse(pose PoseReader, f InverseFunc)
	// Update advances any time-dependent internal state by dt seconds.
	Update(dt float32, pose PoseReader)
}
