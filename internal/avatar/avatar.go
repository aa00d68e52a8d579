// Package avatar fuses the set of configured devices' pose contributions
// onto a Pose already populated from an incoming VMC stream: each device
// claims a share of an arm's end-effector target and a share of individual
// bone rotations, in stable insertion order, and any claimed arm is then
// driven onto its fused target via inverse kinematics.
package avatar

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/device"
	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/ik"
	"github.com/Barinzaya/remote-wheel/internal/pose"
)

// Entry pairs a configured device with the name it was declared under, so
// callers can supply devices in stable configuration order (Go maps have
// no defined iteration order, so the engine must carry this as a slice).
type Entry struct {
	Name   string
	Device device.Device
}

type limbTarget struct {
	pos             mgl32.Vec3
	rot             mgl32.Quat
	remainingWeight float32
	touched         bool
}

// poseReader adapts *pose.Pose to device.PoseReader.
type poseReader struct{ p *pose.Pose }

func (r poseReader) GlobalTransform(b humanoid.Bone) (mgl32.Vec3, mgl32.Quat) {
	t := r.p.GlobalTransform(b)
	return t.Pos, t.Rot
}

func (r poseReader) LocalTransform(b humanoid.Bone) (mgl32.Vec3, mgl32.Quat) {
	t := r.p.LocalTransform(b)
	return t.Pos, t.Rot
}

// Apply blends devices' pose contributions onto p, driving any claimed limb
// onto its fused end-effector target with inverse kinematics.
func Apply(p *pose.Pose, devices []Entry) {
	reader := poseReader{p: p}

	limbs := map[humanoid.Limb]*limbTarget{
		humanoid.LeftHandLimb:  newLimbTarget(p, humanoid.LeftHandLimb),
		humanoid.RightHandLimb: newLimbTarget(p, humanoid.RightHandLimb),
	}

	for _, entry := range devices {
		entry.Device.PoseInverse(reader, func(contribution device.InversePose) {
			target := limbs[contribution.Limb]
			eff := contribution.Weight * target.remainingWeight
			if eff <= 0 {
				return
			}

			target.pos = lerpVec(target.pos, contribution.Pos, eff)
			target.rot = mgl32.QuatSlerp(target.rot, contribution.Rot, eff)
			target.remainingWeight -= eff
			target.touched = true
		})
	}

	for limb, target := range limbs {
		if !target.touched {
			continue
		}
		chain := newLimbChain(p, limb)
		settings := ik.DefaultSettings(limb.ElbowAxis())
		ik.Solve(settings, chain, target.pos, target.rot)
	}

	boneWeights := make(map[humanoid.Bone]float32)

	for _, entry := range devices {
		entry.Device.PoseForward(func(bone humanoid.Bone, weight float32, fp device.ForwardPose) {
			if weight <= 0 {
				return
			}

			remaining, seen := boneWeights[bone]
			if !seen {
				remaining = 1.0
			}

			eff := weight * remaining
			if eff <= 0 {
				return
			}

			applyForwardPose(p, bone, fp, eff)
			boneWeights[bone] = remaining - eff
		})
	}
}

func newLimbTarget(p *pose.Pose, limb humanoid.Limb) *limbTarget {
	end := p.GlobalTransform(limb.EndBone())
	return &limbTarget{pos: end.Pos, rot: end.Rot, remainingWeight: 1.0}
}

func applyForwardPose(p *pose.Pose, bone humanoid.Bone, fp device.ForwardPose, eff float32) {
	switch fp.Kind {
	case device.ForwardGlobal:
		current := p.GlobalTransform(bone).Rot
		if eff >= 1 {
			p.SetGlobalRot(bone, fp.Rot)
			return
		}
		p.SetGlobalRot(bone, mgl32.QuatSlerp(current, fp.Rot, eff))

	default:
		current := p.LocalTransform(bone).Rot
		if eff >= 1 {
			p.SetLocalRot(bone, fp.Rot)
			return
		}
		p.SetLocalRot(bone, mgl32.QuatSlerp(current, fp.Rot, eff))
	}
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
