package humanoid

import "github.com/go-gl/mathgl/mgl32"

// Limb names one of the two arm chains that ik.Solve drives: shoulder,
// upper arm, lower arm, hand.
type Limb uint8

const (
	LeftHandLimb Limb = iota
	RightHandLimb
)

// Bones returns the four-link chain (shoulder, upper arm, lower arm, hand)
// for this limb, base first.
func (l Limb) Bones() [4]Bone {
	switch l {
	case LeftHandLimb:
		return [4]Bone{LeftShoulder, LeftUpperArm, LeftLowerArm, LeftHand}
	case RightHandLimb:
		return [4]Bone{RightShoulder, RightUpperArm, RightLowerArm, RightHand}
	default:
		panic("humanoid: invalid limb")
	}
}

// EndBone returns the terminal (hand) bone of the limb's chain.
func (l Limb) EndBone() Bone {
	bones := l.Bones()
	return bones[3]
}

// ShoulderBone returns the base (shoulder) bone of the limb's chain.
func (l Limb) ShoulderBone() Bone {
	bones := l.Bones()
	return bones[0]
}

// ElbowAxis returns the preferred bend axis for the limb's elbow, expressed
// in the avatar-local frame: +Y for the left arm, -Y for the right.
func (l Limb) ElbowAxis() mgl32.Vec3 {
	switch l {
	case LeftHandLimb:
		return mgl32.Vec3{0, 1, 0}
	case RightHandLimb:
		return mgl32.Vec3{0, -1, 0}
	default:
		panic("humanoid: invalid limb")
	}
}

// Mirror returns the opposite-side limb.
func (l Limb) Mirror() Limb {
	if l == LeftHandLimb {
		return RightHandLimb
	}
	return LeftHandLimb
}

func (l Limb) String() string {
	switch l {
	case LeftHandLimb:
		return "LeftHand"
	case RightHandLimb:
		return "RightHand"
	default:
		return "Limb(?)"
	}
}
