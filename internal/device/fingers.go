package device

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/quat"
)

const tau = 2 * math.Pi

// fingerCurl is one bone's fully-curled local rotation in the fixed finger
// table both techniques use: proximal/intermediate/distal rotations around
// local Z of +-0.1*tau / +-0.25*tau / +-0.1*tau for the four non-thumb
// fingers (mirrored left/right); the thumb proximal bone instead rotates via
// Euler YZX (yaw + pitch), and its intermediate/distal bones rotate around
// local Y.
type fingerCurl struct {
	bone humanoid.Bone
	rot  mgl32.Quat
}

func rotZ(angle float32) mgl32.Quat {
	return quat.FromAxisAngle(mgl32.Vec3{0, 0, 1}, angle)
}

func rotY(angle float32) mgl32.Quat {
	return quat.FromAxisAngle(mgl32.Vec3{0, 1, 0}, angle)
}

// curlTable builds the fully-curled finger pose for one hand. sign is +1
// for the left hand, -1 for the right (mirroring the Z-axis curl and the
// thumb's yaw/pitch constants).
func curlTable(left bool) []fingerCurl {
	var sign float32 = 1
	if !left {
		sign = -1
	}

	proximal := sign * 0.1 * tau
	intermediate := sign * 0.25 * tau
	distal := sign * 0.1 * tau

	b := func(leftBone, rightBone humanoid.Bone) humanoid.Bone {
		if left {
			return leftBone
		}
		return rightBone
	}

	table := []fingerCurl{
		{b(humanoid.LeftIndexProximal, humanoid.RightIndexProximal), rotZ(proximal)},
		{b(humanoid.LeftIndexIntermediate, humanoid.RightIndexIntermediate), rotZ(intermediate)},
		{b(humanoid.LeftIndexDistal, humanoid.RightIndexDistal), rotZ(distal)},

		{b(humanoid.LeftMiddleProximal, humanoid.RightMiddleProximal), rotZ(proximal)},
		{b(humanoid.LeftMiddleIntermediate, humanoid.RightMiddleIntermediate), rotZ(intermediate)},
		{b(humanoid.LeftMiddleDistal, humanoid.RightMiddleDistal), rotZ(distal)},

		{b(humanoid.LeftRingProximal, humanoid.RightRingProximal), rotZ(proximal)},
		{b(humanoid.LeftRingIntermediate, humanoid.RightRingIntermediate), rotZ(intermediate)},
		{b(humanoid.LeftRingDistal, humanoid.RightRingDistal), rotZ(distal)},

		{b(humanoid.LeftLittleProximal, humanoid.RightLittleProximal), rotZ(proximal)},
		{b(humanoid.LeftLittleIntermediate, humanoid.RightLittleIntermediate), rotZ(intermediate)},
		{b(humanoid.LeftLittleDistal, humanoid.RightLittleDistal), rotZ(distal)},
	}

	thumbYaw := -sign * 0.02 * tau
	thumbPitch := sign * 0.08 * tau
	table = append(table,
		fingerCurl{b(humanoid.LeftThumbProximal, humanoid.RightThumbProximal), quat.FromEuler(quat.OrderYZX, thumbYaw, 0, thumbPitch)},
		fingerCurl{b(humanoid.LeftThumbIntermediate, humanoid.RightThumbIntermediate), rotY(sign * 0.08 * tau)},
		fingerCurl{b(humanoid.LeftThumbDistal, humanoid.RightThumbDistal), rotY(sign * 0.03 * tau)},
	)

	return table
}

var leftCurlTable = curlTable(true)
var rightCurlTable = curlTable(false)

// emitCurlTable yields the fully-curled finger pose for one hand, each
// bone weighted by amount in [0, 1] (0 = open/identity, 1 = fully curled).
func emitCurlTable(left bool, amount float32, f ForwardFunc) {
	table := rightCurlTable
	if left {
		table = leftCurlTable
	}

	for _, entry := range table {
		r := mgl32.QuatSlerp(mgl32.QuatIdent(), entry.rot, clamp01(amount))
		f(entry.bone, 1.0, ForwardPose{Kind: ForwardLocal, Rot: r})
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
