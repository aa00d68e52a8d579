package ik

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// Settings configures Solve.
type Settings struct {
	ElbowAxis     mgl32.Vec3
	MaxIterations int
	RotTolerance  float32
}

// DefaultSettings mirrors the values used throughout the rig's limb
// chains: ten refinement iterations, a tight rotational tolerance.
func DefaultSettings(elbowAxis mgl32.Vec3) Settings {
	return Settings{
		ElbowAxis:     elbowAxis,
		MaxIterations: 10,
		RotTolerance:  0.001,
	}
}

// Solve drives chain's end link (index 3) toward targetPos/targetRot by
// adjusting the elbow (index 2) via the law of cosines and iteratively
// refining the shoulder (index 1) rotation. It reports the number of
// iterations used and whether the solve converged within RotTolerance; on
// non-convergence the end link is still snapped to the target rotation
// (position is only ever approximate through the rest of the chain; only
// the last link's orientation is ever pinned directly to the target).
func Solve(settings Settings, chain Chain, targetPos mgl32.Vec3, targetRot mgl32.Quat) (iterations int, ok bool) {
	if chain.NumLinks() != 4 {
		return 0, false
	}

	base := chain.Link(0)
	shoulder := chain.Link(1)
	elbow := chain.Link(2)
	end := chain.Link(3)

	shoulderPos := shoulder.Pos()
	shoulderRot := shoulder.Rot()
	shoulderConstraint := shoulder.Constraint()

	elbowPos := elbow.Pos()
	elbowConstraint := elbow.Constraint()

	wristPos := end.Pos()

	targetOffset := targetPos.Sub(shoulderPos)
	targetDist := targetOffset.Len()
	if targetDist < 1e-8 {
		return 0, false
	}
	targetDir := targetOffset.Mul(1 / targetDist)

	upperLength := elbowPos.Sub(shoulderPos).Len()
	lowerLength := wristPos.Sub(elbowPos).Len()
	if upperLength == 0 || lowerLength == 0 {
		return 0, false
	}

	var elbowAngle float32
	if targetDist < upperLength+lowerLength {
		num := upperLength*upperLength + lowerLength*lowerLength - targetDist*targetDist
		den := 2 * upperLength * lowerLength
		elbowAngle = math.Pi - float32(math.Acos(float64(clamp(num/den, -1, 1))))
	}

	elbowRot := elbowConstraint.Apply(quat.FromAxisAngle(settings.ElbowAxis, elbowAngle))
	elbow.SetRot(quat.Mul(shoulderRot, elbowRot))

	baseRot := base.Rot()
	baseInvRot := quat.Inverse(baseRot)

	maxIter := settings.MaxIterations
	if maxIter <= 0 {
		maxIter = 1
	}

	for i := 0; i < maxIter; i++ {
		wristPos = end.Pos()
		wristDir := safeNormalize(wristPos.Sub(shoulderPos))
		idealRot := quat.Mul(quat.RotationArc(wristDir, targetDir), shoulderRot)

		if i == 0 {
			twistAxis := quat.Rotate(idealRot, mgl32.Vec3{0, 1, 0})
			twistTarget := quat.Rotate(targetRot, mgl32.Vec3{0, 1, 0})
			twist := quat.ScaledAxis(quat.RotationArc(twistAxis, twistTarget)).Dot(targetDir)
			idealRot = quat.Mul(quat.FromAxisAngle(targetDir, 0.5*twist), idealRot)
		}

		localIdeal := quat.Mul(baseInvRot, idealRot)
		constrainedLocal := shoulderConstraint.Apply(localIdeal)
		constrainedRot := quat.Mul(baseRot, constrainedLocal)

		shoulderRot = constrainedRot
		shoulder.SetRot(shoulderRot)

		if quat.AngleBetween(idealRot, constrainedRot) <= settings.RotTolerance {
			end.SetRot(targetRot)
			return i + 1, true
		}
	}

	end.SetRot(targetRot)
	return maxIter, false
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() == 0 {
		return v
	}
	return v.Normalize()
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
