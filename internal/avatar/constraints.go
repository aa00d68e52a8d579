package avatar

import (
	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/ik"
	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// shoulderRangeFor returns the Euler constraint that keeps a limb's
// shoulder joint within an anatomically plausible cone: left and right are
// mirror images of each other in yaw.
func shoulderRangeFor(limb humanoid.Limb) ik.EulerConstraint {
	if limb == humanoid.LeftHandLimb {
		return ik.EulerConstraint{
			Order:  quat.OrderYZX,
			First:  ik.AngularRange{Min: degToRad(-60), Max: degToRad(135)},
			Second: ik.AngularRange{Min: degToRad(-75), Max: degToRad(90)},
			Third:  ik.AngularRange{Min: degToRad(-45), Max: degToRad(45)},
		}
	}

	return ik.EulerConstraint{
		Order:  quat.OrderYZX,
		First:  ik.AngularRange{Min: degToRad(-135), Max: degToRad(60)},
		Second: ik.AngularRange{Min: degToRad(-75), Max: degToRad(90)},
		Third:  ik.AngularRange{Min: degToRad(-45), Max: degToRad(45)},
	}
}
