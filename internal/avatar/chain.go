package avatar

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/ik"
	"github.com/Barinzaya/remote-wheel/internal/pose"
)

// limbChain adapts a Pose and a Limb's four bones into an ik.Chain: link 0
// is the shoulder (fixed base frame), link 1 the upper arm (shoulder
// joint), link 2 the lower arm (elbow joint), link 3 the hand (end
// effector).
type limbChain struct {
	p     *pose.Pose
	bones [4]humanoid.Bone
	cons  [4]ik.Constraint
}

func newLimbChain(p *pose.Pose, limb humanoid.Limb) *limbChain {
	elbowAxis := limb.ElbowAxis()
	shoulderRange := shoulderRangeFor(limb)

	return &limbChain{
		p:     p,
		bones: limb.Bones(),
		cons: [4]ik.Constraint{
			ik.NoConstraint{},
			shoulderRange,
			ik.HingeConstraint{Axis: elbowAxis, Range: ik.AngularRange{Min: degToRad(0), Max: degToRad(150)}},
			ik.NoConstraint{},
		},
	}
}

func (c *limbChain) NumLinks() int { return 4 }

func (c *limbChain) Link(index int) ik.Link {
	return chainLink{chain: c, index: index}
}

type chainLink struct {
	chain *limbChain
	index int
}

func (l chainLink) Pos() mgl32.Vec3 {
	return l.chain.p.GlobalTransform(l.chain.bones[l.index]).Pos
}

func (l chainLink) Rot() mgl32.Quat {
	return l.chain.p.GlobalTransform(l.chain.bones[l.index]).Rot
}

func (l chainLink) Constraint() ik.Constraint {
	return l.chain.cons[l.index]
}

func (l chainLink) SetRot(rot mgl32.Quat) {
	l.chain.p.SetGlobalRot(l.chain.bones[l.index], rot)
}

func degToRad(deg float32) float32 {
	return deg * 3.14159265 / 180
}
