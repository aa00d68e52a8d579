// Package pose stores a humanoid skeleton as local bone transforms and
// derives global (avatar-space) transforms on demand, caching each bone's
// global transform until something upstream of it changes.
package pose

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// Transform is a rigid position/rotation pair.
type Transform struct {
	Pos mgl32.Vec3
	Rot mgl32.Quat
}

// Identity is the zero-translation, zero-rotation transform.
func Identity() Transform {
	return Transform{Rot: mgl32.QuatIdent()}
}

type boneState struct {
	local  Transform
	global Transform
}

// Pose holds one root transform plus one local transform per bone, and
// memoizes global transforms behind a "globalized" bitmask: a bone's cached
// global transform is valid exactly when its bit is set.
type Pose struct {
	root   Transform
	bones  [humanoid.NumBones]boneState
	global humanoid.BoneMask
}

// New returns a Pose with every bone at the identity transform.
func New() *Pose {
	p := &Pose{root: Identity()}
	for i := range p.bones {
		p.bones[i].local = Identity()
	}
	return p
}

// RootTransform returns the pose's root (avatar-space placement) transform.
func (p *Pose) RootTransform() Transform {
	return p.root
}

// SetRootTransform replaces the root transform. Every bone's global
// transform depends on it, so the entire cache is invalidated.
func (p *Pose) SetRootTransform(t Transform) {
	p.root = t
	p.global.Clear()
}

// LocalTransform returns bone's transform relative to its parent (or to the
// root, for bones with no parent).
func (p *Pose) LocalTransform(bone humanoid.Bone) Transform {
	return p.bones[bone].local
}

// SetLocalTransform replaces bone's local transform, invalidating the cached
// global transform of bone and everything it affects.
func (p *Pose) SetLocalTransform(bone humanoid.Bone, t Transform) {
	p.bones[bone].local = t
	p.invalidate(bone)
}

// SetLocalRot replaces bone's local rotation, keeping its local position.
func (p *Pose) SetLocalRot(bone humanoid.Bone, rot mgl32.Quat) {
	t := p.bones[bone].local
	t.Rot = rot
	p.SetLocalTransform(bone, t)
}

// GlobalTransform returns bone's transform in avatar space, computing and
// caching it (and any uncached ancestors) first if necessary.
func (p *Pose) GlobalTransform(bone humanoid.Bone) Transform {
	if p.global.Contains(bone) {
		return p.bones[bone].global
	}

	var parentGlobal Transform
	if parent, ok := bone.Parent(); ok {
		parentGlobal = p.GlobalTransform(parent)
	} else {
		parentGlobal = p.root
	}

	local := p.bones[bone].local
	g := Transform{
		Pos: parentGlobal.Pos.Add(parentGlobal.Rot.Rotate(local.Pos)),
		Rot: quat.Mul(parentGlobal.Rot, local.Rot),
	}

	p.bones[bone].global = g
	p.global.Insert(bone)
	return g
}

// SetGlobalRot sets bone's rotation in avatar space by converting it into
// the equivalent local rotation relative to the bone's current parent
// orientation.
func (p *Pose) SetGlobalRot(bone humanoid.Bone, rot mgl32.Quat) {
	var parentRot mgl32.Quat
	if parent, ok := bone.Parent(); ok {
		parentRot = p.GlobalTransform(parent).Rot
	} else {
		parentRot = p.root.Rot
	}

	local := quat.Mul(quat.Inverse(parentRot), rot)
	p.SetLocalRot(bone, local)
}

// SetGlobalTransform is the position/rotation analogue of SetGlobalRot.
func (p *Pose) SetGlobalTransform(bone humanoid.Bone, t Transform) {
	var parentGlobal Transform
	if parent, ok := bone.Parent(); ok {
		parentGlobal = p.GlobalTransform(parent)
	} else {
		parentGlobal = p.root
	}

	invParentRot := quat.Inverse(parentGlobal.Rot)
	local := Transform{
		Pos: invParentRot.Rotate(t.Pos.Sub(parentGlobal.Pos)),
		Rot: quat.Mul(invParentRot, t.Rot),
	}
	p.SetLocalTransform(bone, local)
}

// invalidate clears the cached global transform of bone and every bone it
// affects (its descendants plus itself).
func (p *Pose) invalidate(bone humanoid.Bone) {
	p.global = p.global.Difference(bone.Affected())
}

