// Package humanoid defines the fixed 55-bone humanoid taxonomy shared by
// the pose store, the IK solver, and the VMC wire codec: bone identities,
// parent/child relations packed as bitmasks, and left/right mirroring.
package humanoid

import "fmt"

// Bone identifies one bone of the fixed 55-bone humanoid skeleton. Its
// integer value is the bone's ordinal and must never be sent on the wire;
// only Bone.Name()/ParseBone reach the VMC codec.
type Bone uint8

const (
	Hips Bone = iota
	LeftUpperLeg
	RightUpperLeg
	LeftLowerLeg
	RightLowerLeg
	LeftFoot
	RightFoot
	Spine
	Chest
	UpperChest
	Neck
	Head
	LeftShoulder
	RightShoulder
	LeftUpperArm
	RightUpperArm
	LeftLowerArm
	RightLowerArm
	LeftHand
	RightHand
	LeftToes
	RightToes
	LeftEye
	RightEye
	Jaw
	LeftThumbProximal
	LeftThumbIntermediate
	LeftThumbDistal
	LeftIndexProximal
	LeftIndexIntermediate
	LeftIndexDistal
	LeftMiddleProximal
	LeftMiddleIntermediate
	LeftMiddleDistal
	LeftRingProximal
	LeftRingIntermediate
	LeftRingDistal
	LeftLittleProximal
	LeftLittleIntermediate
	LeftLittleDistal
	RightThumbProximal
	RightThumbIntermediate
	RightThumbDistal
	RightIndexProximal
	RightIndexIntermediate
	RightIndexDistal
	RightMiddleProximal
	RightMiddleIntermediate
	RightMiddleDistal
	RightRingProximal
	RightRingIntermediate
	RightRingDistal
	RightLittleProximal
	RightLittleIntermediate
	RightLittleDistal

	// NumBones is the total number of bones in the taxonomy.
	NumBones = int(RightLittleDistal) + 1
)

var boneNames = [NumBones]string{
	Hips:                    "Hips",
	LeftUpperLeg:            "LeftUpperLeg",
	RightUpperLeg:           "RightUpperLeg",
	LeftLowerLeg:            "LeftLowerLeg",
	RightLowerLeg:           "RightLowerLeg",
	LeftFoot:                "LeftFoot",
	RightFoot:               "RightFoot",
	Spine:                   "Spine",
	Chest:                   "Chest",
	UpperChest:              "UpperChest",
	Neck:                    "Neck",
	Head:                    "Head",
	LeftShoulder:            "LeftShoulder",
	RightShoulder:           "RightShoulder",
	LeftUpperArm:            "LeftUpperArm",
	RightUpperArm:           "RightUpperArm",
	LeftLowerArm:            "LeftLowerArm",
	RightLowerArm:           "RightLowerArm",
	LeftHand:                "LeftHand",
	RightHand:               "RightHand",
	LeftToes:                "LeftToes",
	RightToes:               "RightToes",
	LeftEye:                 "LeftEye",
	RightEye:                "RightEye",
	Jaw:                     "Jaw",
	LeftThumbProximal:       "LeftThumbProximal",
	LeftThumbIntermediate:   "LeftThumbIntermediate",
	LeftThumbDistal:         "LeftThumbDistal",
	LeftIndexProximal:       "LeftIndexProximal",
	LeftIndexIntermediate:   "LeftIndexIntermediate",
	LeftIndexDistal:         "LeftIndexDistal",
	LeftMiddleProximal:      "LeftMiddleProximal",
	LeftMiddleIntermediate:  "LeftMiddleIntermediate",
	LeftMiddleDistal:        "LeftMiddleDistal",
	LeftRingProximal:        "LeftRingProximal",
	LeftRingIntermediate:    "LeftRingIntermediate",
	LeftRingDistal:          "LeftRingDistal",
	LeftLittleProximal:      "LeftLittleProximal",
	LeftLittleIntermediate:  "LeftLittleIntermediate",
	LeftLittleDistal:        "LeftLittleDistal",
	RightThumbProximal:      "RightThumbProximal",
	RightThumbIntermediate:  "RightThumbIntermediate",
	RightThumbDistal:        "RightThumbDistal",
	RightIndexProximal:      "RightIndexProximal",
	RightIndexIntermediate:  "RightIndexIntermediate",
	RightIndexDistal:        "RightIndexDistal",
	RightMiddleProximal:     "RightMiddleProximal",
	RightMiddleIntermediate: "RightMiddleIntermediate",
	RightMiddleDistal:       "RightMiddleDistal",
	RightRingProximal:       "RightRingProximal",
	RightRingIntermediate:   "RightRingIntermediate",
	RightRingDistal:         "RightRingDistal",
	RightLittleProximal:     "RightLittleProximal",
	RightLittleIntermediate: "RightLittleIntermediate",
	RightLittleDistal:       "RightLittleDistal",
}

// noParent marks a bone with no parent (Hips). NumBones fits in a byte, so
// this sentinel can never collide with a real ordinal.
const noParent = 0xFF

var boneParents = [NumBones]uint8{
	Hips:                    noParent,
	LeftUpperLeg:            uint8(Hips),
	RightUpperLeg:           uint8(Hips),
	LeftLowerLeg:            uint8(LeftUpperLeg),
	RightLowerLeg:           uint8(RightUpperLeg),
	LeftFoot:                uint8(LeftLowerLeg),
	RightFoot:               uint8(RightLowerLeg),
	Spine:                   uint8(Hips),
	Chest:                   uint8(Spine),
	UpperChest:              uint8(Chest),
	Neck:                    uint8(UpperChest),
	Head:                    uint8(Neck),
	LeftShoulder:            uint8(UpperChest),
	RightShoulder:           uint8(UpperChest),
	LeftUpperArm:            uint8(LeftShoulder),
	RightUpperArm:           uint8(RightShoulder),
	LeftLowerArm:            uint8(LeftUpperArm),
	RightLowerArm:           uint8(RightUpperArm),
	LeftHand:                uint8(LeftLowerArm),
	RightHand:               uint8(RightLowerArm),
	LeftToes:                uint8(LeftFoot),
	RightToes:               uint8(RightFoot),
	LeftEye:                 uint8(Head),
	RightEye:                uint8(Head),
	Jaw:                     uint8(Head),
	LeftThumbProximal:       uint8(LeftHand),
	LeftThumbIntermediate:   uint8(LeftThumbProximal),
	LeftThumbDistal:         uint8(LeftThumbIntermediate),
	LeftIndexProximal:       uint8(LeftHand),
	LeftIndexIntermediate:   uint8(LeftIndexProximal),
	LeftIndexDistal:         uint8(LeftIndexIntermediate),
	LeftMiddleProximal:      uint8(LeftHand),
	LeftMiddleIntermediate:  uint8(LeftMiddleProximal),
	LeftMiddleDistal:        uint8(LeftMiddleIntermediate),
	LeftRingProximal:        uint8(LeftHand),
	LeftRingIntermediate:    uint8(LeftRingProximal),
	LeftRingDistal:          uint8(LeftRingIntermediate),
	LeftLittleProximal:      uint8(LeftHand),
	LeftLittleIntermediate:  uint8(LeftLittleProximal),
	LeftLittleDistal:        uint8(LeftLittleIntermediate),
	RightThumbProximal:      uint8(RightHand),
	RightThumbIntermediate:  uint8(RightThumbProximal),
	RightThumbDistal:        uint8(RightThumbIntermediate),
	RightIndexProximal:      uint8(RightHand),
	RightIndexIntermediate:  uint8(RightIndexProximal),
	RightIndexDistal:        uint8(RightIndexIntermediate),
	RightMiddleProximal:     uint8(RightHand),
	RightMiddleIntermediate: uint8(RightMiddleProximal),
	RightMiddleDistal:       uint8(RightMiddleIntermediate),
	RightRingProximal:       uint8(RightHand),
	RightRingIntermediate:   uint8(RightRingProximal),
	RightRingDistal:         uint8(RightRingIntermediate),
	RightLittleProximal:     uint8(RightHand),
	RightLittleIntermediate: uint8(RightLittleProximal),
	RightLittleDistal:       uint8(RightLittleIntermediate),
}

// mirrorBones maps a left bone to its right counterpart and back; bones
// without a mirror (spine chain, head, hips) map to themselves.
var mirrorBones = [NumBones]Bone{}

var allBones [NumBones]Bone

var childrenMasks [NumBones]BoneMask
var descendantMasks [NumBones]BoneMask

func init() {
	for i := range allBones {
		allBones[i] = Bone(i)
	}

	for b := range boneParents {
		if p := boneParents[b]; p != noParent {
			childrenMasks[p] = childrenMasks[p].With(Bone(b))
		}
	}

	// descendants(b) is the transitive closure of children(b); compute it
	// bottom-up isn't possible without a topological walk, so recurse.
	var compute func(b Bone) BoneMask
	memoized := make([]bool, NumBones)
	compute = func(b Bone) BoneMask {
		if memoized[b] {
			return descendantMasks[b]
		}

		var mask BoneMask
		for _, c := range childrenMasks[b].Iter() {
			mask = mask.Union(compute(c).With(c))
		}

		descendantMasks[b] = mask
		memoized[b] = true
		return mask
	}

	for b := range boneParents {
		compute(Bone(b))
	}

	setMirror := func(a, b Bone) {
		mirrorBones[a] = b
		mirrorBones[b] = a
	}
	for b := range allBones {
		mirrorBones[b] = Bone(b)
	}

	setMirror(LeftUpperLeg, RightUpperLeg)
	setMirror(LeftLowerLeg, RightLowerLeg)
	setMirror(LeftFoot, RightFoot)
	setMirror(LeftShoulder, RightShoulder)
	setMirror(LeftUpperArm, RightUpperArm)
	setMirror(LeftLowerArm, RightLowerArm)
	setMirror(LeftHand, RightHand)
	setMirror(LeftToes, RightToes)
	setMirror(LeftEye, RightEye)
	setMirror(LeftThumbProximal, RightThumbProximal)
	setMirror(LeftThumbIntermediate, RightThumbIntermediate)
	setMirror(LeftThumbDistal, RightThumbDistal)
	setMirror(LeftIndexProximal, RightIndexProximal)
	setMirror(LeftIndexIntermediate, RightIndexIntermediate)
	setMirror(LeftIndexDistal, RightIndexDistal)
	setMirror(LeftMiddleProximal, RightMiddleProximal)
	setMirror(LeftMiddleIntermediate, RightMiddleIntermediate)
	setMirror(LeftMiddleDistal, RightMiddleDistal)
	setMirror(LeftRingProximal, RightRingProximal)
	setMirror(LeftRingIntermediate, RightRingIntermediate)
	setMirror(LeftRingDistal, RightRingDistal)
	setMirror(LeftLittleProximal, RightLittleProximal)
	setMirror(LeftLittleIntermediate, RightLittleIntermediate)
	setMirror(LeftLittleDistal, RightLittleDistal)
}

// Parent returns b's parent bone and true, or (0, false) if b is the root (Hips).
func (b Bone) Parent() (Bone, bool) {
	p := boneParents[b]
	if p == noParent {
		return 0, false
	}
	return Bone(p), true
}

// Children returns the set of bones whose parent is b.
func (b Bone) Children() BoneMask {
	return childrenMasks[b]
}

// Descendants returns the transitive closure of Children, excluding b itself.
func (b Bone) Descendants() BoneMask {
	return descendantMasks[b]
}

// Affected returns Descendants(b) union {b}: the set of bones whose global
// transform is invalidated when b's local transform changes.
func (b Bone) Affected() BoneMask {
	return descendantMasks[b].With(b)
}

// Mask returns the singleton bone-mask {b}.
func (b Bone) Mask() BoneMask {
	return BoneMask(0).With(b)
}

// Name returns the bone's canonical VMC wire name.
func (b Bone) Name() string {
	return boneNames[b]
}

// Mirror swaps left/right bones; central bones (spine chain, head, jaw, hips)
// map to themselves.
func (b Bone) Mirror() Bone {
	return mirrorBones[b]
}

func (b Bone) String() string {
	if int(b) < NumBones {
		return b.Name()
	}
	return fmt.Sprintf("Bone(%d)", b)
}

var bonesByName map[string]Bone

func init() {
	bonesByName = make(map[string]Bone, NumBones)
	for i, name := range boneNames {
		bonesByName[name] = Bone(i)
	}
}

// ParseBone resolves a bone by its canonical VMC wire name.
func ParseBone(name string) (Bone, bool) {
	b, ok := bonesByName[name]
	return b, ok
}

// AllBones returns every bone in canonical ordinal order.
func AllBones() []Bone {
	return allBones[:]
}
