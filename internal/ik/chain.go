package ik

import "github.com/go-gl/mathgl/mgl32"

// Link is one joint in a Chain: the base link (index 0) is a fixed
// reference frame; the others can have their rotation written back by
// Solve.
type Link interface {
	// Pos returns the link's current global position.
	Pos() mgl32.Vec3
	// Rot returns the link's current global rotation.
	Rot() mgl32.Quat
	// Constraint returns the angular constraint this link's rotation must
	// satisfy; NoConstraint{} if none.
	Constraint() Constraint
	// SetRot writes a new global rotation back to the link.
	SetRot(rot mgl32.Quat)
}

// State bundles a link's position and rotation, for callers that want both
// without two interface calls.
type State struct {
	Pos mgl32.Vec3
	Rot mgl32.Quat
}

// LinkState returns l's current (Pos, Rot) as a single value.
func LinkState(l Link) State {
	return State{Pos: l.Pos(), Rot: l.Rot()}
}

// Chain is a four-link kinematic chain: base, shoulder, elbow, end (hand).
// Solve reads link 0 as a fixed reference frame and adjusts links 1 and 2
// (shoulder and elbow) to bring link 3 onto a target.
type Chain interface {
	NumLinks() int
	Link(index int) Link
}
