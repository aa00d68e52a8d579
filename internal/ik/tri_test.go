package ik

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// testLink is a mutable Link backed by plain fields, for exercising Solve
// without pulling in the pose package.
type testLink struct {
	pos        mgl32.Vec3
	rot        mgl32.Quat
	constraint Constraint
}

func (l *testLink) Pos() mgl32.Vec3       { return l.pos }
func (l *testLink) Rot() mgl32.Quat       { return l.rot }
func (l *testLink) Constraint() Constraint {
	if l.constraint == nil {
		return NoConstraint{}
	}
	return l.constraint
}
func (l *testLink) SetRot(rot mgl32.Quat) { l.rot = rot }

// testChain is a fixed-size 4-link chain whose non-base links reposition
// their Pos() relative to their parent whenever SetRot is called, mimicking
// a real bone hierarchy closely enough to exercise the solver.
type testChain struct {
	links       [4]*testLink
	upperLength float32
	lowerLength float32
}

func newTestChain(upperLength, lowerLength float32) *testChain {
	c := &testChain{upperLength: upperLength, lowerLength: lowerLength}
	c.links[0] = &testLink{rot: mgl32.QuatIdent()}
	c.links[1] = &testLink{pos: mgl32.Vec3{0, 0, 0}, rot: mgl32.QuatIdent()}
	c.links[2] = &testLink{pos: mgl32.Vec3{0, -upperLength, 0}, rot: mgl32.QuatIdent()}
	c.links[3] = &testLink{pos: mgl32.Vec3{0, -upperLength - lowerLength, 0}, rot: mgl32.QuatIdent()}
	return c
}

func (c *testChain) NumLinks() int { return 4 }
func (c *testChain) Link(i int) Link {
	return &chainLinkProxy{chain: c, index: i}
}

// chainLinkProxy recomputes downstream Pos() on SetRot, since the real rig
// recomputes global transforms lazily off of parent rotations rather than
// storing independent positions per link.
type chainLinkProxy struct {
	chain *testChain
	index int
}

func (p *chainLinkProxy) Pos() mgl32.Vec3       { return p.chain.links[p.index].pos }
func (p *chainLinkProxy) Rot() mgl32.Quat       { return p.chain.links[p.index].rot }
func (p *chainLinkProxy) Constraint() Constraint { return p.chain.links[p.index].Constraint() }

func (p *chainLinkProxy) SetRot(rot mgl32.Quat) {
	c := p.chain
	prev := c.links[p.index].rot
	c.links[p.index].rot = rot

	switch p.index {
	case 1:
		// The elbow keeps its rotation relative to the shoulder, as a child
		// bone keeps its local rotation when its parent turns.
		c.links[2].rot = quat.Mul(quat.Mul(rot, quat.Inverse(prev)), c.links[2].rot)
		elbowLocal := mgl32.Vec3{0, -c.upperLength, 0}
		c.links[2].pos = c.links[1].pos.Add(rot.Rotate(elbowLocal))
		handLocal := mgl32.Vec3{0, -c.lowerLength, 0}
		c.links[3].pos = c.links[2].pos.Add(c.links[2].rot.Rotate(handLocal))
	case 2:
		handLocal := mgl32.Vec3{0, -c.lowerLength, 0}
		c.links[3].pos = c.links[2].pos.Add(rot.Rotate(handLocal))
	}
}

func TestSolveReachesCloseTarget(t *testing.T) {
	chain := newTestChain(1.0, 1.0)
	// The test arm hangs along -Y, so the elbow hinges about Z.
	settings := DefaultSettings(mgl32.Vec3{0, 0, 1})

	target := mgl32.Vec3{1.2, -0.8, 0.3}
	targetRot := mgl32.QuatIdent()

	iterations, ok := Solve(settings, chain, target, targetRot)
	if iterations <= 0 {
		t.Fatalf("expected at least one iteration, got %d", iterations)
	}

	end := chain.Link(3).Pos()
	dist := end.Sub(target).Len()
	if ok && dist > 0.05 {
		t.Errorf("converged solve left end effector %.4f from target (ok=%v)", dist, ok)
	}
}

func TestSolveUnreachableTargetStretchesStraight(t *testing.T) {
	chain := newTestChain(1.0, 1.0)
	settings := DefaultSettings(mgl32.Vec3{0, 1, 0})

	// Far outside the chain's total reach (2.0): elbow angle should clamp
	// to fully extended (0 radians).
	target := mgl32.Vec3{10, 0, 0}
	Solve(settings, chain, target, mgl32.QuatIdent())

	upperDir := chain.links[2].pos.Sub(chain.links[1].pos).Normalize()
	lowerDir := chain.links[3].pos.Sub(chain.links[2].pos).Normalize()
	cos := upperDir.Dot(lowerDir)
	if cos < 0.99 {
		t.Errorf("expected arm to be nearly straight for unreachable target, upper.lower cos=%.4f", cos)
	}
}

func TestSolveZeroLengthLimbFails(t *testing.T) {
	chain := newTestChain(0, 1.0)
	settings := DefaultSettings(mgl32.Vec3{0, 1, 0})

	_, ok := Solve(settings, chain, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	if ok {
		t.Error("expected zero-length upper segment to fail to solve")
	}
}

func TestClampAngleWrapsAroundBoundary(t *testing.T) {
	got := clampAngle(float32(math.Pi)-0.01, -0.1, 0.1)
	if got != 0.1 {
		t.Errorf("clampAngle near +pi should clamp into (-0.1,0.1) window by wrapping, got %v", got)
	}
}
