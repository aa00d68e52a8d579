package humanoid

import "testing"

func TestParentChildrenAreInverses(t *testing.T) {
	for _, b := range AllBones() {
		parent, ok := b.Parent()
		if !ok {
			continue
		}
		if !parent.Children().Contains(b) {
			t.Errorf("%s's parent %s does not list it as a child", b, parent)
		}
	}

	for _, b := range AllBones() {
		for _, c := range b.Children().Iter() {
			parent, ok := c.Parent()
			if !ok || parent != b {
				t.Errorf("%s lists %s as a child, but its parent is not %s", b, c, b)
			}
		}
	}
}

func TestDescendantsIsTransitiveClosureOfChildren(t *testing.T) {
	for _, b := range AllBones() {
		var want BoneMask
		var walk func(Bone)
		walk = func(cur Bone) {
			for _, c := range cur.Children().Iter() {
				want.Insert(c)
				walk(c)
			}
		}
		walk(b)

		if got := b.Descendants(); got != want {
			t.Errorf("%s: Descendants() = %v, want transitive closure %v", b, got, want)
		}
	}
}

func TestAffectedIsDescendantsPlusSelf(t *testing.T) {
	for _, b := range AllBones() {
		want := b.Descendants().With(b)
		if got := b.Affected(); got != want {
			t.Errorf("%s: Affected() = %v, want %v", b, got, want)
		}
	}
}

func TestNameRoundTrips(t *testing.T) {
	for _, b := range AllBones() {
		name := b.Name()
		got, ok := ParseBone(name)
		if !ok || got != b {
			t.Errorf("ParseBone(%q) = (%v, %v), want (%v, true)", name, got, ok, b)
		}
	}

	if _, ok := ParseBone("NotARealBone"); ok {
		t.Error("ParseBone should reject unknown names")
	}
}

func TestHipsHasNoParent(t *testing.T) {
	if _, ok := Hips.Parent(); ok {
		t.Error("Hips should have no parent")
	}
}

func TestMirrorIsInvolution(t *testing.T) {
	for _, b := range AllBones() {
		if b.Mirror().Mirror() != b {
			t.Errorf("%s.Mirror().Mirror() != %s", b, b)
		}
	}

	if LeftHand.Mirror() != RightHand {
		t.Errorf("LeftHand.Mirror() = %v, want RightHand", LeftHand.Mirror())
	}
	if Hips.Mirror() != Hips {
		t.Errorf("Hips.Mirror() = %v, want Hips (central bones self-map)", Hips.Mirror())
	}
}

func TestNumBonesMatchesEnumeration(t *testing.T) {
	if NumBones != 55 {
		t.Errorf("NumBones = %d, want 55", NumBones)
	}
	if len(AllBones()) != NumBones {
		t.Errorf("len(AllBones()) = %d, want %d", len(AllBones()), NumBones)
	}
}
