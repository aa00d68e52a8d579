package humanoid

import "testing"

func TestBoneMaskInsertContainsRemove(t *testing.T) {
	var m BoneMask

	if m.Contains(Head) {
		t.Fatal("empty mask should not contain Head")
	}

	if !m.Insert(Head) {
		t.Error("first insert should report newly-added")
	}
	if m.Insert(Head) {
		t.Error("second insert of the same bone should report already-present")
	}
	if !m.Contains(Head) {
		t.Error("mask should contain Head after insert")
	}

	if !m.Remove(Head) {
		t.Error("first remove should report it was present")
	}
	if m.Contains(Head) {
		t.Error("mask should not contain Head after remove")
	}
	if m.Remove(Head) {
		t.Error("second remove should report it was absent")
	}
}

func TestBoneMaskSetOps(t *testing.T) {
	a := FromBones(Hips, Spine, Chest)
	b := FromBones(Spine, Chest, Neck)

	if got := a.Union(b); got != FromBones(Hips, Spine, Chest, Neck) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Intersection(b); got != FromBones(Spine, Chest) {
		t.Errorf("Intersection = %v", got)
	}
	if got := a.Difference(b); got != FromBones(Hips) {
		t.Errorf("Difference = %v", got)
	}
	if got := a.SymmetricDifference(b); got != FromBones(Hips, Neck) {
		t.Errorf("SymmetricDifference = %v", got)
	}

	if !a.Intersection(b).IsSubset(a) {
		t.Error("intersection should be a subset of a")
	}
	if !a.IsSuperset(FromBones(Hips)) {
		t.Error("a should be a superset of {Hips}")
	}
	if FromBones(Hips).IsDisjoint(FromBones(Neck)) != true {
		t.Error("{Hips} and {Neck} should be disjoint")
	}
	if a.IsDisjoint(b) {
		t.Error("a and b share Spine/Chest, should not be disjoint")
	}
}

func TestBoneMaskIterOrder(t *testing.T) {
	m := FromBones(RightHand, Hips, Neck)

	asc := m.Iter()
	for i := 1; i < len(asc); i++ {
		if asc[i-1] >= asc[i] {
			t.Fatalf("Iter() not ascending: %v", asc)
		}
	}

	desc := m.IterDescending()
	for i := 1; i < len(desc); i++ {
		if desc[i-1] <= desc[i] {
			t.Fatalf("IterDescending() not descending: %v", desc)
		}
	}

	if len(asc) != m.Len() || len(desc) != m.Len() {
		t.Errorf("iteration length mismatch: Len()=%d asc=%d desc=%d", m.Len(), len(asc), len(desc))
	}
}

func TestBoneMaskClearAndEmpty(t *testing.T) {
	m := FromBones(Hips, Head)
	if m.IsEmpty() {
		t.Fatal("mask should not be empty")
	}
	m.Clear()
	if !m.IsEmpty() {
		t.Error("mask should be empty after Clear")
	}
}

func TestAllBonesMaskContainsEverything(t *testing.T) {
	all := AllBonesMask()
	for _, b := range AllBones() {
		if !all.Contains(b) {
			t.Errorf("AllBonesMask() missing %s", b)
		}
	}
	if all.Len() != NumBones {
		t.Errorf("AllBonesMask().Len() = %d, want %d", all.Len(), NumBones)
	}
}
