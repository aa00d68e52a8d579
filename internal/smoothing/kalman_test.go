package smoothing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFilterFirstUpdateReturnsMeasurementUnchanged(t *testing.T) {
	f := New(0.5)
	if got := f.Update(3); got != 3 {
		t.Errorf("first update = %v, want 3", got)
	}
}

func TestFilterConvergesTowardAConstantMeasurement(t *testing.T) {
	f := New(0.9)
	var last float32
	for i := 0; i < 50; i++ {
		last = f.Update(10)
	}
	if diff := last - 10; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("filter did not converge: %v", last)
	}
}

func TestFilterResetClearsState(t *testing.T) {
	f := New(0.5)
	f.Update(10)
	f.Reset()

	if got := f.Update(1); got != 1 {
		t.Errorf("update after reset = %v, want 1 (treated as first sample)", got)
	}
}

func TestVec3FilterSmoothsEachAxisIndependently(t *testing.T) {
	f := NewVec3(0.9)
	f.Update(mgl32.Vec3{1, 2, 3})
	got := f.Update(mgl32.Vec3{1, 2, 3})
	if got.X() != 1 || got.Y() != 2 || got.Z() != 3 {
		t.Errorf("constant input should converge quickly, got %v", got)
	}
}
