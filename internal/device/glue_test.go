package device

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
)

func TestWheelSetValueRotatesAboutZ(t *testing.T) {
	glue := NewGlue(0, 0)
	w, err := NewWheel(mgl32.Vec3{}, 0, 0, 0, 0.17, "", glue)
	if err != nil {
		t.Fatal(err)
	}

	w.SetValue(90)
	if w.angle != 90 {
		t.Errorf("angle = %v, want 90", w.angle)
	}

	rotated := w.Rot().Rotate(mgl32.Vec3{1, 0, 0})
	if rotated.Y() > -0.99 {
		t.Errorf("expected a 90-degree steering rotation (-90 degrees about Z) to carry X onto -Y, got %v", rotated)
	}
}

func TestNewWheelRejectsNonPositiveRadius(t *testing.T) {
	glue := NewGlue(0, 0)
	if _, err := NewWheel(mgl32.Vec3{}, 0, 0, 0, 0, "", glue); err == nil {
		t.Error("expected an error for zero radius")
	}
	if _, err := NewWheel(mgl32.Vec3{}, 0, 0, 0, -1, "", glue); err == nil {
		t.Error("expected an error for negative radius")
	}
}

func TestParseWheelPositionRange(t *testing.T) {
	if _, err := ParseWheelPosition(-1); err == nil {
		t.Error("expected an error for negative degrees")
	}
	if _, err := ParseWheelPosition(361); err == nil {
		t.Error("expected an error for degrees over 360")
	}

	got, err := ParseWheelPosition(0)
	if err != nil {
		t.Fatal(err)
	}
	want := float32(math.Pi / 2)
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("ParseWheelPosition(0) = %v, want %v (north maps to +pi/2)", got, want)
	}
}

func TestGluePoseInverseEmitsBothHands(t *testing.T) {
	left, _ := ParseWheelPosition(180)
	right, _ := ParseWheelPosition(0)
	glue := NewGlue(left, right)

	w, err := NewWheel(mgl32.Vec3{}, 0, 0, 0, 0.17, "", glue)
	if err != nil {
		t.Fatal(err)
	}

	var got []humanoid.Limb
	glue.PoseInverse(w, fakePoseReader{}, func(c InversePose) {
		got = append(got, c.Limb)
		if c.Weight != 1.0 {
			t.Errorf("glue weight = %v, want 1.0", c.Weight)
		}
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(got))
	}
}

type fakePoseReader struct{}

func (fakePoseReader) GlobalTransform(humanoid.Bone) (mgl32.Vec3, mgl32.Quat) {
	return mgl32.Vec3{}, mgl32.QuatIdent()
}
func (fakePoseReader) LocalTransform(humanoid.Bone) (mgl32.Vec3, mgl32.Quat) {
	return mgl32.Vec3{}, mgl32.QuatIdent()
}
