package vmc

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/device"
	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/oscwire"
)

func TestApplyPacketUpdatesBoneAndBlendshape(t *testing.T) {
	td := New()

	msg, err := oscwire.EncodeMessage(nil, "/VMC/Ext/Bone/Pos", []interface{}{
		"LeftUpperArm", float32(1), float32(2), float32(3), float32(0), float32(0), float32(0), float32(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	p, err := oscwire.DecodePacket(msg)
	if err != nil {
		t.Fatal(err)
	}
	td.ApplyPacket(p)

	tr := td.Pose.LocalTransform(humanoid.LeftUpperArm)
	if tr.Pos.X() != 1 || tr.Pos.Y() != 2 || tr.Pos.Z() != 3 {
		t.Errorf("local transform pos = %v", tr.Pos)
	}

	blendMsg, _ := oscwire.EncodeMessage(nil, "/VMC/Ext/Blend/Val", []interface{}{"Smile", float32(0.5)})
	p2, _ := oscwire.DecodePacket(blendMsg)
	td.ApplyPacket(p2)

	if len(td.Blendshapes()) != 1 || td.Blendshapes()[0].Name != "Smile" || td.Blendshapes()[0].Value != 0.5 {
		t.Errorf("blendshapes = %+v", td.Blendshapes())
	}
}

func TestUpdateBlendshapePreservesSlotOnRepeat(t *testing.T) {
	td := New()
	i1 := td.UpdateBlendshape("A", 0.1)
	td.UpdateBlendshape("B", 0.2)
	i3 := td.UpdateBlendshape("A", 0.9)

	if i1 != i3 {
		t.Errorf("repeated update moved slot: %d -> %d", i1, i3)
	}
	if len(td.Blendshapes()) != 2 {
		t.Errorf("expected 2 slots, got %d", len(td.Blendshapes()))
	}
	if td.Blendshapes()[0].Value != 0.9 {
		t.Errorf("slot 0 value = %v, want 0.9", td.Blendshapes()[0].Value)
	}
}

func TestEncodeRoundTripsThroughBundle(t *testing.T) {
	td := New()
	td.UpdateBlendshape("Smile", 0.25)
	td.UpdateAuxDevice(DeviceTracker, "tracker1", TrackingPoint{})
	td.Tracking = true
	td.Time = 1.5

	buf, err := td.Encode(nil)
	if err != nil {
		t.Fatal(err)
	}

	p, err := oscwire.DecodePacket(buf)
	if err != nil {
		t.Fatal(err)
	}
	bundle, ok := p.(oscwire.Bundle)
	if !ok {
		t.Fatalf("expected Bundle, got %T", p)
	}

	// Root, NumBones bones, 1 aux device, 1 blendshape, Apply, OK, T.
	want := 1 + humanoid.NumBones + 1 + 1 + 1 + 1 + 1
	if len(bundle.Packets) != want {
		t.Fatalf("expected %d packets, got %d", want, len(bundle.Packets))
	}

	first := bundle.Packets[0].(oscwire.Message)
	if first.Address != "/VMC/Ext/Root/Pos" {
		t.Errorf("first message address = %q", first.Address)
	}

	last := bundle.Packets[len(bundle.Packets)-1].(oscwire.Message)
	if last.Address != "/VMC/Ext/T" {
		t.Errorf("last message address = %q", last.Address)
	}
}

type deviceRegistry map[string]device.Device

func (r deviceRegistry) Device(name string) (device.Device, bool) {
	d, ok := r[name]
	return d, ok
}

func TestUpdateAxisWritesPercentScaledBlendshapeAndRawDevice(t *testing.T) {
	td := New()

	glue := device.NewGlue(0, 0)
	wheel, err := device.NewWheel(mgl32.Vec3{}, 0, 0, 0, 0.17, "", glue)
	if err != nil {
		t.Fatal(err)
	}
	devices := deviceRegistry{"wheel": wheel}

	m := AxisMapping{
		Blendshapes: []BlendshapeTarget{{Name: "wheel_turn", Range: Range{A: 0, B: 100}}},
		Devices:     []DeviceTarget{{Name: "wheel", Range: Range{A: 0, B: 360}}},
	}
	td.UpdateAxis(m, 0.5, devices)

	got := td.Blendshapes()[0].Value
	if got != 0.5 {
		t.Errorf("blendshape value = %v, want 0.5", got)
	}

	// 0.5 of [0, 360] is 180 degrees, so the wheel's X axis points along -X.
	if r := wheel.Rot().Rotate(mgl32.Vec3{1, 0, 0}); r.X() > -0.99 {
		t.Errorf("wheel at 180 degrees rotates X to %v, want about -X", r)
	}
}

func TestUpdateButtonAppliesOneShotOnTransition(t *testing.T) {
	td := New()

	m := ButtonMapping{
		OnPress: []ButtonOneShot{{Name: "horn", Value: 100}},
	}

	td.UpdateButton(m, true, true, deviceRegistry{})
	if len(td.Blendshapes()) != 1 || td.Blendshapes()[0].Value != 1.0 {
		t.Fatalf("expected a one-shot horn=1.0, got %+v", td.Blendshapes())
	}

	td.UpdateBlendshape("horn", 0)
	td.UpdateButton(m, true, false, deviceRegistry{})
	if len(td.Blendshapes()) != 1 || td.Blendshapes()[0].Value != 0 {
		t.Errorf("non-transitioning update should not re-fire the one-shot table")
	}
}
