package vmc

import (
	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/oscwire"
)

// auxAddress returns the outgoing VMC address for an auxiliary device kind.
func auxAddress(kind DeviceKind) string {
	switch kind {
	case DeviceController:
		return "/VMC/Ext/Con/Pos"
	case DeviceHmd:
		return "/VMC/Ext/Hmd/Pos"
	case DeviceTracker:
		return "/VMC/Ext/Tra/Pos"
	default:
		return "/VMC/Ext/Tra/Pos"
	}
}

func trackingArgs(name string, p TrackingPoint) []interface{} {
	return []interface{}{
		name,
		p.Pos.X(), p.Pos.Y(), p.Pos.Z(),
		p.Rot.V.X(), p.Rot.V.Y(), p.Rot.V.Z(), p.Rot.W,
	}
}

// Encode builds the single outgoing OSC bundle for t, in the fixed message
// order: root, bones by ordinal, auxiliary devices by first-seen index,
// blendshapes by first-seen index, a trailing Blend/Apply, the tracking
// flag and the time tag.
func (t *TrackingData) Encode(buf []byte) ([]byte, error) {
	var packets []oscwire.Packet

	root := t.Pose.RootTransform()
	packets = append(packets, oscwire.Message{
		Address: "/VMC/Ext/Root/Pos",
		Args:    trackingArgs("root", TrackingPoint{Pos: root.Pos, Rot: root.Rot}),
	})

	for i := 0; i < humanoid.NumBones; i++ {
		bone := humanoid.Bone(i)
		local := t.Pose.LocalTransform(bone)
		packets = append(packets, oscwire.Message{
			Address: "/VMC/Ext/Bone/Pos",
			Args:    trackingArgs(bone.String(), TrackingPoint{Pos: local.Pos, Rot: local.Rot}),
		})
	}

	for _, slot := range t.auxDevices {
		packets = append(packets, oscwire.Message{
			Address: auxAddress(slot.Key.Kind),
			Args:    trackingArgs(slot.Key.Name, slot.Point),
		})
	}

	for _, slot := range t.blendshapes {
		packets = append(packets, oscwire.Message{
			Address: "/VMC/Ext/Blend/Val",
			Args:    []interface{}{slot.Name, slot.Value},
		})
	}

	packets = append(packets, oscwire.Message{
		Address: "/VMC/Ext/Blend/Apply",
		Args:    nil,
	})

	okFlag := int32(0)
	if t.Tracking {
		okFlag = 1
	}
	packets = append(packets, oscwire.Message{
		Address: "/VMC/Ext/OK",
		Args:    []interface{}{okFlag},
	})

	packets = append(packets, oscwire.Message{
		Address: "/VMC/Ext/T",
		Args:    []interface{}{t.Time},
	})

	return oscwire.EncodeBundle(buf, 0, packets)
}

// MTUWarningSize is the conventional UDP MTU above which Encode's caller
// should log a one-time oversized-packet warning.
const MTUWarningSize = 1500
