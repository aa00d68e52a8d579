// Package vmc implements the VMC-over-OSC wire protocol: decoding incoming
// bundles into a tracked pose, blendshape table and auxiliary device table,
// and encoding the fused pose back out as a single bundle.
package vmc

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/humanoid"
	"github.com/Barinzaya/remote-wheel/internal/oscwire"
	"github.com/Barinzaya/remote-wheel/internal/pose"
	"github.com/Barinzaya/remote-wheel/internal/smoothing"
)

// DeviceKind names the three kinds of auxiliary VMC device.
type DeviceKind int

const (
	DeviceController DeviceKind = iota
	DeviceHmd
	DeviceTracker
)

func (k DeviceKind) String() string {
	switch k {
	case DeviceController:
		return "Controller"
	case DeviceHmd:
		return "Hmd"
	case DeviceTracker:
		return "Tracker"
	default:
		return "DeviceKind(?)"
	}
}

// TrackingPoint is a tracked position/rotation pair.
type TrackingPoint struct {
	Pos mgl32.Vec3
	Rot mgl32.Quat
}

type auxKey struct {
	Kind DeviceKind
	Name string
}

type auxSlot struct {
	Key   auxKey
	Point TrackingPoint
}

type blendshapeSlot struct {
	Name  string
	Value float32
}

// TrackingData is the VMC-level view of the scene: a Pose plus the
// blendshape and auxiliary-device tables, each preserving the insertion
// order repeated updates arrived in, and the last-seen tracking flag/time
// tag.
type TrackingData struct {
	Pose *pose.Pose

	blendshapes     []blendshapeSlot
	blendshapeIndex map[string]int

	auxDevices []auxSlot
	auxIndex   map[auxKey]int

	auxSmoothers map[auxKey]*smoothing.Vec3Filter

	Time     float32
	Tracking bool
}

// SmoothAuxDevice enables position jitter smoothing for (kind, name)'s
// future updates, tuned by factor (0.0 = maximum smoothing, 1.0 = lightest).
// It has no effect on devices that never report under that key.
func (t *TrackingData) SmoothAuxDevice(kind DeviceKind, name string, factor float32) {
	if t.auxSmoothers == nil {
		t.auxSmoothers = make(map[auxKey]*smoothing.Vec3Filter)
	}
	t.auxSmoothers[auxKey{Kind: kind, Name: name}] = smoothing.NewVec3(factor)
}

// New returns an empty TrackingData with an identity pose.
func New() *TrackingData {
	return &TrackingData{
		Pose:            pose.New(),
		blendshapeIndex: make(map[string]int),
		auxIndex:        make(map[auxKey]int),
		Time:            -1,
	}
}

// UpdateBlendshape sets name's value, preserving its emission slot if it
// was already seen, or appending a new slot (and returning its index) if
// not.
func (t *TrackingData) UpdateBlendshape(name string, value float32) int {
	if i, ok := t.blendshapeIndex[name]; ok {
		t.blendshapes[i].Value = value
		return i
	}

	i := len(t.blendshapes)
	t.blendshapes = append(t.blendshapes, blendshapeSlot{Name: name, Value: value})
	t.blendshapeIndex[name] = i
	return i
}

// Blendshapes returns the blendshape table in insertion order.
func (t *TrackingData) Blendshapes() []blendshapeSlot {
	return t.blendshapes
}

// UpdateAuxDevice sets (kind, name)'s tracking point, preserving its
// emission slot on repeats.
func (t *TrackingData) UpdateAuxDevice(kind DeviceKind, name string, point TrackingPoint) int {
	key := auxKey{Kind: kind, Name: name}

	if f, ok := t.auxSmoothers[key]; ok {
		point.Pos = f.Update(point.Pos)
	}

	if i, ok := t.auxIndex[key]; ok {
		t.auxDevices[i].Point = point
		return i
	}

	i := len(t.auxDevices)
	t.auxDevices = append(t.auxDevices, auxSlot{Key: key, Point: point})
	t.auxIndex[key] = i
	return i
}

// AuxDevices returns the auxiliary device table in insertion order.
func (t *TrackingData) AuxDevices() []auxSlot {
	return t.auxDevices
}

// ApplyPacket walks p (a Message or Bundle) and applies every recognized
// VMC message it contains to t. Unrecognized addresses and malformed
// arguments are logged and skipped; decoding continues.
func (t *TrackingData) ApplyPacket(p oscwire.Packet) {
	switch v := p.(type) {
	case oscwire.Bundle:
		for _, inner := range v.Packets {
			t.ApplyPacket(inner)
		}
	case oscwire.Message:
		if err := t.applyMessage(v); err != nil {
			log.Printf("vmc: ignoring %s: %v", v.Address, err)
		}
	}
}

func (t *TrackingData) applyMessage(msg oscwire.Message) error {
	switch msg.Address {
	case "/VMC/Ext/Root/Pos":
		name, tp, err := argTracking(msg.Args)
		if err != nil {
			return err
		}
		if name != "root" {
			return errUnexpectedName(name)
		}
		t.Pose.SetRootTransform(pose.Transform{Pos: tp.Pos, Rot: tp.Rot})

	case "/VMC/Ext/Bone/Pos":
		name, tp, err := argTracking(msg.Args)
		if err != nil {
			return err
		}
		bone, ok := humanoid.ParseBone(name)
		if !ok {
			return errUnknownBone(name)
		}
		t.Pose.SetLocalTransform(bone, pose.Transform{Pos: tp.Pos, Rot: tp.Rot})

	case "/VMC/Ext/Con/Pos":
		return t.applyAux(DeviceController, msg.Args)
	case "/VMC/Ext/Hmd/Pos":
		return t.applyAux(DeviceHmd, msg.Args)
	case "/VMC/Ext/Tra/Pos":
		return t.applyAux(DeviceTracker, msg.Args)

	case "/VMC/Ext/Blend/Val":
		name, err := oscwire.ArgString(msg.Args, 0)
		if err != nil {
			return err
		}
		value, err := oscwire.ArgFloat32(msg.Args, 1)
		if err != nil {
			return err
		}
		t.UpdateBlendshape(name, value)

	case "/VMC/Ext/Blend/Apply":
		// Accepted, no-op: commits are implicit on flush.

	case "/VMC/Ext/OK":
		flag, err := oscwire.ArgInt32(msg.Args, 0)
		if err != nil {
			return err
		}
		t.Tracking = flag == 1

	case "/VMC/Ext/T":
		v, err := oscwire.ArgFloat32(msg.Args, 0)
		if err != nil {
			return err
		}
		t.Time = v

	default:
		return errUnrecognizedAddress(msg.Address)
	}

	return nil
}

func (t *TrackingData) applyAux(kind DeviceKind, args []interface{}) error {
	name, tp, err := argTracking(args)
	if err != nil {
		return err
	}
	t.UpdateAuxDevice(kind, name, tp)
	return nil
}

// argTracking extracts a VMC "name + 7 floats" tuple: position (3), then a
// quaternion (4), normalized on read.
func argTracking(args []interface{}) (string, TrackingPoint, error) {
	if len(args) != 8 {
		return "", TrackingPoint{}, errArgCount(len(args))
	}

	name, err := oscwire.ArgString(args, 0)
	if err != nil {
		return "", TrackingPoint{}, err
	}

	var f [7]float32
	for i := range f {
		v, err := oscwire.ArgFloat32(args, i+1)
		if err != nil {
			return "", TrackingPoint{}, err
		}
		f[i] = v
	}

	rot := mgl32.Quat{W: f[6], V: mgl32.Vec3{f[3], f[4], f[5]}}
	rot = rot.Normalize()

	return name, TrackingPoint{Pos: mgl32.Vec3{f[0], f[1], f[2]}, Rot: rot}, nil
}
