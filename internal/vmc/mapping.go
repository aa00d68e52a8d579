package vmc

import "github.com/Barinzaya/remote-wheel/internal/device"

// Range is a percent-scale [a, b] output range for an axis or button
// mapping. Blendshape outputs are divided by 100 (0-100% -> 0.0-1.0);
// device outputs (e.g. a wheel's degrees) are used as-is.
type Range struct {
	A, B float32
}

// lerp computes (b-a)*v + a.
func (r Range) lerp(v float32) float32 {
	return (r.B-r.A)*v + r.A
}

// BlendshapeTarget names a blendshape driven by an axis or button mapping.
type BlendshapeTarget struct {
	Name  string
	Range Range
}

// DeviceTarget names a device driven by an axis or button mapping.
type DeviceTarget struct {
	Name  string
	Range Range
}

// ButtonOneShot is a single (name, value) pair applied once on a button's
// press or release transition, bypassing interpolation.
type ButtonOneShot struct {
	Name  string
	Value float32
}

// AxisMapping folds one semantic axis ID into blendshape and device writes.
type AxisMapping struct {
	Blendshapes []BlendshapeTarget
	Devices     []DeviceTarget
}

// ButtonMapping folds one semantic button ID into blendshape/device writes
// plus one-shot press/release tables.
type ButtonMapping struct {
	Blendshapes []BlendshapeTarget
	Devices     []DeviceTarget
	OnPress     []ButtonOneShot
	OnRelease   []ButtonOneShot
}

// Devices resolves a mapping's device targets to live devices by name.
type Devices interface {
	Device(name string) (device.Device, bool)
}

// UpdateAxis applies v (expected in [0, 1]) to t's blendshape table and to
// the named devices, per m. Blendshape values are written on the 0.0-1.0
// scale (the configured Range is interpreted as percent, so it is divided
// by 100); device values use the configured Range directly.
func (t *TrackingData) UpdateAxis(m AxisMapping, v float32, devices Devices) {
	for _, bs := range m.Blendshapes {
		t.UpdateBlendshape(bs.Name, bs.Range.lerp(v)/100)
	}
	for _, d := range m.Devices {
		if dev, ok := devices.Device(d.Name); ok {
			dev.SetValue(d.Range.lerp(v))
		}
	}
}

// UpdateButton applies pressed (selecting Range.B when true, Range.A
// otherwise) to t's blendshape table and the named devices, then applies
// m's one-shot on-press or on-release table, if any, for the transition.
func (t *TrackingData) UpdateButton(m ButtonMapping, pressed bool, transitioned bool, devices Devices) {
	v := float32(0)
	if pressed {
		v = 1
	}

	for _, bs := range m.Blendshapes {
		t.UpdateBlendshape(bs.Name, bs.Range.lerp(v)/100)
	}
	for _, d := range m.Devices {
		if dev, ok := devices.Device(d.Name); ok {
			dev.SetValue(d.Range.lerp(v))
		}
	}

	if !transitioned {
		return
	}

	oneShots := m.OnRelease
	if pressed {
		oneShots = m.OnPress
	}
	for _, os := range oneShots {
		t.UpdateBlendshape(os.Name, os.Value/100)
	}
}
