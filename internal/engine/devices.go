package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/avatar"
	"github.com/Barinzaya/remote-wheel/internal/config"
	"github.com/Barinzaya/remote-wheel/internal/device"
)

// buildDevices constructs the ordered device list from cfg.Device. Go map
// iteration order is random, so the names are sorted to give the engine a
// deterministic (if arbitrary relative to file order) blending order
// across process restarts; within a run, the order never changes.
func buildDevices(cfg map[string]config.DeviceConfig) ([]avatar.Entry, map[string]device.Device, error) {
	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]avatar.Entry, 0, len(names))
	byName := make(map[string]device.Device, len(names))

	for _, name := range names {
		d, err := buildDevice(cfg[name])
		if err != nil {
			return nil, nil, fmt.Errorf("device %q: %w", name, err)
		}
		entries = append(entries, avatar.Entry{Name: name, Device: d})
		byName[name] = d
	}

	return entries, byName, nil
}

func buildDevice(dc config.DeviceConfig) (device.Device, error) {
	technique, err := buildTechnique(dc)
	if err != nil {
		return nil, err
	}

	deg := float32(math.Pi) / 180
	pos := mgl32.Vec3{dc.Position[0], dc.Position[1], dc.Position[2]}
	yaw, pitch, roll := dc.Rotation[0]*deg, dc.Rotation[1]*deg, dc.Rotation[2]*deg

	return device.NewWheel(pos, yaw, pitch, roll, dc.Radius, dc.Tracker, technique)
}

func buildTechnique(dc config.DeviceConfig) (device.Technique, error) {
	switch {
	case dc.Glue != nil:
		left, err := device.ParseWheelPosition(dc.Glue.Left)
		if err != nil {
			return nil, fmt.Errorf("glue.left: %w", err)
		}
		right, err := device.ParseWheelPosition(dc.Glue.Right)
		if err != nil {
			return nil, fmt.Errorf("glue.right: %w", err)
		}
		return device.NewGlue(left, right), nil

	case dc.Rotational != nil:
		rc := dc.Rotational
		deg := float32(math.Pi) / 180
		cfg := device.RotationalConfig{
			CrossStart:   rc.CrossStart * deg,
			CrossGrip:    rc.CrossGrip * deg,
			CrossOut:     rc.CrossOut,
			CrossRetract: rc.CrossRetract,
			CrossEnd:     rc.CrossEnd * deg,
			TurnStart:    rc.TurnStart * deg,
			TurnGrip:     rc.TurnGrip * deg,
			TurnLift:     rc.TurnLift,
			TurnOut:      rc.TurnOut,
			TurnEnd:      rc.TurnEnd * deg,
		}
		if cfg == (device.RotationalConfig{}) {
			cfg = device.DefaultRotationalConfig()
		}
		return device.NewRotational(cfg)

	default:
		return device.NewGlue(0, 0), nil
	}
}
