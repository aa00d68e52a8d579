package engine

import (
	"github.com/Barinzaya/remote-wheel/internal/config"
	"github.com/Barinzaya/remote-wheel/internal/vmc"
)

func buildOutputSet(os config.OutputSet) ([]vmc.BlendshapeTarget, []vmc.DeviceTarget) {
	bs := make([]vmc.BlendshapeTarget, 0, len(os.Blendshape))
	for name, lm := range os.Blendshape {
		bs = append(bs, vmc.BlendshapeTarget{Name: name, Range: vmc.Range{A: lm.Range[0], B: lm.Range[1]}})
	}

	devs := make([]vmc.DeviceTarget, 0, len(os.Device))
	for name, lm := range os.Device {
		devs = append(devs, vmc.DeviceTarget{Name: name, Range: vmc.Range{A: lm.Range[0], B: lm.Range[1]}})
	}

	return bs, devs
}

func buildOneShots(m map[string]float32) []vmc.ButtonOneShot {
	out := make([]vmc.ButtonOneShot, 0, len(m))
	for name, v := range m {
		out = append(out, vmc.ButtonOneShot{Name: name, Value: v})
	}
	return out
}

func buildAxisMappings(cfg map[string]config.AxisMappingConfig) map[string]vmc.AxisMapping {
	out := make(map[string]vmc.AxisMapping, len(cfg))
	for id, ac := range cfg {
		bs, devs := buildOutputSet(ac.OnUpdate)
		out[id] = vmc.AxisMapping{Blendshapes: bs, Devices: devs}
	}
	return out
}

func buildButtonMappings(cfg map[string]config.ButtonMappingConfig) map[string]vmc.ButtonMapping {
	out := make(map[string]vmc.ButtonMapping, len(cfg))
	for id, bc := range cfg {
		bs, devs := buildOutputSet(bc.OnUpdate)
		out[id] = vmc.ButtonMapping{
			Blendshapes: bs,
			Devices:     devs,
			OnPress:     buildOneShots(bc.OnPress),
			OnRelease:   buildOneShots(bc.OnRelease),
		}
	}
	return out
}
