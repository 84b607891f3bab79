package config

import "fmt"

// ViewPreset represents a named field of view.
type ViewPreset string

const (
	ViewNarrow ViewPreset = "narrow"
	ViewNormal ViewPreset = "normal"
	ViewWide   ViewPreset = "wide"
)

// ViewPresets lists the presets in display order.
var ViewPresets = []ViewPreset{ViewNarrow, ViewNormal, ViewWide}

// FOVForPreset returns the FOV constant for a view preset.
func FOVForPreset(preset ViewPreset) (float64, error) {
	switch preset {
	case ViewNarrow:
		return 0.45, nil
	case ViewNormal:
		return 0.66, nil
	case ViewWide:
		return 0.9, nil
	default:
		return 0, fmt.Errorf("unknown view preset %q (want narrow, normal or wide)", preset)
	}
}

// ApplyViewPreset overrides the camera FOV with a preset. An empty preset keeps
// the configured value.
func ApplyViewPreset(cfg *EngineConfig, preset ViewPreset) error {
	if preset == "" {
		return nil
	}
	fov, err := FOVForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Camera.FOV = fov
	return nil
}
