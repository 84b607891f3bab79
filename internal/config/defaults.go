package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the hardcoded engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Screen: ScreenConfig{
			Width:  100,
			Height: 40,
		},
		Camera: CameraConfig{
			FOV: 0.66,
		},
		Render: RenderConfig{
			MaxDepth:    20.0,
			ShadeLevels: 15,
			MinDistance: 0.1,
		},
		Motion: MotionConfig{
			MoveSpeed:     2.8,
			RotationSpeed: 2.2,
		},
		Timing: TimingConfig{
			FrameInterval: 33 * time.Millisecond,
			Timestep:      "fixed",
		},
	}
}

// DefaultYAML returns the embedded default engine YAML.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
