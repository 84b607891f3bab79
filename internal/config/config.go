// Package config provides YAML-based engine configuration loading and view
// presets for the raycaster.
package config

import (
	"time"

	"github.com/vovakirdan/tui-raycaster/internal/engine"
)

// EngineConfig is the on-disk form of the engine settings.
type EngineConfig struct {
	Screen ScreenConfig `yaml:"screen"`
	Camera CameraConfig `yaml:"camera"`
	Render RenderConfig `yaml:"render"`
	Motion MotionConfig `yaml:"motion"`
	Timing TimingConfig `yaml:"timing"`
}

// ScreenConfig defines the output size. Zero fits the terminal.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig defines the projection.
type CameraConfig struct {
	FOV float64 `yaml:"fov"` // |plane| / |direction|
}

// RenderConfig defines ray casting and shading limits.
type RenderConfig struct {
	MaxDepth    float64 `yaml:"max_depth"`
	ShadeLevels int     `yaml:"shade_levels"`
	MinDistance float64 `yaml:"min_distance"`
}

// MotionConfig defines camera speeds.
type MotionConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`     // units per second
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per second
}

// TimingConfig defines frame pacing.
type TimingConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"` // e.g. "33ms"
	Timestep      string        `yaml:"timestep"`       // "fixed" or "measured"
}

// Engine converts the file config into engine settings. Zero screen dimensions
// are replaced by fitW and fitH.
func (c EngineConfig) Engine(fitW, fitH int) engine.Config {
	w, h := c.Screen.Width, c.Screen.Height
	if w <= 0 {
		w = fitW
	}
	if h <= 0 {
		h = fitH
	}
	return engine.Config{
		ScreenWidth:   w,
		ScreenHeight:  h,
		FOV:           c.Camera.FOV,
		MaxDepth:      c.Render.MaxDepth,
		MinDistance:   c.Render.MinDistance,
		ShadeLevels:   c.Render.ShadeLevels,
		MoveSpeed:     c.Motion.MoveSpeed,
		RotationSpeed: c.Motion.RotationSpeed,
		FrameInterval: c.Timing.FrameInterval,
		Timestep:      engine.Timestep(c.Timing.Timestep),
	}
}

// FitsTerminal reports whether either screen dimension follows the terminal size.
func (c EngineConfig) FitsTerminal() bool {
	return c.Screen.Width <= 0 || c.Screen.Height <= 0
}
