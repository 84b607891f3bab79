// Package engine implements the raycasting core: camera pose, DDA ray casting,
// axis-separated motion and the frame scheduler that ties them together.
// It has no terminal dependencies; frontends plug in through InputSource and Sink.
package engine

import (
	"errors"
	"fmt"
	"time"
)

// Timestep selects how the per-frame dt is derived.
type Timestep string

const (
	// TimestepFixed uses FrameInterval as dt for every frame, whatever the real
	// elapsed time was.
	TimestepFixed Timestep = "fixed"
	// TimestepMeasured uses the wall-clock time since the previous frame,
	// clamped to maxDTFactor frame intervals.
	TimestepMeasured Timestep = "measured"
)

// maxDTFactor caps measured dt so a stalled frame cannot teleport the camera.
const maxDTFactor = 4

// Config holds the engine tunables.
type Config struct {
	ScreenWidth   int           // Output columns (one ray per column)
	ScreenHeight  int           // Output rows
	FOV           float64       // |plane| / |direction|
	MaxDepth      float64       // Rays travelling further report no hit
	MinDistance   float64       // Floor for perpendicular distance
	ShadeLevels   int           // Number of distance shade buckets
	MoveSpeed     float64       // Units per second
	RotationSpeed float64       // Radians per second
	FrameInterval time.Duration // Target frame period
	Timestep      Timestep
}

// DefaultConfig returns the stock engine settings.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:   100,
		ScreenHeight:  40,
		FOV:           0.66,
		MaxDepth:      20.0,
		MinDistance:   0.1,
		ShadeLevels:   15,
		MoveSpeed:     2.8,
		RotationSpeed: 2.2,
		FrameInterval: 33 * time.Millisecond,
		Timestep:      TimestepFixed,
	}
}

// Validate reports every invalid setting, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight))
	}
	if c.FOV <= 0 {
		errs = append(errs, fmt.Errorf("fov must be positive, got %v", c.FOV))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max depth must be positive, got %v", c.MaxDepth))
	}
	if c.MinDistance <= 0 {
		errs = append(errs, fmt.Errorf("min distance must be positive, got %v", c.MinDistance))
	}
	if c.ShadeLevels <= 0 {
		errs = append(errs, fmt.Errorf("shade levels must be positive, got %d", c.ShadeLevels))
	}
	if c.MoveSpeed <= 0 || c.RotationSpeed <= 0 {
		errs = append(errs, fmt.Errorf("move and rotation speed must be positive, got %v and %v", c.MoveSpeed, c.RotationSpeed))
	}
	if c.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("frame interval must be positive, got %v", c.FrameInterval))
	}
	switch c.Timestep {
	case TimestepFixed, TimestepMeasured:
	default:
		errs = append(errs, fmt.Errorf("unknown timestep %q", c.Timestep))
	}

	if len(errs) > 0 {
		return fmt.Errorf("engine: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// NominalDT returns the fixed timestep in seconds.
func (c Config) NominalDT() float64 {
	return c.FrameInterval.Seconds()
}
