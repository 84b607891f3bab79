package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// Camera is the player's pose: where it stands, where it faces and the camera
// plane whose length relative to Direction encodes the field of view.
// Direction and Plane are only ever rotated together, so they stay perpendicular
// with a constant length ratio.
type Camera struct {
	Position  r2.Vec
	Direction r2.Vec
	Plane     r2.Vec
}

// Pose is a read-only snapshot of the camera for HUDs and logs.
type Pose struct {
	X, Y    float64
	Heading float64 // radians, atan2 of Direction
}

// NewCamera creates a camera at pos facing angle (radians, 0 = +X) with the given
// field-of-view constant. Direction is unit length and Plane points to the
// camera's right, perpendicular to it.
func NewCamera(pos r2.Vec, angle, fov float64) *Camera {
	dir := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	return &Camera{
		Position:  pos,
		Direction: dir,
		Plane:     r2.Scale(fov, r2.Vec{X: -dir.Y, Y: dir.X}),
	}
}

// Rotate turns the camera by angle radians. Positive angles turn toward the
// plane side (to the right on screen). One rotation is applied to both
// Direction and Plane.
func (c *Camera) Rotate(angle float64) {
	rot := r2.NewRotation(angle, r2.Vec{})
	c.Direction = rot.Rotate(c.Direction)
	c.Plane = rot.Rotate(c.Plane)
}

// Translate moves the camera by delta without any collision checks.
func (c *Camera) Translate(delta r2.Vec) {
	c.Position = r2.Add(c.Position, delta)
}

// FOV returns the field-of-view constant |plane| / |direction|.
func (c *Camera) FOV() float64 {
	return r2.Norm(c.Plane) / r2.Norm(c.Direction)
}

// Cell returns the grid cell containing the camera.
func (c *Camera) Cell() (int, int) {
	return core.FloorInt(c.Position.X), core.FloorInt(c.Position.Y)
}

// Right returns the unit-scaled strafe axis, perpendicular to Direction and
// pointing the same way as Plane.
func (c *Camera) Right() r2.Vec {
	return r2.Vec{X: -c.Direction.Y, Y: c.Direction.X}
}

// Pose returns a snapshot of the current pose.
func (c *Camera) Pose() Pose {
	return Pose{
		X:       c.Position.X,
		Y:       c.Position.Y,
		Heading: math.Atan2(c.Direction.Y, c.Direction.X),
	}
}

// RayDir returns the ray direction for a camera-space offset in [-1, 1].
// The result is deliberately not normalized.
func (c *Camera) RayDir(cameraX float64) r2.Vec {
	return r2.Add(c.Direction, r2.Scale(cameraX, c.Plane))
}
