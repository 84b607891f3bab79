package engine

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// MoveResult reports what a command did to the camera.
type MoveResult struct {
	Moved    bool // position changed on at least one axis
	Turned   bool
	BlockedX bool // an X displacement was rejected
	BlockedY bool // a Y displacement was rejected
}

// Bumped reports a translation command that could not move at all.
func (r MoveResult) Bumped() bool {
	return !r.Moved && (r.BlockedX || r.BlockedY)
}

// Motion applies movement commands to a camera with grid collision.
type Motion struct {
	grid          *world.Grid
	moveSpeed     float64
	rotationSpeed float64
}

// NewMotion creates a motion controller bound to g.
func NewMotion(g *world.Grid, cfg Config) *Motion {
	return &Motion{
		grid:          g,
		moveSpeed:     cfg.MoveSpeed,
		rotationSpeed: cfg.RotationSpeed,
	}
}

// Apply executes cmd over dt seconds. Turns always succeed. Translations are
// resolved one axis at a time: X is tested against the current Y, then Y against
// the possibly updated X, so the camera slides along walls instead of sticking.
func (m *Motion) Apply(cam *Camera, cmd core.Command, dt float64) MoveResult {
	switch {
	case cmd.IsTurn():
		angle := m.rotationSpeed * dt
		if cmd == core.CommandTurnLeft {
			angle = -angle
		}
		cam.Rotate(angle)
		return MoveResult{Turned: true}
	case cmd.IsMove():
		return m.translate(cam, m.displacement(cam, cmd, dt))
	}
	return MoveResult{}
}

// displacement is the world-space step a move command asks for over dt.
func (m *Motion) displacement(cam *Camera, cmd core.Command, dt float64) r2.Vec {
	step := m.moveSpeed * dt
	switch cmd {
	case core.CommandMoveBack:
		return r2.Scale(-step, cam.Direction)
	case core.CommandStrafeLeft:
		return r2.Scale(-step, cam.Right())
	case core.CommandStrafeRight:
		return r2.Scale(step, cam.Right())
	}
	return r2.Scale(step, cam.Direction)
}

func (m *Motion) translate(cam *Camera, delta r2.Vec) MoveResult {
	var res MoveResult
	pos := cam.Position

	if delta.X != 0 {
		nx := pos.X + delta.X
		if m.grid.IsSolid(core.FloorInt(nx), core.FloorInt(pos.Y)) {
			res.BlockedX = true
		} else {
			pos.X = nx
			res.Moved = true
		}
	}
	if delta.Y != 0 {
		ny := pos.Y + delta.Y
		if m.grid.IsSolid(core.FloorInt(pos.X), core.FloorInt(ny)) {
			res.BlockedY = true
		} else {
			pos.Y = ny
			res.Moved = true
		}
	}

	cam.Position = pos
	return res
}
