package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// northCamera stands at (2.0, 1.2) in room5 facing -Y.
func northCamera() *Camera {
	return &Camera{
		Position:  r2.Vec{X: 2.0, Y: 1.2},
		Direction: r2.Vec{X: 0, Y: -1},
		Plane:     r2.Vec{X: 0.66, Y: 0},
	}
}

func TestMotionMoveBack(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMotion(room5(t), cfg)
	cam := northCamera()

	res := m.Apply(cam, core.CommandMoveBack, 0.033)

	assert.True(t, res.Moved)
	assert.False(t, res.Bumped())
	assert.InDelta(t, 2.0, cam.Position.X, eps)
	assert.InDelta(t, 1.2+2.8*0.033, cam.Position.Y, eps)
}

func TestMotionBlockedForward(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMotion(room5(t), cfg)
	cam := northCamera()

	// dt large enough to land in the border row.
	res := m.Apply(cam, core.CommandMoveForward, 0.2)

	assert.False(t, res.Moved)
	assert.True(t, res.BlockedY)
	assert.True(t, res.Bumped())
	assert.Equal(t, r2.Vec{X: 2.0, Y: 1.2}, cam.Position)
}

func TestMotionBlockedBack(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMotion(room5(t), cfg)
	// Facing -Y near the bottom wall, so backing up heads into row 4.
	cam := &Camera{
		Position:  r2.Vec{X: 2.0, Y: 3.2},
		Direction: r2.Vec{X: 0, Y: -1},
		Plane:     r2.Vec{X: 0.66, Y: 0},
	}

	res := m.Apply(cam, core.CommandMoveBack, 0.4)

	assert.False(t, res.Moved)
	assert.False(t, res.BlockedX)
	assert.True(t, res.BlockedY)
	assert.True(t, res.Bumped())
	assert.Equal(t, r2.Vec{X: 2.0, Y: 3.2}, cam.Position)
}

func TestMotionSlidesAlongWall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MoveSpeed = 1
	m := NewMotion(room5(t), cfg)
	cam := &Camera{
		Position:  r2.Vec{X: 1.2, Y: 2.5},
		Direction: r2.Vec{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
		Plane:     r2.Vec{X: -0.66 * math.Sqrt2 / 2, Y: -0.66 * math.Sqrt2 / 2},
	}

	// Displacement is (-0.5, +0.5): X lands in the west wall, Y stays open.
	res := m.Apply(cam, core.CommandMoveForward, math.Sqrt2/2)

	assert.True(t, res.BlockedX)
	assert.False(t, res.BlockedY)
	assert.True(t, res.Moved)
	assert.False(t, res.Bumped())
	assert.Equal(t, 1.2, cam.Position.X)
	assert.InDelta(t, 3.0, cam.Position.Y, eps)
}

func TestMotionStrafe(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMotion(room5(t), cfg)

	tests := []struct {
		name  string
		cmd   core.Command
		wantX float64
	}{
		// Facing -Y, the plane (and the right hand) points +X.
		{"strafe right", core.CommandStrafeRight, 2.0 + 2.8*0.033},
		{"strafe left", core.CommandStrafeLeft, 2.0 - 2.8*0.033},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := northCamera()
			res := m.Apply(cam, tc.cmd, 0.033)
			assert.True(t, res.Moved)
			assert.InDelta(t, tc.wantX, cam.Position.X, eps)
			assert.InDelta(t, 1.2, cam.Position.Y, eps)
		})
	}
}

func TestMotionTurns(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMotion(room5(t), cfg)
	cam := NewCamera(r2.Vec{X: 2.5, Y: 2.5}, 0, cfg.FOV)

	res := m.Apply(cam, core.CommandTurnRight, 0.033)
	assert.True(t, res.Turned)
	assert.False(t, res.Moved)
	assert.InDelta(t, 2.2*0.033, cam.Pose().Heading, eps)

	m.Apply(cam, core.CommandTurnLeft, 0.033)
	m.Apply(cam, core.CommandTurnLeft, 0.033)
	assert.InDelta(t, -2.2*0.033, cam.Pose().Heading, eps)
	assert.Equal(t, r2.Vec{X: 2.5, Y: 2.5}, cam.Position)
}

func TestMotionTurnLeftFullCircle(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMotion(room5(t), cfg)
	cam := NewCamera(r2.Vec{X: 2.5, Y: 2.5}, 0, cfg.FOV)
	dir, plane := cam.Direction, cam.Plane

	const n = 90
	dt := 2 * math.Pi / (cfg.RotationSpeed * n)
	for i := 0; i < n; i++ {
		m.Apply(cam, core.CommandTurnLeft, dt)
	}

	assert.InDelta(t, dir.X, cam.Direction.X, eps)
	assert.InDelta(t, dir.Y, cam.Direction.Y, eps)
	assert.InDelta(t, plane.X, cam.Plane.X, eps)
	assert.InDelta(t, plane.Y, cam.Plane.Y, eps)
}

func TestMotionNoneIsNoop(t *testing.T) {
	m := NewMotion(room5(t), DefaultConfig())
	cam := northCamera()
	before := *cam

	res := m.Apply(cam, core.CommandNone, 0.033)

	assert.Equal(t, MoveResult{}, res)
	assert.Equal(t, before, *cam)
}

func TestMotionNeverEntersWalls(t *testing.T) {
	g, err := world.ParseRows([]string{
		"##########",
		"#........#",
		"#.##..#..#",
		"#.#...#..#",
		"#....##..#",
		"#.#......#",
		"##########",
	})
	require.NoError(t, err)

	cfg := DefaultConfig()
	m := NewMotion(g, cfg)
	cam := NewCamera(r2.Vec{X: 1.5, Y: 1.5}, 0, cfg.FOV)
	cmds := []core.Command{
		core.CommandMoveForward, core.CommandMoveBack,
		core.CommandStrafeLeft, core.CommandStrafeRight,
		core.CommandTurnLeft, core.CommandTurnRight,
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		cmd := cmds[rng.Intn(len(cmds))]
		dt := rng.Float64() * 0.5
		m.Apply(cam, cmd, dt)

		x, y := cam.Cell()
		if g.IsSolid(x, y) {
			t.Fatalf("step %d: camera at %v entered solid cell (%d,%d) after %s", i, cam.Position, x, y, cmd)
		}
	}
}
