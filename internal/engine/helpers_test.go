package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// room5 is a 5x5 room: border solid, interior empty.
func room5(t *testing.T) *world.Grid {
	t.Helper()
	g, err := world.NewGrid([][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
	require.NoError(t, err)
	return g
}

func room5Map(t *testing.T, spawn world.Spawn) *world.Map {
	t.Helper()
	m, err := world.NewMap("room5", "Room", room5(t), spawn)
	require.NoError(t, err)
	return m
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ScreenWidth = 20
	cfg.ScreenHeight = 10
	return cfg
}
