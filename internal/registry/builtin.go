package registry

import (
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// DefaultMap is the map used when none is named.
const DefaultMap = "classic"

var classicRows = []string{
	"1111111111111111111111",
	"1000000000000000000001",
	"1011010001110011010101",
	"1010010000000000010101",
	"1010110111100011010101",
	"1000000000100010000001",
	"1011110110100011110101",
	"1000000000000000000001",
	"1111111111111111111111",
}

var roomRows = []string{
	"##########",
	"#........#",
	"#........#",
	"#........#",
	"#........#",
	"#........#",
	"#........#",
	"##########",
}

var pillarsRows = []string{
	"################",
	"#..............#",
	"#.#..#..#..#..##",
	"#..............#",
	"#.#..#..#..#...#",
	"#..............#",
	"#.#..#..#..#...#",
	"#..............#",
	"#.#..#..#..#..##",
	"#..............#",
	"################",
}

func init() {
	Register(MapInfo{ID: "classic", Title: "Classic Maze"},
		static("classic", "Classic Maze", classicRows, world.Spawn{X: 1.5, Y: 1.5}))
	Register(MapInfo{ID: "room", Title: "Empty Room"},
		static("room", "Empty Room", roomRows, world.Spawn{X: 4.5, Y: 3.5, Angle: math.Pi / 2}))
	Register(MapInfo{ID: "pillars", Title: "Pillar Hall"},
		static("pillars", "Pillar Hall", pillarsRows, world.Spawn{X: 1.5, Y: 1.5}))
	Register(MapInfo{ID: "cave", Title: "Generated Cave", Generated: true},
		func(seed int64) (*world.Map, error) {
			return world.GenerateCave("cave", seed, 48, 32)
		})
}

func static(id, name string, rows []string, spawn world.Spawn) Factory {
	return func(int64) (*world.Map, error) {
		g, err := world.ParseRows(rows)
		if err != nil {
			return nil, err
		}
		return world.NewMap(id, name, g, spawn)
	}
}
