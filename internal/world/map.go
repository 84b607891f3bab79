package world

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// Spawn is the initial camera pose on a map.
// Angle is in radians; 0 faces +X, pi/2 faces +Y.
type Spawn struct {
	X     float64
	Y     float64
	Angle float64
}

// Map is a named grid with a validated spawn point.
type Map struct {
	ID    string
	Name  string
	Grid  *Grid
	Spawn Spawn
}

// NewMap validates that the spawn lies in an empty cell of grid.
func NewMap(id, name string, grid *Grid, spawn Spawn) (*Map, error) {
	if grid == nil {
		return nil, ErrEmptyMap
	}
	if math.IsNaN(spawn.X) || math.IsNaN(spawn.Y) || math.IsNaN(spawn.Angle) {
		return nil, fmt.Errorf("world: map %q: spawn has NaN coordinates", id)
	}
	cx, cy := core.FloorInt(spawn.X), core.FloorInt(spawn.Y)
	if grid.IsSolid(cx, cy) {
		return nil, fmt.Errorf("%w: map %q cell (%d, %d)", ErrSpawnBlocked, id, cx, cy)
	}
	return &Map{ID: id, Name: name, Grid: grid, Spawn: spawn}, nil
}

// ParseRows builds a Grid from an ASCII layout.
// Characters:
//
//	'#', '1'-'9' = solid (digit is kept as the cell value)
//	'.', '0', ' ' = empty
func ParseRows(lines []string) (*Grid, error) {
	rows := make([][]int, 0, len(lines))
	for y, line := range lines {
		row := make([]int, 0, len(line))
		for x, ch := range line {
			switch {
			case ch == '#':
				row = append(row, 1)
			case ch >= '1' && ch <= '9':
				row = append(row, int(ch-'0'))
			case ch == '.' || ch == '0' || ch == ' ':
				row = append(row, 0)
			default:
				return nil, fmt.Errorf("world: invalid map character %q at (%d, %d)", ch, x, y)
			}
		}
		rows = append(rows, row)
	}
	return NewGrid(rows)
}

// FormatRows renders the grid back to the ASCII layout accepted by ParseRows.
func FormatRows(g *Grid) []string {
	lines := make([]string, g.Height())
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		sb.Reset()
		for x := 0; x < g.Width(); x++ {
			switch v := g.Cell(x, y); {
			case v == 0:
				sb.WriteByte('.')
			case v == 1:
				sb.WriteByte('#')
			case v > 1 && v <= 9:
				sb.WriteByte(byte('0' + v))
			default:
				sb.WriteByte('#')
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
