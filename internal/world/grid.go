// Package world holds the static occupancy grid the engine casts rays against,
// plus the map definitions (spawn pose, metadata) built on top of it.
package world

import (
	"errors"
	"fmt"
)

// Map construction errors.
var (
	ErrEmptyMap     = errors.New("world: map has no cells")
	ErrRaggedMap    = errors.New("world: map rows have different lengths")
	ErrSpawnBlocked = errors.New("world: spawn point is inside a solid cell")
)

// Grid is an immutable rectangular occupancy map.
// Cell value 0 is empty, any other value is solid.
type Grid struct {
	width  int
	height int
	cells  []int // row-major, len = width*height
}

// NewGrid builds a Grid from rows of cell values, indexed [y][x].
// The input is copied; later changes to rows do not affect the grid.
func NewGrid(rows [][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(rows[0])
	g := &Grid{
		width:  width,
		height: len(rows),
		cells:  make([]int, 0, width*len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedMap, y, len(row), width)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the raw value at (x, y). Out-of-bounds cells read as 1 (solid).
func (g *Grid) Cell(x, y int) int {
	if !g.InBounds(x, y) {
		return 1
	}
	return g.cells[y*g.width+x]
}

// IsSolid reports whether the cell at (x, y) blocks rays and movement.
// Coordinates outside the grid are always solid, so callers never need a
// separate bounds check.
func (g *Grid) IsSolid(x, y int) bool {
	return g.Cell(x, y) != 0
}

// Rows returns a copy of the grid as [y][x] cell values.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		rows[y] = make([]int, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

// EmptyCells returns the number of non-solid cells.
func (g *Grid) EmptyCells() int {
	n := 0
	for _, c := range g.cells {
		if c == 0 {
			n++
		}
	}
	return n
}
