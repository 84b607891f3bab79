package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// Face tells which family of grid lines a ray crossed when it hit a wall.
type Face uint8

const (
	// FaceX is a wall face lying on a vertical grid line (the ray stepped in X).
	FaceX Face = iota
	// FaceY is a wall face lying on a horizontal grid line (the ray stepped in Y).
	FaceY
)

func (f Face) String() string {
	if f == FaceX {
		return "x"
	}
	return "y"
}

// zeroDelta stands in for 1/0 when a ray component is exactly zero.
// It must stay finite: it gets multiplied by a fractional offset that can be 0.
const zeroDelta = 1e30

// RayHit is the raw result of marching one ray through the grid.
type RayHit struct {
	Hit      bool
	Distance float64 // perpendicular distance, valid when Hit
	Face     Face
	MapX     int
	MapY     int
	Steps    int
}

// ColumnResult is a RayHit projected onto one screen column.
type ColumnResult struct {
	RayHit
	DrawStart int // first wall row
	DrawEnd   int // one past the last wall row
	Shade     int // 0 is nearest/brightest
}

// Raycaster projects the grid into per-column wall slices.
type Raycaster struct {
	width       int
	height      int
	maxDepth    float64
	minDistance float64
	shadeLevels int
}

// NewRaycaster creates a raycaster for cfg's screen size and depth settings.
func NewRaycaster(cfg Config) *Raycaster {
	return &Raycaster{
		width:       cfg.ScreenWidth,
		height:      cfg.ScreenHeight,
		maxDepth:    cfg.MaxDepth,
		minDistance: cfg.MinDistance,
		shadeLevels: cfg.ShadeLevels,
	}
}

// CameraX maps column x to camera space, -1 at the left edge up to just under
// +1 at the right.
func (r *Raycaster) CameraX(x int) float64 {
	return 2*float64(x)/float64(r.width) - 1
}

// DeltaDist returns the ray length between consecutive grid-line crossings on
// each axis.
func DeltaDist(rayDir r2.Vec) (float64, float64) {
	dx, dy := zeroDelta, zeroDelta
	if rayDir.X != 0 {
		dx = math.Abs(1 / rayDir.X)
	}
	if rayDir.Y != 0 {
		dy = math.Abs(1 / rayDir.Y)
	}
	return dx, dy
}

// StepLimit bounds the number of DDA steps for a ray within maxDepth.
func StepLimit(rayDir r2.Vec, maxDepth float64) int {
	dx, dy := DeltaDist(rayDir)
	return 2*int(math.Ceil(maxDepth/math.Min(dx, dy))) + 2
}

// Cast marches a ray from pos along rayDir until it enters a solid cell or
// travels beyond the maximum depth.
func (r *Raycaster) Cast(g *world.Grid, pos, rayDir r2.Vec) RayHit {
	mapX, mapY := core.FloorInt(pos.X), core.FloorInt(pos.Y)
	deltaX, deltaY := DeltaDist(rayDir)

	var stepX, stepY int
	var sideX, sideY float64
	if rayDir.X < 0 {
		stepX = -1
		sideX = (pos.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - pos.X) * deltaX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideY = (pos.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - pos.Y) * deltaY
	}

	limit := StepLimit(rayDir, r.maxDepth)
	var h RayHit
	for h.Steps < limit {
		var dist float64
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			mapX += stepX
			h.Face = FaceX
		} else {
			dist = sideY
			sideY += deltaY
			mapY += stepY
			h.Face = FaceY
		}
		h.Steps++

		if dist > r.maxDepth {
			break
		}
		if g.IsSolid(mapX, mapY) {
			h.Hit = true
			h.Distance = math.Max(dist, r.minDistance)
			h.MapX, h.MapY = mapX, mapY
			return h
		}
	}
	return RayHit{Steps: h.Steps}
}

// Project turns a perpendicular distance into a wall slice and shade level.
func (r *Raycaster) Project(dist float64) (start, end, shade int) {
	dist = math.Max(dist, r.minDistance)
	lineH := int(float64(r.height) / dist)
	mid := r.height / 2
	start = core.Max(0, mid-lineH/2)
	end = core.Min(r.height, mid+lineH/2)
	shade = core.Min(r.shadeLevels-1, int(dist))
	return start, end, shade
}

// CastColumn casts the ray for screen column x.
func (r *Raycaster) CastColumn(g *world.Grid, cam *Camera, x int) ColumnResult {
	h := r.Cast(g, cam.Position, cam.RayDir(r.CameraX(x)))
	col := ColumnResult{RayHit: h}
	if h.Hit {
		col.DrawStart, col.DrawEnd, col.Shade = r.Project(h.Distance)
	}
	return col
}

// Render casts every column into f, reusing its buffers.
func (r *Raycaster) Render(g *world.Grid, cam *Camera, f *Frame) {
	f.resize(r.width, r.height)
	for x := 0; x < r.width; x++ {
		col := r.CastColumn(g, cam, x)
		f.Columns[x] = col
		f.paintColumn(x, col)
	}
	f.Pose = cam.Pose()
	f.Shades = r.shadeLevels
}
