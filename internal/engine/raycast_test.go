package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

func TestCastColumnCenterHitsFacingWall(t *testing.T) {
	cfg := DefaultConfig()
	rc := NewRaycaster(cfg)
	cam := NewCamera(r2.Vec{X: 2, Y: 2}, 0, cfg.FOV)

	col := rc.CastColumn(room5(t), cam, cfg.ScreenWidth/2)

	require.True(t, col.Hit)
	assert.InDelta(t, 2.0, col.Distance, eps)
	assert.Equal(t, FaceX, col.Face)
	assert.Equal(t, 4, col.MapX)
	assert.Equal(t, 2, col.MapY)

	// H=40 at distance 2: a 20 row slice centred on the horizon.
	assert.Equal(t, 10, col.DrawStart)
	assert.Equal(t, 30, col.DrawEnd)
	assert.Equal(t, 2, col.Shade)
}

func TestCastAxisAlignedRays(t *testing.T) {
	rc := NewRaycaster(DefaultConfig())
	g := room5(t)
	pos := r2.Vec{X: 2.5, Y: 2.5}

	tests := []struct {
		name     string
		dir      r2.Vec
		wantDist float64
		wantFace Face
		wantX    int
		wantY    int
	}{
		{"east", r2.Vec{X: 1}, 1.5, FaceX, 4, 2},
		{"west", r2.Vec{X: -1}, 1.5, FaceX, 0, 2},
		{"south", r2.Vec{Y: 1}, 1.5, FaceY, 2, 4},
		{"north", r2.Vec{Y: -1}, 1.5, FaceY, 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := rc.Cast(g, pos, tc.dir)
			require.True(t, h.Hit)
			assert.InDelta(t, tc.wantDist, h.Distance, eps)
			assert.Equal(t, tc.wantFace, h.Face)
			assert.Equal(t, tc.wantX, h.MapX)
			assert.Equal(t, tc.wantY, h.MapY)
		})
	}
}

func TestCastClampsToMinDistance(t *testing.T) {
	cfg := DefaultConfig()
	rc := NewRaycaster(cfg)

	h := rc.Cast(room5(t), r2.Vec{X: 1.05, Y: 2.5}, r2.Vec{X: -1})
	require.True(t, h.Hit)
	assert.InDelta(t, cfg.MinDistance, h.Distance, eps)

	start, end, shade := rc.Project(h.Distance)
	if start != 0 || end != cfg.ScreenHeight {
		t.Errorf("Project(min) = [%d, %d), expected full column [0, %d)", start, end, cfg.ScreenHeight)
	}
	if shade != 0 {
		t.Errorf("Project(min) shade = %d, expected 0", shade)
	}
}

func openField(t *testing.T, size int) *world.Grid {
	t.Helper()
	rows := make([][]int, size)
	for y := range rows {
		rows[y] = make([]int, size)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				rows[y][x] = 1
			}
		}
	}
	g, err := world.NewGrid(rows)
	require.NoError(t, err)
	return g
}

func TestCastBeyondMaxDepthMisses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 5
	rc := NewRaycaster(cfg)
	g := openField(t, 64)
	pos := r2.Vec{X: 32.5, Y: 32.5}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a := rng.Float64() * 2 * math.Pi
		dir := r2.Vec{X: math.Cos(a), Y: math.Sin(a)}

		h := rc.Cast(g, pos, dir)
		if h.Hit {
			t.Fatalf("Cast(angle=%v) hit at %v, expected no hit within depth %v", a, h.Distance, cfg.MaxDepth)
		}
		dx, dy := DeltaDist(dir)
		bound := 2*int(math.Ceil(cfg.MaxDepth/math.Min(dx, dy))) + 2
		if h.Steps > bound {
			t.Errorf("Cast(angle=%v) took %d steps, expected <= %d", a, h.Steps, bound)
		}
	}
}

func TestCastStepsBoundedInClosedMap(t *testing.T) {
	cfg := DefaultConfig()
	rc := NewRaycaster(cfg)
	g := openField(t, 12)
	pos := r2.Vec{X: 6.3, Y: 5.8}

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		a := rng.Float64() * 2 * math.Pi
		dir := r2.Vec{X: math.Cos(a), Y: math.Sin(a)}
		h := rc.Cast(g, pos, dir)
		if !h.Hit {
			t.Fatalf("Cast(%v) missed inside a closed 12x12 map", dir)
		}
		if h.Distance < cfg.MinDistance || h.Distance > cfg.MaxDepth {
			t.Errorf("Cast(%v) distance = %v, expected within [%v, %v]", dir, h.Distance, cfg.MinDistance, cfg.MaxDepth)
		}
		if h.Steps > StepLimit(dir, cfg.MaxDepth) {
			t.Errorf("Cast(%v) steps = %d, expected <= %d", dir, h.Steps, StepLimit(dir, cfg.MaxDepth))
		}
	}
}

func TestDeltaDistZeroComponent(t *testing.T) {
	dx, dy := DeltaDist(r2.Vec{X: 0, Y: -0.5})
	if dx != zeroDelta {
		t.Errorf("DeltaDist().x = %v, expected %v", dx, zeroDelta)
	}
	assert.InDelta(t, 2.0, dy, eps)
}

func TestProjectMonotonic(t *testing.T) {
	rc := NewRaycaster(DefaultConfig())

	prevH, prevShade := math.MaxInt, -1
	for d := 0.1; d < 25; d += 0.05 {
		start, end, shade := rc.Project(d)
		h := end - start
		if h > prevH {
			t.Fatalf("Project(%v) height = %d grew from %d", d, h, prevH)
		}
		if shade < prevShade {
			t.Fatalf("Project(%v) shade = %d dropped from %d", d, shade, prevShade)
		}
		if start < 0 || end > 40 || start > end {
			t.Fatalf("Project(%v) = [%d, %d), expected within [0, 40)", d, start, end)
		}
		prevH, prevShade = h, shade
	}
	if prevShade != 14 {
		t.Errorf("far shade = %d, expected darkest level 14", prevShade)
	}
}

func TestCameraX(t *testing.T) {
	rc := NewRaycaster(testConfig())
	tests := []struct {
		x    int
		want float64
	}{
		{0, -1},
		{10, 0},
		{19, 0.9},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, rc.CameraX(tc.x), eps, "CameraX(%d)", tc.x)
	}
}

func TestRenderFrameLayout(t *testing.T) {
	cfg := testConfig()
	rc := NewRaycaster(cfg)
	cam := NewCamera(r2.Vec{X: 2.5, Y: 2.5}, 0.4, cfg.FOV)
	f := NewFrame(cfg.ScreenWidth, cfg.ScreenHeight)

	rc.Render(room5(t), cam, f)

	require.Len(t, f.Columns, cfg.ScreenWidth)
	require.Len(t, f.Cells, cfg.ScreenWidth*cfg.ScreenHeight)
	assert.InDelta(t, 2.5, f.Pose.X, eps)

	for x, col := range f.Columns {
		require.True(t, col.Hit, "column %d should hit in a closed room", x)
		for y := 0; y < f.Height; y++ {
			c := f.At(x, y)
			switch {
			case y >= col.DrawStart && y < col.DrawEnd:
				assert.Equal(t, CellWall, c.Kind, "cell (%d,%d)", x, y)
				assert.Equal(t, col.Shade, c.Shade)
				assert.Equal(t, col.Face, c.Face)
			case y < f.Height/2:
				assert.Equal(t, CellCeiling, c.Kind, "cell (%d,%d)", x, y)
			default:
				assert.Equal(t, CellFloor, c.Kind, "cell (%d,%d)", x, y)
			}
		}
	}

	n, mean := f.Hits()
	assert.Equal(t, cfg.ScreenWidth, n)
	assert.Greater(t, mean, 0.0)
}

func TestRenderReusesFrame(t *testing.T) {
	cfg := testConfig()
	rc := NewRaycaster(cfg)
	cam := NewCamera(r2.Vec{X: 2.5, Y: 2.5}, 0, cfg.FOV)
	f := NewFrame(cfg.ScreenWidth, cfg.ScreenHeight)
	cells := &f.Cells[0]

	rc.Render(room5(t), cam, f)
	rc.Render(room5(t), cam, f)

	if &f.Cells[0] != cells {
		t.Error("Render() reallocated the cell buffer for an unchanged size")
	}
}
