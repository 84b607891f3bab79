package world

import (
	"fmt"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Cave generation tuning.
const (
	caveFrequency   = 0.18 // noise samples per cell
	caveOctaves     = 3
	cavePersistence = 0.5
	caveThreshold   = 0.56 // normalized noise above this is rock
	caveMinSize     = 8
)

// GenerateCave builds a seed-dependent cave map from layered simplex noise.
// The border is always solid, the area around the spawn point is carved open and
// empty pockets not reachable from the spawn are filled in. A zero seed picks a
// random one.
func GenerateCave(id string, seed int64, width, height int) (*Map, error) {
	if width < caveMinSize || height < caveMinSize {
		return nil, fmt.Errorf("world: cave must be at least %dx%d, got %dx%d", caveMinSize, caveMinSize, width, height)
	}
	if seed == 0 {
		seed = rand.Int63()
	}

	noise := opensimplex.NewNormalized(seed)

	rows := make([][]int, height)
	for y := range rows {
		rows[y] = make([]int, width)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				rows[y][x] = 1
				continue
			}
			if octaveNoise(noise, float64(x), float64(y)) > caveThreshold {
				rows[y][x] = 1
			}
		}
	}

	sx, sy := width/2, height/2
	for y := sy - 1; y <= sy+1; y++ {
		for x := sx - 1; x <= sx+1; x++ {
			rows[y][x] = 0
		}
	}
	fillUnreachable(rows, sx, sy)

	grid, err := NewGrid(rows)
	if err != nil {
		return nil, err
	}
	return NewMap(id, fmt.Sprintf("Cave #%d", seed), grid, Spawn{
		X: float64(sx) + 0.5,
		Y: float64(sy) + 0.5,
	})
}

// octaveNoise layers several noise frequencies, normalized back to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := caveFrequency

	for i := 0; i < caveOctaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= cavePersistence
		frequency *= 2
	}
	return total / maxVal
}

// fillUnreachable turns every empty cell not 4-connected to (sx, sy) into rock.
func fillUnreachable(rows [][]int, sx, sy int) {
	h, w := len(rows), len(rows[0])
	seen := make([]bool, w*h)
	stack := [][2]int{{sx, sy}}
	seen[sy*w+sx] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if rows[ny][nx] != 0 || seen[ny*w+nx] {
				continue
			}
			seen[ny*w+nx] = true
			stack = append(stack, [2]int{nx, ny})
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rows[y][x] == 0 && !seen[y*w+x] {
				rows[y][x] = 1
			}
		}
	}
}
