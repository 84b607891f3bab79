package render

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
)

// Paint draws f into the top-left of dst. Cells outside dst are clipped.
func Paint(dst *core.Screen, f *engine.Frame, p Palette) {
	w := core.Min(f.Width, dst.Width())
	h := core.Min(f.Height, dst.Height())

	for x := 0; x < w; x++ {
		col := f.Columns[x]
		wallFg := p.faceColor(col)
		for y := 0; y < h; y++ {
			dst.SetCell(x, y, p.cell(f.At(x, y), f.Shades, wallFg))
		}
	}
}

func (p Palette) faceColor(col engine.ColumnResult) core.Color {
	if col.Face == engine.FaceY {
		return p.SideFace
	}
	if col.Distance < p.NearDistance {
		return p.NearFace
	}
	return p.FarFace
}

func (p Palette) cell(c engine.FrameCell, levels int, wallFg core.Color) core.Cell {
	switch c.Kind {
	case engine.CellWall:
		return core.Cell{Rune: p.Glyph(c.Shade, levels), Fg: wallFg}
	case engine.CellFloor:
		return core.Cell{Rune: ' ', Bg: p.Floor}
	default:
		return core.Cell{Rune: ' ', Bg: p.Ceiling}
	}
}
