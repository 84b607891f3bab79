package render

import (
	"strings"

	"github.com/vovakirdan/tui-raycaster/internal/engine"
)

// Text renders f as plain text with no colour codes. Ceiling and floor use the
// palette's plain glyphs so the horizon stays visible. Y faces are drawn one
// ramp step lighter than X faces to stand in for the side colour.
func Text(f *engine.Frame, p Palette) string {
	var sb strings.Builder
	sb.Grow((f.Width + 1) * f.Height * 2)

	for y := 0; y < f.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			switch c.Kind {
			case engine.CellWall:
				sb.WriteRune(p.WallGlyph(c.Shade, f.Shades, c.Face))
			case engine.CellFloor:
				sb.WriteRune(p.FloorGlyph)
			default:
				sb.WriteRune(p.CeilingGlyph)
			}
		}
	}
	return sb.String()
}
