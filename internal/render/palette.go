// Package render turns engine frames into character screens: wall glyphs by
// distance shade, face colours, ceiling and floor fills and the status line.
package render

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
)

// DefaultGlyphs is the wall ramp, densest (nearest) first.
const DefaultGlyphs = "█@%&$#*+=~;:,. "

// Palette maps frame cells to glyphs and colours.
type Palette struct {
	Glyphs       []rune     // wall ramp, nearest first
	NearFace     core.Color // X faces closer than NearDistance
	FarFace      core.Color // other X faces
	SideFace     core.Color // Y faces
	NearDistance float64
	Ceiling      core.Color // ceiling background
	Floor        core.Color // floor background

	// Plain glyphs for ceiling and floor when colours are unavailable.
	CeilingGlyph rune
	FloorGlyph   rune
}

// DefaultPalette returns the classic red-walls, blue-sky, green-floor look.
func DefaultPalette() Palette {
	return Palette{
		Glyphs:       []rune(DefaultGlyphs),
		NearFace:     core.ColorBrightRed,
		FarFace:      core.ColorRed,
		SideFace:     core.ColorGray,
		NearDistance: 6,
		Ceiling:      core.ColorBlue,
		Floor:        core.ColorGreen,
		CeilingGlyph: '░',
		FloorGlyph:   '▒',
	}
}

// Glyph returns the wall glyph for shade out of levels. Shade 0 is the
// densest glyph and levels-1 the lightest, whatever the ramp length.
func (p Palette) Glyph(shade, levels int) rune {
	if len(p.Glyphs) == 0 {
		return '#'
	}
	return p.Glyphs[p.glyphIndex(shade, levels)]
}

// WallGlyph is Glyph with Y faces moved one ramp step lighter, so wall
// orientation survives in output without colour.
func (p Palette) WallGlyph(shade, levels int, face engine.Face) rune {
	if len(p.Glyphs) == 0 {
		return '#'
	}
	idx := p.glyphIndex(shade, levels)
	if face == engine.FaceY {
		idx = core.Clamp(idx+1, 0, len(p.Glyphs)-1)
	}
	return p.Glyphs[idx]
}

func (p Palette) glyphIndex(shade, levels int) int {
	n := len(p.Glyphs)
	if levels <= 1 || n == 1 {
		return 0
	}
	return core.Clamp(shade*(n-1)/(levels-1), 0, n-1)
}
