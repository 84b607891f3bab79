package render

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
)

// ControlsHint is the key summary shown on the right of the status line.
const ControlsHint = "WASD/arrows move  Q/E turn  Esc quit"

// HUD is the status line content.
type HUD struct {
	MapName string
	Pose    engine.Pose
	Frame   uint64
	FPS     float64 // 0 hides the counter
	Message string  // transient note, e.g. a saved screenshot path
	Hint    string
}

// Status formats the left part of the status line.
func (h HUD) Status() string {
	heading := math.Mod(h.Pose.Heading*180/math.Pi+360, 360)
	s := fmt.Sprintf("%s  x %.2f  y %.2f  hdg %3.0f°  #%d", h.MapName, h.Pose.X, h.Pose.Y, heading, h.Frame)
	if h.FPS > 0 {
		s += fmt.Sprintf("  %.0f fps", h.FPS)
	}
	if h.Message != "" {
		s += "  " + h.Message
	}
	return s
}

// DrawHUD clears row y of dst and writes the status line into it. The hint is
// right-aligned and dropped when it does not fit.
func DrawHUD(dst *core.Screen, y int, h HUD) {
	for x := 0; x < dst.Width(); x++ {
		dst.SetCell(x, y, core.Cell{Rune: ' '})
	}

	status := h.Status()
	dst.DrawText(0, y, status, core.ColorBrightWhite, core.ColorDefault)

	hint := []rune(h.Hint)
	if len(hint) == 0 {
		return
	}
	x := dst.Width() - len(hint)
	if x <= len([]rune(status))+1 {
		return
	}
	dst.DrawText(x, y, h.Hint, core.ColorGray, core.ColorDefault)
}
