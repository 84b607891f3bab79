package tui

import (
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Command
	}{
		{"w", runeKey('w'), core.CommandMoveForward},
		{"W", runeKey('W'), core.CommandMoveForward},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.CommandMoveForward},
		{"s", runeKey('s'), core.CommandMoveBack},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.CommandMoveBack},
		{"a", runeKey('a'), core.CommandStrafeLeft},
		{"d", runeKey('d'), core.CommandStrafeRight},
		{"q", runeKey('q'), core.CommandTurnLeft},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.CommandTurnLeft},
		{"e", runeKey('e'), core.CommandTurnRight},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.CommandTurnRight},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.CommandExit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.CommandExit},
		{"x", runeKey('x'), core.CommandNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%s) = %v, expected %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed, core.ColorBlue)
	s.DrawText(2, 0, "cd", core.ColorRed, core.ColorDefault)
	s.DrawText(0, 1, "xyz", core.ColorDefault, core.ColorGreen)

	out := ansiRE.ReplaceAllString(RenderScreen(s), "")
	if out != s.String() {
		t.Errorf("RenderScreen() text = %q, expected %q", out, s.String())
	}
}

func newTestGame(t *testing.T, teardown func() error) GameModel {
	t.Helper()
	m, err := registry.Create("classic", 0)
	if err != nil {
		t.Fatal(err)
	}
	cfg := engine.DefaultConfig()
	cfg.ScreenWidth, cfg.ScreenHeight = 40, 12

	opts := GameOptions{
		Engine:        cfg,
		Map:           m,
		ShowHUD:       true,
		ScreenshotDir: t.TempDir(),
	}
	if teardown != nil {
		opts.Teardown = []func() error{teardown}
	}
	g, err := NewGameModel(opts)
	if err != nil {
		t.Fatalf("NewGameModel() error = %v", err)
	}
	return g
}

func TestGameModelTickRunsOneFrame(t *testing.T) {
	g := newTestGame(t, nil)

	model, _ := g.Update(runeKey('w'))
	model, cmd := model.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("Update(tick) returned no follow-up tick")
	}

	gm := model.(GameModel)
	stats := gm.Scheduler().Stats()
	if stats.Number != 1 || stats.Command != core.CommandMoveForward {
		t.Errorf("Stats() = %+v, expected frame 1 moving forward", stats)
	}
	if x := gm.Scheduler().Camera().Position.X; x <= 1.5 {
		t.Errorf("camera x = %v, expected to move past 1.5", x)
	}

	lines := strings.Split(ansiRE.ReplaceAllString(gm.View(), ""), "\n")
	if len(lines) != 13 {
		t.Errorf("View() has %d lines, expected 12 frame rows + status", len(lines))
	}
	if !strings.HasPrefix(lines[12], "Classic Maze") {
		t.Errorf("status line = %q, expected map name", lines[12])
	}
}

func TestGameModelExit(t *testing.T) {
	teardowns := 0
	g := newTestGame(t, func() error { teardowns++; return nil })

	model, _ := g.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(TickMsg(time.Now()))

	gm := model.(GameModel)
	if !gm.Done() {
		t.Fatal("Done() = false after esc")
	}
	if gm.View() != "" {
		t.Error("View() after exit should be empty")
	}
	if gm.Scheduler().Stats().Number != 0 {
		t.Errorf("frames = %d, expected none after exit", gm.Scheduler().Stats().Number)
	}

	if err := gm.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	gm.Shutdown()
	if teardowns != 1 {
		t.Errorf("teardown ran %d times, expected 1", teardowns)
	}
}

func TestGameModelScreenshot(t *testing.T) {
	g := newTestGame(t, nil)
	model, _ := g.Update(TickMsg(time.Now()))
	model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(g.st.shotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "classic_") {
		t.Fatalf("screenshot dir = %v, expected one classic_*.txt", entries)
	}
	if !strings.HasPrefix(g.st.message, "saved ") {
		t.Errorf("status message = %q, expected saved note", g.st.message)
	}
}

func TestMenuSelect(t *testing.T) {
	items := MenuItems(nil)
	if len(items) < 2 {
		t.Fatalf("MenuItems() = %d items, expected built-ins", len(items))
	}

	var model tea.Model = NewMenuModel(items, 80, 24)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m := model.(MenuModel)
	if m.Selected() == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if m.Selected().MapID != items[1].MapID {
		t.Errorf("Selected() = %q, expected %q", m.Selected().MapID, items[1].MapID)
	}
}

func TestMenuItemsSources(t *testing.T) {
	for _, it := range MenuItems(nil) {
		want := SourceBuiltin
		if it.MapID == "cave" {
			want = SourceGenerated
		}
		if it.Source != want {
			t.Errorf("item %q source = %q, expected %q", it.MapID, it.Source, want)
		}
	}
}

func TestMenuQuit(t *testing.T) {
	var model tea.Model = NewMenuModel(MenuItems(nil), 80, 24)
	model, _ = model.Update(runeKey('q'))
	if !model.(MenuModel).IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
}

func TestSessionReturnsToPicker(t *testing.T) {
	var started, ended int
	eng := config.DefaultEngineConfig()
	eng.Screen.Width, eng.Screen.Height = 0, 0

	var model tea.Model = NewSessionModel(SessionOptions{
		Engine: eng,
		Width:  60,
		Height: 20,
		OnGame: func(g *GameModel) {
			if g == nil {
				ended++
			} else {
				started++
			}
		},
	})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := model.(SessionModel)
	if !s.inGame || started != 1 {
		t.Fatalf("inGame = %v, started = %d after enter", s.inGame, started)
	}
	if got := s.gameModel.Scheduler().Config().ScreenHeight; got != 19 {
		t.Errorf("engine height = %d, expected PTY height minus status line", got)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, cmd := model.Update(TickMsg(time.Now()))
	s = model.(SessionModel)
	if s.inGame || ended != 1 {
		t.Fatalf("inGame = %v, ended = %d after esc", s.inGame, ended)
	}
	if cmd != nil {
		t.Error("leaving a map should not end the session")
	}
	if s.View() == "" {
		t.Error("picker view is empty after returning")
	}
}
