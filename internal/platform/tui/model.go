package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/render"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// inputQueueSize bounds pending key commands between ticks.
const inputQueueSize = 16

// messageTTL is how long status-line notes stay visible.
const messageTTL = 2 * time.Second

// GameOptions configures a GameModel.
type GameOptions struct {
	Engine        engine.Config
	Map           *world.Map
	Palette       render.Palette
	Logger        *log.Logger
	ShowHUD       bool
	ScreenshotDir string // empty = ~/.raycaster/screenshots
	OnBump        func()
	Teardown      []func() error
}

// gameState is shared by all copies of a GameModel.
type gameState struct {
	sched     *engine.Scheduler
	queue     *engine.CommandQueue
	screen    *core.Screen
	palette   render.Palette
	keyMapper *KeyMapper
	logger    *log.Logger
	mapName   string
	showHUD   bool
	shotDir   string

	lastTick  time.Time
	fps       float64
	message   string
	messageAt time.Time

	quitting bool
	err      error
}

// GameModel is the Bubble Tea model that drives one engine scheduler.
// Every tick runs exactly one engine frame; the next tick is scheduled after
// the remainder of the frame interval.
type GameModel struct {
	st *gameState
}

// NewGameModel builds the scheduler for opts.Map and wraps it in a model.
func NewGameModel(opts GameOptions) (GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Palette.Glyphs == nil {
		opts.Palette = render.DefaultPalette()
	}

	h := opts.Engine.ScreenHeight
	if opts.ShowHUD {
		h++
	}
	st := &gameState{
		queue:     engine.NewCommandQueue(inputQueueSize),
		screen:    core.NewScreen(opts.Engine.ScreenWidth, h),
		palette:   opts.Palette,
		keyMapper: NewKeyMapper(),
		logger:    opts.Logger,
		showHUD:   opts.ShowHUD,
		shotDir:   opts.ScreenshotDir,
	}
	if opts.Map != nil {
		st.mapName = opts.Map.Name
	}

	schedOpts := []engine.Option{engine.WithLogger(opts.Logger)}
	if opts.OnBump != nil {
		schedOpts = append(schedOpts, engine.WithBumpHandler(opts.OnBump))
	}
	for _, fn := range opts.Teardown {
		schedOpts = append(schedOpts, engine.WithTeardown(fn))
	}

	sched, err := engine.NewScheduler(opts.Engine, opts.Map, st.queue, engine.SinkFunc(st.present), schedOpts...)
	if err != nil {
		return GameModel{}, err
	}
	st.sched = sched
	return GameModel{st: st}, nil
}

// present is the scheduler sink: it paints the frame and status line into the
// model's screen buffer.
func (st *gameState) present(f *engine.Frame) error {
	render.Paint(st.screen, f, st.palette)
	if st.showHUD {
		msg := st.message
		if msg != "" && time.Since(st.messageAt) > messageTTL {
			st.message, msg = "", ""
		}
		render.DrawHUD(st.screen, f.Height, render.HUD{
			MapName: st.mapName,
			Pose:    f.Pose,
			Frame:   f.Number,
			FPS:     st.fps,
			Message: msg,
			Hint:    render.ControlsHint,
		})
	}
	return nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(0)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.st.logger.Debug("terminal resized", "width", msg.Width, "height", msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey queues the command for the next frame.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if cmd := m.st.keyMapper.MapKey(msg); cmd != core.CommandNone {
		if !m.st.queue.Push(cmd) {
			m.st.logger.Debug("input dropped", "command", cmd)
		}
	}
	return m, nil
}

// handleTick runs one engine frame.
func (m GameModel) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	st := m.st
	if st.quitting {
		return m, nil
	}

	if !st.lastTick.IsZero() {
		if d := at.Sub(st.lastTick).Seconds(); d > 0 {
			inst := 1 / d
			if st.fps == 0 {
				st.fps = inst
			} else {
				st.fps = 0.9*st.fps + 0.1*inst
			}
		}
	}
	st.lastTick = at

	start := time.Now()
	done, err := st.sched.Step()
	if err != nil {
		st.err = err
	}
	if done {
		st.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(st.sched.NextDelay(time.Since(start)))
}

// saveScreenshot writes the current screen as plain text.
func (m GameModel) saveScreenshot() {
	st := m.st
	dir := st.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			st.setMessage("screenshot failed")
			return
		}
		dir = filepath.Join(home, ".raycaster", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		st.logger.Warn("screenshot failed", "error", err)
		st.setMessage("screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", st.sched.Map().ID, timestamp))
	if err := os.WriteFile(path, []byte(st.screen.String()), 0o600); err != nil {
		st.logger.Warn("screenshot failed", "error", err)
		st.setMessage("screenshot failed")
		return
	}
	st.logger.Info("screenshot saved", "path", path)
	st.setMessage("saved " + filepath.Base(path))
}

func (st *gameState) setMessage(msg string) {
	st.message = msg
	st.messageAt = time.Now()
}

// View renders the last presented frame.
func (m GameModel) View() string {
	if m.st.quitting {
		return ""
	}
	return RenderScreen(m.st.screen)
}

// Done reports whether the engine has terminated.
func (m GameModel) Done() bool {
	return m.st.quitting
}

// Err returns the engine error that ended the session, if any.
func (m GameModel) Err() error {
	return m.st.err
}

// Scheduler exposes the engine for callers that need stats or the camera.
func (m GameModel) Scheduler() *engine.Scheduler {
	return m.st.sched
}

// Shutdown runs the scheduler teardown. Safe to call more than once.
func (m GameModel) Shutdown() error {
	return m.st.sched.Shutdown()
}

// Run plays opts.Map in the local terminal until the player exits.
// The scheduler teardown runs on every exit path, including panics.
func Run(opts GameOptions) (err error) {
	model, err := NewGameModel(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, model.Shutdown())
	}()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, runErr := p.Run(); runErr != nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	return model.Err()
}
