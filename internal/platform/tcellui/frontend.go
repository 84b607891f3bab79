// Package tcellui is a direct terminal frontend built on tcell. It skips the
// Bubble Tea runtime: a reader goroutine feeds key events into a command queue
// and frames are written cell by cell.
package tcellui

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/render"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

const eventQueueSize = 100

// Options configures a Frontend.
type Options struct {
	Palette render.Palette
	Logger  *log.Logger
	ShowHUD bool
	MapName string
}

// Frontend is both the engine's InputSource and its Sink.
type Frontend struct {
	screen  tcell.Screen
	queue   *engine.CommandQueue
	buf     *core.Screen
	palette render.Palette
	logger  *log.Logger
	showHUD bool
	mapName string

	styles map[[2]core.Color]tcell.Style

	closeOnce sync.Once
	done      chan struct{}
}

// New initializes screen and starts reading its events.
func New(screen tcell.Screen, opts Options) (*Frontend, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Palette.Glyphs == nil {
		opts.Palette = render.DefaultPalette()
	}

	screen.HideCursor()
	screen.Clear()

	fe := &Frontend{
		screen:  screen,
		queue:   engine.NewCommandQueue(eventQueueSize),
		buf:     core.NewScreen(0, 0),
		palette: opts.Palette,
		logger:  opts.Logger,
		showHUD: opts.ShowHUD,
		mapName: opts.MapName,
		styles:  make(map[[2]core.Color]tcell.Style),
		done:    make(chan struct{}),
	}
	go fe.readEvents()
	return fe, nil
}

// readEvents runs until the screen is finalized, at which point PollEvent
// returns nil.
func (fe *Frontend) readEvents() {
	defer close(fe.done)
	for {
		ev := fe.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if cmd := MapKey(ev); cmd != core.CommandNone {
				if !fe.queue.Push(cmd) {
					fe.logger.Debug("input dropped", "command", cmd)
				}
			}
		case *tcell.EventResize:
			fe.screen.Sync()
		}
	}
}

// Poll implements engine.InputSource.
func (fe *Frontend) Poll() core.Command {
	return fe.queue.Poll()
}

// Present implements engine.Sink.
func (fe *Frontend) Present(f *engine.Frame) error {
	h := f.Height
	if fe.showHUD {
		h++
	}
	if fe.buf.Width() != f.Width || fe.buf.Height() != h {
		fe.buf = core.NewScreen(f.Width, h)
	}

	render.Paint(fe.buf, f, fe.palette)
	if fe.showHUD {
		render.DrawHUD(fe.buf, f.Height, render.HUD{
			MapName: fe.mapName,
			Pose:    f.Pose,
			Frame:   f.Number,
			Hint:    render.ControlsHint,
		})
	}

	for y := 0; y < fe.buf.Height(); y++ {
		for x := 0; x < fe.buf.Width(); x++ {
			c := fe.buf.GetCell(x, y)
			fe.screen.SetContent(x, y, c.Rune, nil, fe.style(c.Fg, c.Bg))
		}
	}
	fe.screen.Show()
	return nil
}

func (fe *Frontend) style(fg, bg core.Color) tcell.Style {
	key := [2]core.Color{fg, bg}
	if st, ok := fe.styles[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
	fe.styles[key] = st
	return st
}

func toTcell(c core.Color) tcell.Color {
	code := c.ANSI()
	if code < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(code)
}

// Close restores the terminal and waits for the reader to stop.
// Safe to call more than once.
func (fe *Frontend) Close() error {
	fe.closeOnce.Do(func() {
		fe.screen.Fini()
		<-fe.done
	})
	return nil
}

// MapKey translates a tcell key event to an engine command.
func MapKey(ev *tcell.EventKey) core.Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.CommandExit
	case tcell.KeyUp:
		return core.KeyCommand("up")
	case tcell.KeyDown:
		return core.KeyCommand("down")
	case tcell.KeyLeft:
		return core.KeyCommand("left")
	case tcell.KeyRight:
		return core.KeyCommand("right")
	case tcell.KeyRune:
		return core.KeyCommand(string(ev.Rune()))
	}
	return core.CommandNone
}

// RunConfig bundles what Run needs.
type RunConfig struct {
	Engine   engine.Config
	Map      *world.Map
	Logger   *log.Logger
	OnBump   func()
	Teardown []func() error
}

// Run plays rc.Map on fe until the player exits or ctx is cancelled. fe is
// closed on every exit path, after the other teardown functions.
func Run(ctx context.Context, fe *Frontend, rc RunConfig) error {
	if fe.mapName == "" && rc.Map != nil {
		fe.mapName = rc.Map.Name
	}

	opts := []engine.Option{engine.WithTeardown(fe.Close)}
	if rc.Logger != nil {
		opts = append(opts, engine.WithLogger(rc.Logger))
	}
	if rc.OnBump != nil {
		opts = append(opts, engine.WithBumpHandler(rc.OnBump))
	}
	for _, fn := range rc.Teardown {
		opts = append(opts, engine.WithTeardown(fn))
	}

	sched, err := engine.NewScheduler(rc.Engine, rc.Map, fe, fe, opts...)
	if err != nil {
		return errors.Join(err, fe.Close())
	}
	return sched.Run(ctx)
}
