package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// State is the scheduler lifecycle state.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "terminated"
}

// Clock abstracts time so tests can drive the loop deterministically.
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FrameStats describes the last completed frame.
type FrameStats struct {
	Number       uint64
	Command      core.Command
	DT           float64
	Work         time.Duration
	Hits         int
	MeanDistance float64
	Bumped       bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithTeardown registers fn to run when the scheduler terminates. Teardown
// functions run once, in reverse registration order.
func WithTeardown(fn func() error) Option {
	return func(s *Scheduler) { s.teardown = append(s.teardown, fn) }
}

// WithBumpHandler sets a callback fired when a movement command is fully
// blocked by walls.
func WithBumpHandler(fn func()) Option {
	return func(s *Scheduler) { s.onBump = fn }
}

// WithFrameHook sets a callback fired after every presented frame.
func WithFrameHook(fn func(FrameStats)) Option {
	return func(s *Scheduler) { s.onFrame = fn }
}

// Scheduler drives the engine: one input poll, one motion update, one render
// and one present per frame. All camera access happens on the goroutine calling
// Step or Run.
type Scheduler struct {
	cfg    Config
	world  *world.Map
	cam    *Camera
	motion *Motion
	caster *Raycaster
	frame  *Frame

	input InputSource
	sink  Sink
	clock Clock

	logger   *log.Logger
	onBump   func()
	onFrame  func(FrameStats)
	teardown []func() error

	state     State
	lastStart time.Time
	stats     FrameStats

	closeOnce sync.Once
	closeErr  error
}

// NewScheduler creates a scheduler for m with the camera at the map's spawn.
func NewScheduler(cfg Config, m *world.Map, input InputSource, sink Sink, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil || m.Grid == nil {
		return nil, errors.New("engine: nil map")
	}
	if input == nil || sink == nil {
		return nil, errors.New("engine: input source and sink are required")
	}

	s := &Scheduler{
		cfg:    cfg,
		world:  m,
		cam:    NewCamera(r2.Vec{X: m.Spawn.X, Y: m.Spawn.Y}, m.Spawn.Angle, cfg.FOV),
		motion: NewMotion(m.Grid, cfg),
		caster: NewRaycaster(cfg),
		frame:  NewFrame(cfg.ScreenWidth, cfg.ScreenHeight),
		input:  input,
		sink:   sink,
		clock:  wallClock{},
		logger: log.New(io.Discard),
		state:  StateRunning,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Camera returns the live camera. Only touch it from the scheduling goroutine.
func (s *Scheduler) Camera() *Camera { return s.cam }

// Map returns the map being rendered.
func (s *Scheduler) Map() *world.Map { return s.world }

// Config returns the engine configuration.
func (s *Scheduler) Config() Config { return s.cfg }

// State returns the lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Stats returns statistics for the last presented frame.
func (s *Scheduler) Stats() FrameStats { return s.stats }

// Step runs one frame without pacing. It reports done once the scheduler has
// terminated, either from an Exit command or an earlier sink failure. A sink
// error terminates the scheduler and is returned.
func (s *Scheduler) Step() (done bool, err error) {
	if s.state == StateTerminated {
		return true, nil
	}

	start := s.clock.Now()
	cmd := s.input.Poll()
	if cmd == core.CommandExit {
		s.logger.Debug("exit requested", "frame", s.stats.Number)
		s.state = StateTerminated
		return true, nil
	}

	dt := s.timestep(start)
	s.lastStart = start

	res := s.motion.Apply(s.cam, cmd, dt)
	if res.Bumped() && s.onBump != nil {
		s.onBump()
	}
	s.checkCamera()

	s.caster.Render(s.world.Grid, s.cam, s.frame)
	s.frame.Number = s.stats.Number + 1
	s.frame.DT = dt

	if err := s.sink.Present(s.frame); err != nil {
		s.state = StateTerminated
		return true, fmt.Errorf("engine: present frame %d: %w", s.frame.Number, err)
	}

	hits, mean := s.frame.Hits()
	s.stats = FrameStats{
		Number:       s.frame.Number,
		Command:      cmd,
		DT:           dt,
		Work:         s.clock.Now().Sub(start),
		Hits:         hits,
		MeanDistance: mean,
		Bumped:       res.Bumped(),
	}
	if s.onFrame != nil {
		s.onFrame(s.stats)
	}
	return false, nil
}

// NextDelay returns how long to sleep after a frame that took work.
func (s *Scheduler) NextDelay(work time.Duration) time.Duration {
	return max(0, s.cfg.FrameInterval-work)
}

// Run steps frames at the configured interval until Exit, a sink error or ctx
// cancellation. Teardown always runs before Run returns, including on panic.
// Cancellation counts as a normal exit.
func (s *Scheduler) Run(ctx context.Context) (err error) {
	defer func() {
		if terr := s.Shutdown(); err == nil {
			err = terr
		}
	}()

	s.logger.Info("engine started",
		"map", s.world.ID,
		"size", fmt.Sprintf("%dx%d", s.cfg.ScreenWidth, s.cfg.ScreenHeight),
		"interval", s.cfg.FrameInterval,
		"timestep", s.cfg.Timestep,
		"assertions", DebugAssertions,
	)

	for {
		if ctx.Err() != nil {
			s.logger.Info("engine interrupted", "frame", s.stats.Number)
			s.state = StateTerminated
			return nil
		}

		start := s.clock.Now()
		done, stepErr := s.Step()
		if stepErr != nil {
			return stepErr
		}
		if done {
			s.logger.Info("engine stopped", "frames", s.stats.Number)
			return nil
		}

		if sleepErr := s.clock.Sleep(ctx, s.NextDelay(s.clock.Now().Sub(start))); sleepErr != nil {
			s.logger.Info("engine interrupted", "frame", s.stats.Number)
			s.state = StateTerminated
			return nil
		}
	}
}

// Shutdown terminates the scheduler and runs teardown functions. It is safe to
// call more than once; later calls return the first result.
func (s *Scheduler) Shutdown() error {
	s.closeOnce.Do(func() {
		s.state = StateTerminated
		var errs []error
		for i := len(s.teardown) - 1; i >= 0; i-- {
			if err := s.teardown[i](); err != nil {
				errs = append(errs, err)
			}
		}
		s.closeErr = errors.Join(errs...)
		if s.closeErr != nil {
			s.logger.Error("teardown failed", "error", s.closeErr)
		}
	})
	return s.closeErr
}

func (s *Scheduler) timestep(now time.Time) float64 {
	nominal := s.cfg.NominalDT()
	if s.cfg.Timestep != TimestepMeasured || s.lastStart.IsZero() {
		return nominal
	}
	elapsed := now.Sub(s.lastStart).Seconds()
	return core.ClampF(elapsed, 0, nominal*maxDTFactor)
}

// checkCamera enforces that the camera never rests inside a solid cell.
func (s *Scheduler) checkCamera() {
	x, y := s.cam.Cell()
	if !s.world.Grid.IsSolid(x, y) {
		return
	}
	assertf(s.logger, "camera inside solid cell (%d,%d) at %.3f,%.3f", x, y, s.cam.Position.X, s.cam.Position.Y)
}
