// Package bench runs the engine headless over a scripted walk and records
// per-frame timing for profiling renders on different maps and sizes.
package bench

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// FrameSample is one CSV row.
type FrameSample struct {
	Frame        uint64  `csv:"frame"`
	Command      string  `csv:"command"`
	WorkMicros   int64   `csv:"work_us"`
	Hits         int     `csv:"hits"`
	MeanDistance float64 `csv:"mean_distance"`
	PosX         float64 `csv:"pos_x"`
	PosY         float64 `csv:"pos_y"`
	Bumped       bool    `csv:"bumped"`
}

// Summary aggregates a run.
type Summary struct {
	Frames   int
	MeanWork time.Duration
	P95Work  time.Duration
	MaxWork  time.Duration
	MeanHits float64
	Bumps    int
}

// Headroom is how many frames of this cost fit into interval.
func (s Summary) Headroom(interval time.Duration) float64 {
	if s.MeanWork <= 0 {
		return 0
	}
	return float64(interval) / float64(s.MeanWork)
}

func (s Summary) String() string {
	return fmt.Sprintf("%d frames  mean %v  p95 %v  max %v  hits %.1f  bumps %d",
		s.Frames, s.MeanWork, s.P95Work, s.MaxWork, s.MeanHits, s.Bumps)
}

// DefaultTour walks forward, sweeps right, strafes and backs off. It loops.
func DefaultTour() []core.Command {
	var cmds []core.Command
	add := func(c core.Command, n int) {
		for range n {
			cmds = append(cmds, c)
		}
	}
	add(core.CommandMoveForward, 20)
	add(core.CommandTurnRight, 12)
	add(core.CommandMoveForward, 10)
	add(core.CommandStrafeLeft, 6)
	add(core.CommandTurnLeft, 20)
	add(core.CommandMoveBack, 8)
	add(core.CommandStrafeRight, 6)
	return cmds
}

// ParseScript reads a comma-separated walk such as "forward*20,turn-right*12,s".
// Names are those accepted by core.ParseCommand and "*N" repeats a step. An
// empty string yields nil, which Run treats as DefaultTour.
func ParseScript(s string) ([]core.Command, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var cmds []core.Command
	for _, step := range strings.Split(s, ",") {
		name, count, found := strings.Cut(step, "*")
		n := 1
		if found {
			var err error
			n, err = strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("bench: bad repeat count in %q", step)
			}
		}
		cmd := core.ParseCommand(name)
		switch {
		case cmd == core.CommandExit:
			return nil, fmt.Errorf("bench: %q would end the run", step)
		case cmd == core.CommandNone && strings.TrimSpace(strings.ToLower(name)) != "none":
			return nil, fmt.Errorf("bench: unknown command %q", strings.TrimSpace(name))
		}
		for range n {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

// Run steps frames frames of m without sleeping. script loops; nil means
// DefaultTour.
func Run(cfg engine.Config, m *world.Map, script []core.Command, frames int) ([]FrameSample, error) {
	if frames <= 0 {
		return nil, errors.New("bench: frame count must be positive")
	}
	if script == nil {
		script = DefaultTour()
	}

	sched, err := engine.NewScheduler(cfg, m, engine.NewScript(script, true),
		engine.SinkFunc(func(*engine.Frame) error { return nil }))
	if err != nil {
		return nil, err
	}
	defer sched.Shutdown()

	samples := make([]FrameSample, 0, frames)
	for range frames {
		done, err := sched.Step()
		if err != nil {
			return samples, err
		}
		if done {
			break
		}
		st := sched.Stats()
		pos := sched.Camera().Position
		samples = append(samples, FrameSample{
			Frame:        st.Number,
			Command:      st.Command.String(),
			WorkMicros:   st.Work.Microseconds(),
			Hits:         st.Hits,
			MeanDistance: st.MeanDistance,
			PosX:         pos.X,
			PosY:         pos.Y,
			Bumped:       st.Bumped,
		})
	}
	return samples, nil
}

// WriteCSV writes samples with a header row.
func WriteCSV(w io.Writer, samples []FrameSample) error {
	if err := gocsv.Marshal(samples, w); err != nil {
		return fmt.Errorf("bench: write csv: %w", err)
	}
	return nil
}

// Summarize computes the aggregate timing of samples.
func Summarize(samples []FrameSample) Summary {
	s := Summary{Frames: len(samples)}
	if len(samples) == 0 {
		return s
	}

	work := make([]int64, len(samples))
	var sumWork int64
	var sumHits int
	for i, fs := range samples {
		work[i] = fs.WorkMicros
		sumWork += fs.WorkMicros
		sumHits += fs.Hits
		if fs.Bumped {
			s.Bumps++
		}
	}
	slices.Sort(work)

	n := int64(len(samples))
	s.MeanWork = time.Duration(sumWork/n) * time.Microsecond
	s.P95Work = time.Duration(work[len(work)*95/100]) * time.Microsecond
	s.MaxWork = time.Duration(work[len(work)-1]) * time.Microsecond
	s.MeanHits = float64(sumHits) / float64(n)
	return s
}
