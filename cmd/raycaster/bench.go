package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/bench"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

var (
	flagBenchFrames int
	flagBenchOut    string
	flagBenchWidth  int
	flagBenchHeight int
	flagBenchScript string
)

var benchCmd = &cobra.Command{
	Use:   "bench [map]",
	Short: "Time a scripted walk",
	Long: `Run the engine without a terminal over a fixed walk through the map
and report per-frame render cost. Samples are written as CSV.

Examples:
  raycaster bench
  raycaster bench cave --seed 1 --frames 1000 -o cave.csv
  raycaster bench pillars --width 200 --height 60
  raycaster bench room --script "forward*10,turn-right*30,back*10"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchFrames, "frames", 300, "Number of frames to run")
	benchCmd.Flags().StringVarP(&flagBenchOut, "output", "o", "", "CSV output file (default: summary only)")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 0, "Frame width (0 = config or 160)")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 0, "Frame height (0 = config or 48)")
	benchCmd.Flags().StringVar(&flagBenchScript, "script", "", "Comma-separated commands to loop, name*N repeats (default: built-in tour)")
}

func runBench(_ *cobra.Command, args []string) error {
	ref := registry.DefaultMap
	if len(args) == 1 {
		ref = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagBenchWidth > 0 {
		cfg.Screen.Width = flagBenchWidth
	}
	if flagBenchHeight > 0 {
		cfg.Screen.Height = flagBenchHeight
	}
	// Benchmarks are independent of the terminal running them.
	ecfg := cfg.Engine(160, 48)

	script, err := bench.ParseScript(flagBenchScript)
	if err != nil {
		return err
	}

	m, err := resolveMap(ref)
	if err != nil {
		return err
	}

	samples, err := bench.Run(ecfg, m, script, flagBenchFrames)
	if err != nil {
		return err
	}

	if flagBenchOut != "" {
		var w io.Writer = os.Stdout
		if flagBenchOut != "-" {
			f, err := os.Create(flagBenchOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := bench.WriteCSV(w, samples); err != nil {
			return err
		}
	}

	summary := bench.Summarize(samples)
	fmt.Fprintf(os.Stderr, "%s %dx%d: %s\n", m.ID, ecfg.ScreenWidth, ecfg.ScreenHeight, summary)
	fmt.Fprintf(os.Stderr, "headroom at %v: %.1fx\n", ecfg.FrameInterval, summary.Headroom(ecfg.FrameInterval))
	return nil
}
