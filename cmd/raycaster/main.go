// raycaster is a first-person maze walker rendered as text in the terminal.
//
// Usage:
//
//	raycaster play [map]       - Walk a map (built-in id, library id or .yaml file)
//	raycaster menu             - Pick maps interactively
//	raycaster maps             - Manage the map library
//	raycaster render [map]     - Print a single frame
//	raycaster bench [map]      - Time a scripted walk and write CSV
//	raycaster serve            - Start SSH server for remote play
//	raycaster config           - Print or install the default engine config
//
// Global flags:
//
//	--config <path>  - Engine config YAML
//	--db <path>      - Map library database (default: ~/.raycaster/maps.db)
//	--seed <value>   - Seed for generated maps
//	--view <preset>  - Field of view: narrow, normal, wide
//	--log <path>     - Write debug logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagSeed    int64
	flagView    string
	flagLogPath string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raycaster",
	Short: "Raycaster - walk 3D mazes in your terminal",
	Long: `Raycaster renders a first-person view of a grid maze with text
characters, the way early shooters drew their walls.

Available commands:
  play     - Walk a map directly
  menu     - Interactive map picker
  maps     - List, import, export and delete library maps
  render   - Print one frame without a terminal UI
  bench    - Time a scripted walk
  serve    - Start SSH server for remote play
  config   - Print or install the default engine config

Examples:
  raycaster play
  raycaster play cave --seed 42
  raycaster play ./levels/hall.yaml --view wide
  raycaster menu
  raycaster serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.raycaster/maps.db", "Path to map library database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed for generated maps (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagView, "view", "", "View preset: narrow, normal, wide")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger writes to --log when set. Interactive frontends own the terminal,
// so without a log file everything is discarded.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closer := func() {}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "raycaster",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// loadConfig reads the engine config and applies --view.
func loadConfig() (config.EngineConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyViewPreset(&cfg, config.ViewPreset(flagView)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// engineConfig resolves zero screen dimensions against the terminal, keeping
// reserve rows free below the frame.
func engineConfig(cfg config.EngineConfig, reserve int) engine.Config {
	if !cfg.FitsTerminal() {
		return cfg.Engine(0, 0)
	}
	width, height := terminalSize()
	return cfg.Engine(width, max(1, height-reserve))
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// openStore opens the map library. A missing library is not fatal.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open map library: %v\n", err)
		logger.Warn("map library unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	if v, dirty, err := store.SchemaVersion(); err == nil {
		logger.Debug("map library opened", "path", flagDBPath, "schema", v, "dirty", dirty)
	}
	return store
}

// library adapts a possibly-nil store to registry.Library.
func library(store *storage.Store) registry.Library {
	if store == nil {
		return nil
	}
	return store
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
