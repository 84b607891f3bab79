package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/audio"
	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/platform/tcellui"
	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
	"github.com/vovakirdan/tui-raycaster/internal/render"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

var (
	flagFrontend    string
	flagSound       bool
	flagNoHUD       bool
	flagScreenshots string
)

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Walk a map",
	Long: `Walk the given map, or the classic maze when none is named.

The map may be a built-in id (see 'raycaster maps'), an id from the map
library, or a path to a .yaml map file.

Controls:
  W/Up       - Move forward
  S/Down     - Move back
  A/D        - Strafe left/right
  Q/E        - Turn left/right (also Left/Right arrows)
  Ctrl+S     - Save a text screenshot (tea frontend)
  Esc/Ctrl+C - Quit

Frontends:
  tea    - Bubble Tea renderer with status line (default)
  tcell  - Direct cell renderer

Examples:
  raycaster play
  raycaster play pillars --view wide
  raycaster play cave --seed 7 --sound
  raycaster play ./my-map.yaml --frontend tcell`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addFrontendFlags(playCmd)
}

// addFrontendFlags registers the flags shared by play and menu.
func addFrontendFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFrontend, "frontend", "tea", "Frontend: tea or tcell")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play a tone when walking into walls")
	cmd.Flags().BoolVar(&flagNoHUD, "no-hud", false, "Hide the status line")
	cmd.Flags().StringVar(&flagScreenshots, "screenshots", "", "Screenshot directory (default ~/.raycaster/screenshots)")
}

func runPlay(_ *cobra.Command, args []string) error {
	ref := registry.DefaultMap
	if len(args) == 1 {
		ref = args[0]
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	m, err := registry.Resolve(ref, seed(), library(store))
	if err != nil {
		return fmt.Errorf("load map %q: %w", ref, err)
	}
	logger.Info("map loaded", "id", m.ID, "size", fmt.Sprintf("%dx%d", m.Grid.Width(), m.Grid.Height()))

	return play(m, cfg, logger)
}

// play runs m in the selected frontend. Shared by play and menu.
func play(m *world.Map, cfg config.EngineConfig, logger *log.Logger) error {
	if flagFrontend != "tea" && flagFrontend != "tcell" {
		return fmt.Errorf("unknown frontend %q (want tea or tcell)", flagFrontend)
	}

	var onBump func()
	var teardown []func() error
	if flagSound {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			// Non-fatal, the maze works without sound
			logger.Warn("audio initialization failed", "error", err)
		} else {
			onBump = player.Bump
			teardown = append(teardown, player.Close)
		}
		logger.Info("audio", "enabled", player.Enabled())
	}

	reserve := 1
	if flagNoHUD {
		reserve = 0
	}

	switch flagFrontend {
	case "tea":
		return tui.Run(tui.GameOptions{
			Engine:        engineConfig(cfg, reserve),
			Map:           m,
			Palette:       render.DefaultPalette(),
			Logger:        logger,
			ShowHUD:       !flagNoHUD,
			ScreenshotDir: flagScreenshots,
			OnBump:        onBump,
			Teardown:      teardown,
		})

	case "tcell":
		screen, err := tcell.NewScreen()
		if err != nil {
			return closeAll(err, teardown)
		}
		fe, err := tcellui.New(screen, tcellui.Options{
			Palette: render.DefaultPalette(),
			Logger:  logger,
			ShowHUD: !flagNoHUD,
			MapName: m.Name,
		})
		if err != nil {
			return closeAll(err, teardown)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w, h := screen.Size()
		return tcellui.Run(ctx, fe, tcellui.RunConfig{
			Engine:   cfg.Engine(w, max(1, h-reserve)),
			Map:      m,
			Logger:   logger,
			OnBump:   onBump,
			Teardown: teardown,
		})
	}
	return nil
}

func closeAll(err error, fns []func() error) error {
	errs := []error{err}
	for _, fn := range fns {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}
