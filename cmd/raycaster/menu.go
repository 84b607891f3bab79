package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick maps from an interactive menu",
	Long: `Start in interactive menu mode.

The menu lists built-in maps, the generated cave and every map in the
library. After leaving a map you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select map
  Q            - Quit

Examples:
  raycaster menu
  raycaster menu --view wide
  raycaster menu --db ./maps.db`,
	RunE: runMenu,
}

func init() {
	addFrontendFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	// Menu loop
	for {
		width, height := terminalSize()
		res, err := tui.RunMenu(tui.MenuItems(store), width, height)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}

		m, err := registry.Resolve(res.MapID, seed(), library(store))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading map: %v\n", err)
			continue
		}
		logger.Info("map selected", "id", m.ID, "source", res.Source)

		if err := play(m, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running map: %v\n", err)
		}

		// Loop back to menu
	}
}
