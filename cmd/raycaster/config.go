package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/config"
)

var (
	flagConfigWrite bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default engine config",
	Long: `Print the built-in engine configuration as YAML, followed by the
available view presets.

With --write the defaults are saved to ~/.raycaster/configs/engine.yaml,
which every command loads when --config is not given.

Examples:
  raycaster config
  raycaster config > my-engine.yaml
  raycaster config --write`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write defaults to the user config file")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing user config file")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagConfigWrite {
		os.Stdout.Write(config.DefaultYAML())
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "View presets (--view):")
		for _, p := range config.ViewPresets {
			fov, _ := config.FOVForPreset(p)
			fmt.Fprintf(os.Stderr, "  %-7s fov %.2f\n", p, fov)
		}
		return nil
	}

	path := config.UserConfigFile()
	if path == "" {
		return errors.New("cannot locate home directory")
	}
	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
