package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/registry"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

var (
	flagImportID  string
	flagExportOut string
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List and manage maps",
	Long: `Shows built-in maps and the map library. Subcommands manage the
library stored in the --db database.

Examples:
  raycaster maps
  raycaster maps show pillars
  raycaster maps import ./hall.yaml
  raycaster maps export classic -o classic.yaml
  raycaster maps delete hall`,
	Args: cobra.NoArgs,
	RunE: runMapsList,
}

var mapsShowCmd = &cobra.Command{
	Use:   "show <map>",
	Short: "Print a map layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsShow,
}

var mapsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Add a YAML map to the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsImport,
}

var mapsExportCmd = &cobra.Command{
	Use:   "export <map>",
	Short: "Write a map as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsExport,
}

var mapsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a map from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsDelete,
}

func init() {
	mapsImportCmd.Flags().StringVar(&flagImportID, "id", "", "Store under this id instead of the file's")
	mapsExportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default stdout)")

	mapsCmd.AddCommand(mapsShowCmd)
	mapsCmd.AddCommand(mapsImportCmd)
	mapsCmd.AddCommand(mapsExportCmd)
	mapsCmd.AddCommand(mapsDeleteCmd)
}

func runMapsList(_ *cobra.Command, _ []string) error {
	maps := registry.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range maps {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	var stored []storage.MapSummary
	store, err := storage.Open(flagDBPath)
	if err == nil {
		defer store.Close()
		stored, err = store.ListMaps()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read map library: %v\n", err)
	}
	for _, s := range stored {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Println("Built-in maps:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, m := range maps {
		title := m.Title
		if m.Generated {
			title += " (generated, --seed)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, title)
	}

	fmt.Println()
	if len(stored) == 0 {
		fmt.Println("Map library is empty. Add maps with 'raycaster maps import <file.yaml>'.")
		return nil
	}

	fmt.Println("Library:")
	fmt.Println()
	fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, "ID", "Size", "Updated", "Name")
	fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, "--", "----", "-------", "----")
	for _, s := range stored {
		size := fmt.Sprintf("%dx%d", s.Width, s.Height)
		fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, s.ID, size, s.UpdatedAt.Format("2006-01-02 15:04"), s.Name)
	}
	fmt.Println()
	fmt.Println("Run 'raycaster play <id>' to walk a map.")
	return nil
}

// resolveMap loads ref the same way play does.
func resolveMap(ref string) (*world.Map, error) {
	var lib registry.Library
	if !registry.Exists(ref) && !isMapFile(ref) {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		lib = store
	}
	return registry.Resolve(ref, seed(), lib)
}

func isMapFile(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

func runMapsShow(_ *cobra.Command, args []string) error {
	m, err := resolveMap(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)  %dx%d\n", m.Name, m.ID, m.Grid.Width(), m.Grid.Height())
	fmt.Printf("spawn x %.2f  y %.2f  angle %.0f°  open cells %d\n\n",
		m.Spawn.X, m.Spawn.Y, m.File().Spawn.Angle, m.Grid.EmptyCells())
	for _, row := range world.FormatRows(m.Grid) {
		fmt.Println(row)
	}
	return nil
}

func runMapsImport(_ *cobra.Command, args []string) error {
	m, err := world.LoadMapFile(args[0])
	if err != nil {
		return err
	}
	if flagImportID != "" {
		m.ID = flagImportID
	}
	if m.ID == "" {
		return errors.New("map has no id; set one in the file or pass --id")
	}
	if registry.Exists(m.ID) {
		return fmt.Errorf("id %q belongs to a built-in map; pass --id to rename", m.ID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	existed, err := store.HasMap(m.ID)
	if err != nil {
		return err
	}
	if err := store.SaveMap(m); err != nil {
		return err
	}
	verb := "Imported"
	if existed {
		verb = "Replaced"
	}
	fmt.Printf("%s %q (%dx%d)\n", verb, m.ID, m.Grid.Width(), m.Grid.Height())
	return nil
}

func runMapsExport(_ *cobra.Command, args []string) error {
	m, err := resolveMap(args[0])
	if err != nil {
		return err
	}
	data, err := m.EncodeYAML()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err = w.Write(data)
	return err
}

func runMapsDelete(_ *cobra.Command, args []string) error {
	id := args[0]
	if registry.Exists(id) {
		return fmt.Errorf("%q is a built-in map and cannot be deleted", id)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteMap(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no library map named %q", id)
		}
		return err
	}
	fmt.Printf("Deleted %q\n", id)
	return nil
}
