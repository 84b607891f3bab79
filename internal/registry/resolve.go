package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// Library is a stored map collection, such as the sqlite map library.
type Library interface {
	GetMap(id string) (*world.Map, error)
}

// Resolve finds a map by reference. References ending in .yaml or .yml are read
// from disk; otherwise registered maps are tried before lib. lib may be nil.
func Resolve(ref string, seed int64, lib Library) (*world.Map, error) {
	if ref == "" {
		ref = DefaultMap
	}

	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml":
		return world.LoadMapFile(ref)
	}

	if Exists(ref) {
		return Create(ref, seed)
	}
	if lib != nil {
		m, err := lib.GetMap(ref)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("registry: unknown map %q", ref)
}
