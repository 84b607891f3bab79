// Package registry provides a global registry for map factories.
// Built-in maps register themselves in init() functions, allowing the CLI and
// the map picker to discover and build maps without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// Factory builds a map. Static maps ignore seed; generated maps use it for
// reproducible layouts (0 = random).
type Factory func(seed int64) (*world.Map, error)

// MapInfo contains metadata about a registered map.
type MapInfo struct {
	ID        string
	Title     string
	Generated bool // layout depends on the seed
}

type entry struct {
	info    MapInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a map factory to the registry.
// Typically called from an init() function.
// Panics if a map with the same ID is already registered.
func Register(info MapInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: map %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered maps, sorted by ID.
func List() []MapInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]MapInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a map by its ID.
// Returns an error if the map ID is not registered or the factory fails.
func Create(id string, seed int64) (*world.Map, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown map %q", id)
	}

	m, err := e.factory(seed)
	if err != nil {
		return nil, fmt.Errorf("registry: build map %q: %w", id, err)
	}
	return m, nil
}

// Exists checks if a map with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
