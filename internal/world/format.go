package world

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// MapFile is the on-disk YAML representation of a map.
// Exactly one of Cells or Rows must be set.
type MapFile struct {
	ID    string    `yaml:"id"`
	Name  string    `yaml:"name"`
	Spawn SpawnFile `yaml:"spawn"`
	Cells [][]int   `yaml:"cells,omitempty"`
	Rows  []string  `yaml:"rows,omitempty"`
}

// SpawnFile is the YAML form of Spawn. Angle is in degrees for readability.
type SpawnFile struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// ParseMapYAML parses and validates a YAML map definition.
func ParseMapYAML(data []byte) (*Map, error) {
	var mf MapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("world: yaml unmarshal: %w", err)
	}
	return mf.ToMap()
}

// LoadMapFile reads and parses a YAML map from disk.
func LoadMapFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("world: reading map %s: %w", path, err)
	}
	m, err := ParseMapYAML(data)
	if err != nil {
		return nil, fmt.Errorf("world: parsing map %s: %w", path, err)
	}
	return m, nil
}

// ToMap converts the file form to a validated Map.
func (mf MapFile) ToMap() (*Map, error) {
	if mf.ID == "" {
		return nil, fmt.Errorf("world: map file has no id")
	}

	var (
		grid *Grid
		err  error
	)
	switch {
	case len(mf.Cells) > 0 && len(mf.Rows) > 0:
		return nil, fmt.Errorf("world: map %q sets both cells and rows", mf.ID)
	case len(mf.Cells) > 0:
		grid, err = NewGrid(mf.Cells)
	default:
		grid, err = ParseRows(mf.Rows)
	}
	if err != nil {
		return nil, fmt.Errorf("world: map %q: %w", mf.ID, err)
	}

	name := mf.Name
	if name == "" {
		name = mf.ID
	}
	return NewMap(mf.ID, name, grid, Spawn{
		X:     mf.Spawn.X,
		Y:     mf.Spawn.Y,
		Angle: degToRad(mf.Spawn.Angle),
	})
}

// File returns the YAML file form of the map, using the ASCII row layout.
func (m *Map) File() MapFile {
	return MapFile{
		ID:   m.ID,
		Name: m.Name,
		Spawn: SpawnFile{
			X:     m.Spawn.X,
			Y:     m.Spawn.Y,
			Angle: radToDeg(m.Spawn.Angle),
		},
		Rows: FormatRows(m.Grid),
	}
}

// EncodeYAML encodes the map as a YAML document.
func (m *Map) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(m.File())
	if err != nil {
		return nil, fmt.Errorf("world: yaml marshal %q: %w", m.ID, err)
	}
	return data, nil
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

func radToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
