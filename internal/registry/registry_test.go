package registry

import (
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "room", "pillars", "cave"} {
		if !Exists(id) {
			t.Errorf("Exists(%q) = false, expected built-in map", id)
		}
	}
	if Exists("nope") {
		t.Error("Exists(nope) = true, expected false")
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateBuiltins(t *testing.T) {
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			m, err := Create(info.ID, 7)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", info.ID, err)
			}
			if m.ID != info.ID {
				t.Errorf("Create(%q).ID = %q", info.ID, m.ID)
			}
			x, y := int(m.Spawn.X), int(m.Spawn.Y)
			if m.Grid.IsSolid(x, y) {
				t.Errorf("Create(%q) spawn (%v,%v) is inside a wall", info.ID, m.Spawn.X, m.Spawn.Y)
			}
		})
	}
}

func TestClassicMatchesLayout(t *testing.T) {
	m, err := Create(DefaultMap, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.Grid.Width() != 22 || m.Grid.Height() != 9 {
		t.Errorf("classic size = %dx%d, expected 22x9", m.Grid.Width(), m.Grid.Height())
	}
	if got := world.FormatRows(m.Grid)[2]; got != "#.##.#...###..##.#.#.#" {
		t.Errorf("classic row 2 = %q", got)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("nope", 0); err == nil {
		t.Error("Create(nope) error = nil, expected error")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(duplicate) did not panic")
		}
	}()
	Register(MapInfo{ID: "classic"}, func(int64) (*world.Map, error) { return nil, nil })
}
