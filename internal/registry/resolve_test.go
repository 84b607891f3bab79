package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

type fakeLibrary map[string]*world.Map

var errMissing = errors.New("missing")

func (l fakeLibrary) GetMap(id string) (*world.Map, error) {
	if m, ok := l[id]; ok {
		return m, nil
	}
	return nil, errMissing
}

func TestResolveRegistered(t *testing.T) {
	m, err := Resolve("", 0, nil)
	if err != nil {
		t.Fatalf("Resolve(\"\") error = %v", err)
	}
	if m.ID != DefaultMap {
		t.Errorf("Resolve(\"\").ID = %q, expected %q", m.ID, DefaultMap)
	}
}

func TestResolveLibrary(t *testing.T) {
	stored, err := Create("room", 0)
	if err != nil {
		t.Fatal(err)
	}
	stored.ID = "my-room"
	lib := fakeLibrary{"my-room": stored}

	m, err := Resolve("my-room", 0, lib)
	if err != nil {
		t.Fatalf("Resolve(my-room) error = %v", err)
	}
	if m != stored {
		t.Error("Resolve(my-room) did not return the library map")
	}

	if _, err := Resolve("other", 0, lib); !errors.Is(err, errMissing) {
		t.Errorf("Resolve(other) error = %v, expected library error", err)
	}
	if _, err := Resolve("other", 0, nil); err == nil {
		t.Error("Resolve(other) without library error = nil")
	}
}

func TestResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	content := "id: tiny\nspawn: {x: 1.5, y: 1.5, angle: 0}\nrows:\n  - \"###\"\n  - \"#.#\"\n  - \"###\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Resolve(path, 0, nil)
	if err != nil {
		t.Fatalf("Resolve(file) error = %v", err)
	}
	if m.ID != "tiny" {
		t.Errorf("Resolve(file).ID = %q, expected tiny", m.ID)
	}
}
