package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testMap(t *testing.T, id string) *world.Map {
	t.Helper()
	g, err := world.ParseRows([]string{
		"#####",
		"#...#",
		"#.#.#",
		"#...#",
		"#####",
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := world.NewMap(id, "Test "+id, g, world.Spawn{X: 1.5, Y: 1.5, Angle: 0})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	version, dirty, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("SchemaVersion() = %d, dirty=%v, expected 1, clean", version, dirty)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveMap(testMap(t, "keep")); err != nil {
		t.Fatalf("SaveMap() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if ok, err := store.HasMap("keep"); err != nil || !ok {
		t.Errorf("HasMap(keep) = %v, %v, expected true", ok, err)
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := openTestStore(t)
	want := testMap(t, "ring")

	if err := store.SaveMap(want); err != nil {
		t.Fatalf("SaveMap() failed: %v", err)
	}

	got, err := store.GetMap("ring")
	if err != nil {
		t.Fatalf("GetMap() failed: %v", err)
	}
	if got.ID != want.ID || got.Name != want.Name {
		t.Errorf("GetMap() = %q/%q, expected %q/%q", got.ID, got.Name, want.ID, want.Name)
	}
	if diff := cmp.Diff(want.Grid.Rows(), got.Grid.Rows()); diff != "" {
		t.Errorf("GetMap() grid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Spawn, got.Spawn); diff != "" {
		t.Errorf("GetMap() spawn mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := openTestStore(t)
	first := time.Unix(1000, 0)
	store.now = func() time.Time { return first }

	if err := store.SaveMap(testMap(t, "ring")); err != nil {
		t.Fatalf("SaveMap() failed: %v", err)
	}

	store.now = func() time.Time { return first.Add(time.Hour) }
	updated := testMap(t, "ring")
	updated.Name = "Renamed"
	if err := store.SaveMap(updated); err != nil {
		t.Fatalf("SaveMap() replace failed: %v", err)
	}

	list, err := store.ListMaps()
	if err != nil {
		t.Fatalf("ListMaps() failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListMaps() returned %d maps, expected 1", len(list))
	}
	if list[0].Name != "Renamed" {
		t.Errorf("Name = %q, expected Renamed", list[0].Name)
	}
	if !list[0].UpdatedAt.Equal(first.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, expected %v", list[0].UpdatedAt, first.Add(time.Hour))
	}
}

func TestStoreListMapsOrdered(t *testing.T) {
	store := openTestStore(t)
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := store.SaveMap(testMap(t, id)); err != nil {
			t.Fatalf("SaveMap(%q) failed: %v", id, err)
		}
	}

	list, err := store.ListMaps()
	if err != nil {
		t.Fatalf("ListMaps() failed: %v", err)
	}

	var ids []string
	for _, m := range list {
		ids = append(ids, m.ID)
		if m.Width != 5 || m.Height != 5 {
			t.Errorf("map %q size = %dx%d, expected 5x5", m.ID, m.Width, m.Height)
		}
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, ids); diff != "" {
		t.Errorf("ListMaps() order mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.GetMap("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMap(missing) error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteMap("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteMap(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveMap(testMap(t, "gone")); err != nil {
		t.Fatalf("SaveMap() failed: %v", err)
	}

	if err := store.DeleteMap("gone"); err != nil {
		t.Fatalf("DeleteMap() failed: %v", err)
	}
	if ok, _ := store.HasMap("gone"); ok {
		t.Error("HasMap() = true after delete")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.raycaster/maps.db")
	if err != nil {
		t.Fatalf("Open(~) failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".raycaster", "maps.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
