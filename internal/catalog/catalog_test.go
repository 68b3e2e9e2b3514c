package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/vedapath/internal/core"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", c.Len())
	}

	first, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get(1) failed: %v", err)
	}
	if first.ID != 1 || first.Name != "Ignorance" || first.RequiredItems != 3 {
		t.Errorf("unexpected first level: %+v", first)
	}
	if len(first.ItemSpawns) != 3 || first.ItemSpawns[0] != core.V(200, 300) {
		t.Errorf("unexpected spawns: %v", first.ItemSpawns)
	}
	if first.LegacyQuiz == nil || first.LegacyQuiz.Answer != "ignorance" {
		t.Errorf("expected legacy quiz on level 1, got %+v", first.LegacyQuiz)
	}

	for _, l := range c.Levels() {
		if len(l.ItemSpawns) < l.RequiredItems {
			t.Errorf("level %d has %d spawns for %d required items", l.ID, len(l.ItemSpawns), l.RequiredItems)
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	c := Default()

	for _, id := range []int{0, -1, c.Len() + 1} {
		if _, err := c.Get(id); !errors.Is(err, ErrLevelNotFound) {
			t.Errorf("Get(%d) error = %v, expected ErrLevelNotFound", id, err)
		}
	}

	if _, ok := c.Next(c.Len()); ok {
		t.Error("Next(last) should report no next level")
	}
	if next, ok := c.Next(1); !ok || next.ID != 2 {
		t.Errorf("Next(1) = %+v, %v", next, ok)
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should fail")
	}
	if _, err := New([]Level{{Name: "Broken", RequiredItems: 0}}); err == nil {
		t.Error("RequiredItems 0 should be rejected")
	}
}

func TestLevelsAreCopies(t *testing.T) {
	c := Default()
	levels := c.Levels()
	levels[0].ItemSpawns[0] = core.V(-1, -1)
	levels[0].Name = "changed"

	again, _ := c.Get(1)
	if again.Name != "Ignorance" || again.ItemSpawns[0] != core.V(200, 300) {
		t.Error("catalog must not be mutated through Levels()")
	}
}

func TestLoadFile(t *testing.T) {
	doc := `
levels:
  - name: One
    category: Test
    required_items: 1
    item_spawns:
      - {x: 10, y: 20}
`
	path := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	l, err := c.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if l.Category != "Test" || l.ItemSpawns[0] != core.V(10, 20) || l.LegacyQuiz != nil {
		t.Errorf("unexpected level: %+v", l)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("Load should fail for missing file")
	}
}
