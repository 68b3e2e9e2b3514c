// Package catalog holds the ordered list of level definitions.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/vedapath/internal/core"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// ErrLevelNotFound is returned when a level id has no catalog entry.
// Callers treat it as "all levels complete".
var ErrLevelNotFound = errors.New("catalog: level not found")

// LegacyQuiz is the free-text question the first version of a level asked at the gate.
type LegacyQuiz struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Level is an immutable level definition.
type Level struct {
	ID            int
	Name          string
	Category      string
	RequiredItems int
	ItemSpawns    []core.Vec
	LegacyQuiz    *LegacyQuiz
}

// Catalog is an ordered, read-only list of levels. Level ids are 1-based.
type Catalog struct {
	levels []Level
}

// yamlLevel represents one level in the catalog file.
type yamlLevel struct {
	Name          string      `yaml:"name"`
	Category      string      `yaml:"category"`
	RequiredItems int         `yaml:"required_items"`
	ItemSpawns    []yamlPoint `yaml:"item_spawns"`
	LegacyQuiz    *LegacyQuiz `yaml:"legacy_quiz,omitempty"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlCatalog struct {
	Levels []yamlLevel `yaml:"levels"`
}

// New builds a catalog from level definitions, assigning ids in order.
func New(levels []Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, errors.New("catalog: no levels")
	}
	out := make([]Level, len(levels))
	for i, l := range levels {
		if l.RequiredItems < 1 {
			return nil, fmt.Errorf("catalog: level %d (%s) requires %d items, need at least 1", i+1, l.Name, l.RequiredItems)
		}
		l = l.clone()
		l.ID = i + 1
		out[i] = l
	}
	return &Catalog{levels: out}, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: yaml unmarshal: %w", err)
	}

	levels := make([]Level, 0, len(doc.Levels))
	for _, yl := range doc.Levels {
		spawns := make([]core.Vec, len(yl.ItemSpawns))
		for i, p := range yl.ItemSpawns {
			spawns[i] = core.V(p.X, p.Y)
		}
		levels = append(levels, Level{
			Name:          yl.Name,
			Category:      yl.Category,
			RequiredItems: yl.RequiredItems,
			ItemSpawns:    spawns,
			LegacyQuiz:    yl.LegacyQuiz,
		})
	}
	return New(levels)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultLevelsYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded levels are invalid: %v", err))
	}
	return c
}

// Get returns the level with the given id.
func (c *Catalog) Get(id int) (Level, error) {
	if id < 1 || id > len(c.levels) {
		return Level{}, fmt.Errorf("%w: %d (catalog has %d levels)", ErrLevelNotFound, id, len(c.levels))
	}
	return c.levels[id-1].clone(), nil
}

// Next returns the level after id, if any.
func (c *Catalog) Next(id int) (Level, bool) {
	l, err := c.Get(id + 1)
	return l, err == nil
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Levels returns a copy of all levels in order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	for i, l := range c.levels {
		out[i] = l.clone()
	}
	return out
}

func (l Level) clone() Level {
	l.ItemSpawns = append([]core.Vec(nil), l.ItemSpawns...)
	if l.LegacyQuiz != nil {
		q := *l.LegacyQuiz
		l.LegacyQuiz = &q
	}
	return l
}
