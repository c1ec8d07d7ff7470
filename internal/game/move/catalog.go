package move

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// Catalog is an immutable registry of moves keyed by canonical ID.
// All methods are safe for concurrent use.
type Catalog struct {
	moves map[string]Move
}

var builtins = []Move{
	{ID: Tackle, Name: "Tackle", Type: typechart.Normal, Power: 40, Category: Physical, Accuracy: 100, PP: 35},
	{ID: Ember, Name: "Ember", Type: typechart.Fire, Power: 40, Category: Special, Accuracy: 100, PP: 25},
	{ID: WaterGun, Name: "Water Gun", Type: typechart.Water, Power: 40, Category: Special, Accuracy: 100, PP: 25},
	{ID: Thundershock, Name: "Thundershock", Type: typechart.Electric, Power: 40, Category: Special, Accuracy: 100, PP: 30},
}

var defaultCatalog = mustCatalog(builtins...)

// Default returns the shared catalog of built-in moves.
//
// Postcondition: Returns a catalog containing Tackle, Ember, Water Gun, and Thundershock.
func Default() *Catalog { return defaultCatalog }

func mustCatalog(moves ...Move) *Catalog {
	c, err := NewCatalog(moves...)
	if err != nil {
		panic("move: invalid built-in catalog: " + err.Error())
	}
	return c
}

// NewCatalog builds a catalog from moves. A move with an empty ID is keyed by
// CanonicalID(Name).
//
// Postcondition: Returns a catalog or an error on the first invalid or duplicate move.
func NewCatalog(moves ...Move) (*Catalog, error) {
	c := &Catalog{moves: make(map[string]Move, len(moves))}
	for _, m := range moves {
		if err := c.add(m, false); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(m Move, replace bool) error {
	if err := m.Validate(); err != nil {
		return err
	}
	id := CanonicalID(m.ID)
	if id == "" {
		id = CanonicalID(m.Name)
	}
	if _, exists := c.moves[id]; exists && !replace {
		return fmt.Errorf("move: Catalog: move ID %q already registered", id)
	}
	m.ID = id
	c.moves[id] = m
	return nil
}

// With returns a new catalog containing every move of c overlaid with moves.
// Entries in moves replace existing entries that share a canonical ID; c is unchanged.
//
// Postcondition: Returns a new catalog or an error on the first invalid move.
func (c *Catalog) With(moves ...Move) (*Catalog, error) {
	out := &Catalog{moves: make(map[string]Move, len(c.moves)+len(moves))}
	for id, m := range c.moves {
		out.moves[id] = m
	}
	for _, m := range moves {
		if err := out.add(m, true); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Lookup returns the move registered under name's canonical ID.
//
// Postcondition: ok is true iff the move is registered.
func (c *Catalog) Lookup(name string) (Move, bool) {
	m, ok := c.moves[CanonicalID(name)]
	return m, ok
}

// Resolve returns the registered move for name, or Generic(name) when unknown.
// An unknown name is not an error.
func (c *Catalog) Resolve(name string) Move {
	if m, ok := c.Lookup(name); ok {
		return m
	}
	return Generic(name)
}

// Len returns the number of registered moves.
func (c *Catalog) Len() int { return len(c.moves) }

// IDs returns all canonical IDs in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, 0, len(c.moves))
	for id := range c.moves {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LoadFromBytes parses a YAML document holding either a single move or a
// top-level "moves" list.
//
// Postcondition: Returns validated moves or an error.
func LoadFromBytes(data []byte) ([]Move, error) {
	var doc struct {
		Moves []Move `yaml:"moves"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing move YAML: %w", err)
	}
	moves := doc.Moves
	if len(moves) == 0 {
		var single Move
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parsing move YAML: %w", err)
		}
		moves = []Move{single}
	}
	for _, m := range moves {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return moves, nil
}

// LoadDir reads all *.yaml files in dir and returns the moves they define, in
// file-name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all moves or an error on the first read or parse failure.
func LoadDir(dir string) ([]Move, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading move dir %q: %w", dir, err)
	}
	var moves []Move
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		loaded, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		moves = append(moves, loaded...)
	}
	return moves, nil
}
