// Package dex provides creature stat records and the Provider abstraction the
// battle engine uses to resolve combatants by name.
package dex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// ErrNotFound is returned by a Provider when no creature matches a name.
var ErrNotFound = errors.New("creature not found")

// Provider resolves creature records by name.
type Provider interface {
	// Lookup returns the record best matching name, or an error wrapping ErrNotFound.
	Lookup(ctx context.Context, name string) (*Record, error)
}

// Stats is a creature's base stat block.
type Stats struct {
	HP        int `yaml:"hp" json:"hp"`
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	SpAttack  int `yaml:"sp_attack" json:"sp_attack"`
	SpDefense int `yaml:"sp_defense" json:"sp_defense"`
	Speed     int `yaml:"speed" json:"speed"`
}

// Validate checks that every stat is positive.
//
// Postcondition: Returns nil iff all six stats are >= 1; otherwise the error names
// the first offending stat.
func (s Stats) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"hp", s.HP},
		{"attack", s.Attack},
		{"defense", s.Defense},
		{"sp_attack", s.SpAttack},
		{"sp_defense", s.SpDefense},
		{"speed", s.Speed},
	} {
		if f.value < 1 {
			return fmt.Errorf("stat %s must be >= 1, got %d", f.name, f.value)
		}
	}
	return nil
}

// Record is one creature's reference data.
type Record struct {
	ID         int              `yaml:"id" json:"id"`
	Name       string           `yaml:"name" json:"name"`
	Types      []typechart.Type `yaml:"types" json:"types"`
	Stats      Stats            `yaml:"stats" json:"stats"`
	Generation int              `yaml:"generation" json:"generation"`
}

// Validate checks the record invariants.
//
// Postcondition: Returns nil iff Name is non-empty, Types holds 1–2 distinct valid
// types, all stats are positive, and Generation >= 0.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("dex record %d: name must not be empty", r.ID)
	}
	if len(r.Types) < 1 || len(r.Types) > 2 {
		return fmt.Errorf("dex record %q: must have 1 or 2 types, got %d", r.Name, len(r.Types))
	}
	for _, t := range r.Types {
		if !t.Valid() {
			return fmt.Errorf("dex record %q: invalid type", r.Name)
		}
	}
	if len(r.Types) == 2 && r.Types[0] == r.Types[1] {
		return fmt.Errorf("dex record %q: duplicate type %s", r.Name, r.Types[0])
	}
	if err := r.Stats.Validate(); err != nil {
		return fmt.Errorf("dex record %q: %w", r.Name, err)
	}
	if r.Generation < 0 {
		return fmt.Errorf("dex record %q: generation must be >= 0", r.Name)
	}
	return nil
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	out := *r
	out.Types = append([]typechart.Type(nil), r.Types...)
	return &out
}
