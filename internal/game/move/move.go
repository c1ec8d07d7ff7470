// Package move defines move definitions and the immutable catalog used to resolve
// move names during battle.
package move

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// Category selects which attack/defense stat pair a move uses.
// The zero value (CategoryUnknown) is intentionally invalid.
type Category int

const (
	CategoryUnknown Category = iota // zero value; intentionally invalid
	Physical                        // attack vs defense
	Special                         // sp_attack vs sp_defense
)

// String returns "Physical", "Special", or "Unknown".
func (c Category) String() string {
	switch c {
	case Physical:
		return "Physical"
	case Special:
		return "Special"
	default:
		return "Unknown"
	}
}

// ParseCategory resolves a category name case-insensitively.
//
// Postcondition: Returns Physical or Special, or CategoryUnknown and an error.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical":
		return Physical, nil
	case "special":
		return Special, nil
	default:
		return CategoryUnknown, fmt.Errorf("move: unknown category %q", s)
	}
}

// MarshalText encodes c as its name.
func (c Category) MarshalText() ([]byte, error) {
	if c != Physical && c != Special {
		return nil, fmt.Errorf("move: cannot marshal invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalYAML decodes a scalar YAML node holding a category name.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("move: line %d: category must be a scalar", value.Line)
	}
	return c.UnmarshalText([]byte(value.Value))
}

// Move is a single damaging move definition.
// Accuracy and PP are recorded but do not participate in damage resolution.
type Move struct {
	ID       string         `yaml:"id" json:"id"`
	Name     string         `yaml:"name" json:"name"`
	Type     typechart.Type `yaml:"type" json:"type"`
	Power    int            `yaml:"power" json:"power"`
	Category Category       `yaml:"category" json:"category"`
	Accuracy int            `yaml:"accuracy" json:"accuracy"`
	PP       int            `yaml:"pp" json:"pp"`
}

// Validate checks that m satisfies the move invariants.
//
// Postcondition: Returns nil iff Name is non-empty, Type is valid, Power >= 1,
// Category is Physical or Special, and Accuracy and PP are non-negative.
func (m Move) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("move: name must not be empty")
	}
	if !m.Type.Valid() {
		return fmt.Errorf("move %q: type must be one of the 18 canonical types", m.Name)
	}
	if m.Power < 1 {
		return fmt.Errorf("move %q: power must be >= 1, got %d", m.Name, m.Power)
	}
	if m.Category != Physical && m.Category != Special {
		return fmt.Errorf("move %q: category must be Physical or Special", m.Name)
	}
	if m.Accuracy < 0 || m.PP < 0 {
		return fmt.Errorf("move %q: accuracy and pp must not be negative", m.Name)
	}
	return nil
}

// CanonicalID normalises a move name into a catalog key: lower-case with spaces,
// hyphens, and underscores removed ("Water Gun" → "watergun").
func CanonicalID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Canonical move identifiers for the built-in moves.
const (
	Tackle       = "tackle"
	Ember        = "ember"
	WaterGun     = "watergun"
	Thundershock = "thundershock"
)

// Generic returns the fallback move used when name does not resolve:
// Normal type, Physical, power 50.
//
// Postcondition: result.Validate() == nil whenever name is non-empty.
func Generic(name string) Move {
	return Move{
		ID:       CanonicalID(name),
		Name:     name,
		Type:     typechart.Normal,
		Power:    50,
		Category: Physical,
		Accuracy: 100,
		PP:       20,
	}
}
