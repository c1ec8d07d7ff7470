// Package typechart provides the elemental type set and the attack-versus-defend
// effectiveness matrix used by the battle engine.
package typechart

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Type is one of the 18 canonical elemental types.
// The zero value (TypeUnknown) is intentionally invalid.
type Type int

const (
	TypeUnknown Type = iota // zero value; intentionally invalid
	Normal
	Fire
	Water
	Electric
	Grass
	Ice
	Fighting
	Poison
	Ground
	Flying
	Psychic
	Bug
	Rock
	Ghost
	Dragon
	Dark
	Steel
	Fairy
)

// numTypes is the size of the type index space including TypeUnknown.
const numTypes = int(Fairy) + 1

var typeNames = [numTypes]string{
	TypeUnknown: "Unknown",
	Normal:      "Normal",
	Fire:        "Fire",
	Water:       "Water",
	Electric:    "Electric",
	Grass:       "Grass",
	Ice:         "Ice",
	Fighting:    "Fighting",
	Poison:      "Poison",
	Ground:      "Ground",
	Flying:      "Flying",
	Psychic:     "Psychic",
	Bug:         "Bug",
	Rock:        "Rock",
	Ghost:       "Ghost",
	Dragon:      "Dragon",
	Dark:        "Dark",
	Steel:       "Steel",
	Fairy:       "Fairy",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, numTypes-1)
	for t := Normal; t <= Fairy; t++ {
		m[typeNames[t]] = t
	}
	return m
}()

// All returns the 18 valid types in canonical order.
//
// Postcondition: len(result) == 18; result[0] == Normal.
func All() []Type {
	out := make([]Type, 0, numTypes-1)
	for t := Normal; t <= Fairy; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is one of the 18 canonical types.
func (t Type) Valid() bool { return t >= Normal && t <= Fairy }

// String returns the canonical type name, e.g. "Fire".
func (t Type) String() string {
	if t < 0 || int(t) >= numTypes {
		return typeNames[TypeUnknown]
	}
	return typeNames[t]
}

// ParseType resolves a type name case-insensitively.
//
// Precondition: none.
// Postcondition: Returns a valid Type, or TypeUnknown and an error when s does not
// name one of the 18 canonical types.
func ParseType(s string) (Type, error) {
	// Casers carry state and are not shared between goroutines.
	name := cases.Title(language.English).String(strings.TrimSpace(s))
	if t, ok := typesByName[name]; ok {
		return t, nil
	}
	return TypeUnknown, fmt.Errorf("typechart: unknown type %q", s)
}

// ParseTypes resolves each name in names, skipping blank entries.
//
// Postcondition: Returns the parsed types in input order, or an error on the first
// unrecognised name.
func ParseTypes(names ...string) ([]Type, error) {
	out := make([]Type, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		t, err := ParseType(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Contains reports whether t appears in types.
func Contains(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// MarshalText encodes t as its canonical name.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("typechart: cannot marshal invalid type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a canonical (case-insensitive) type name.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML decodes a scalar YAML node holding a type name.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("typechart: line %d: type must be a scalar", value.Line)
	}
	return t.UnmarshalText([]byte(value.Value))
}
