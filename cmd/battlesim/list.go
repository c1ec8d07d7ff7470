package main

import (
	"errors"

	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// ErrListingUnsupported is returned when the configured provider cannot enumerate creatures.
var ErrListingUnsupported = errors.New("creature listing requires dex.source csv or yaml")

// roster is implemented by providers that hold every record in memory.
type roster interface {
	Names() []string
	ByType(t typechart.Type) []string
	ByGeneration(gen int) []string
}

var _ roster = (*dex.Index)(nil)

// listCreatures returns creature names in load order, narrowed by typeName and
// gen when they are set.
//
// Postcondition: Returns a non-nil slice, or an error for an unknown type or a
// provider that cannot enumerate.
func listCreatures(p dex.Provider, typeName string, gen int) ([]string, error) {
	r, ok := p.(roster)
	if !ok {
		return nil, ErrListingUnsupported
	}
	names := r.Names()
	if typeName != "" {
		t, err := typechart.ParseType(typeName)
		if err != nil {
			return nil, err
		}
		names = r.ByType(t)
	}
	if gen > 0 {
		names = intersect(names, r.ByGeneration(gen))
	}
	return names, nil
}

// intersect keeps the elements of a that also appear in b, in a's order.
func intersect(a, b []string) []string {
	keep := make(map[string]bool, len(b))
	for _, s := range b {
		keep[s] = true
	}
	out := make([]string, 0, len(a))
	for _, s := range a {
		if keep[s] {
			out = append(out, s)
		}
	}
	return out
}
