package dex

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// NormalizeName title-cases name for display-form matching ("pikachu" → "Pikachu").
func NormalizeName(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// Index is an in-memory Provider over a fixed slice of records.
// It is immutable after construction and safe for concurrent use.
type Index struct {
	records []*Record
}

// NewIndex builds an Index over records, preserving their order. Lookups that
// match several records return the first one.
//
// Postcondition: Returns an Index or an error on the first invalid record.
func NewIndex(records []*Record) (*Index, error) {
	idx := &Index{records: make([]*Record, 0, len(records))}
	for _, r := range records {
		if r == nil {
			return nil, fmt.Errorf("dex: NewIndex: nil record")
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		idx.records = append(idx.records, r.Clone())
	}
	return idx, nil
}

// Len returns the number of records.
func (x *Index) Len() int { return len(x.records) }

// Lookup resolves name by trying, in order: an exact match against the normalised
// name, a case-insensitive match, and a case-insensitive substring match.
//
// Postcondition: Returns a copy of the matching record, or an error wrapping
// ErrNotFound.
func (x *Index) Lookup(_ context.Context, name string) (*Record, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	norm := NormalizeName(trimmed)
	for _, r := range x.records {
		if r.Name == norm {
			return r.Clone(), nil
		}
	}
	for _, r := range x.records {
		if strings.EqualFold(r.Name, trimmed) {
			return r.Clone(), nil
		}
	}
	lower := strings.ToLower(trimmed)
	for _, r := range x.records {
		if strings.Contains(strings.ToLower(r.Name), lower) {
			return r.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// ByType returns the names of every creature having t as either type, in index order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (x *Index) ByType(t typechart.Type) []string {
	out := make([]string, 0)
	for _, r := range x.records {
		if typechart.Contains(r.Types, t) {
			out = append(out, r.Name)
		}
	}
	return out
}

// ByGeneration returns the names of every creature in generation gen, in index order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (x *Index) ByGeneration(gen int) []string {
	out := make([]string, 0)
	for _, r := range x.records {
		if r.Generation == gen {
			out = append(out, r.Name)
		}
	}
	return out
}

// Names returns every creature name in index order.
func (x *Index) Names() []string {
	out := make([]string, 0, len(x.records))
	for _, r := range x.records {
		out = append(out, r.Name)
	}
	return out
}
