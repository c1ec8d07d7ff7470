package combat_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/battlesim/internal/game/combat"
	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/game/move"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// fixedSource replays ints and floats cyclically; an empty list yields 0.
type fixedSource struct {
	ints       []int
	floats     []float64
	intCalls   int
	floatCalls int
}

func (f *fixedSource) Intn(n int) int {
	v := 0
	if len(f.ints) > 0 {
		v = f.ints[f.intCalls%len(f.ints)]
	}
	f.intCalls++
	return v % n
}

func (f *fixedSource) Float64() float64 {
	v := 0.0
	if len(f.floats) > 0 {
		v = f.floats[f.floatCalls%len(f.floats)]
	}
	f.floatCalls++
	return v
}

func stats(hp, atk, def, spa, spd, spe int) dex.Stats {
	return dex.Stats{HP: hp, Attack: atk, Defense: def, SpAttack: spa, SpDefense: spd, Speed: spe}
}

func rec(name string, s dex.Stats, types ...typechart.Type) *dex.Record {
	return &dex.Record{Name: name, Types: types, Stats: s, Generation: 1}
}

func combatant(name string, s dex.Stats, types ...typechart.Type) combat.Combatant {
	return combat.Combatant{
		Name:      name,
		Types:     types,
		Stats:     s,
		CurrentHP: s.HP,
		Moves:     combat.DefaultMoves(types),
	}
}

func newEngine(t *testing.T, records ...*dex.Record) *combat.Engine {
	t.Helper()
	idx, err := dex.NewIndex(records)
	require.NoError(t, err)
	return combat.NewEngine(typechart.Standard(), move.Default(), idx, zaptest.NewLogger(t))
}

func mustMove(t *testing.T, name string) move.Move {
	t.Helper()
	m, ok := move.Default().Lookup(name)
	require.True(t, ok, "move %q", name)
	return m
}
