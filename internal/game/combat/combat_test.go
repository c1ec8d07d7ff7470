package combat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/battlesim/internal/game/combat"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		mult float64
		want combat.Effectiveness
	}{
		{0, combat.NoEffect},
		{0.25, combat.NotVeryEffective},
		{0.5, combat.EffectNone},
		{1, combat.EffectNone},
		{1.5, combat.EffectNone},
		{2, combat.SuperEffective},
		{4, combat.SuperEffective},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, combat.Classify(tc.mult), "mult=%v", tc.mult)
	}
}

func TestEffectiveness_Message(t *testing.T) {
	assert.Equal(t, "It's super effective!", combat.SuperEffective.Message())
	assert.Equal(t, "It's not very effective...", combat.NotVeryEffective.Message())
	assert.Equal(t, "It has no effect...", combat.NoEffect.Message())
	assert.Equal(t, "", combat.EffectNone.Message())
}

func TestEffectiveness_JSON(t *testing.T) {
	b, err := json.Marshal(combat.SuperEffective)
	require.NoError(t, err)
	assert.Equal(t, `"super_effective"`, string(b))

	var e combat.Effectiveness
	require.NoError(t, json.Unmarshal([]byte(`"no_effect"`), &e))
	assert.Equal(t, combat.NoEffect, e)
	assert.Error(t, json.Unmarshal([]byte(`"meh"`), &e))
}

func TestDefaultMoves(t *testing.T) {
	tests := []struct {
		types []typechart.Type
		want  []string
	}{
		{[]typechart.Type{typechart.Normal}, []string{"Tackle"}},
		{[]typechart.Type{typechart.Fire, typechart.Flying}, []string{"Tackle", "Ember"}},
		{[]typechart.Type{typechart.Water}, []string{"Tackle", "Water Gun"}},
		{[]typechart.Type{typechart.Electric, typechart.Water}, []string{"Tackle", "Water Gun", "Thundershock"}},
		{[]typechart.Type{typechart.Electric, typechart.Fire}, []string{"Tackle", "Ember", "Thundershock"}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, combat.DefaultMoves(tc.types), "types=%v", tc.types)
	}
}

func TestCombatant_ApplyDamage(t *testing.T) {
	c := combatant("G", stats(18, 10, 10, 10, 10, 10), typechart.Normal)
	c.ApplyDamage(5)
	assert.Equal(t, 13, c.CurrentHP)
	c.ApplyDamage(20)
	assert.Equal(t, 0, c.CurrentHP) // floors at 0
	assert.True(t, c.IsFainted())
}

func TestCombatant_Property_DamageNeverBelowZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 255).Draw(rt, "max_hp")
		dmg := rapid.IntRange(0, 500).Draw(rt, "dmg")
		c := combatant("X", stats(maxHP, 1, 1, 1, 1, 1), typechart.Normal)
		c.ApplyDamage(dmg)
		assert.GreaterOrEqual(rt, c.CurrentHP, 0)
		assert.LessOrEqual(rt, c.CurrentHP, maxHP)
	})
}

func TestNewCombatant(t *testing.T) {
	c, err := combat.NewCombatant(rec("Charizard", stats(78, 84, 78, 109, 85, 100), typechart.Fire, typechart.Flying))
	require.NoError(t, err)
	assert.Equal(t, 78, c.CurrentHP)
	assert.Equal(t, []string{"Tackle", "Ember"}, c.Moves)
}

func TestCombatant_Validate(t *testing.T) {
	good := combatant("Ok", stats(10, 10, 10, 10, 10, 10), typechart.Normal)
	require.NoError(t, good.Validate())

	zeroDef := good
	zeroDef.Stats.Defense = 0
	var ise *combat.InvalidStatError
	require.ErrorAs(t, zeroDef.Validate(), &ise)
	assert.Equal(t, "defense", ise.Stat)
	assert.Equal(t, "Ok", ise.Combatant)

	overHP := good
	overHP.CurrentHP = 11
	assert.Error(t, overHP.Validate())

	noMoves := good
	noMoves.Moves = nil
	assert.Error(t, noMoves.Validate())

	noTypes := good
	noTypes.Types = nil
	assert.Error(t, noTypes.Validate())
}

func TestCombatant_CloneIsDeep(t *testing.T) {
	c := combatant("Src", stats(10, 10, 10, 10, 10, 10), typechart.Fire)
	cp := c.Clone()
	cp.Moves[0] = "Other"
	cp.Types[0] = typechart.Water
	assert.Equal(t, "Tackle", c.Moves[0])
	assert.Equal(t, typechart.Fire, c.Types[0])
}
