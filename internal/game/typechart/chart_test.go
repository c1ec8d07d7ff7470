package typechart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

func TestChart_Effectiveness(t *testing.T) {
	c := typechart.Standard()
	tests := []struct {
		atk, def typechart.Type
		want     float64
	}{
		{typechart.Water, typechart.Fire, 2},
		{typechart.Electric, typechart.Ground, 0},
		{typechart.Normal, typechart.Ghost, 0},
		{typechart.Normal, typechart.Grass, 1},
		{typechart.Fire, typechart.Water, 0.5},
		{typechart.Dragon, typechart.Fairy, 0},
		{typechart.Fairy, typechart.Dragon, 2},
		{typechart.Ghost, typechart.Normal, 0},
		{typechart.Steel, typechart.Fairy, 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, c.Effectiveness(tc.atk, tc.def), "%s vs %s", tc.atk, tc.def)
	}
}

func TestChart_Effectiveness_InvalidTypeIsNeutral(t *testing.T) {
	c := typechart.Standard()
	assert.Equal(t, 1.0, c.Effectiveness(typechart.TypeUnknown, typechart.Fire))
	assert.Equal(t, 1.0, c.Effectiveness(typechart.Fire, typechart.TypeUnknown))
	assert.Equal(t, 1.0, c.Effectiveness(typechart.Type(99), typechart.Fire))
}

func TestChart_Combined(t *testing.T) {
	c := typechart.Standard()
	assert.Equal(t, 4.0, c.Combined(typechart.Ice, []typechart.Type{typechart.Dragon, typechart.Flying}))
	assert.Equal(t, 1.0, c.Combined(typechart.Fire, []typechart.Type{typechart.Grass, typechart.Water}))
	assert.Equal(t, 0.0, c.Combined(typechart.Electric, []typechart.Type{typechart.Water, typechart.Ground}))
	assert.Equal(t, 0.25, c.Combined(typechart.Fire, []typechart.Type{typechart.Water, typechart.Rock}))
	assert.Equal(t, 1.0, c.Combined(typechart.Fire, nil))
}

func TestChart_Property_EffectivenessInDomain(t *testing.T) {
	c := typechart.Standard()
	all := typechart.All()
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.SampledFrom(all).Draw(rt, "atk")
		def := rapid.SampledFrom(all).Draw(rt, "def")
		assert.Contains(rt, []float64{0, 0.5, 1, 2}, c.Effectiveness(atk, def))
	})
}

func TestChart_Property_LookupIsIdempotent(t *testing.T) {
	c := typechart.Standard()
	all := typechart.All()
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.SampledFrom(all).Draw(rt, "atk")
		def := rapid.SliceOfN(rapid.SampledFrom(all), 1, 2).Draw(rt, "def")
		first := c.Combined(atk, def)
		for i := 0; i < 5; i++ {
			assert.Equal(rt, first, c.Combined(atk, def))
		}
	})
}

func TestChart_Property_CombinedIsProduct(t *testing.T) {
	c := typechart.Standard()
	all := typechart.All()
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.SampledFrom(all).Draw(rt, "atk")
		d1 := rapid.SampledFrom(all).Draw(rt, "d1")
		d2 := rapid.SampledFrom(all).Draw(rt, "d2")
		want := c.Effectiveness(atk, d1) * c.Effectiveness(atk, d2)
		assert.Equal(rt, want, c.Combined(atk, []typechart.Type{d1, d2}))
	})
}

func TestStandard_IsShared(t *testing.T) {
	require.Same(t, typechart.Standard(), typechart.Standard())
}
