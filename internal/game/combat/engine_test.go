package combat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/battlesim/internal/game/combat"
	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/game/dice"
	"github.com/cory-johannsen/battlesim/internal/game/move"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

type stubProvider struct {
	rec *dex.Record
	err error
}

func (s stubProvider) Lookup(context.Context, string) (*dex.Record, error) {
	return s.rec, s.err
}

func starterDex() []*dex.Record {
	return []*dex.Record{
		rec("Bulbasaur", stats(45, 49, 49, 65, 65, 45), typechart.Grass, typechart.Poison),
		rec("Charmander", stats(39, 52, 43, 60, 50, 65), typechart.Fire),
		rec("Charizard", stats(78, 84, 78, 109, 85, 100), typechart.Fire, typechart.Flying),
		rec("Squirtle", stats(44, 48, 65, 50, 64, 43), typechart.Water),
		rec("Pikachu", stats(35, 55, 40, 50, 50, 90), typechart.Electric),
		rec("Sandshrew", stats(50, 75, 85, 20, 30, 40), typechart.Ground),
	}
}

// tank deals and takes a couple of HP per move, so no battle of a few turns ends in a faint.
func tank(name string, speed int) *dex.Record {
	return rec(name, stats(255, 5, 250, 5, 250, speed), typechart.Normal)
}

func TestInitializeCombatant(t *testing.T) {
	eng := newEngine(t, starterDex()...)

	c, err := eng.InitializeCombatant(context.Background(), "charizard")
	require.NoError(t, err)
	assert.Equal(t, "Charizard", c.Name)
	assert.Equal(t, c.Stats.HP, c.CurrentHP)
	assert.Equal(t, []string{"Tackle", "Ember"}, c.Moves)
	assert.Equal(t, 1, c.Generation)

	c, err = eng.InitializeCombatant(context.Background(), "squirt")
	require.NoError(t, err)
	assert.Equal(t, "Squirtle", c.Name)
	assert.Contains(t, c.Moves, "Tackle")
}

func TestInitializeCombatant_NotFound(t *testing.T) {
	eng := newEngine(t, starterDex()...)
	_, err := eng.InitializeCombatant(context.Background(), "Missingno")
	var nf *combat.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Missingno", nf.Name)
	assert.Equal(t, 0, nf.Side)
	assert.ErrorIs(t, err, dex.ErrNotFound)
}

func TestInitializeCombatant_InvalidStat(t *testing.T) {
	bad := rec("Broken", stats(10, 10, 0, 10, 10, 10), typechart.Normal)
	eng := combat.NewEngine(typechart.Standard(), move.Default(), stubProvider{rec: bad}, zap.NewNop())
	_, err := eng.InitializeCombatant(context.Background(), "Broken")
	var ise *combat.InvalidStatError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "defense", ise.Stat)
	assert.Equal(t, 0, ise.Value)
}

func TestInitializeCombatant_ProviderFailure(t *testing.T) {
	boom := errors.New("connection refused")
	eng := combat.NewEngine(typechart.Standard(), move.Default(), stubProvider{err: boom}, zap.NewNop())
	_, err := eng.InitializeCombatant(context.Background(), "Anything")
	require.ErrorIs(t, err, boom)
	var nf *combat.NotFoundError
	assert.False(t, errors.As(err, &nf))
}

func TestSimulateBattle_NotFoundSide(t *testing.T) {
	eng := newEngine(t, starterDex()...)
	var nf *combat.NotFoundError

	_, err := eng.SimulateBattle(context.Background(), "Missingno", "Pikachu", 3, &fixedSource{})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 1, nf.Side)
	assert.Equal(t, "Missingno", nf.Name)

	_, err = eng.SimulateBattle(context.Background(), "Pikachu", "Missingno", 3, &fixedSource{})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 2, nf.Side)
	assert.ErrorIs(t, err, dex.ErrNotFound)
}

func TestSimulateBattle_TurnLimit(t *testing.T) {
	eng := newEngine(t, tank("Wall", 10), tank("Fort", 20))

	_, err := eng.SimulateBattle(context.Background(), "Wall", "Fort", -1, &fixedSource{})
	require.ErrorIs(t, err, combat.ErrInvalidTurnLimit)

	res, err := eng.SimulateBattle(context.Background(), "Wall", "Fort", 0, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TurnsSimulated)
	assert.Empty(t, res.Turns)
	assert.Equal(t, 1, res.WinnerSide)
	assert.Equal(t, "Wall", res.Winner)
	assert.Equal(t, res.Combatant1.StartingHP, res.Combatant1.EndingHP)

	res, err = eng.SimulateBattle(context.Background(), "Fort", "Wall", 0, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, "Fort", res.Winner)

	res, err = eng.SimulateBattle(context.Background(), "Wall", "Fort", combat.DefaultMaxTurns, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, combat.DefaultMaxTurns, res.TurnsSimulated)
	assert.Len(t, res.Turns, 2*combat.DefaultMaxTurns)

	res, err = eng.SimulateBattle(context.Background(), "Wall", "Fort", 5, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.TurnsSimulated)
	assert.Len(t, res.Turns, 10)
}

func TestSimulateBattle_FasterMovesFirstEveryTurn(t *testing.T) {
	eng := newEngine(t, tank("Slowpoke", 15), tank("Jolteon", 130))

	res, err := eng.SimulateBattle(context.Background(), "Slowpoke", "Jolteon", 3, &fixedSource{})
	require.NoError(t, err)
	require.Len(t, res.Turns, 6)
	for i, tr := range res.Turns {
		if i%2 == 0 {
			assert.Equal(t, "Jolteon", tr.Attacker, "entry %d", i)
		} else {
			assert.Equal(t, "Slowpoke", tr.Attacker, "entry %d", i)
		}
	}
}

func TestSimulateBattle_SpeedTieAndHPTieFavourCombatantOne(t *testing.T) {
	eng := newEngine(t, tank("Twin A", 50), tank("Twin B", 50))

	res, err := eng.SimulateBattle(context.Background(), "Twin A", "Twin B", 3, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, "Twin A", res.Turns[0].Attacker)
	assert.Equal(t, res.Combatant1.EndingHP, res.Combatant2.EndingHP)
	assert.Equal(t, "Twin A", res.Winner)
	assert.Equal(t, 1, res.WinnerSide)

	res, err = eng.SimulateBattle(context.Background(), "Twin B", "Twin A", 3, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, "Twin B", res.Turns[0].Attacker)
	assert.Equal(t, "Twin B", res.Winner)
}

func TestSimulateBattle_SameCreatureBothSides(t *testing.T) {
	eng := newEngine(t, tank("Ditto", 48))
	res, err := eng.SimulateBattle(context.Background(), "Ditto", "Ditto", 2, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, "Ditto", res.Winner)
	assert.Equal(t, 1, res.WinnerSide)
}

func TestSimulateBattle_FaintOnFirstMoveEndsBattle(t *testing.T) {
	striker := rec("Striker", stats(100, 255, 100, 100, 100, 200), typechart.Fighting)
	glass := rec("Glass", stats(1, 10, 1, 10, 1, 10), typechart.Normal)
	eng := newEngine(t, striker, glass)

	for _, order := range [][2]string{{"Striker", "Glass"}, {"Glass", "Striker"}} {
		res, err := eng.SimulateBattle(context.Background(), order[0], order[1], 3, &fixedSource{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.TurnsSimulated)
		require.Len(t, res.Turns, 1)
		assert.Equal(t, "Striker", res.Turns[0].Attacker)
		assert.True(t, res.Turns[0].DefenderFainted)
		assert.Contains(t, res.Turns[0].Log, "Glass fainted!")
		assert.Equal(t, "Striker", res.Winner)
	}
}

func TestSimulateBattle_SummariesMatchLog(t *testing.T) {
	eng := newEngine(t, starterDex()...)
	res, err := eng.SimulateBattle(context.Background(), "Charmander", "Squirtle", 3, dice.NewSeededSource(7))
	require.NoError(t, err)
	assert.Equal(t, 39, res.Combatant1.StartingHP)
	assert.Equal(t, 44, res.Combatant2.StartingHP)

	hp := map[string]int{"Charmander": 39, "Squirtle": 44}
	for _, tr := range res.Turns {
		hp[tr.Defender] = tr.DefenderHPRemaining
	}
	assert.Equal(t, hp["Charmander"], res.Combatant1.EndingHP)
	assert.Equal(t, hp["Squirtle"], res.Combatant2.EndingHP)
	assert.NotEmpty(t, res.BattleID)
}

func TestSimulateBattle_SeededRunsAreReproducible(t *testing.T) {
	eng := newEngine(t, starterDex()...)
	a, err := eng.SimulateBattle(context.Background(), "Pikachu", "Charizard", 5, dice.NewSeededSource(99))
	require.NoError(t, err)
	b, err := eng.SimulateBattle(context.Background(), "Pikachu", "Charizard", 5, dice.NewSeededSource(99))
	require.NoError(t, err)

	assert.NotEqual(t, a.BattleID, b.BattleID)
	a.BattleID, b.BattleID = "", ""
	assert.Equal(t, a, b)
}

func TestSimulateBattle_LogsCorrelatedByBattleID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	idx, err := dex.NewIndex([]*dex.Record{tank("Wall", 10), tank("Fort", 20)})
	require.NoError(t, err)
	eng := combat.NewEngine(typechart.Standard(), move.Default(), idx, zap.New(core))

	res, err := eng.SimulateBattle(context.Background(), "Wall", "Fort", 2, &fixedSource{})
	require.NoError(t, err)

	started := logs.FilterMessage("battle started").All()
	require.Len(t, started, 1)
	assert.Equal(t, zapcore.InfoLevel, started[0].Level)
	assert.Equal(t, res.BattleID, started[0].ContextMap()["battle_id"])

	finished := logs.FilterMessage("battle finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, res.Winner, finished[0].ContextMap()["winner"])

	moves := logs.FilterMessage("move resolved").All()
	assert.Len(t, moves, len(res.Turns))
	for _, m := range moves {
		assert.Equal(t, zapcore.DebugLevel, m.Level)
		assert.Equal(t, res.BattleID, m.ContextMap()["battle_id"])
	}
}

func TestSimulateBattle_Property_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c1 := genCombatant(rt, "Left")
		c2 := genCombatant(rt, "Right")
		records := []*dex.Record{
			{Name: "Left", Types: c1.Types, Stats: c1.Stats, Generation: 1},
			{Name: "Right", Types: c2.Types, Stats: c2.Stats, Generation: 1},
		}
		idx, err := dex.NewIndex(records)
		require.NoError(rt, err)
		eng := combat.NewEngine(typechart.Standard(), move.Default(), idx, zap.NewNop())
		maxTurns := rapid.IntRange(0, 10).Draw(rt, "max_turns")
		seed := rapid.Uint64().Draw(rt, "seed")

		res, err := eng.SimulateBattle(context.Background(), "Left", "Right", maxTurns, dice.NewSeededSource(seed))
		require.NoError(rt, err)

		assert.LessOrEqual(rt, res.TurnsSimulated, maxTurns)
		assert.GreaterOrEqual(rt, len(res.Turns), 2*res.TurnsSimulated-1)
		assert.LessOrEqual(rt, len(res.Turns), 2*res.TurnsSimulated)

		first := "Left"
		if c2.Stats.Speed > c1.Stats.Speed {
			first = "Right"
		}
		for i, tr := range res.Turns {
			if i%2 == 0 {
				assert.Equal(rt, first, tr.Attacker)
			} else {
				assert.NotEqual(rt, first, tr.Attacker)
			}
			if i < len(res.Turns)-1 {
				assert.False(rt, tr.DefenderFainted, "faint before the last entry")
			}
		}

		fainted := res.Combatant1.EndingHP == 0 || res.Combatant2.EndingHP == 0
		if !fainted {
			assert.Equal(rt, maxTurns, res.TurnsSimulated)
		}
		switch {
		case res.Combatant1.EndingHP == 0:
			assert.Equal(rt, 2, res.WinnerSide)
		case res.Combatant2.EndingHP == 0:
			assert.Equal(rt, 1, res.WinnerSide)
		}
		assert.Equal(rt, []string{"Left", "Right"}[res.WinnerSide-1], res.Winner)
	})
}
