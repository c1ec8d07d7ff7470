package combat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/game/move"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// DefaultMaxTurns is the turn limit callers use when none is configured.
const DefaultMaxTurns = 3

// Engine resolves battles between creatures supplied by a dex.Provider.
// Engine holds no per-battle state; all methods are safe for concurrent use
// provided each call receives its own Source.
type Engine struct {
	chart   *typechart.Chart
	catalog *move.Catalog
	dex     dex.Provider
	logger  *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: all arguments must be non-nil.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(chart *typechart.Chart, catalog *move.Catalog, provider dex.Provider, logger *zap.Logger) *Engine {
	return &Engine{chart: chart, catalog: catalog, dex: provider, logger: logger}
}

// Catalog returns the move catalog used to resolve move names.
func (e *Engine) Catalog() *move.Catalog { return e.catalog }

// InitializeCombatant looks up name and returns a full-HP combatant equipped
// with DefaultMoves.
//
// Postcondition: Returns a valid Combatant, a *NotFoundError when name does not
// resolve, an *InvalidStatError when the record has a non-positive stat, or a
// wrapped provider error.
func (e *Engine) InitializeCombatant(ctx context.Context, name string) (Combatant, error) {
	rec, err := e.dex.Lookup(ctx, name)
	if err != nil {
		if errors.Is(err, dex.ErrNotFound) {
			return Combatant{}, &NotFoundError{Name: name, Err: err}
		}
		return Combatant{}, fmt.Errorf("looking up combatant %q: %w", name, err)
	}
	return NewCombatant(rec)
}

// ApplyMove resolves moveName through the catalog (unknown names fall back to
// move.Generic) and applies it from attacker to defender. The snapshots passed in
// are not modified; the updated defender is returned.
//
// Precondition: src must be non-nil.
// Postcondition: Returns the updated defender and the turn record, or a
// validation error if either snapshot is malformed.
func (e *Engine) ApplyMove(attacker, defender Combatant, moveName string, src Source) (Combatant, TurnResult, error) {
	if err := attacker.validateState(); err != nil {
		return Combatant{}, TurnResult{}, fmt.Errorf("attacker: %w", err)
	}
	if err := defender.validateState(); err != nil {
		return Combatant{}, TurnResult{}, fmt.Errorf("defender: %w", err)
	}
	return ResolveMove(attacker, defender, e.catalog.Resolve(moveName), e.chart, src)
}

// SimulateBattle runs a battle between name1 and name2 for at most maxTurns
// turns. A maxTurns of 0 runs no turns, leaving the HP-ratio rule to pick the
// winner of two untouched combatants.
//
// Initiative is fixed once from the speed stat. Each turn the first mover
// attacks with a uniformly chosen move and, if the defender survives, the second
// mover replies. The battle ends as soon as either side faints, even mid-turn;
// a turn cut short that way still counts toward TurnsSimulated.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a complete BattleResult with TurnsSimulated <= maxTurns,
// or a *NotFoundError with Side set to the side that failed to resolve, or
// ErrInvalidTurnLimit when maxTurns < 0.
func (e *Engine) SimulateBattle(ctx context.Context, name1, name2 string, maxTurns int, src Source) (BattleResult, error) {
	if maxTurns < 0 {
		return BattleResult{}, fmt.Errorf("%w: got %d", ErrInvalidTurnLimit, maxTurns)
	}

	var cs [2]Combatant
	for i, name := range [2]string{name1, name2} {
		c, err := e.InitializeCombatant(ctx, name)
		if err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				nf.Side = i + 1
				return BattleResult{}, nf
			}
			return BattleResult{}, fmt.Errorf("combatant %d: %w", i+1, err)
		}
		cs[i] = c
	}

	battleID := uuid.NewString()
	logger := e.logger.With(zap.String("battle_id", battleID))
	first, second := Initiative(cs[0], cs[1])
	logger.Info("battle started",
		zap.String("combatant1", cs[0].Name),
		zap.String("combatant2", cs[1].Name),
		zap.String("first_mover", cs[first].Name),
		zap.Int("max_turns", maxTurns),
	)

	var turns []TurnResult
	turn := 0
	for turn < maxTurns && !cs[0].IsFainted() && !cs[1].IsFainted() {
		turn++
		for _, order := range [2][2]int{{first, second}, {second, first}} {
			tr, err := e.takeAction(&cs, order[0], order[1], src)
			if err != nil {
				return BattleResult{}, fmt.Errorf("turn %d: %w", turn, err)
			}
			turns = append(turns, tr)
			logger.Debug("move resolved",
				zap.Int("turn", turn),
				zap.String("attacker", tr.Attacker),
				zap.String("move", tr.Move),
				zap.Int("damage", tr.Damage),
				zap.Stringer("effectiveness", tr.Effectiveness),
				zap.Int("defender_hp", tr.DefenderHPRemaining),
			)
			if tr.DefenderFainted {
				break
			}
		}
	}

	side := decideWinner(cs[0], cs[1])
	result := BattleResult{
		BattleID:       battleID,
		Combatant1:     summarize(cs[0]),
		Combatant2:     summarize(cs[1]),
		TurnsSimulated: turn,
		Turns:          turns,
		Winner:         cs[side-1].Name,
		WinnerSide:     side,
	}
	logger.Info("battle finished",
		zap.String("winner", result.Winner),
		zap.Int("turns", result.TurnsSimulated),
		zap.Int("combatant1_hp", result.Combatant1.EndingHP),
		zap.Int("combatant2_hp", result.Combatant2.EndingHP),
	)
	return result, nil
}

// takeAction has cs[atk] attack cs[def] with a uniformly chosen move and stores
// the updated defender back into cs.
func (e *Engine) takeAction(cs *[2]Combatant, atk, def int, src Source) (TurnResult, error) {
	attacker := cs[atk]
	name := attacker.Moves[src.Intn(len(attacker.Moves))]
	updated, tr, err := ResolveMove(attacker, cs[def], e.catalog.Resolve(name), e.chart, src)
	if err != nil {
		return TurnResult{}, err
	}
	cs[def] = updated
	return tr, nil
}
