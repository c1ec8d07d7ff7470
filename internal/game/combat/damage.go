package combat

import (
	"math"

	"github.com/cory-johannsen/battlesim/internal/game/move"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// Level is the fixed combatant level used by the damage formula.
const Level = 50

// STAB multipliers.
const (
	stabBonus   = 1.5
	stabNeutral = 1.0
)

// Random jitter bounds applied to every damage roll.
const (
	minRandomFactor = 0.85
	maxRandomFactor = 1.0
)

// Damage is the full audit trail of one damage computation.
type Damage struct {
	Amount        int
	// Base is the formula result before STAB, effectiveness, and jitter.
	Base          float64
	STAB          float64
	Multiplier    float64
	RandomFactor  float64
	Effectiveness Effectiveness
}

// ComputeDamage computes the damage attacker deals to defender with mv.
//
// Formula, at Level 50:
//
//	base   = ((2*Level/5 + 2) * power * atk / def) / 50 + 2
//	amount = max(1, floor(base * STAB * multiplier * random))
//
// where (atk, def) is (attack, defense) for Physical moves and
// (sp_attack, sp_defense) for Special moves. A zero multiplier forces the amount
// to 0. Exactly one Float64 is drawn from src per call.
//
// Precondition: chart and src must be non-nil.
// Postcondition: Returns Amount == 0 iff Multiplier == 0, otherwise Amount >= 1;
// returns an *InvalidStatError if the selected attack or defense stat is < 1.
func ComputeDamage(attacker, defender Combatant, mv move.Move, chart *typechart.Chart, src Source) (Damage, error) {
	if err := mv.Validate(); err != nil {
		return Damage{}, err
	}
	atk, def, atkName, defName := statsFor(mv.Category, attacker.Stats, defender.Stats)
	if atk < 1 {
		return Damage{}, &InvalidStatError{Combatant: attacker.Name, Stat: atkName, Value: atk}
	}
	if def < 1 {
		return Damage{}, &InvalidStatError{Combatant: defender.Name, Stat: defName, Value: def}
	}

	stab := stabNeutral
	if attacker.HasType(mv.Type) {
		stab = stabBonus
	}
	mult := chart.Combined(mv.Type, defender.Types)
	base := ((2.0*Level/5+2)*float64(mv.Power)*float64(atk)/float64(def))/50 + 2
	rf := minRandomFactor + (maxRandomFactor-minRandomFactor)*src.Float64()

	amount := int(math.Floor(base * stab * mult * rf))
	if amount < 1 {
		amount = 1
	}
	if mult == 0 {
		amount = 0
	}

	return Damage{
		Amount:        amount,
		Base:          base,
		STAB:          stab,
		Multiplier:    mult,
		RandomFactor:  rf,
		Effectiveness: Classify(mult),
	}, nil
}
