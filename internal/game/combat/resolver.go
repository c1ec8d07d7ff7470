package combat

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/battlesim/internal/game/move"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// Source is the subset of dice.Source used by the engine.
// Using a local interface avoids a circular import.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// TurnResult records one move application.
type TurnResult struct {
	Attacker            string        `json:"attacker"`
	Defender            string        `json:"defender"`
	Move                string        `json:"move_used"`
	Damage              int           `json:"damage_dealt"`
	Effectiveness       Effectiveness `json:"effectiveness"`
	Multiplier          float64       `json:"multiplier"`
	RandomFactor        float64       `json:"random_factor"`
	DefenderHPRemaining int           `json:"defender_hp_remaining"`
	DefenderFainted     bool          `json:"defender_fainted"`
	Log                 string        `json:"battle_log"`
}

// ResolveMove applies mv from attacker to defender and returns the updated
// defender snapshot. Neither argument is modified.
//
// Precondition: chart and src must be non-nil.
// Postcondition: 0 <= updated.CurrentHP <= defender.CurrentHP;
// result.DefenderFainted == (updated.CurrentHP == 0).
func ResolveMove(attacker, defender Combatant, mv move.Move, chart *typechart.Chart, src Source) (Combatant, TurnResult, error) {
	dmg, err := ComputeDamage(attacker, defender, mv, chart, src)
	if err != nil {
		return Combatant{}, TurnResult{}, err
	}
	updated := defender.Clone()
	updated.ApplyDamage(dmg.Amount)
	fainted := updated.IsFainted()

	return updated, TurnResult{
		Attacker:            attacker.Name,
		Defender:            defender.Name,
		Move:                mv.Name,
		Damage:              dmg.Amount,
		Effectiveness:       dmg.Effectiveness,
		Multiplier:          dmg.Multiplier,
		RandomFactor:        dmg.RandomFactor,
		DefenderHPRemaining: updated.CurrentHP,
		DefenderFainted:     fainted,
		Log:                 RenderLog(attacker.Name, mv.Name, defender.Name, dmg.Amount, dmg.Effectiveness, fainted),
	}, nil
}

// RenderLog formats the battle-log line for one move application:
//
//	"<attacker> used <move>!" [effectiveness] [" It dealt <n> damage!"] [" <defender> fainted!"]
//
// The effectiveness sentence appears when damage > 0 with a non-neutral tag, or
// when damage == 0 with NoEffect.
func RenderLog(attacker, moveName, defender string, damage int, eff Effectiveness, fainted bool) string {
	var b strings.Builder
	b.WriteString(attacker)
	b.WriteString(" used ")
	b.WriteString(moveName)
	b.WriteString("!")
	if (damage > 0 && eff != EffectNone) || (damage == 0 && eff == NoEffect) {
		b.WriteString(" ")
		b.WriteString(eff.Message())
	}
	if damage > 0 {
		b.WriteString(" It dealt ")
		b.WriteString(strconv.Itoa(damage))
		b.WriteString(" damage!")
	}
	if fainted {
		b.WriteString(" ")
		b.WriteString(defender)
		b.WriteString(" fainted!")
	}
	return b.String()
}
