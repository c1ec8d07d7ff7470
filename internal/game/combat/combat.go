// Package combat implements the two-combatant battle engine: damage calculation,
// single-move turn resolution, and multi-turn battle orchestration.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/game/move"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// Effectiveness is the type-matchup tag attached to a damage result.
type Effectiveness int

const (
	EffectNone Effectiveness = iota
	SuperEffective
	NotVeryEffective
	NoEffect
)

// String returns a stable identifier for the tag.
func (e Effectiveness) String() string {
	switch e {
	case EffectNone:
		return "none"
	case SuperEffective:
		return "super_effective"
	case NotVeryEffective:
		return "not_very_effective"
	case NoEffect:
		return "no_effect"
	default:
		return "unknown"
	}
}

// Message returns the battle-log sentence for the tag, or "" for EffectNone.
func (e Effectiveness) Message() string {
	switch e {
	case SuperEffective:
		return "It's super effective!"
	case NotVeryEffective:
		return "It's not very effective..."
	case NoEffect:
		return "It has no effect..."
	default:
		return ""
	}
}

// MarshalText encodes e using String.
func (e Effectiveness) MarshalText() ([]byte, error) {
	if e < EffectNone || e > NoEffect {
		return nil, fmt.Errorf("combat: cannot marshal invalid effectiveness %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText decodes the identifiers produced by String.
func (e *Effectiveness) UnmarshalText(text []byte) error {
	for v := EffectNone; v <= NoEffect; v++ {
		if v.String() == string(text) {
			*e = v
			return nil
		}
	}
	return fmt.Errorf("combat: unknown effectiveness %q", text)
}

// Classify maps a final combined multiplier to its tag.
//
// Postcondition: mult == 0 → NoEffect; mult > 1.5 → SuperEffective;
// 0 < mult < 0.5 → NotVeryEffective; otherwise EffectNone.
func Classify(mult float64) Effectiveness {
	switch {
	case mult == 0:
		return NoEffect
	case mult > 1.5:
		return SuperEffective
	case mult < 0.5:
		return NotVeryEffective
	default:
		return EffectNone
	}
}

// Combatant is one battling creature. Values are snapshots: the engine never
// retains or aliases a Combatant between calls.
//
// Invariant: 0 <= CurrentHP <= Stats.HP; CurrentHP == 0 means fainted.
type Combatant struct {
	Name       string           `json:"name"`
	Types      []typechart.Type `json:"types"`
	Stats      dex.Stats        `json:"stats"`
	CurrentHP  int              `json:"current_hp"`
	Moves      []string         `json:"moves"`
	Generation int              `json:"generation,omitempty"`
}

// NewCombatant builds a full-HP combatant from rec, equipped with DefaultMoves.
//
// Precondition: rec must be non-nil.
// Postcondition: Returns a combatant with CurrentHP == rec.Stats.HP and at least
// one move, or an error if rec is invalid.
func NewCombatant(rec *dex.Record) (Combatant, error) {
	c := Combatant{
		Name:       rec.Name,
		Types:      append([]typechart.Type(nil), rec.Types...),
		Stats:      rec.Stats,
		CurrentHP:  rec.Stats.HP,
		Generation: rec.Generation,
	}
	c.Moves = DefaultMoves(c.Types)
	if err := c.Validate(); err != nil {
		return Combatant{}, err
	}
	return c, nil
}

// elementalMoves is the fixed priority order of bonus moves granted by type.
var elementalMoves = []struct {
	typ  typechart.Type
	name string
}{
	{typechart.Fire, "Ember"},
	{typechart.Water, "Water Gun"},
	{typechart.Electric, "Thundershock"},
}

// DefaultMoves returns the deterministic starting move set for a creature with
// the given types: Tackle, then Ember, Water Gun, and Thundershock for each of
// Fire, Water, and Electric present, in that order, each at most once.
//
// Postcondition: result[0] == "Tackle"; len(result) is between 1 and 3.
func DefaultMoves(types []typechart.Type) []string {
	moves := []string{"Tackle"}
	for _, em := range elementalMoves {
		if typechart.Contains(types, em.typ) {
			moves = append(moves, em.name)
		}
	}
	return moves
}

// Clone returns a deep copy of c.
func (c Combatant) Clone() Combatant {
	c.Types = append([]typechart.Type(nil), c.Types...)
	c.Moves = append([]string(nil), c.Moves...)
	return c
}

// IsFainted reports whether the combatant has no HP left.
func (c Combatant) IsFainted() bool { return c.CurrentHP <= 0 }

// ApplyDamage reduces CurrentHP by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: CurrentHP >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// HasType reports whether t is one of the combatant's types.
func (c Combatant) HasType(t typechart.Type) bool { return typechart.Contains(c.Types, t) }

// Validate checks the combatant invariants.
//
// Postcondition: Returns nil, or an *InvalidStatError for a non-positive stat, or a
// descriptive error for any other violation.
func (c Combatant) Validate() error {
	if err := c.validateState(); err != nil {
		return err
	}
	if len(c.Moves) == 0 {
		return fmt.Errorf("combatant %q: move list must not be empty", c.Name)
	}
	return nil
}

// validateState checks everything Validate does except the move list, which a
// single move application does not consult.
func (c Combatant) validateState() error {
	if c.Name == "" {
		return fmt.Errorf("combatant: name must not be empty")
	}
	if len(c.Types) < 1 || len(c.Types) > 2 {
		return fmt.Errorf("combatant %q: must have 1 or 2 types, got %d", c.Name, len(c.Types))
	}
	for _, t := range c.Types {
		if !t.Valid() {
			return fmt.Errorf("combatant %q: invalid type", c.Name)
		}
	}
	if err := validateStats(c.Name, c.Stats); err != nil {
		return err
	}
	if c.CurrentHP < 0 || c.CurrentHP > c.Stats.HP {
		return fmt.Errorf("combatant %q: current_hp %d out of range [0, %d]", c.Name, c.CurrentHP, c.Stats.HP)
	}
	return nil
}

func validateStats(name string, s dex.Stats) error {
	for _, f := range []struct {
		stat  string
		value int
	}{
		{"hp", s.HP},
		{"attack", s.Attack},
		{"defense", s.Defense},
		{"sp_attack", s.SpAttack},
		{"sp_defense", s.SpDefense},
		{"speed", s.Speed},
	} {
		if f.value < 1 {
			return &InvalidStatError{Combatant: name, Stat: f.stat, Value: f.value}
		}
	}
	return nil
}

// statsFor returns the (attack, defense) pair used by category.
func statsFor(cat move.Category, attacker, defender dex.Stats) (atk int, def int, atkName string, defName string) {
	if cat == move.Physical {
		return attacker.Attack, defender.Defense, "attack", "defense"
	}
	return attacker.SpAttack, defender.SpDefense, "sp_attack", "sp_defense"
}
