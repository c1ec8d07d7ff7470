package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/battlesim/internal/game/dex"
)

// ErrInvalidTurnLimit is returned by SimulateBattle for a negative turn limit.
var ErrInvalidTurnLimit = errors.New("turn limit must not be negative")

// NotFoundError reports that a combatant name did not resolve.
// It unwraps to dex.ErrNotFound.
type NotFoundError struct {
	// Side is 1 or 2 for the first- or second-named combatant of a battle, or 0
	// when the lookup was not part of a battle.
	Side int
	Name string
	Err  error
}

// Error implements error.
func (e *NotFoundError) Error() string {
	if e.Side > 0 {
		return fmt.Sprintf("combatant %d %q not found", e.Side, e.Name)
	}
	return fmt.Sprintf("combatant %q not found", e.Name)
}

// Unwrap returns the underlying provider error, or dex.ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return dex.ErrNotFound
}

// InvalidStatError reports a non-positive stat that would make damage undefined.
type InvalidStatError struct {
	Combatant string
	Stat      string
	Value     int
}

// Error implements error.
func (e *InvalidStatError) Error() string {
	return fmt.Sprintf("combatant %q: stat %s must be >= 1, got %d", e.Combatant, e.Stat, e.Value)
}
