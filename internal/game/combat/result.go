package combat

// Summary is a combatant's HP before and after a battle.
type Summary struct {
	Name       string `json:"name"`
	StartingHP int    `json:"starting_hp"`
	EndingHP   int    `json:"ending_hp"`
}

// BattleResult is the flat, serialisable outcome of SimulateBattle.
type BattleResult struct {
	// BattleID correlates the result with the battle's log entries.
	BattleID   string  `json:"battle_id"`
	Combatant1 Summary `json:"combatant1"`
	Combatant2 Summary `json:"combatant2"`
	// TurnsSimulated counts turns begun, including one cut short by a faint.
	TurnsSimulated int          `json:"turns_simulated"`
	Turns          []TurnResult `json:"battle_log"`
	Winner         string       `json:"winner"`
	// WinnerSide is 1 or 2, disambiguating Winner when both names are equal.
	WinnerSide int `json:"winner_side"`
}

func summarize(c Combatant) Summary {
	return Summary{Name: c.Name, StartingHP: c.Stats.HP, EndingHP: c.CurrentHP}
}

// decideWinner returns the winning side (1 or 2). A side wins outright when only
// the other has fainted; otherwise the higher current/max HP ratio wins, with
// exact ties going to side 1.
func decideWinner(c1, c2 Combatant) int {
	switch {
	case c1.IsFainted() && !c2.IsFainted():
		return 2
	case c2.IsFainted() && !c1.IsFainted():
		return 1
	}
	// c1.CurrentHP/c1.HP >= c2.CurrentHP/c2.HP, compared without division.
	if c1.CurrentHP*c2.Stats.HP >= c2.CurrentHP*c1.Stats.HP {
		return 1
	}
	return 2
}
