package combat

// Initiative returns the indexes (0 or 1) of the combatant acting first and
// second each turn. The faster combatant acts first; on an exact speed tie the
// first-named combatant (index 0) acts first.
//
// Postcondition: {first, second} == {0, 1}.
func Initiative(c1, c2 Combatant) (first, second int) {
	if c2.Stats.Speed > c1.Stats.Speed {
		return 1, 0
	}
	return 0, 1
}
