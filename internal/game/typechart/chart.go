package typechart

// Chart is an immutable attack-type by defend-type effectiveness matrix.
// All methods are safe for concurrent use.
type Chart struct {
	m [numTypes][numTypes]float64
}

// entry is one non-neutral matchup.
type entry struct {
	defend Type
	mult   float64
}

// matchups lists every non-neutral pair; unlisted pairs are neutral (1.0).
var matchups = map[Type][]entry{
	Normal:   {{Rock, 0.5}, {Ghost, 0}, {Steel, 0.5}},
	Fire:     {{Fire, 0.5}, {Water, 0.5}, {Grass, 2}, {Ice, 2}, {Bug, 2}, {Rock, 0.5}, {Dragon, 0.5}, {Steel, 2}},
	Water:    {{Fire, 2}, {Water, 0.5}, {Grass, 0.5}, {Ground, 2}, {Rock, 2}, {Dragon, 0.5}},
	Electric: {{Water, 2}, {Electric, 0.5}, {Grass, 0.5}, {Ground, 0}, {Flying, 2}, {Dragon, 0.5}},
	Grass:    {{Fire, 0.5}, {Water, 2}, {Grass, 0.5}, {Poison, 0.5}, {Ground, 2}, {Flying, 0.5}, {Bug, 0.5}, {Rock, 2}, {Dragon, 0.5}, {Steel, 0.5}},
	Ice:      {{Fire, 0.5}, {Water, 0.5}, {Grass, 2}, {Ice, 0.5}, {Ground, 2}, {Flying, 2}, {Dragon, 2}, {Steel, 0.5}},
	Fighting: {{Normal, 2}, {Ice, 2}, {Poison, 0.5}, {Flying, 0.5}, {Psychic, 0.5}, {Bug, 0.5}, {Rock, 2}, {Ghost, 0}, {Dark, 2}, {Steel, 2}, {Fairy, 0.5}},
	Poison:   {{Grass, 2}, {Poison, 0.5}, {Ground, 0.5}, {Rock, 0.5}, {Ghost, 0.5}, {Steel, 0}, {Fairy, 2}},
	Ground:   {{Fire, 2}, {Electric, 2}, {Grass, 0.5}, {Poison, 2}, {Flying, 0}, {Bug, 0.5}, {Rock, 2}, {Steel, 2}},
	Flying:   {{Electric, 0.5}, {Grass, 2}, {Fighting, 2}, {Bug, 2}, {Rock, 0.5}, {Steel, 0.5}},
	Psychic:  {{Fighting, 2}, {Poison, 2}, {Psychic, 0.5}, {Dark, 0}, {Steel, 0.5}},
	Bug:      {{Fire, 0.5}, {Grass, 2}, {Fighting, 0.5}, {Poison, 0.5}, {Flying, 0.5}, {Psychic, 2}, {Ghost, 0.5}, {Dark, 2}, {Steel, 0.5}, {Fairy, 0.5}},
	Rock:     {{Fire, 2}, {Ice, 2}, {Fighting, 0.5}, {Ground, 0.5}, {Flying, 2}, {Bug, 2}, {Steel, 0.5}},
	Ghost:    {{Normal, 0}, {Psychic, 2}, {Ghost, 2}, {Dark, 0.5}},
	Dragon:   {{Dragon, 2}, {Steel, 0.5}, {Fairy, 0}},
	Dark:     {{Fighting, 0.5}, {Psychic, 2}, {Ghost, 2}, {Dark, 0.5}, {Fairy, 0.5}},
	Steel:    {{Fire, 0.5}, {Water, 0.5}, {Electric, 0.5}, {Ice, 2}, {Rock, 2}, {Steel, 0.5}, {Fairy, 2}},
	Fairy:    {{Fire, 0.5}, {Fighting, 2}, {Poison, 0.5}, {Dragon, 2}, {Dark, 2}, {Steel, 0.5}},
}

var standard = newChart()

// Standard returns the shared chart built at package initialisation.
//
// Postcondition: Returns the same non-nil *Chart on every call.
func Standard() *Chart { return standard }

func newChart() *Chart {
	c := &Chart{}
	for a := range c.m {
		for d := range c.m[a] {
			c.m[a][d] = 1
		}
	}
	for atk, entries := range matchups {
		for _, e := range entries {
			c.m[atk][e.defend] = e.mult
		}
	}
	return c
}

// Effectiveness returns the multiplier for a single attack/defend pair.
//
// Postcondition: Returns one of 0, 0.5, 1, 2. Any pair involving an invalid type
// is neutral (1).
func (c *Chart) Effectiveness(attack, defend Type) float64 {
	if !attack.Valid() || !defend.Valid() {
		return 1
	}
	return c.m[attack][defend]
}

// Combined returns the product of Effectiveness(attack, d) for every d in defend,
// so dual-type defenders compound multiplicatively.
//
// Postcondition: Returns 1 when defend is empty.
func (c *Chart) Combined(attack Type, defend []Type) float64 {
	mult := 1.0
	for _, d := range defend {
		mult *= c.Effectiveness(attack, d)
	}
	return mult
}
