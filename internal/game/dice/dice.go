// Package dice provides the randomness abstraction for the battle engine: move
// selection and damage jitter both draw from a Source.
package dice

// Source is the randomness provider for battle resolution.
//
// Implementations need not be safe for concurrent use unless documented; each
// battle should own its Source.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}
