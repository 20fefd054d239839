package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller rolls dice. Skill checks take one so tests can inject
// predetermined rolls.
type Roller interface {
	// Roll rolls count dice with the given sides and adds bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// Source draws a uniform integer in [0, n).
type Source interface {
	IntN(n int) int
}
