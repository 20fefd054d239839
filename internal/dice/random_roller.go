package dice

import (
	"math/rand/v2"
	"sync"
)

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// randomRoller implements Roller on top of a Source
type randomRoller struct {
	mu     sync.Mutex
	source Source
}

// NewRandomRoller creates a roller backed by the process-wide generator
func NewRandomRoller() Roller {
	return NewRoller(globalSource{})
}

// NewSeededRoller creates a roller that repeats the same sequence for the
// same seed.
func NewSeededRoller(seed uint64) Roller {
	return NewRoller(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewRoller creates a roller drawing from src. Calls are serialized, so
// src does not need to be safe for concurrent use.
func NewRoller(src Source) Roller {
	return &randomRoller{source: src}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Roll(r.source, count, sides, bonus)
}
