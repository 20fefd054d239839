package dice

import (
	"errors"
	"fmt"
	"strings"
)

type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	Rolls    []int // Individual die results
	Bonus    int
	Count    int
	Sides    int
	RawTotal int // Sum of the dice without bonus
	IsCrit   bool
	IsFumble bool
}

// Roll draws count dice of the given size from src.
func Roll(src Source, count, sides, bonus int) (*RollResult, error) {
	if src == nil {
		return nil, errors.New("dice source is required")
	}

	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = src.IntN(sides) + 1
	}

	return NewResult(rolls, sides, bonus)
}

// NewResult builds a result from rolls that were already made.
func NewResult(rolls []int, sides, bonus int) (*RollResult, error) {
	if len(rolls) < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	rawTotal := 0
	for _, roll := range rolls {
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rawTotal += roll
	}

	result := &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    len(rolls),
		Sides:    sides,
		RawTotal: rawTotal,
	}

	// Natural 20 / natural 1 on a single d20
	if len(rolls) == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	if r.Bonus == 0 {
		return fmt.Sprintf("%dd%d %s = **%d**", r.Count, r.Sides, compact, r.Total)
	}
	return fmt.Sprintf("%dd%d%+d %s = **%d**", r.Count, r.Sides, r.Bonus, compact, r.Total)
}
