package skillcheck

//go:generate mockgen -destination=mock/mock_service.go -package=mockskillcheck -source=service.go

import (
	"github.com/KirkDiggler/dnd-character-sheet/internal/dice"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
)

// DieSides is the die a skill check is rolled on.
const DieSides = 20

// Result is the outcome of one skill check.
type Result struct {
	// CharacterIndex is the position of the character that rolled
	CharacterIndex  int
	Roll            int
	Total           int // summed skill values, without the roll
	DifficultyClass int
	Success         bool

	// IsCrit and IsFumble flag a natural 20 or 1. They do not change Success.
	IsCrit   bool
	IsFumble bool
}

// Score is the number compared against the difficulty class.
func (r *Result) Score() int {
	return r.Total + r.Roll
}

// Service evaluates skill checks
type Service interface {
	// Evaluate rolls a d20 for the character at index and compares
	// roll + summed skill values against dc. dc is not validated.
	Evaluate(char *character.Character, index int, dc int) (*Result, error)
}

type service struct {
	roller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller dice.Roller // Required
}

// NewService creates a new skill check service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	return &service{
		roller: cfg.Roller,
	}
}

// Evaluate implements Service.Evaluate
func (s *service) Evaluate(char *character.Character, index int, dc int) (*Result, error) {
	if char == nil {
		return nil, dnderr.InvalidArgument("character is required").
			WithMeta("index", index)
	}

	roll, err := s.roller.Roll(1, DieSides, 0)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll skill check").
			WithMeta("index", index)
	}
	if len(roll.Rolls) != 1 {
		return nil, dnderr.Internalf("expected one d%d, got %d rolls", DieSides, len(roll.Rolls))
	}

	total := char.TotalSkill()
	natural := roll.Rolls[0]

	return &Result{
		CharacterIndex:  index,
		Roll:            natural,
		Total:           total,
		DifficultyClass: dc,
		Success:         total+natural >= dc,
		IsCrit:          roll.IsCrit,
		IsFumble:        roll.IsFumble,
	}, nil
}
