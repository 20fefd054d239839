package skillcheck_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/dnd-character-sheet/internal/dice"
	mockdice "github.com/KirkDiggler/dnd-character-sheet/internal/dice/mock"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/skillcheck"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SkillCheckTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *mockdice.MockRoller
	service    skillcheck.Service
}

func (s *SkillCheckTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = mockdice.NewMockRoller(s.ctrl)
	s.service = skillcheck.NewService(&skillcheck.ServiceConfig{
		Roller: s.mockRoller,
	})
}

func (s *SkillCheckTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSkillCheckTestSuite(t *testing.T) {
	suite.Run(t, new(SkillCheckTestSuite))
}

// characterWithSkillTotal spreads total across two skills
func characterWithSkillTotal(total int) *character.Character {
	return &character.Character{
		Skills: []character.Skill{
			{Name: "Stealth", AttributeModifier: "Dexterity", Value: total - 1},
			{Name: "Arcana", AttributeModifier: "Intelligence", Value: 1},
		},
	}
}

func (s *SkillCheckTestSuite) expectRoll(natural int) {
	result, err := dice.NewResult([]int{natural}, 20, 0)
	s.Require().NoError(err)
	s.mockRoller.EXPECT().Roll(1, 20, 0).Return(result, nil)
}

func (s *SkillCheckTestSuite) TestEvaluate_MeetsDC() {
	s.expectRoll(15)

	result, err := s.service.Evaluate(characterWithSkillTotal(3), 2, 18)

	s.Require().NoError(err)
	s.True(result.Success, "3+15 >= 18")
	s.Equal(15, result.Roll)
	s.Equal(3, result.Total)
	s.Equal(18, result.Score())
	s.Equal(2, result.CharacterIndex)
	s.Equal(18, result.DifficultyClass)
}

func (s *SkillCheckTestSuite) TestEvaluate_MissesDC() {
	s.expectRoll(15)

	result, err := s.service.Evaluate(characterWithSkillTotal(3), 0, 19)

	s.Require().NoError(err)
	s.False(result.Success, "3+15 < 19")
}

func (s *SkillCheckTestSuite) TestEvaluate_NegativeDCAlwaysSucceeds() {
	s.expectRoll(1)

	result, err := s.service.Evaluate(&character.Character{}, 0, -5)

	s.Require().NoError(err)
	s.True(result.Success)
	s.True(result.IsFumble)
}

func (s *SkillCheckTestSuite) TestEvaluate_NaturalTwentyDoesNotForceSuccess() {
	s.expectRoll(20)

	result, err := s.service.Evaluate(characterWithSkillTotal(1), 0, 40)

	s.Require().NoError(err)
	s.True(result.IsCrit)
	s.False(result.Success)
}

func (s *SkillCheckTestSuite) TestEvaluate_RollerError() {
	s.mockRoller.EXPECT().Roll(1, 20, 0).Return(nil, errors.New("out of dice"))

	result, err := s.service.Evaluate(characterWithSkillTotal(3), 0, 10)

	s.Error(err)
	s.Nil(result)
}

func (s *SkillCheckTestSuite) TestEvaluate_NilCharacter() {
	result, err := s.service.Evaluate(nil, 3, 10)

	s.True(dnderr.IsInvalidArgument(err))
	s.Nil(result)
}

func TestEvaluate_WithFixedSource(t *testing.T) {
	svc := skillcheck.NewService(&skillcheck.ServiceConfig{
		Roller: dice.NewRoller(mockdice.FixedSource{Face: 15}),
	})

	pass, err := svc.Evaluate(characterWithSkillTotal(3), 0, 18)
	if err != nil {
		t.Fatal(err)
	}
	if !pass.Success {
		t.Errorf("expected success against DC 18, got %+v", pass)
	}

	fail, err := svc.Evaluate(characterWithSkillTotal(3), 0, 19)
	if err != nil {
		t.Fatal(err)
	}
	if fail.Success {
		t.Errorf("expected failure against DC 19, got %+v", fail)
	}
}

func TestNewService_RequiresRoller(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic without roller")
		}
	}()

	skillcheck.NewService(&skillcheck.ServiceConfig{})
}
