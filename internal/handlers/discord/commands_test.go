package discord_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	mocksheetapi "github.com/KirkDiggler/dnd-character-sheet/internal/clients/sheetapi/mock"
	"github.com/KirkDiggler/dnd-character-sheet/internal/dice"
	mockdice "github.com/KirkDiggler/dnd-character-sheet/internal/dice/mock"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-character-sheet/internal/handlers/discord"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet"
	mocksheet "github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet/mock"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/skillcheck"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CommandsTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockClient *mocksheetapi.MockClient
	service    sheet.Service
	commands   *discord.Commands
}

func (s *CommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = mocksheetapi.NewMockClient(s.ctrl)

	logger, _ := test.NewNullLogger()
	s.service = sheet.NewService(&sheet.ServiceConfig{
		Client: s.mockClient,
		SkillCheck: skillcheck.NewService(&skillcheck.ServiceConfig{
			Roller: dice.NewRoller(mockdice.FixedSource{Face: 15}),
		}),
		Notifier: &sheet.LogNotifier{Log: logger},
		Logger:   logger,
	})
	s.commands = discord.NewCommands(s.service, rulebook.DefaultCatalog())
}

func (s *CommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func (s *CommandsTestSuite) TestList_Empty() {
	s.Contains(s.commands.List(), "No characters yet")
}

func (s *CommandsTestSuite) TestAddAndList() {
	s.Equal("✅ Added Character #1 at position 1", s.commands.Add())
	s.Equal("✅ Added Character #2 at position 2", s.commands.Add())

	list := s.commands.List()
	s.Contains(list, "**Characters** (2)")
	s.Contains(list, "▶ 1. Character #1 (skills 0)")
	s.Contains(list, "  2. Character #2 (skills 0)")
}

func (s *CommandsTestSuite) TestRename() {
	s.commands.Add()

	msg, err := s.commands.Rename(1, "  Zorg ")
	s.Require().NoError(err)
	s.Equal("✏️ Character #1 is now Zorg", msg)

	_, err = s.commands.Rename(1, "   ")
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.commands.Rename(2, "Mira")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *CommandsTestSuite) TestSetSkill_ClampsAndTotals() {
	s.commands.Add()

	msg, err := s.commands.SetSkill(1, "Stealth", 25)
	s.Require().NoError(err)
	s.Equal("✅ Character #1: Stealth set to 20 (skill total 20)", msg)

	msg, err = s.commands.SetSkill(1, "Arcana", -3)
	s.Require().NoError(err)
	s.Contains(msg, "Arcana set to 0")

	msg, err = s.commands.SetSkill(1, "Perception", 4)
	s.Require().NoError(err)
	s.Contains(msg, "(skill total 24)")

	_, err = s.commands.SetSkill(1, "Juggling", 4)
	s.True(dnderr.IsInvalidArgument(err))

	msg, err = s.commands.SetSkill(1, "sleight of hand", 2)
	s.Require().NoError(err)
	s.Equal("✅ Character #1: Sleight of Hand set to 2 (skill total 26)", msg)
}

func (s *CommandsTestSuite) TestSetAttribute() {
	s.commands.Add()

	msg, err := s.commands.SetAttribute(1, "Dexterity", 14)
	s.Require().NoError(err)
	s.Equal("✅ Character #1: Dexterity set to 14", msg)

	char, err := s.service.Snapshot().Character(0)
	s.Require().NoError(err)
	dex, ok := char.Attribute("Dexterity")
	s.Require().True(ok)
	s.Equal(14, dex.Value)
	s.Zero(char.TotalSkill())

	_, err = s.commands.SetAttribute(0, "Dexterity", 14)
	s.True(dnderr.IsInvalidArgument(err))

	msg, err = s.commands.SetAttribute(1, "wisdom", 9)
	s.Require().NoError(err)
	s.Equal("✅ Character #1: Wisdom set to 9", msg)

	_, err = s.commands.SetAttribute(1, "Luck", 9)
	s.True(dnderr.IsInvalidArgument(err))
}

// interleavingService runs another command right after the first snapshot
// is taken, before the caller writes anything back.
type interleavingService struct {
	sheet.Service
	fired  bool
	during func()
}

func (i *interleavingService) Snapshot() *sheet.State {
	state := i.Service.Snapshot()
	if !i.fired {
		i.fired = true
		i.during()
	}
	return state
}

func (s *CommandsTestSuite) TestSetSkill_InterleavedEditsKeepBoth() {
	s.commands.Add()

	wrapped := &interleavingService{Service: s.service}
	commands := discord.NewCommands(wrapped, rulebook.DefaultCatalog())
	wrapped.during = func() {
		_, err := commands.SetSkill(1, "Perception", 7)
		s.Require().NoError(err)
	}

	msg, err := commands.SetSkill(1, "Stealth", 5)
	s.Require().NoError(err)
	s.Contains(msg, "(skill total 12)")

	char, err := s.service.Snapshot().Character(0)
	s.Require().NoError(err)
	perception, _ := char.Skill("Perception")
	stealth, _ := char.Skill("Stealth")
	s.Equal(7, perception.Value)
	s.Equal(5, stealth.Value)
	s.Equal(12, char.TotalSkill())
}

func (s *CommandsTestSuite) TestSetAttribute_ConcurrentEditsAllLand() {
	s.commands.Add()

	cat := rulebook.DefaultCatalog()
	var wg sync.WaitGroup
	for i, name := range cat.Attributes {
		wg.Add(1)
		go func(name string, value int) {
			defer wg.Done()
			_, err := s.commands.SetAttribute(1, name, value)
			s.NoError(err)
		}(name, i+1)
	}
	wg.Wait()

	char, err := s.service.Snapshot().Character(0)
	s.Require().NoError(err)
	for i, name := range cat.Attributes {
		attr, ok := char.Attribute(name)
		s.Require().True(ok)
		s.Equal(i+1, attr.Value, name)
	}
}

func (s *CommandsTestSuite) TestShow() {
	s.commands.Add()
	_, err := s.commands.SetSkill(1, "Sleight of Hand", 3)
	s.Require().NoError(err)

	out, err := s.commands.Show(1)
	s.Require().NoError(err)
	s.Contains(out, "**Character #1** (#1)")
	s.Contains(out, "• Strength: 0")
	s.Contains(out, "**Skills** (total 3)")
	s.Contains(out, "• Sleight of Hand (DEX): 3")

	_, err = s.commands.Show(2)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *CommandsTestSuite) TestShow_LegacyName() {
	s.mockClient.EXPECT().Fetch(gomock.Any()).Return([]*character.Character{
		{
			Attributes: []character.Attribute{{Name: "name", Text: "Mira"}, {Name: "Wisdom", Value: 12}},
			Skills:     []character.Skill{},
		},
	}, nil)
	s.Equal("📥 Loaded 1 character(s)", s.commands.Load(context.Background()))

	out, err := s.commands.Show(1)
	s.Require().NoError(err)
	s.Contains(out, "**Mira**")
	s.Contains(out, "• Wisdom: 12")
	s.NotContains(out, "• name")
}

func (s *CommandsTestSuite) TestRoll() {
	s.commands.Add()
	s.commands.Add()
	_, err := s.commands.SetSkill(2, "Athletics", 3)
	s.Require().NoError(err)
	_, err = s.commands.Rename(2, "Zorg")
	s.Require().NoError(err)

	msg, err := s.commands.Select(2)
	s.Require().NoError(err)
	s.Equal("🎯 Rolling for Zorg", msg)

	msg, err = s.commands.Roll(18)
	s.Require().NoError(err)
	s.Equal("🎲 Zorg rolled 15 + 3 = **18** vs DC 18: ✅ Success", msg)

	msg, err = s.commands.Roll(19)
	s.Require().NoError(err)
	s.Equal("🎲 Zorg rolled 15 + 3 = **18** vs DC 19: ❌ Failure", msg)

	_, err = s.commands.Select(3)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *CommandsTestSuite) TestRoll_NoCharacters() {
	_, err := s.commands.Roll(10)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *CommandsTestSuite) TestSaveAndLoadMessages() {
	s.mockClient.EXPECT().Replace(gomock.Any(), gomock.Any()).Return(nil)
	s.Equal("💾 Successfully saved the Characters", s.commands.Save(context.Background()))

	s.mockClient.EXPECT().Replace(gomock.Any(), gomock.Any()).Return(errors.New("502"))
	s.Equal("❌ An error occurred while saving the Characters", s.commands.Save(context.Background()))

	s.mockClient.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("timeout"))
	s.Equal("❌ Something went wrong!", s.commands.Load(context.Background()))
}

func TestCommands_UsesService(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocksheet.NewMockService(ctrl)
	commands := discord.NewCommands(mockService, nil)

	mockService.EXPECT().Snapshot().Return(sheet.NewState([]*character.Character{{Name: "Zorg"}}))
	mockService.EXPECT().Select(0).Return(sheet.NewState([]*character.Character{{Name: "Zorg"}}), nil)

	msg, err := commands.Select(1)
	if err != nil {
		t.Fatal(err)
	}
	if msg != "🎯 Rolling for Zorg" {
		t.Errorf("unexpected message %q", msg)
	}
}
