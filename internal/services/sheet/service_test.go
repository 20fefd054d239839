package sheet_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	mocksheetapi "github.com/KirkDiggler/dnd-character-sheet/internal/clients/sheetapi/mock"
	"github.com/KirkDiggler/dnd-character-sheet/internal/dice"
	mockdice "github.com/KirkDiggler/dnd-character-sheet/internal/dice/mock"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet"
	mocksheet "github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet/mock"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/skillcheck"
	mockskillcheck "github.com/KirkDiggler/dnd-character-sheet/internal/services/skillcheck/mock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SheetServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockClient   *mocksheetapi.MockClient
	mockNotifier *mocksheet.MockNotifier
	service      sheet.Service
	ctx          context.Context
}

func (s *SheetServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = mocksheetapi.NewMockClient(s.ctrl)
	s.mockNotifier = mocksheet.NewMockNotifier(s.ctrl)
	s.ctx = context.Background()

	logger, _ := test.NewNullLogger()
	s.service = sheet.NewService(&sheet.ServiceConfig{
		Client: s.mockClient,
		SkillCheck: skillcheck.NewService(&skillcheck.ServiceConfig{
			Roller: dice.NewRoller(mockdice.FixedSource{Face: 15}),
		}),
		Notifier: s.mockNotifier,
		Logger:   logger,
	})
}

func (s *SheetServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSheetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SheetServiceTestSuite))
}

func remoteCharacters() []*character.Character {
	return []*character.Character{
		{
			Name:       "Zorg",
			Attributes: []character.Attribute{{Name: "Strength", Value: 16}},
			Skills:     []character.Skill{{Name: "Athletics", AttributeModifier: "Strength", Value: 3}},
		},
		{
			Attributes: []character.Attribute{{Name: character.NameAttribute, Text: "Mira"}},
			Skills:     []character.Skill{},
		},
	}
}

func (s *SheetServiceTestSuite) TestLoad_ReplacesCollection() {
	s.mockClient.EXPECT().Fetch(s.ctx).Return(remoteCharacters(), nil)

	state, err := s.service.Load(s.ctx)

	s.Require().NoError(err)
	s.Equal(2, state.Len())
	s.Equal("Zorg", state.DisplayName(0))
	s.Equal("Mira", state.DisplayName(1))
	s.Same(state, s.service.Snapshot())
}

func (s *SheetServiceTestSuite) TestLoad_FailureOnFirstLoadLeavesEmpty() {
	fetchErr := dnderr.Unavailable(errors.New("connection refused"), "failed to fetch characters")
	s.mockClient.EXPECT().Fetch(s.ctx).Return(nil, fetchErr)
	s.mockNotifier.EXPECT().Notify(s.ctx, gomock.Any()).Do(func(_ context.Context, notice sheet.Notice) {
		s.Equal(sheet.NoticeError, notice.Level)
		s.Equal(sheet.MessageLoadFailed, notice.Message)
		s.ErrorIs(notice.Err, fetchErr)
	})

	state, err := s.service.Load(s.ctx)

	s.Error(err)
	s.True(dnderr.IsUnavailable(err))
	s.Zero(state.Len())
}

func (s *SheetServiceTestSuite) TestLoad_FailureKeepsCurrentCollection() {
	s.service.Append()
	before := s.service.Append()

	s.mockClient.EXPECT().Fetch(s.ctx).Return(nil, errors.New("boom"))
	s.mockNotifier.EXPECT().Notify(s.ctx, gomock.Any())

	state, err := s.service.Load(s.ctx)

	s.Error(err)
	s.Same(before, state)
	s.Equal(2, s.service.Snapshot().Len())
}

func (s *SheetServiceTestSuite) TestSave_SendsCollectionAndNotifies() {
	s.mockClient.EXPECT().Fetch(s.ctx).Return(remoteCharacters(), nil)
	_, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	s.mockClient.EXPECT().Replace(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, chars []*character.Character) error {
			s.Equal(remoteCharacters(), chars)
			return nil
		})
	s.mockNotifier.EXPECT().Notify(s.ctx, sheet.Notice{Level: sheet.NoticeInfo, Message: sheet.MessageSaved})

	s.NoError(s.service.Save(s.ctx))
}

func (s *SheetServiceTestSuite) TestSave_FailureKeepsState() {
	before := s.service.Append()
	saveErr := errors.New("502")

	s.mockClient.EXPECT().Replace(s.ctx, gomock.Any()).Return(saveErr)
	s.mockNotifier.EXPECT().Notify(s.ctx, gomock.Any()).Do(func(_ context.Context, notice sheet.Notice) {
		s.Equal(sheet.NoticeError, notice.Level)
		s.Equal(sheet.MessageSaveFailed, notice.Message)
	})

	err := s.service.Save(s.ctx)

	s.ErrorIs(err, saveErr)
	s.Same(before, s.service.Snapshot())
}

func (s *SheetServiceTestSuite) TestSave_EmptyCollection() {
	s.mockClient.EXPECT().Replace(s.ctx, gomock.Len(0)).Return(nil)
	s.mockNotifier.EXPECT().Notify(s.ctx, gomock.Any())

	s.NoError(s.service.Save(s.ctx))
}

func (s *SheetServiceTestSuite) TestAppend_AddsZeroedCharacter() {
	catalog := rulebook.DefaultCatalog()

	first := s.service.Append()
	second := s.service.Append()

	s.Equal(1, first.Len())
	s.Equal(2, second.Len())

	char, err := second.Character(1)
	s.Require().NoError(err)
	s.Len(char.Attributes, len(catalog.Attributes))
	s.Len(char.Skills, len(catalog.Skills))
	for _, attr := range char.Attributes {
		s.Zero(attr.Value, attr.Name)
	}
	s.Equal("Character #2", second.DisplayName(1))
}

func (s *SheetServiceTestSuite) TestUpdate_SkillsOnly() {
	s.service.Append()
	before := s.service.Snapshot()
	original, _ := before.Character(0)

	skills, ok := original.WithSkillValue("Stealth", 5)
	s.Require().True(ok)

	state, err := s.service.Update(0, &character.Patch{Skills: skills})
	s.Require().NoError(err)

	updated, _ := state.Character(0)
	s.Equal(5, updated.TotalSkill())
	s.Equal(original.Attributes, updated.Attributes)
	s.Equal(original.Name, updated.Name)

	unchanged, _ := before.Character(0)
	s.Zero(unchanged.TotalSkill())
}

func (s *SheetServiceTestSuite) TestUpdate_OutOfRangeRejected() {
	before := s.service.Append()

	state, err := s.service.Update(3, &character.Patch{Skills: []character.Skill{}})

	s.True(dnderr.IsInvalidArgument(err))
	s.Same(before, state)
	s.Same(before, s.service.Snapshot())
}

func (s *SheetServiceTestSuite) TestEdit_PatchesCurrentCharacter() {
	s.service.Append()
	_, err := s.service.Update(0, &character.Patch{Skills: []character.Skill{
		{Name: "Stealth", AttributeModifier: "Dexterity", Value: 2},
		{Name: "Arcana", AttributeModifier: "Intelligence", Value: 4},
	}})
	s.Require().NoError(err)

	state, err := s.service.Edit(0, func(char *character.Character) (*character.Patch, error) {
		skills, ok := char.WithSkillValue("Stealth", 5)
		s.Require().True(ok)
		return &character.Patch{Skills: skills}, nil
	})

	s.Require().NoError(err)
	updated, _ := state.Character(0)
	s.Equal(9, updated.TotalSkill())
	s.Same(state, s.service.Snapshot())
}

func (s *SheetServiceTestSuite) TestEdit_Rejected() {
	before := s.service.Append()

	state, err := s.service.Edit(1, func(char *character.Character) (*character.Patch, error) {
		s.Fail("edit func must not run for a missing character")
		return nil, nil
	})
	s.True(dnderr.IsInvalidArgument(err))
	s.Same(before, state)

	state, err = s.service.Edit(0, func(char *character.Character) (*character.Patch, error) {
		return nil, dnderr.InvalidArgument("no such skill")
	})
	s.True(dnderr.IsInvalidArgument(err))
	s.Same(before, state)

	_, err = s.service.Edit(0, nil)
	s.True(dnderr.IsInvalidArgument(err))
	s.Same(before, s.service.Snapshot())
}

func (s *SheetServiceTestSuite) TestConcurrentEdits() {
	s.service.Append()

	skills := rulebook.DefaultCatalog().Skills
	var wg sync.WaitGroup
	for _, skill := range skills {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := s.service.Edit(0, func(char *character.Character) (*character.Patch, error) {
				updated, _ := char.WithSkillValue(name, 1)
				return &character.Patch{Skills: updated}, nil
			})
			s.NoError(err)
		}(skill.Name)
	}
	wg.Wait()

	char, _ := s.service.Snapshot().Character(0)
	s.Equal(len(skills), char.TotalSkill())
}

func (s *SheetServiceTestSuite) TestLoad_ResetsSelectionAndLastCheck() {
	s.mockClient.EXPECT().Fetch(s.ctx).Return(remoteCharacters(), nil).Times(2)
	_, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.Select(1)
	s.Require().NoError(err)
	_, _, err = s.service.SkillCheck(10)
	s.Require().NoError(err)

	state, err := s.service.Load(s.ctx)

	s.Require().NoError(err)
	s.Zero(state.Selected())
	s.Nil(state.LastCheck())
}

func (s *SheetServiceTestSuite) TestSkillCheck_SelectedCharacter() {
	s.mockClient.EXPECT().Fetch(s.ctx).Return(remoteCharacters(), nil)
	_, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	state, result, err := s.service.SkillCheck(18)

	s.Require().NoError(err)
	s.Equal(0, result.CharacterIndex)
	s.True(result.Success, "3+15 >= 18")
	s.Equal(result, state.LastCheck())

	_, result, err = s.service.SkillCheck(19)
	s.Require().NoError(err)
	s.False(result.Success, "3+15 < 19")
}

func (s *SheetServiceTestSuite) TestSkillCheck_AfterSelect() {
	s.mockClient.EXPECT().Fetch(s.ctx).Return(remoteCharacters(), nil)
	_, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.Select(1)
	s.Require().NoError(err)

	_, result, err := s.service.SkillCheck(15)
	s.Require().NoError(err)
	s.Equal(1, result.CharacterIndex)
	s.Equal(0, result.Total)
	s.True(result.Success)

	_, err = s.service.Select(2)
	s.True(dnderr.IsInvalidArgument(err))
	s.Equal(1, s.service.Snapshot().Selected())
}

func (s *SheetServiceTestSuite) TestSkillCheck_EmptyCollection() {
	state, result, err := s.service.SkillCheck(10)

	s.True(dnderr.IsInvalidArgument(err))
	s.Nil(result)
	s.Nil(state.LastCheck())
}

func (s *SheetServiceTestSuite) TestConcurrentAppends() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.service.Append()
		}()
	}
	wg.Wait()

	s.Equal(50, s.service.Snapshot().Len())
}

func TestSheetService_SkillCheckRollerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocksheetapi.NewMockClient(ctrl)
	mockCheck := mockskillcheck.NewMockService(ctrl)

	svc := sheet.NewService(&sheet.ServiceConfig{
		Client:     mockClient,
		SkillCheck: mockCheck,
		Initial:    []*character.Character{{Name: "Zorg"}},
	})

	mockCheck.EXPECT().Evaluate(gomock.Any(), 0, 12).Return(nil, errors.New("dice fell off the table"))

	state, result, err := svc.SkillCheck(12)
	if err == nil {
		t.Fatal("expected error")
	}
	if result != nil || state.LastCheck() != nil {
		t.Errorf("expected no recorded check, got %+v", result)
	}
}

func TestSheetService_LoadThenSaveRoundTrips(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocksheetapi.NewMockClient(ctrl)

	svc := sheet.NewService(&sheet.ServiceConfig{
		Client: mockClient,
		SkillCheck: skillcheck.NewService(&skillcheck.ServiceConfig{
			Roller: dice.NewSeededRoller(7),
		}),
		Notifier: sheet.Notifiers{},
	})

	ctx := context.Background()
	payload := `[
		{"name": "Zorg", "attributes": [{"name": "Strength", "value": 2.5, "note": "belt"}], "skills": [{"name": "Stealth", "attributeModifier": "Dexterity", "value": 1.5, "proficient": true}], "portrait": "zorg.png"},
		{"name": "", "attributes": [{"name": "name", "value": ""}], "skills": []},
		{"attributes": null, "skills": [{"name": "Arcana", "attributeModifier": "Intelligence"}]}
	]`

	var remote []*character.Character
	require.NoError(t, json.Unmarshal([]byte(payload), &remote))

	var saved []byte
	mockClient.EXPECT().Fetch(ctx).Return(remote, nil)
	mockClient.EXPECT().Replace(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, chars []*character.Character) error {
			var err error
			saved, err = json.Marshal(chars)
			return err
		})

	_, err := svc.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Save(ctx))

	assert.JSONEq(t, payload, string(saved))
}

func TestNewService_RequiresDeps(t *testing.T) {
	ctrl := gomock.NewController(t)

	tests := []struct {
		name string
		cfg  *sheet.ServiceConfig
	}{
		{name: "nil config"},
		{name: "missing client", cfg: &sheet.ServiceConfig{SkillCheck: mockskillcheck.NewMockService(ctrl)}},
		{name: "missing skill check", cfg: &sheet.ServiceConfig{Client: mocksheetapi.NewMockClient(ctrl)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			sheet.NewService(tt.cfg)
		})
	}
}
