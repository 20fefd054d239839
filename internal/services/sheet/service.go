package sheet

//go:generate mockgen -destination=mock/mock_service.go -package=mocksheet -source=service.go

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dnd-character-sheet/internal/clients/sheetapi"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/skillcheck"
	"github.com/sirupsen/logrus"
)

// Service owns the editor state and is the only thing that talks to the
// character endpoint. Load and Save are never chained automatically.
type Service interface {
	// Load replaces the collection with the endpoint's. On failure the
	// current collection is kept and a notice is raised.
	Load(ctx context.Context) (*State, error)

	// Save sends the whole collection to the endpoint. Local state is the
	// same afterwards whether or not it worked.
	Save(ctx context.Context) error

	// Append adds a character with every catalog attribute and skill at 0
	Append() *State

	// Update shallow merges patch into the character at index
	Update(index int, patch *character.Patch) (*State, error)

	// Edit builds a patch from the current character at index and merges
	// it in one step, so no other change lands in between
	Edit(index int, edit EditFunc) (*State, error)

	// Select changes the character skill checks are rolled for
	Select(index int) (*State, error)

	// SkillCheck rolls for the selected character against dc
	SkillCheck(dc int) (*State, *skillcheck.Result, error)

	// Snapshot returns the current state
	Snapshot() *State
}

// EditFunc returns the patch for a copy of the character being edited.
type EditFunc func(char *character.Character) (*character.Patch, error)

type service struct {
	client     sheetapi.Client
	skillCheck skillcheck.Service
	catalog    *rulebook.Catalog
	notifier   Notifier
	log        logrus.FieldLogger

	mu    sync.Mutex
	state *State
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Client     sheetapi.Client    // Required
	SkillCheck skillcheck.Service // Required
	Catalog    *rulebook.Catalog  // Optional, defaults to the 5e catalog
	Notifier   Notifier           // Optional, defaults to logging notices
	Logger     logrus.FieldLogger
	Initial    []*character.Character
}

// NewService creates a new sheet service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("sheet service config is required")
	}
	if cfg.Client == nil {
		panic("client is required")
	}
	if cfg.SkillCheck == nil {
		panic("skill check service is required")
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = rulebook.DefaultCatalog()
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = &LogNotifier{Log: log}
	}

	return &service{
		client:     cfg.Client,
		skillCheck: cfg.SkillCheck,
		catalog:    catalog,
		notifier:   notifier,
		log:        log.WithField("component", "sheet"),
		state:      NewState(cfg.Initial),
	}
}

func (s *service) Load(ctx context.Context) (*State, error) {
	chars, err := s.client.Fetch(ctx)
	if err != nil {
		s.log.WithError(err).Warn("Failed to load characters")
		s.notifier.Notify(ctx, Notice{Level: NoticeError, Message: MessageLoadFailed, Err: err})
		return s.Snapshot(), dnderr.Wrap(err, "failed to load characters")
	}

	s.mu.Lock()
	s.state = s.state.WithCharacters(chars)
	next := s.state
	s.mu.Unlock()

	s.log.WithField("count", next.Len()).Info("Loaded characters")
	return next, nil
}

func (s *service) Save(ctx context.Context) error {
	snapshot := s.Snapshot()

	if err := s.client.Replace(ctx, snapshot.characters); err != nil {
		s.log.WithError(err).Warn("Failed to save characters")
		s.notifier.Notify(ctx, Notice{Level: NoticeError, Message: MessageSaveFailed, Err: err})
		return dnderr.Wrap(err, "failed to save characters")
	}

	s.log.WithField("count", snapshot.Len()).Info("Saved characters")
	s.notifier.Notify(ctx, Notice{Level: NoticeInfo, Message: MessageSaved})
	return nil
}

func (s *service) Append() *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Append(character.New(s.catalog))
	return s.state
}

func (s *service) Update(index int, patch *character.Patch) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.Update(index, patch)
	if err != nil {
		return s.state, dnderr.Wrap(err, "failed to update character")
	}

	s.state = next
	return next, nil
}

func (s *service) Edit(index int, edit EditFunc) (*State, error) {
	if edit == nil {
		return s.Snapshot(), dnderr.InvalidArgument("edit func is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	char, err := s.state.Character(index)
	if err != nil {
		return s.state, dnderr.Wrap(err, "failed to edit character")
	}

	patch, err := edit(char)
	if err != nil {
		return s.state, err
	}

	next, err := s.state.Update(index, patch)
	if err != nil {
		return s.state, dnderr.Wrap(err, "failed to edit character")
	}

	s.state = next
	return next, nil
}

func (s *service) Select(index int) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.Select(index)
	if err != nil {
		return s.state, dnderr.Wrap(err, "failed to select character")
	}

	s.state = next
	return next, nil
}

func (s *service) SkillCheck(dc int) (*State, *skillcheck.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.state.selected
	if index >= s.state.Len() {
		return s.state, nil, dnderr.InvalidArgument("no character to roll for").
			WithMeta("index", index)
	}

	result, err := s.skillCheck.Evaluate(s.state.characters[index], index, dc)
	if err != nil {
		return s.state, nil, dnderr.Wrap(err, "failed to evaluate skill check")
	}

	s.state = s.state.WithCheck(result)
	s.log.WithFields(logrus.Fields{
		"index":   index,
		"roll":    result.Roll,
		"total":   result.Total,
		"dc":      dc,
		"success": result.Success,
	}).Debug("Skill check")

	return s.state, result, nil
}

func (s *service) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
