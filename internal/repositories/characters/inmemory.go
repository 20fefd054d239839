package characters

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string][]*character.Character
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters: make(map[string][]*character.Character),
	}
}

// List returns a copy of the owner's collection
func (r *InMemoryRepository) List(ctx context.Context, owner string) ([]*character.Character, error) {
	if owner == "" {
		return nil, dnderr.InvalidArgument("owner is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.characters[owner]
	if !ok {
		return []*character.Character{}, nil
	}

	return character.CloneAll(stored), nil
}

// Replace stores a copy of chars for the owner
func (r *InMemoryRepository) Replace(ctx context.Context, owner string, chars []*character.Character) error {
	if owner == "" {
		return dnderr.InvalidArgument("owner is required")
	}

	for i, char := range chars {
		if char == nil {
			return dnderr.InvalidArgumentf("character %d is null", i).WithMeta("index", i)
		}
	}

	copied := character.CloneAll(chars)
	if copied == nil {
		copied = []*character.Character{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.characters[owner] = copied
	return nil
}
