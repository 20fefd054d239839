package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
)

// Repository stores one ordered character collection per owner. The
// collection is always written as a whole.
type Repository interface {
	// List returns the owner's collection, empty when nothing was stored
	List(ctx context.Context, owner string) ([]*character.Character, error)

	// Replace overwrites the owner's collection
	Replace(ctx context.Context, owner string, chars []*character.Character) error
}
