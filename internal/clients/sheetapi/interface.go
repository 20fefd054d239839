package sheetapi

//go:generate mockgen -destination=mock/mock_client.go -package=mocksheetapi . Client

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
)

// Client talks to the character endpoint. Both calls move the whole
// collection; there is no per-character access.
type Client interface {
	// Fetch reads the stored collection
	Fetch(ctx context.Context) ([]*character.Character, error)

	// Replace overwrites the stored collection with chars
	Replace(ctx context.Context, chars []*character.Character) error
}

// Envelope is the shape of a GET response. Body is kept raw so a missing
// body can be told apart from a null one.
type Envelope struct {
	StatusCode int             `json:"statusCode,omitempty"`
	Body       json.RawMessage `json:"body"`
}
