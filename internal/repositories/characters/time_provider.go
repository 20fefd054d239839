package characters

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockcharacters github.com/KirkDiggler/dnd-character-sheet/internal/repositories/characters TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
