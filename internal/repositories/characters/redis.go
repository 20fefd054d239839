package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/redis/go-redis/v9"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider // Optional, defaults to wall clock UTC
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = realTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

// NewRedis creates a new Redis-backed character repository with defaults
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *redisRepo) charactersKey(owner string) string {
	return fmt.Sprintf("owner:%s:characters", owner)
}

func (r *redisRepo) updatedAtKey(owner string) string {
	return fmt.Sprintf("owner:%s:characters:updated_at", owner)
}

// List retrieves the owner's collection
func (r *redisRepo) List(ctx context.Context, owner string) ([]*character.Character, error) {
	if owner == "" {
		return nil, dnderr.InvalidArgument("owner is required")
	}

	data, err := r.client.Get(ctx, r.charactersKey(owner)).Result()
	if errors.Is(err, redis.Nil) {
		return []*character.Character{}, nil
	}
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get characters").
			WithMeta("owner", owner)
	}

	var chars []*character.Character
	if err := json.Unmarshal([]byte(data), &chars); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to unmarshal characters").
			WithMeta("owner", owner)
	}
	if chars == nil {
		chars = []*character.Character{}
	}

	return chars, nil
}

// Replace writes the collection and its timestamp in one pipeline
func (r *redisRepo) Replace(ctx context.Context, owner string, chars []*character.Character) error {
	if owner == "" {
		return dnderr.InvalidArgument("owner is required")
	}

	for i, char := range chars {
		if char == nil {
			return dnderr.InvalidArgumentf("character %d is null", i).WithMeta("index", i)
		}
	}

	if chars == nil {
		chars = []*character.Character{}
	}

	data, err := json.Marshal(chars)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal characters")
	}

	now := r.timeProvider.Now()

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.charactersKey(owner), string(data), 0)
	pipe.Set(ctx, r.updatedAtKey(owner), now.Format(time.RFC3339Nano), 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to save characters").
			WithMeta("owner", owner).
			WithMeta("count", len(chars))
	}

	return nil
}
