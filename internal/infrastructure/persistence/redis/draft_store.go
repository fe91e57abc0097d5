// Package redis provides a Redis-backed store for recipe suggestion drafts
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/infrastructure/config"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
)

// KeyPrefix namespaces draft keys
const KeyPrefix = "chefwise:draft:"

// DefaultTTL is used when a store is created with a non-positive TTL
const DefaultTTL = 24 * time.Hour

// NewClient creates a Redis client from configuration and checks the
// connection
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr(), err)
	}
	return client, nil
}

// DraftStore keeps drafts as JSON strings with a Redis-side expiry
type DraftStore struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewDraftStore creates a new Redis draft store
func NewDraftStore(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DraftStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("redis-drafts"),
	}
}

var _ outbound.DraftStore = (*DraftStore)(nil)

// Save stores the suggestion under a new ID
func (s *DraftStore) Save(ctx context.Context, suggestion recipe.RecipeSuggestion) (string, error) {
	data, err := json.Marshal(suggestion)
	if err != nil {
		return "", fmt.Errorf("failed to encode draft: %w", err)
	}

	id := uuid.NewString()
	if err := s.client.Set(ctx, KeyPrefix+id, data, s.ttl).Err(); err != nil {
		s.logger.Error("Draft save failed", zap.String("draft_id", id), zap.Error(err))
		return "", err
	}
	return id, nil
}

// Get returns the draft, or a DraftNotFound error once it has expired
func (s *DraftStore) Get(ctx context.Context, id string) (*recipe.RecipeSuggestion, error) {
	data, err := s.client.Get(ctx, KeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewDraftNotFoundError(id)
	}
	if err != nil {
		s.logger.Error("Draft get failed", zap.String("draft_id", id), zap.Error(err))
		return nil, err
	}

	var suggestion recipe.RecipeSuggestion
	if err := json.Unmarshal(data, &suggestion); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", id, err)
	}
	return &suggestion, nil
}

// Delete removes the draft
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, KeyPrefix+id).Err(); err != nil {
		s.logger.Error("Draft delete failed", zap.String("draft_id", id), zap.Error(err))
		return err
	}
	return nil
}
