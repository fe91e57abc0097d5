// Package memory provides an in-memory store for recipe suggestion drafts
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	"github.com/chefwise/chefwise/pkg/errors"
)

// DefaultTTL is used when a store is created with a non-positive TTL
const DefaultTTL = 24 * time.Hour

type draftItem struct {
	suggestion recipe.RecipeSuggestion
	expiresAt  time.Time
}

// DraftStore keeps drafts in process memory. Expired drafts are treated as
// missing and are swept on every Save.
type DraftStore struct {
	data  map[string]draftItem
	mutex sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

// Option configures a DraftStore
type Option func(*DraftStore)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *DraftStore) { s.now = now }
}

// NewDraftStore creates a new in-memory draft store
func NewDraftStore(ttl time.Duration, opts ...Option) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &DraftStore{
		data: make(map[string]draftItem),
		ttl:  ttl,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ outbound.DraftStore = (*DraftStore)(nil)

// Save stores a copy of the suggestion under a new ID
func (s *DraftStore) Save(ctx context.Context, suggestion recipe.RecipeSuggestion) (string, error) {
	id := uuid.NewString()
	now := s.now()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, item := range s.data {
		if !now.Before(item.expiresAt) {
			delete(s.data, key)
		}
	}

	s.data[id] = draftItem{
		suggestion: cloneSuggestion(suggestion),
		expiresAt:  now.Add(s.ttl),
	}
	return id, nil
}

// Get returns the draft, or a DraftNotFound error when it is missing or expired
func (s *DraftStore) Get(ctx context.Context, id string) (*recipe.RecipeSuggestion, error) {
	s.mutex.RLock()
	item, exists := s.data[id]
	s.mutex.RUnlock()

	if !exists || !s.now().Before(item.expiresAt) {
		return nil, errors.NewDraftNotFoundError(id)
	}

	suggestion := cloneSuggestion(item.suggestion)
	return &suggestion, nil
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, id)
	return nil
}

// Len returns the number of stored drafts, expired ones included
func (s *DraftStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

func cloneSuggestion(s recipe.RecipeSuggestion) recipe.RecipeSuggestion {
	s.Ingredients = append([]recipe.Ingredient(nil), s.Ingredients...)
	s.Instructions = append([]string(nil), s.Instructions...)
	s.DietaryTags = append([]string(nil), s.DietaryTags...)
	if s.PrepTimeMinutes != nil {
		v := *s.PrepTimeMinutes
		s.PrepTimeMinutes = &v
	}
	if s.CookTimeMinutes != nil {
		v := *s.CookTimeMinutes
		s.CookTimeMinutes = &v
	}
	return s
}
