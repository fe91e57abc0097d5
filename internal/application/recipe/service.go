// Package recipe provides the application layer for the recipe library:
// saving suggestions, keeping drafts, and managing saved recipes.
package recipe

import (
	"context"

	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	"github.com/chefwise/chefwise/pkg/errors"
)

// LibraryService implements the recipe library use cases
type LibraryService struct {
	uow    outbound.UnitOfWork
	drafts outbound.DraftStore
	logger *zap.Logger
}

var _ inbound.RecipeLibrary = (*LibraryService)(nil)

// NewLibraryService creates a new recipe library service
func NewLibraryService(uow outbound.UnitOfWork, drafts outbound.DraftStore, logger *zap.Logger) *LibraryService {
	return &LibraryService{
		uow:    uow,
		drafts: drafts,
		logger: logger.Named("recipe-library"),
	}
}

// SaveSuggestion persists a suggestion as a recipe. Dietary tags outside
// the known set are dropped.
func (s *LibraryService) SaveSuggestion(ctx context.Context, suggestion recipe.RecipeSuggestion) (*recipe.Recipe, error) {
	if err := suggestion.Validate(); err != nil {
		return nil, err
	}

	r := recipe.FromSuggestion(suggestion)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		return repos.Recipes().Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	if dropped := len(suggestion.DietaryTags) - len(r.DietaryTags); dropped > 0 {
		s.logger.Debug("Dropped unknown dietary tags",
			zap.Uint("recipe_id", r.ID),
			zap.Strings("tags", suggestion.DietaryTags),
		)
	}
	s.logger.Info("Recipe saved",
		zap.Uint("recipe_id", r.ID),
		zap.String("title", r.Title),
	)
	return r, nil
}

// StashSuggestions stores each suggestion as a draft
func (s *LibraryService) StashSuggestions(ctx context.Context, suggestions []recipe.RecipeSuggestion) ([]string, error) {
	ids := make([]string, 0, len(suggestions))
	for _, suggestion := range suggestions {
		id, err := s.drafts.Save(ctx, suggestion)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	s.logger.Debug("Suggestions stashed", zap.Strings("draft_ids", ids))
	return ids, nil
}

// GetDraft returns a stashed suggestion
func (s *LibraryService) GetDraft(ctx context.Context, draftID string) (*recipe.RecipeSuggestion, error) {
	return s.drafts.Get(ctx, draftID)
}

// SaveDraft saves a stashed suggestion and removes the draft
func (s *LibraryService) SaveDraft(ctx context.Context, draftID string) (*recipe.Recipe, error) {
	suggestion, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	saved, err := s.SaveSuggestion(ctx, *suggestion)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, draftID); err != nil {
		s.logger.Warn("Failed to discard saved draft",
			zap.String("draft_id", draftID),
			zap.Error(err),
		)
	}
	return saved, nil
}

// GetRecipe retrieves a saved recipe
func (s *LibraryService) GetRecipe(ctx context.Context, id uint) (*recipe.Recipe, error) {
	var found *recipe.Recipe
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		found, err = repos.Recipes().FindByID(ctx, id)
		return err
	})
	return found, err
}

// ListRecipes returns every saved recipe, newest first
func (s *LibraryService) ListRecipes(ctx context.Context) ([]*recipe.Recipe, error) {
	var recipes []*recipe.Recipe
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		recipes, err = repos.Recipes().FindAll(ctx)
		return err
	})
	return recipes, err
}

// SearchRecipes matches query against titles and descriptions
func (s *LibraryService) SearchRecipes(ctx context.Context, query string) ([]*recipe.Recipe, error) {
	var recipes []*recipe.Recipe
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		recipes, err = repos.Recipes().Search(ctx, query)
		return err
	})
	return recipes, err
}

// UpdateRecipe overwrites a saved recipe
func (s *LibraryService) UpdateRecipe(ctx context.Context, r *recipe.Recipe) (*recipe.Recipe, error) {
	if r.ID == 0 {
		return nil, errors.NewValidationError("recipe ID is required").WithCause(recipe.ErrMissingID)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		return repos.Recipes().Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Recipe updated", zap.Uint("recipe_id", r.ID))
	return r, nil
}

// DeleteRecipe removes a saved recipe
func (s *LibraryService) DeleteRecipe(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		return repos.Recipes().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Recipe deleted", zap.Uint("recipe_id", id))
	return nil
}
