// Package ai provides the assistant use cases: each one renders a prompt,
// makes a single model call, and maps the reply into domain records.
package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/internal/ports/outbound"
)

// RecipeSuggestionService suggests recipes from available ingredients
type RecipeSuggestionService struct {
	client outbound.ModelClient
	mapper replyMapper
	logger *zap.Logger
}

var _ inbound.RecipeSuggester = (*RecipeSuggestionService)(nil)

// NewRecipeSuggestionService creates a new recipe suggestion service
func NewRecipeSuggestionService(client outbound.ModelClient, logger *zap.Logger) *RecipeSuggestionService {
	named := logger.Named("recipe-suggestion")
	return &RecipeSuggestionService{
		client: client,
		mapper: replyMapper{logger: named},
		logger: named,
	}
}

// SuggestRecipes asks the model for recipes and returns every well-formed
// one; malformed entries in the reply are skipped.
func (s *RecipeSuggestionService) SuggestRecipes(ctx context.Context, cmd inbound.SuggestRecipesCommand) ([]recipe.RecipeSuggestion, error) {
	numRecipes := cmd.NumRecipes
	if numRecipes <= 0 {
		numRecipes = inbound.DefaultNumRecipes
	}

	userPrompt := RenderRecipeSuggestionPrompt(
		numRecipes,
		cmd.Ingredients,
		SuggestionRestrictionsText(cmd.DietaryRestrictions, cmd.Preferences),
		SuggestionPreferencesText(cmd.MaxCookTimeMinutes, cmd.Preferences),
	)

	s.logger.Info("Suggesting recipes",
		zap.Int("ingredients", len(cmd.Ingredients)),
		zap.Int("requested", numRecipes),
	)

	reply, err := s.client.ChatCompletion(ctx, RecipeSuggestionSystemPrompt, userPrompt, tierOption(cmd.UseComplexModel)...)
	if err != nil {
		return nil, err
	}

	suggestions := s.mapper.suggestions(reply)
	s.logger.Info("Recipes suggested",
		zap.Int("requested", numRecipes),
		zap.Int("returned", len(suggestions)),
	)
	return suggestions, nil
}

func tierOption(complex bool) []outbound.CallOption {
	if complex {
		return []outbound.CallOption{outbound.WithComplexModel()}
	}
	return nil
}
