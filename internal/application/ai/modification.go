package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	"github.com/chefwise/chefwise/pkg/errors"
)

// ModificationTypeScaling labels scale requests sent to the model
const ModificationTypeScaling = "scaling"

// RecipeModificationService adapts recipes: dietary changes, scaling and
// ingredient substitutions.
type RecipeModificationService struct {
	client outbound.ModelClient
	mapper replyMapper
	logger *zap.Logger
}

var _ inbound.RecipeModifier = (*RecipeModificationService)(nil)

// NewRecipeModificationService creates a new recipe modification service
func NewRecipeModificationService(client outbound.ModelClient, logger *zap.Logger) *RecipeModificationService {
	named := logger.Named("recipe-modification")
	return &RecipeModificationService{
		client: client,
		mapper: replyMapper{logger: named},
		logger: named,
	}
}

// ModifyRecipe asks the model to rewrite a recipe
func (s *RecipeModificationService) ModifyRecipe(ctx context.Context, cmd inbound.ModifyRecipeCommand) (*recipe.RecipeSuggestion, error) {
	userPrompt := RenderRecipeModificationPrompt(
		cmd.Title,
		cmd.Ingredients,
		cmd.Instructions,
		cmd.Servings,
		cmd.ModificationType,
		cmd.ModificationDetails,
	)

	s.logger.Info("Modifying recipe",
		zap.String("title", cmd.Title),
		zap.String("modification_type", cmd.ModificationType),
	)

	reply, err := s.client.ChatCompletion(ctx, RecipeModificationSystemPrompt, userPrompt, tierOption(cmd.UseComplexModel)...)
	if err != nil {
		return nil, err
	}

	modified, err := s.mapper.modification(reply, cmd.Title, cmd.Servings)
	if err != nil {
		s.logger.Warn("Modified recipe is incomplete", zap.Error(err))
		return nil, errors.NewResponseFormatError("modified recipe is incomplete", err)
	}
	return modified, nil
}

// ScaleRecipe asks the model to rework a recipe for a new serving count.
// Quantities are recomputed by the model, not here.
func (s *RecipeModificationService) ScaleRecipe(ctx context.Context, cmd inbound.ScaleRecipeCommand) (*recipe.RecipeSuggestion, error) {
	return s.ModifyRecipe(ctx, inbound.ModifyRecipeCommand{
		Title:               cmd.Title,
		Ingredients:         cmd.Ingredients,
		Instructions:        cmd.Instructions,
		Servings:            cmd.OriginalServings,
		ModificationType:    ModificationTypeScaling,
		ModificationDetails: ScaleDetails(cmd.OriginalServings, cmd.NewServings),
		UseComplexModel:     cmd.UseComplexModel,
	})
}

// SuggestSubstitution asks for replacements of one ingredient and returns
// the reply unchanged
func (s *RecipeModificationService) SuggestSubstitution(ctx context.Context, cmd inbound.SubstitutionCommand) (ai.Reply, error) {
	reason := cmd.Reason
	if reason == "" {
		reason = inbound.ReasonPreference
	}

	s.logger.Info("Suggesting substitution",
		zap.String("ingredient", cmd.Ingredient),
		zap.String("reason", string(reason)),
	)

	userPrompt := RenderSubstitutionPrompt(cmd.Ingredient, cmd.RecipeContext, string(reason))
	return s.client.ChatCompletion(ctx, RecipeModificationSystemPrompt, userPrompt, tierOption(cmd.UseComplexModel)...)
}
