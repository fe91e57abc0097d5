// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// RecipeSuggester proposes recipes from the ingredients a user has
type RecipeSuggester interface {
	SuggestRecipes(ctx context.Context, cmd SuggestRecipesCommand) ([]recipe.RecipeSuggestion, error)
}

// MealPlanner drafts multi-day meal plans with a shopping list
type MealPlanner interface {
	GenerateMealPlan(ctx context.Context, cmd GenerateMealPlanCommand) (*mealplan.MealPlan, []mealplan.ShoppingListItem, error)
}

// RecipeModifier rewrites existing recipes
type RecipeModifier interface {
	ModifyRecipe(ctx context.Context, cmd ModifyRecipeCommand) (*recipe.RecipeSuggestion, error)
	ScaleRecipe(ctx context.Context, cmd ScaleRecipeCommand) (*recipe.RecipeSuggestion, error)
	// SuggestSubstitution returns the reply as-is; callers read its
	// "substitutions" and "recommendation" keys
	SuggestSubstitution(ctx context.Context, cmd SubstitutionCommand) (ai.Reply, error)
}

// Command objects for operations

const (
	DefaultNumRecipes = 3
	DefaultNumDays    = 7
)

// SuggestRecipesCommand contains the facts for a recipe suggestion.
// NumRecipes is expected in 1..5 and defaults to 3 when zero.
type SuggestRecipesCommand struct {
	Ingredients         []string
	NumRecipes          int
	DietaryRestrictions []string
	MaxCookTimeMinutes  *int
	Preferences         *preferences.UserPreferences
	UseComplexModel     bool
}

// GenerateMealPlanCommand contains the facts for a meal plan.
// NumDays is expected in 1..14 and defaults to 7 when zero; StartDate
// defaults to today and MealTypes to breakfast, lunch and dinner.
type GenerateMealPlanCommand struct {
	NumDays          int
	StartDate        *time.Time
	MealTypes        []mealplan.MealType
	Preferences      *preferences.UserPreferences
	FavoriteCuisines []string
	UseComplexModel  bool
}

// ModifyRecipeCommand describes a recipe and the change wanted
type ModifyRecipeCommand struct {
	Title               string
	Ingredients         []recipe.Ingredient
	Instructions        []string
	Servings            int
	ModificationType    string
	ModificationDetails string
	UseComplexModel     bool
}

// ScaleRecipeCommand describes a recipe and its new serving count
type ScaleRecipeCommand struct {
	Title            string
	Ingredients      []recipe.Ingredient
	Instructions     []string
	OriginalServings int
	NewServings      int
	UseComplexModel  bool
}

// SubstitutionReason says why an ingredient must be replaced. Values other
// than the named ones are passed through as free text.
type SubstitutionReason string

const (
	ReasonPreference         SubstitutionReason = "preference"
	ReasonAllergy            SubstitutionReason = "allergy"
	ReasonUnavailable        SubstitutionReason = "unavailable"
	ReasonDietaryRestriction SubstitutionReason = "dietary_restriction"
	ReasonHealthierOption    SubstitutionReason = "healthier_option"
)

// SubstitutionCommand asks for replacements of one ingredient
type SubstitutionCommand struct {
	Ingredient      string
	RecipeContext   string
	Reason          SubstitutionReason
	UseComplexModel bool
}
