package inbound

import (
	"context"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// RecipeLibrary manages saved recipes and unsaved suggestion drafts
type RecipeLibrary interface {
	SaveSuggestion(ctx context.Context, suggestion recipe.RecipeSuggestion) (*recipe.Recipe, error)
	// StashSuggestions keeps suggestions as drafts and returns their IDs in order
	StashSuggestions(ctx context.Context, suggestions []recipe.RecipeSuggestion) ([]string, error)
	// SaveDraft saves a stashed suggestion and discards the draft
	SaveDraft(ctx context.Context, draftID string) (*recipe.Recipe, error)
	GetDraft(ctx context.Context, draftID string) (*recipe.RecipeSuggestion, error)

	GetRecipe(ctx context.Context, id uint) (*recipe.Recipe, error)
	ListRecipes(ctx context.Context) ([]*recipe.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]*recipe.Recipe, error)
	UpdateRecipe(ctx context.Context, r *recipe.Recipe) (*recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, id uint) error
}

// MealPlanLibrary manages saved meal plans
type MealPlanLibrary interface {
	SavePlan(ctx context.Context, plan *mealplan.MealPlan) (*mealplan.MealPlan, error)
	GetPlan(ctx context.Context, id uint) (*mealplan.MealPlan, error)
	ListPlans(ctx context.Context) ([]*mealplan.MealPlan, error)
	// CurrentPlan returns the newest plan covering today
	CurrentPlan(ctx context.Context) (*mealplan.MealPlan, error)
	UpdatePlan(ctx context.Context, plan *mealplan.MealPlan) (*mealplan.MealPlan, error)
	DeletePlan(ctx context.Context, id uint) error
	GetSlot(ctx context.Context, id uint) (*mealplan.MealSlot, error)
}

// PreferencesService reads and writes the installation's preferences
type PreferencesService interface {
	GetPreferences(ctx context.Context) (*preferences.UserPreferences, error)
	UpdatePreferences(ctx context.Context, prefs preferences.UserPreferences) (*preferences.UserPreferences, error)
}
