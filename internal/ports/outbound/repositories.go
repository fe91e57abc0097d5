// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	// Create assigns the recipe its ID and timestamps
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*recipe.Recipe, error)

	// FindAll returns every recipe, newest first
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
	// Search matches query case-insensitively against title or description
	Search(ctx context.Context, query string) ([]*recipe.Recipe, error)
}

// MealPlanRepository defines the interface for meal plan persistence.
// Plans are stored together with their slots.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *mealplan.MealPlan) error
	// Update replaces the plan's fields and its complete set of slots
	Update(ctx context.Context, plan *mealplan.MealPlan) error
	// Delete removes the plan and all of its slots
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*mealplan.MealPlan, error)
	FindAll(ctx context.Context) ([]*mealplan.MealPlan, error)
	// FindCurrent returns the newest plan whose date range covers day
	FindCurrent(ctx context.Context, day time.Time) (*mealplan.MealPlan, error)
}

// MealSlotRepository gives direct access to individual slots
type MealSlotRepository interface {
	FindByID(ctx context.Context, id uint) (*mealplan.MealSlot, error)
	FindByMealPlan(ctx context.Context, planID uint) ([]mealplan.MealSlot, error)
}

// PreferencesRepository stores the single preferences record
type PreferencesRepository interface {
	// Get returns the stored preferences, creating the default record first
	// if none exists
	Get(ctx context.Context) (*preferences.UserPreferences, error)
	// Update overwrites the single record
	Update(ctx context.Context, prefs *preferences.UserPreferences) error
}

// Repositories exposes the repositories bound to one unit of work
type Repositories interface {
	Recipes() RecipeRepository
	MealPlans() MealPlanRepository
	MealSlots() MealSlotRepository
	Preferences() PreferencesRepository
}

// UnitOfWork runs fn inside a scoped session. The session commits when fn
// returns nil and rolls back when fn returns an error or panics; the error
// or panic is passed on to the caller.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// DraftStore keeps unsaved recipe suggestions for a limited time
type DraftStore interface {
	// Save stores the suggestion and returns its draft ID
	Save(ctx context.Context, suggestion recipe.RecipeSuggestion) (string, error)
	Get(ctx context.Context, id string) (*recipe.RecipeSuggestion, error)
	Delete(ctx context.Context, id string) error
}
