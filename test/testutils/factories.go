// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Ingredient creates a random valid ingredient
func (f *RecipeFactory) Ingredient() recipe.Ingredient {
	return recipe.Ingredient{
		Name:     f.faker.Vegetable(),
		Quantity: float64(f.faker.Number(1, 8)) / 2,
		Unit:     f.faker.RandomString([]string{"cup", "tbsp", "tsp", "g", "lb", ""}),
	}
}

// Ingredients creates n random ingredients
func (f *RecipeFactory) Ingredients(n int) []recipe.Ingredient {
	out := make([]recipe.Ingredient, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.Ingredient())
	}
	return out
}

// Instructions creates n numbered-looking steps
func (f *RecipeFactory) Instructions(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s the %s", f.faker.Verb(), f.faker.Vegetable()))
	}
	return out
}

// Suggestion creates a random valid recipe suggestion
func (f *RecipeFactory) Suggestion() recipe.RecipeSuggestion {
	prep, cook := f.faker.Number(5, 30), f.faker.Number(10, 90)
	return recipe.RecipeSuggestion{
		Title:           f.faker.Dinner(),
		Description:     f.faker.Sentence(10),
		Ingredients:     f.Ingredients(f.faker.Number(2, 6)),
		Instructions:    f.Instructions(f.faker.Number(2, 5)),
		PrepTimeMinutes: &prep,
		CookTimeMinutes: &cook,
		Servings:        f.faker.Number(1, 8),
		DietaryTags:     []string{string(recipe.DietaryTagVegetarian)},
		Cuisine:         f.faker.RandomString([]string{"Italian", "Thai", "Mexican", "Indian"}),
		Difficulty:      f.faker.RandomString([]string{"easy", "medium", "hard"}),
		Tips:            f.faker.Sentence(6),
		Rationale:       f.faker.Sentence(8),
	}
}

// Recipe creates a random valid unsaved recipe
func (f *RecipeFactory) Recipe() *recipe.Recipe {
	return recipe.FromSuggestion(f.Suggestion())
}

// MealPlanFactory provides methods to create test meal plans
type MealPlanFactory struct {
	faker *gofakeit.Faker
}

// NewMealPlanFactory creates a new meal plan factory with seeded faker
func NewMealPlanFactory(seed int64) *MealPlanFactory {
	return &MealPlanFactory{faker: gofakeit.New(seed)}
}

// Plan creates an unsaved plan of days days starting at start, with a
// dinner on every day
func (f *MealPlanFactory) Plan(start time.Time, days int) *mealplan.MealPlan {
	start = mealplan.DateOf(start)
	plan := &mealplan.MealPlan{
		Name:      "Week of " + mealplan.FormatDate(start),
		StartDate: start,
		EndDate:   mealplan.EndDateFor(start, days),
		Notes:     f.faker.Sentence(6),
	}
	for i := 0; i < days; i++ {
		plan.Meals = append(plan.Meals, mealplan.MealSlot{
			Date:        start.AddDate(0, 0, i),
			MealType:    mealplan.MealTypeDinner,
			RecipeTitle: f.faker.Dinner(),
		})
	}
	return plan
}

// ShoppingList creates n random shopping list items
func (f *MealPlanFactory) ShoppingList(n int) []mealplan.ShoppingListItem {
	out := make([]mealplan.ShoppingListItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, mealplan.ShoppingListItem{
			Name:     f.faker.Fruit(),
			Quantity: float64(f.faker.Number(1, 5)),
			Unit:     "pcs",
			Category: "produce",
		})
	}
	return out
}

// Preferences creates non-default preferences
func Preferences() preferences.UserPreferences {
	maxCook := 30
	p := preferences.Default()
	p.DietaryRestrictions = []string{"vegetarian"}
	p.Allergies = []string{"peanuts"}
	p.DislikedIngredients = []string{"cilantro"}
	p.FavoriteCuisines = []string{"Italian", "Thai"}
	p.SkillLevel = preferences.SkillBeginner
	p.ServingSize = 2
	p.MaxCookTimeMinutes = &maxCook
	p.PreferQuickMeals = true
	return p
}
