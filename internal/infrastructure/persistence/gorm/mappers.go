package gorm

import (
	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// RecipeToModel converts a domain recipe to its GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	ingredients := make(IngredientList, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, IngredientRecord{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Notes:    ing.Notes,
		})
	}
	tags := make(StringSlice, 0, len(r.DietaryTags))
	for _, tag := range r.DietaryTags {
		tags = append(tags, string(tag))
	}

	return &RecipeModel{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Ingredients:     ingredients,
		Instructions:    append(StringSlice{}, r.Instructions...),
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Servings:        r.Servings,
		DietaryTags:     tags,
		Cuisine:         r.Cuisine,
		Difficulty:      r.Difficulty,
		Tips:            r.Tips,
		Rationale:       r.Rationale,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// RecipeFromModel converts a GORM model back to a domain recipe. Stored
// tags outside the known set are skipped.
func RecipeFromModel(m *RecipeModel) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, 0, len(m.Ingredients))
	for _, rec := range m.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{
			Name:     rec.Name,
			Quantity: rec.Quantity,
			Unit:     rec.Unit,
			Notes:    rec.Notes,
		})
	}

	return &recipe.Recipe{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Ingredients:     ingredients,
		Instructions:    append([]string{}, m.Instructions...),
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
		Servings:        m.Servings,
		DietaryTags:     recipe.KnownDietaryTags(m.DietaryTags),
		Cuisine:         m.Cuisine,
		Difficulty:      m.Difficulty,
		Tips:            m.Tips,
		Rationale:       m.Rationale,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// MealPlanToModel converts a domain meal plan, slots included
func MealPlanToModel(p *mealplan.MealPlan) *MealPlanModel {
	meals := make([]MealSlotModel, 0, len(p.Meals))
	for _, slot := range p.Meals {
		meals = append(meals, *MealSlotToModel(p.ID, slot))
	}
	return &MealPlanModel{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: mealplan.DateOf(p.StartDate),
		EndDate:   mealplan.DateOf(p.EndDate),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Meals:     meals,
	}
}

// MealSlotToModel converts a domain slot belonging to plan planID
func MealSlotToModel(planID uint, s mealplan.MealSlot) *MealSlotModel {
	return &MealSlotModel{
		ID:          s.ID,
		MealPlanID:  planID,
		Date:        mealplan.DateOf(s.Date),
		MealType:    string(s.MealType),
		RecipeID:    s.RecipeID,
		RecipeTitle: s.RecipeTitle,
		Notes:       s.Notes,
	}
}

// MealPlanFromModel converts a GORM model, slots included
func MealPlanFromModel(m *MealPlanModel) *mealplan.MealPlan {
	meals := make([]mealplan.MealSlot, 0, len(m.Meals))
	for i := range m.Meals {
		meals = append(meals, MealSlotFromModel(&m.Meals[i]))
	}
	return &mealplan.MealPlan{
		ID:        m.ID,
		Name:      m.Name,
		StartDate: mealplan.DateOf(m.StartDate),
		EndDate:   mealplan.DateOf(m.EndDate),
		Meals:     meals,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MealSlotFromModel converts a GORM slot model
func MealSlotFromModel(m *MealSlotModel) mealplan.MealSlot {
	return mealplan.MealSlot{
		ID:          m.ID,
		Date:        mealplan.DateOf(m.Date),
		MealType:    mealplan.MealType(m.MealType),
		RecipeID:    m.RecipeID,
		RecipeTitle: m.RecipeTitle,
		Notes:       m.Notes,
	}
}

// PreferencesToModel converts preferences into the singleton row
func PreferencesToModel(p *preferences.UserPreferences) *UserPreferencesModel {
	return &UserPreferencesModel{
		ID:                  preferences.SingletonID,
		DietaryRestrictions: append(StringSlice{}, p.DietaryRestrictions...),
		Allergies:           append(StringSlice{}, p.Allergies...),
		DislikedIngredients: append(StringSlice{}, p.DislikedIngredients...),
		FavoriteCuisines:    append(StringSlice{}, p.FavoriteCuisines...),
		SkillLevel:          string(p.SkillLevel),
		ServingSize:         p.ServingSize,
		MaxCookTimeMinutes:  p.MaxCookTimeMinutes,
		PreferQuickMeals:    p.PreferQuickMeals,
		BudgetConscious:     p.BudgetConscious,
		UpdatedAt:           p.UpdatedAt,
	}
}

// PreferencesFromModel converts the singleton row
func PreferencesFromModel(m *UserPreferencesModel) *preferences.UserPreferences {
	p := &preferences.UserPreferences{
		DietaryRestrictions: append([]string{}, m.DietaryRestrictions...),
		Allergies:           append([]string{}, m.Allergies...),
		DislikedIngredients: append([]string{}, m.DislikedIngredients...),
		FavoriteCuisines:    append([]string{}, m.FavoriteCuisines...),
		SkillLevel:          preferences.SkillLevel(m.SkillLevel),
		ServingSize:         m.ServingSize,
		MaxCookTimeMinutes:  m.MaxCookTimeMinutes,
		PreferQuickMeals:    m.PreferQuickMeals,
		BudgetConscious:     m.BudgetConscious,
		UpdatedAt:           m.UpdatedAt,
	}
	return p
}
