package ai

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// Reply field defaults
const (
	defaultRecipeTitle   = "Untitled Recipe"
	defaultSlotTitle     = "Untitled"
	defaultQuantity      = 1.0
	defaultSlotMealType  = mealplan.MealTypeDinner
	modificationsPreface = "Modifications made: "
)

// replyMapper turns untrusted replies into domain records. Malformed
// sub-records are dropped or defaulted and logged, never returned as errors.
type replyMapper struct {
	logger *zap.Logger
}

// suggestionDefaults are the values used for keys the reply leaves out
type suggestionDefaults struct {
	title    string
	servings int
}

func (m replyMapper) ingredients(r ai.Reply) []recipe.Ingredient {
	items := ai.Field(r, "ingredients", []ai.Reply{})
	out := make([]recipe.Ingredient, 0, len(items))
	for i, item := range items {
		ing := recipe.Ingredient{
			Name:     strings.TrimSpace(ai.Field(item, "name", "")),
			Quantity: ai.Field(item, "quantity", defaultQuantity),
			Unit:     ai.Field(item, "unit", ""),
			Notes:    ai.Field(item, "notes", ""),
		}
		if ing.Name == "" || ing.Quantity < 0 {
			m.logger.Debug("Dropping malformed ingredient", zap.Int("index", i), zap.Any("entry", item))
			continue
		}
		out = append(out, ing)
	}
	return out
}

func (m replyMapper) suggestion(r ai.Reply, defaults suggestionDefaults) (*recipe.RecipeSuggestion, error) {
	s := &recipe.RecipeSuggestion{
		Title:           strings.TrimSpace(ai.Field(r, "title", defaults.title)),
		Description:     ai.Field(r, "description", ""),
		Ingredients:     m.ingredients(r),
		Instructions:    ai.Field(r, "instructions", []string{}),
		PrepTimeMinutes: minutes(r, "prep_time_minutes"),
		CookTimeMinutes: minutes(r, "cook_time_minutes"),
		Servings:        ai.Field(r, "servings", defaults.servings),
		DietaryTags:     ai.Field(r, "dietary_tags", []string{}),
		Cuisine:         ai.Field(r, "cuisine", ""),
		Difficulty:      ai.Field(r, "difficulty", ""),
		Tips:            ai.Field(r, "tips", ""),
		Rationale:       ai.Field(r, "why_this_recipe", ""),
	}
	if s.Servings < 1 {
		s.Servings = defaults.servings
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// suggestions maps the "recipes" array, keeping every entry that forms a
// valid suggestion
func (m replyMapper) suggestions(r ai.Reply) []recipe.RecipeSuggestion {
	raw := ai.Field(r, "recipes", []any{})
	out := make([]recipe.RecipeSuggestion, 0, len(raw))
	for i, entry := range raw {
		var item ai.Reply
		switch v := entry.(type) {
		case map[string]any:
			item = v
		case ai.Reply:
			item = v
		default:
			m.logger.Warn("Dropping recipe that is not an object", zap.Int("index", i))
			continue
		}
		s, err := m.suggestion(item, suggestionDefaults{title: defaultRecipeTitle, servings: recipe.DefaultServings})
		if err != nil {
			m.logger.Warn("Dropping malformed recipe", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, *s)
	}
	return out
}

// modification maps a modified recipe. The rationale is built from the
// "modifications_made" list.
func (m replyMapper) modification(r ai.Reply, originalTitle string, originalServings int) (*recipe.RecipeSuggestion, error) {
	servings := originalServings
	if servings < 1 {
		servings = recipe.DefaultServings
	}
	s, err := m.suggestion(r, suggestionDefaults{title: "Modified " + originalTitle, servings: servings})
	if err != nil {
		return nil, err
	}
	s.Rationale = ""
	if changes := ai.Field(r, "modifications_made", []string{}); len(changes) > 0 {
		s.Rationale = modificationsPreface + strings.Join(changes, ", ")
	}
	return s, nil
}

func (m replyMapper) mealSlots(r ai.Reply, start time.Time) []mealplan.MealSlot {
	items := ai.Field(r, "meals", []ai.Reply{})
	out := make([]mealplan.MealSlot, 0, len(items))
	for i, item := range items {
		slot := mealplan.MealSlot{
			Date:        start,
			MealType:    defaultSlotMealType,
			RecipeTitle: ai.Field(item, "recipe_title", defaultSlotTitle),
			Notes:       ai.Field(item, "notes", ""),
		}
		if raw := ai.Field(item, "date", ""); raw != "" {
			if d, err := mealplan.ParseDate(raw); err == nil {
				slot.Date = d
			} else {
				m.logger.Debug("Slot date unreadable, using plan start", zap.Int("index", i), zap.String("date", raw))
			}
		}
		if raw := ai.Field(item, "meal_type", ""); raw != "" {
			if mt, err := mealplan.ParseMealType(raw); err == nil {
				slot.MealType = mt
			} else {
				m.logger.Debug("Slot meal type unknown, using default", zap.Int("index", i), zap.String("meal_type", raw))
			}
		}
		out = append(out, slot)
	}
	return out
}

func (m replyMapper) shoppingList(r ai.Reply) []mealplan.ShoppingListItem {
	items := ai.Field(r, "shopping_list", []ai.Reply{})
	out := make([]mealplan.ShoppingListItem, 0, len(items))
	for i, item := range items {
		entry := mealplan.ShoppingListItem{
			Name:     strings.TrimSpace(ai.Field(item, "name", "")),
			Quantity: ai.Field(item, "quantity", defaultQuantity),
			Unit:     ai.Field(item, "unit", ""),
			Category: ai.Field(item, "category", ""),
		}
		if entry.Name == "" || entry.Quantity < 0 {
			m.logger.Debug("Dropping malformed shopping list item", zap.Int("index", i), zap.Any("entry", item))
			continue
		}
		out = append(out, entry)
	}
	return out
}

// minutes reads an optional duration, treating negative values as absent
func minutes(r ai.Reply, key string) *int {
	v := ai.Optional[int](r, key)
	if v == nil || *v < 0 {
		return nil
	}
	return v
}
