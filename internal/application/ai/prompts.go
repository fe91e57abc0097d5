package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// Prompt templates. Placeholders are written {name} and filled by the
// render functions below; the JSON examples are sent literally.

const RecipeSuggestionSystemPrompt = `You are ChefWise, an expert culinary AI assistant.
You help users discover delicious recipes based on ingredients they have available.

When suggesting recipes:
- Focus on practical, achievable recipes with the given ingredients
- Consider the user's dietary restrictions and preferences
- Provide clear, step-by-step instructions
- Include helpful tips and variations when appropriate

Always respond in valid JSON format.`

const recipeSuggestionUserTemplate = `Based on these available ingredients, suggest {num_recipes} recipe(s) I can make.

Available ingredients:
{ingredients}

{restrictions_text}
{preferences_text}

Please respond with a JSON object in this exact format:
{
    "recipes": [
        {
            "title": "Recipe Name",
            "description": "Brief description of the dish",
            "ingredients": [
                {"name": "ingredient", "quantity": 1.0, "unit": "cup", "notes": "optional notes"}
            ],
            "instructions": ["Step 1", "Step 2", "Step 3"],
            "prep_time_minutes": 15,
            "cook_time_minutes": 30,
            "servings": 4,
            "dietary_tags": ["vegetarian", "gluten_free"],
            "cuisine": "Italian",
            "difficulty": "easy",
            "tips": "Optional cooking tips",
            "why_this_recipe": "Why this recipe works with the given ingredients"
        }
    ]
}`

const MealPlanSystemPrompt = `You are ChefWise, an expert meal planning AI assistant.
You create balanced, varied weekly meal plans tailored to user preferences.

When creating meal plans:
- Ensure nutritional variety across the week
- Balance different cuisines and cooking methods
- Consider prep time and complexity for weekday vs weekend meals
- Minimize food waste by reusing ingredients across meals
- Account for dietary restrictions and preferences

Always respond in valid JSON format.`

const mealPlanUserTemplate = `Create a {num_days}-day meal plan starting from {start_date}.

Include these meal types: {meal_types}

{restrictions_text}
{preferences_text}
{cuisine_text}

Please respond with a JSON object in this exact format:
{
    "plan_name": "Week of {start_date}",
    "meals": [
        {
            "date": "YYYY-MM-DD",
            "meal_type": "breakfast|lunch|dinner|snack",
            "recipe_title": "Recipe Name",
            "description": "Brief description",
            "prep_time_minutes": 15,
            "cook_time_minutes": 30,
            "notes": "Optional notes"
        }
    ],
    "shopping_list": [
        {"name": "ingredient", "quantity": 1.0, "unit": "cup", "category": "produce|dairy|meat|pantry|frozen|other"}
    ],
    "tips": "General tips for the week"
}`

// RecipeModificationSystemPrompt also serves ingredient substitutions
const RecipeModificationSystemPrompt = `You are ChefWise, an expert culinary AI assistant.
You help users modify recipes to fit their dietary needs, scale servings, or substitute ingredients.

When modifying recipes:
- Maintain the essence and flavor profile of the original dish
- Ensure substitutions are appropriate and accessible
- Adjust cooking times and temperatures if needed
- Provide clear explanations for modifications

Always respond in valid JSON format.`

const recipeModificationUserTemplate = `Please modify this recipe according to my requirements.

Original Recipe:
Title: {title}
Ingredients: {ingredients}
Instructions: {instructions}
Servings: {servings}

Modification requested: {modification_type}
Details: {modification_details}

Please respond with a JSON object in this exact format:
{
    "title": "Modified Recipe Name",
    "description": "Description including what was changed",
    "ingredients": [
        {"name": "ingredient", "quantity": 1.0, "unit": "cup", "notes": "optional notes"}
    ],
    "instructions": ["Step 1", "Step 2", "Step 3"],
    "prep_time_minutes": 15,
    "cook_time_minutes": 30,
    "servings": 4,
    "dietary_tags": ["vegetarian"],
    "modifications_made": ["List of changes made"],
    "tips": "Tips for the modified version"
}`

const ingredientSubstitutionUserTemplate = `I need a substitution for {ingredient} in this recipe context:
{recipe_context}

Reason for substitution: {reason}

Please suggest the best substitution(s) and explain how to use them.

Respond with a JSON object:
{
    "original_ingredient": "{ingredient}",
    "substitutions": [
        {
            "name": "substitute ingredient",
            "quantity": "adjusted quantity",
            "unit": "unit",
            "notes": "how to use it",
            "flavor_impact": "how it affects the dish"
        }
    ],
    "recommendation": "which substitution is best and why"
}`

// render replaces each {key} in tmpl with its value in a single pass, so
// placeholder-like text inside values is left alone.
func render(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// RenderRecipeSuggestionPrompt builds the user prompt for a suggestion
func RenderRecipeSuggestionPrompt(numRecipes int, ingredients []string, restrictionsText, preferencesText string) string {
	return render(recipeSuggestionUserTemplate, map[string]string{
		"num_recipes":       strconv.Itoa(numRecipes),
		"ingredients":       strings.Join(ingredients, ", "),
		"restrictions_text": restrictionsText,
		"preferences_text":  preferencesText,
	})
}

// SuggestionRestrictionsText merges explicit restrictions with those implied
// by prefs into one clause, or "" when there are none.
func SuggestionRestrictionsText(explicit []string, prefs *preferences.UserPreferences) string {
	restrictions := append([]string(nil), explicit...)
	if prefs != nil {
		restrictions = append(restrictions, prefs.RestrictionPhrases()...)
	}
	if len(restrictions) == 0 {
		return ""
	}
	return "Dietary restrictions/preferences: " + strings.Join(restrictions, ", ")
}

// SuggestionPreferencesText lists time and skill preferences, one per line
func SuggestionPreferencesText(maxCookTimeMinutes *int, prefs *preferences.UserPreferences) string {
	var b strings.Builder
	if maxCookTimeMinutes != nil && *maxCookTimeMinutes > 0 {
		fmt.Fprintf(&b, "Maximum total cooking time: %d minutes\n", *maxCookTimeMinutes)
	}
	if prefs != nil {
		if prefs.SkillLevel != "" {
			fmt.Fprintf(&b, "Cooking skill level: %s\n", prefs.SkillLevel)
		}
		if prefs.PreferQuickMeals {
			b.WriteString("Prefer quick and easy meals\n")
		}
	}
	return b.String()
}

// RenderMealPlanPrompt builds the user prompt for a meal plan
func RenderMealPlanPrompt(numDays int, startDate string, mealTypes []mealplan.MealType, restrictionsText, preferencesText, cuisineText string) string {
	names := make([]string, 0, len(mealTypes))
	for _, mt := range mealTypes {
		names = append(names, string(mt))
	}
	return render(mealPlanUserTemplate, map[string]string{
		"num_days":          strconv.Itoa(numDays),
		"start_date":        startDate,
		"meal_types":        strings.Join(names, ", "),
		"restrictions_text": restrictionsText,
		"preferences_text":  preferencesText,
		"cuisine_text":      cuisineText,
	})
}

// MealPlanRestrictionsText is the restriction clause drawn from prefs
func MealPlanRestrictionsText(prefs *preferences.UserPreferences) string {
	if prefs == nil {
		return ""
	}
	restrictions := prefs.RestrictionPhrases()
	if len(restrictions) == 0 {
		return ""
	}
	return "Dietary restrictions: " + strings.Join(restrictions, ", ")
}

// MealPlanPreferencesText lists planning preferences, one per line
func MealPlanPreferencesText(prefs *preferences.UserPreferences) string {
	if prefs == nil {
		return ""
	}
	var b strings.Builder
	if prefs.SkillLevel != "" {
		fmt.Fprintf(&b, "Cooking skill level: %s\n", prefs.SkillLevel)
	}
	if prefs.MaxCookTimeMinutes != nil && *prefs.MaxCookTimeMinutes > 0 {
		fmt.Fprintf(&b, "Weekday meals should be under %d minutes\n", *prefs.MaxCookTimeMinutes)
	}
	if prefs.PreferQuickMeals {
		b.WriteString("Generally prefer quick meals\n")
	}
	if prefs.ServingSize > 0 {
		fmt.Fprintf(&b, "Default serving size: %d\n", prefs.ServingSize)
	}
	return b.String()
}

// CuisineText names the preferred cuisines. An explicit override wins over
// the cuisines saved in prefs.
func CuisineText(override []string, prefs *preferences.UserPreferences) string {
	cuisines := override
	if len(cuisines) == 0 && prefs != nil {
		cuisines = prefs.FavoriteCuisines
	}
	if len(cuisines) == 0 {
		return ""
	}
	return "Preferred cuisines: " + strings.Join(cuisines, ", ")
}

// RenderRecipeModificationPrompt builds the user prompt for a modification
func RenderRecipeModificationPrompt(title string, ingredients []recipe.Ingredient, instructions []string, servings int, modificationType, details string) string {
	return render(recipeModificationUserTemplate, map[string]string{
		"title":                title,
		"ingredients":          IngredientsBlock(ingredients),
		"instructions":         InstructionsBlock(instructions),
		"servings":             strconv.Itoa(servings),
		"modification_type":    modificationType,
		"modification_details": details,
	})
}

// IngredientsBlock renders one "- quantity unit name (notes)" line per ingredient
func IngredientsBlock(ingredients []recipe.Ingredient) string {
	lines := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		lines = append(lines, "- "+ing.String())
	}
	return strings.Join(lines, "\n")
}

// InstructionsBlock numbers the steps from 1
func InstructionsBlock(instructions []string) string {
	lines := make([]string, 0, len(instructions))
	for i, step := range instructions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return strings.Join(lines, "\n")
}

// ScaleDetails is the modification detail sent when scaling a recipe
func ScaleDetails(originalServings, newServings int) string {
	return fmt.Sprintf(
		"Scale from %d servings to %d servings. Adjust all ingredient quantities proportionally and modify instructions if needed for the new batch size.",
		originalServings, newServings,
	)
}

// RenderSubstitutionPrompt builds the user prompt for a substitution
func RenderSubstitutionPrompt(ingredient, recipeContext, reason string) string {
	return render(ingredientSubstitutionUserTemplate, map[string]string{
		"ingredient":     ingredient,
		"recipe_context": recipeContext,
		"reason":         reason,
	})
}
