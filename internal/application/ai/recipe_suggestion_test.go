package ai

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/test/testutils"
)

const mixedRecipesReply = `{
	"recipes": [
		{"title": "Shakshuka", "ingredients": [{"name": "eggs", "quantity": 4}], "instructions": ["Simmer", "Crack eggs"], "servings": 2, "dietary_tags": ["vegetarian"], "why_this_recipe": "Uses the eggs"},
		"not a recipe",
		{"title": "", "ingredients": []},
		{"title": "Frittata", "prep_time_minutes": 10, "cook_time_minutes": 20},
		42,
		{"description": "no title at all"}
	]
}`

func TestSuggestRecipes_KeepsWellFormedRecipes(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, RecipeSuggestionSystemPrompt, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, mixedRecipesReply), nil)

	svc := NewRecipeSuggestionService(client, zaptest.NewLogger(t))

	got, err := svc.SuggestRecipes(context.Background(), inbound.SuggestRecipesCommand{Ingredients: []string{"eggs"}})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Shakshuka", got[0].Title)
	assert.Equal(t, "Uses the eggs", got[0].Rationale)
	assert.Equal(t, "Frittata", got[1].Title)
	assert.Equal(t, 30, *got[1].TotalTimeMinutes())
	assert.Equal(t, "Untitled Recipe", got[2].Title)

	// Missing keys fall back to defaults
	assert.Equal(t, 4, got[1].Servings)
	assert.NotNil(t, got[1].Ingredients)
	assert.Empty(t, got[1].Ingredients)
	assert.NotNil(t, got[1].Instructions)
	assert.NotNil(t, got[1].DietaryTags)
	client.AssertNumberOfCalls(t, "ChatCompletion", 1)
}

func TestSuggestRecipes_DegradesMalformedIngredients(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{"recipes": [{
			"title": "Salad",
			"ingredients": [
				{"name": "lettuce", "quantity": 1, "unit": "head"},
				{"name": "", "quantity": 2},
				{"name": "oil", "quantity": -1},
				"tomato",
				{"name": "salt"}
			],
			"servings": 0,
			"prep_time_minutes": -3,
			"instructions": "toss everything"
		}]}`), nil)

	svc := NewRecipeSuggestionService(client, zaptest.NewLogger(t))
	got, err := svc.SuggestRecipes(context.Background(), inbound.SuggestRecipesCommand{Ingredients: []string{"lettuce"}})

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Ingredients, 2)
	assert.Equal(t, "lettuce", got[0].Ingredients[0].Name)
	assert.Equal(t, "salt", got[0].Ingredients[1].Name)
	assert.Equal(t, 1.0, got[0].Ingredients[1].Quantity, "quantity defaults to 1")
	assert.Equal(t, 4, got[0].Servings)
	assert.Nil(t, got[0].PrepTimeMinutes)
	assert.Empty(t, got[0].Instructions)
}

func TestSuggestRecipes_BuildsPrompt(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ai.Reply{}, nil)

	prefs := preferences.Default()
	prefs.Allergies = []string{"peanuts"}
	maxCook := 20

	svc := NewRecipeSuggestionService(client, zaptest.NewLogger(t))
	got, err := svc.SuggestRecipes(context.Background(), inbound.SuggestRecipesCommand{
		Ingredients:         []string{"tofu", "rice"},
		DietaryRestrictions: []string{"vegan"},
		MaxCookTimeMinutes:  &maxCook,
		Preferences:         &prefs,
		UseComplexModel:     true,
	})

	require.NoError(t, err)
	assert.Empty(t, got)

	prompt := client.UserPrompt(0)
	assert.Contains(t, prompt, "suggest 3 recipe(s)")
	assert.Contains(t, prompt, "tofu, rice")
	assert.Contains(t, prompt, "Dietary restrictions/preferences: vegan, allergic to peanuts")
	assert.Contains(t, prompt, "Maximum total cooking time: 20 minutes")

	opts := client.CallOptions(0)
	assert.Equal(t, ai.TierComplex, opts.Tier)
	assert.True(t, opts.JSONMode)
}

func TestSuggestRecipes_PropagatesClientErrorsUnchanged(t *testing.T) {
	transportErr := stderrors.New("429 Too Many Requests")
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, transportErr)

	svc := NewRecipeSuggestionService(client, zaptest.NewLogger(t))
	got, err := svc.SuggestRecipes(context.Background(), inbound.SuggestRecipesCommand{Ingredients: []string{"eggs"}})

	assert.Nil(t, got)
	assert.Same(t, transportErr, err)
}
