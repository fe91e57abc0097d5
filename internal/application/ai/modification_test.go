package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/pkg/errors"
	"github.com/chefwise/chefwise/test/testutils"
)

var pastaIngredients = []recipe.Ingredient{
	{Name: "pasta", Quantity: 1, Unit: "lb"},
	{Name: "butter", Quantity: 2, Unit: "tbsp"},
}

func TestModifyRecipe_MapsReply(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, RecipeModificationSystemPrompt, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{
			"ingredients": [{"name": "pasta", "quantity": 1, "unit": "lb"}, {"name": "olive oil", "quantity": 2, "unit": "tbsp"}],
			"instructions": ["Boil", "Toss with oil"],
			"dietary_tags": ["vegan"],
			"modifications_made": ["Replaced butter with olive oil", "Dropped cheese"]
		}`), nil)

	svc := NewRecipeModificationService(client, zaptest.NewLogger(t))
	got, err := svc.ModifyRecipe(context.Background(), inbound.ModifyRecipeCommand{
		Title:               "Buttered Pasta",
		Ingredients:         pastaIngredients,
		Instructions:        []string{"Boil", "Toss with butter"},
		Servings:            3,
		ModificationType:    "dietary",
		ModificationDetails: "make it vegan",
	})

	require.NoError(t, err)
	assert.Equal(t, "Modified Buttered Pasta", got.Title)
	assert.Equal(t, 3, got.Servings, "servings default to the original")
	assert.Equal(t, "Modifications made: Replaced butter with olive oil, Dropped cheese", got.Rationale)
	assert.Len(t, got.Ingredients, 2)
	assert.Equal(t, []string{"vegan"}, got.DietaryTags)

	prompt := client.UserPrompt(0)
	assert.Contains(t, prompt, "- 2 tbsp butter")
	assert.Contains(t, prompt, "2. Toss with butter")
}

func TestModifyRecipe_EmptyChangeListLeavesRationaleEmpty(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{"title": "Same Pasta", "servings": 2}`), nil)

	svc := NewRecipeModificationService(client, zaptest.NewLogger(t))
	got, err := svc.ModifyRecipe(context.Background(), inbound.ModifyRecipeCommand{Title: "Pasta", Servings: 4})

	require.NoError(t, err)
	assert.Equal(t, "Same Pasta", got.Title)
	assert.Equal(t, 2, got.Servings)
	assert.Empty(t, got.Rationale)
}

func TestModifyRecipe_IncompleteReplyIsFormatError(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{"title": "   "}`), nil)

	svc := NewRecipeModificationService(client, zaptest.NewLogger(t))
	got, err := svc.ModifyRecipe(context.Background(), inbound.ModifyRecipeCommand{Title: "Pasta", Servings: 4})

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, errors.CodeResponseFormat))
}

func TestScaleRecipe_DelegatesArithmetic(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, RecipeModificationSystemPrompt, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{"title": "Pasta for 8", "servings": 8, "ingredients": [{"name": "pasta", "quantity": 2, "unit": "lb"}]}`), nil)

	svc := NewRecipeModificationService(client, zaptest.NewLogger(t))
	got, err := svc.ScaleRecipe(context.Background(), inbound.ScaleRecipeCommand{
		Title:            "Pasta",
		Ingredients:      pastaIngredients,
		Instructions:     []string{"Boil"},
		OriginalServings: 4,
		NewServings:      8,
	})
	require.NoError(t, err)

	prompt := client.UserPrompt(0)
	assert.Contains(t, prompt, "Modification requested: scaling")
	assert.Contains(t, prompt, "from 4 servings to 8 servings")
	assert.Contains(t, prompt, "Servings: 4\n")
	assert.Contains(t, prompt, "- 1 lb pasta", "quantities are sent unscaled")

	assert.Equal(t, 8, got.Servings)
	assert.Equal(t, 2.0, got.Ingredients[0].Quantity)
	assert.Equal(t, ai.TierDefault, client.CallOptions(0).Tier)
}

func TestModelTier_AppliesToScaleAndSubstitution(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, RecipeModificationSystemPrompt, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{"title": "Pasta for 8", "servings": 8, "recommendation": "oil"}`), nil)

	svc := NewRecipeModificationService(client, zaptest.NewLogger(t))

	_, err := svc.ScaleRecipe(context.Background(), inbound.ScaleRecipeCommand{
		Title:            "Pasta",
		OriginalServings: 4,
		NewServings:      8,
		UseComplexModel:  true,
	})
	require.NoError(t, err)

	_, err = svc.SuggestSubstitution(context.Background(), inbound.SubstitutionCommand{
		Ingredient:      "butter",
		UseComplexModel: true,
	})
	require.NoError(t, err)

	_, err = svc.SuggestSubstitution(context.Background(), inbound.SubstitutionCommand{Ingredient: "butter"})
	require.NoError(t, err)

	assert.Equal(t, ai.TierComplex, client.CallOptions(0).Tier)
	assert.Equal(t, ai.TierComplex, client.CallOptions(1).Tier)
	assert.Equal(t, ai.TierDefault, client.CallOptions(2).Tier)
}

func TestSuggestSubstitution_ReturnsRawReply(t *testing.T) {
	reply := testutils.ParseReply(t, `{
		"original_ingredient": "butter",
		"substitutions": [{"name": "coconut oil", "quantity": "3/4 cup"}],
		"recommendation": "coconut oil",
		"extra": true
	}`)
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, RecipeModificationSystemPrompt, mock.Anything, mock.Anything).
		Return(reply, nil)

	svc := NewRecipeModificationService(client, zaptest.NewLogger(t))
	got, err := svc.SuggestSubstitution(context.Background(), inbound.SubstitutionCommand{
		Ingredient:    "butter",
		RecipeContext: "shortbread",
	})

	require.NoError(t, err)
	assert.Equal(t, reply, got)
	assert.Equal(t, "coconut oil", ai.Field(got, "recommendation", ""))
	assert.Contains(t, client.UserPrompt(0), "Reason for substitution: preference")
}
