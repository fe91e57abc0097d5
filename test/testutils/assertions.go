// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/recipe"
)

// RecipeAssertions provides recipe-specific assertion methods
type RecipeAssertions struct {
	t *testing.T
}

// NewRecipeAssertions creates a new recipe assertions helper
func NewRecipeAssertions(t *testing.T) *RecipeAssertions {
	return &RecipeAssertions{t: t}
}

// SameContent asserts that two recipes agree on every field except identity
// and timestamps
func (ra *RecipeAssertions) SameContent(expected, actual *recipe.Recipe) {
	ra.t.Helper()
	require.NotNil(ra.t, actual, "Recipe should not be nil")
	assert.Equal(ra.t, expected.Title, actual.Title)
	assert.Equal(ra.t, expected.Description, actual.Description)
	assert.Equal(ra.t, expected.Ingredients, actual.Ingredients)
	assert.Equal(ra.t, expected.Instructions, actual.Instructions)
	assert.Equal(ra.t, expected.PrepTimeMinutes, actual.PrepTimeMinutes)
	assert.Equal(ra.t, expected.CookTimeMinutes, actual.CookTimeMinutes)
	assert.Equal(ra.t, expected.Servings, actual.Servings)
	assert.Equal(ra.t, expected.DietaryTags, actual.DietaryTags)
	assert.Equal(ra.t, expected.Cuisine, actual.Cuisine)
	assert.Equal(ra.t, expected.Difficulty, actual.Difficulty)
	assert.Equal(ra.t, expected.Tips, actual.Tips)
	assert.Equal(ra.t, expected.Rationale, actual.Rationale)
}

// Persisted asserts the recipe carries a store-assigned identity
func (ra *RecipeAssertions) Persisted(r *recipe.Recipe) {
	ra.t.Helper()
	require.NotNil(ra.t, r)
	assert.NotZero(ra.t, r.ID, "Recipe should have an ID")
	assert.False(ra.t, r.CreatedAt.IsZero(), "Recipe should have a creation time")
	assert.False(ra.t, r.UpdatedAt.IsZero(), "Recipe should have an update time")
}

// ParseReply decodes a JSON object literal into an ai.Reply the same way
// the model client does
func ParseReply(t *testing.T, raw string) ai.Reply {
	t.Helper()
	var reply ai.Reply
	require.NoError(t, json.Unmarshal([]byte(raw), &reply))
	return reply
}
