package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) Reply {
	t.Helper()
	var r Reply
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return r
}

func TestField_Defaults(t *testing.T) {
	r := parse(t, `{"title": null, "servings": "lots", "tags": "vegan"}`)

	assert.Equal(t, "Untitled Recipe", Field(r, "title", "Untitled Recipe"))
	assert.Equal(t, "fallback", Field(r, "missing", "fallback"))
	assert.Equal(t, 4, Field(r, "servings", 4))
	assert.Equal(t, []string{}, Field(r, "tags", []string{}))
	assert.Empty(t, Field(r, "recipes", []Reply{}))
}

func TestField_Conversions(t *testing.T) {
	r := parse(t, `{
		"servings": 6,
		"fraction": 2.5,
		"count": "3",
		"quantity": "1.25",
		"quick": true,
		"steps": ["Boil", 7, "Serve"],
		"items": [{"name": "pasta"}, "bad", 3, {"name": "salt"}],
		"nested": {"k": "v"}
	}`)

	assert.Equal(t, 6, Field(r, "servings", 0))
	assert.Equal(t, 9, Field(r, "fraction", 9), "fractional numbers are not integers")
	assert.Equal(t, 3, Field(r, "count", 0))
	assert.Equal(t, 1.25, Field(r, "quantity", 0.0))
	assert.Equal(t, 6.0, Field(r, "servings", 0.0))
	assert.True(t, Field(r, "quick", false))
	assert.Equal(t, []string{"Boil", "Serve"}, Field(r, "steps", []string{}))

	items := Field(r, "items", []Reply{})
	require.Len(t, items, 2)
	assert.Equal(t, "salt", Field(items[1], "name", ""))

	assert.Equal(t, "v", Field(Field(r, "nested", Reply{}), "k", ""))
}

func TestOptional(t *testing.T) {
	r := parse(t, `{"prep_time_minutes": 15, "cook_time_minutes": "soon", "tips": null}`)

	prep := Optional[int](r, "prep_time_minutes")
	require.NotNil(t, prep)
	assert.Equal(t, 15, *prep)

	assert.Nil(t, Optional[int](r, "cook_time_minutes"))
	assert.Nil(t, Optional[string](r, "tips"))
	assert.Nil(t, Optional[string](r, "absent"))
}
