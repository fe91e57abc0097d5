package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorString(t *testing.T) {
	err := NewRecipeNotFoundError(42)
	assert.Equal(t, "RECIPE_NOT_FOUND: Recipe not found (Recipe with ID 42 does not exist)", err.Error())
	assert.Equal(t, uint(42), err.Metadata["recipe_id"])

	bare := NewAppError(CodeInternal, "boom", "")
	assert.Equal(t, "INTERNAL_ERROR: boom", bare.Error())
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	base := NewConfigurationError("no API key", "Set OPENAI_API_KEY")
	wrapped := fmt.Errorf("building client: %w", base)

	assert.True(t, Is(wrapped, CodeConfiguration))
	assert.False(t, Is(wrapped, CodeResponseFormat))
	assert.Equal(t, CodeConfiguration, GetCode(wrapped))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewMealPlanNotFoundError(1)))
	assert.True(t, IsNotFound(NewMealSlotNotFoundError(3)))
	assert.True(t, IsNotFound(NewDraftNotFoundError("abc")))
	assert.True(t, IsNotFound(NewNotFoundError("thing")))
	assert.False(t, IsNotFound(NewValidationError("bad")))
	assert.False(t, IsNotFound(stderrors.New("plain")))
}

func TestResponseFormatError_KeepsCause(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := NewResponseFormatError("reply is not valid JSON", cause)

	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.Remediation)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	app := NewValidationError("servings must be positive")
	assert.Same(t, app, Wrap(fmt.Errorf("ctx: %w", app), "ignored"))

	plain := stderrors.New("disk full")
	wrapped := Wrap(plain, "saving failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, plain)
}

func TestUserMessage_DistinguishesFailureClasses(t *testing.T) {
	messages := map[string]string{
		"config":    UserMessage(NewConfigurationError("OpenAI API key is required", "Set OPENAI_API_KEY in your environment or .env file.")),
		"format":    UserMessage(NewResponseFormatError("reply is not valid JSON", nil)),
		"validate":  UserMessage(NewValidationError("servings must be at least 1")),
		"notfound":  UserMessage(NewRecipeNotFoundError(7)),
		"database":  UserMessage(NewDatabaseError("create recipe", stderrors.New("locked"))),
		"transport": UserMessage(stderrors.New("429 Too Many Requests")),
	}

	seen := make(map[string]string)
	for name, msg := range messages {
		assert.NotEmpty(t, msg, name)
		if other, dup := seen[msg]; dup {
			t.Fatalf("%s and %s render the same message %q", name, other, msg)
		}
		seen[msg] = name
	}

	assert.Contains(t, messages["config"], "Set OPENAI_API_KEY")
	assert.Contains(t, messages["notfound"], "Recipe not found")
	assert.Contains(t, messages["transport"], "429 Too Many Requests")
	assert.Empty(t, UserMessage(nil))
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "servings", Tag: "min", Message: "servings must be at least 1"},
		{Field: "title", Tag: "required", Message: "title is required"},
	})

	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, "servings must be at least 1; title is required", err.Details)
	assert.Len(t, err.Metadata["validation_errors"], 2)
}
