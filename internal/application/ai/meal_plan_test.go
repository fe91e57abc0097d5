package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/test/testutils"
)

const mealPlanReply = `{
	"plan_name": "Summer Week",
	"meals": [
		{"date": "2024-06-02", "meal_type": "breakfast", "recipe_title": "Granola", "notes": "make ahead"},
		{"meal_type": "lunch", "recipe_title": "Soup"},
		{"date": "June 3rd", "meal_type": "brunch"},
		"leftovers"
	],
	"shopping_list": [
		{"name": "oats", "quantity": 2, "unit": "cup", "category": "pantry"},
		{"name": "", "quantity": 1},
		{"name": "milk", "quantity": -2},
		{"name": "apples"}
	],
	"tips": "Cook grains on Sunday"
}`

func fixedClock(s string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse("2006-01-02 15:04", s)
		return t
	}
}

func TestGenerateMealPlan_MapsReply(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, MealPlanSystemPrompt, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, mealPlanReply), nil)

	svc := NewMealPlanService(client, zaptest.NewLogger(t))
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	plan, shopping, err := svc.GenerateMealPlan(context.Background(), inbound.GenerateMealPlanCommand{StartDate: &start})
	require.NoError(t, err)

	assert.Equal(t, "Summer Week", plan.Name)
	assert.Equal(t, "2024-06-01", mealplan.FormatDate(plan.StartDate))
	assert.Equal(t, "2024-06-07", mealplan.FormatDate(plan.EndDate))
	assert.Equal(t, "Cook grains on Sunday", plan.Notes)
	assert.Zero(t, plan.ID)

	require.Len(t, plan.Meals, 3)
	assert.Equal(t, "2024-06-02", mealplan.FormatDate(plan.Meals[0].Date))
	assert.Equal(t, "make ahead", plan.Meals[0].Notes)
	assert.Equal(t, start, plan.Meals[1].Date, "absent date falls back to the plan start")
	assert.Equal(t, mealplan.MealTypeLunch, plan.Meals[1].MealType)
	assert.Equal(t, start, plan.Meals[2].Date, "unreadable date falls back to the plan start")
	assert.Equal(t, mealplan.MealTypeDinner, plan.Meals[2].MealType)
	assert.Equal(t, "Untitled", plan.Meals[2].RecipeTitle)
	assert.NoError(t, plan.Validate())

	require.Len(t, shopping, 2)
	assert.Equal(t, "oats", shopping[0].Name)
	assert.Equal(t, "apples", shopping[1].Name)
	assert.Equal(t, 1.0, shopping[1].Quantity)
	assert.False(t, shopping[1].Checked)
}

func TestGenerateMealPlan_Defaults(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{"meals": [{"recipe_title": "Toast"}]}`), nil)

	svc := NewMealPlanService(client, zaptest.NewLogger(t), WithClock(fixedClock("2024-03-10 18:45")))

	plan, shopping, err := svc.GenerateMealPlan(context.Background(), inbound.GenerateMealPlanCommand{})
	require.NoError(t, err)

	assert.Equal(t, "Week of 2024-03-10", plan.Name)
	assert.Equal(t, "2024-03-16", mealplan.FormatDate(plan.EndDate))
	assert.Equal(t, "2024-03-10", mealplan.FormatDate(plan.Meals[0].Date))
	assert.NotNil(t, shopping)
	assert.Empty(t, shopping)

	prompt := client.UserPrompt(0)
	assert.Contains(t, prompt, "Create a 7-day meal plan starting from 2024-03-10.")
	assert.Contains(t, prompt, "Include these meal types: breakfast, lunch, dinner")
}

func TestGenerateMealPlan_EndDate(t *testing.T) {
	for _, days := range []int{1, 3, 14} {
		client := new(testutils.MockModelClient)
		client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(testutils.ParseReply(t, `{}`), nil)

		start := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
		svc := NewMealPlanService(client, zaptest.NewLogger(t))
		plan, _, err := svc.GenerateMealPlan(context.Background(), inbound.GenerateMealPlanCommand{NumDays: days, StartDate: &start})

		require.NoError(t, err)
		assert.Equal(t, start.AddDate(0, 0, days-1), plan.EndDate)
	}
}

func TestGenerateMealPlan_UsesPreferences(t *testing.T) {
	client := new(testutils.MockModelClient)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testutils.ParseReply(t, `{}`), nil)

	prefs := testutils.Preferences()
	prefs.SkillLevel = preferences.SkillAdvanced

	svc := NewMealPlanService(client, zaptest.NewLogger(t), WithClock(fixedClock("2024-01-01 09:00")))
	_, _, err := svc.GenerateMealPlan(context.Background(), inbound.GenerateMealPlanCommand{
		NumDays:     2,
		MealTypes:   []mealplan.MealType{mealplan.MealTypeDinner, mealplan.MealTypeSnack},
		Preferences: &prefs,
	})
	require.NoError(t, err)

	prompt := client.UserPrompt(0)
	assert.Contains(t, prompt, "Include these meal types: dinner, snack")
	assert.Contains(t, prompt, "Dietary restrictions: vegetarian, allergic to peanuts, no cilantro")
	assert.Contains(t, prompt, "Cooking skill level: advanced")
	assert.Contains(t, prompt, "Weekday meals should be under 30 minutes")
	assert.Contains(t, prompt, "Generally prefer quick meals")
	assert.Contains(t, prompt, "Default serving size: 2")
	assert.Contains(t, prompt, "Preferred cuisines: Italian, Thai")
}
