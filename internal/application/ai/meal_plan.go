package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/internal/ports/outbound"
)

// MealPlanService drafts meal plans and their shopping lists
type MealPlanService struct {
	client outbound.ModelClient
	mapper replyMapper
	now    func() time.Time
	logger *zap.Logger
}

var _ inbound.MealPlanner = (*MealPlanService)(nil)

// MealPlanOption configures a MealPlanService
type MealPlanOption func(*MealPlanService)

// WithClock sets the source of "today" for plans without a start date
func WithClock(now func() time.Time) MealPlanOption {
	return func(s *MealPlanService) { s.now = now }
}

// NewMealPlanService creates a new meal plan service
func NewMealPlanService(client outbound.ModelClient, logger *zap.Logger, opts ...MealPlanOption) *MealPlanService {
	named := logger.Named("meal-plan")
	s := &MealPlanService{
		client: client,
		mapper: replyMapper{logger: named},
		now:    time.Now,
		logger: named,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateMealPlan asks the model for a plan covering cmd.NumDays days and
// returns the unsaved plan together with its shopping list.
func (s *MealPlanService) GenerateMealPlan(ctx context.Context, cmd inbound.GenerateMealPlanCommand) (*mealplan.MealPlan, []mealplan.ShoppingListItem, error) {
	numDays := cmd.NumDays
	if numDays <= 0 {
		numDays = inbound.DefaultNumDays
	}
	start := mealplan.DateOf(s.now())
	if cmd.StartDate != nil {
		start = mealplan.DateOf(*cmd.StartDate)
	}
	mealTypes := cmd.MealTypes
	if len(mealTypes) == 0 {
		mealTypes = mealplan.DefaultMealTypes()
	}
	startText := mealplan.FormatDate(start)

	userPrompt := RenderMealPlanPrompt(
		numDays,
		startText,
		mealTypes,
		MealPlanRestrictionsText(cmd.Preferences),
		MealPlanPreferencesText(cmd.Preferences),
		CuisineText(cmd.FavoriteCuisines, cmd.Preferences),
	)

	s.logger.Info("Generating meal plan",
		zap.Int("days", numDays),
		zap.String("start_date", startText),
	)

	reply, err := s.client.ChatCompletion(ctx, MealPlanSystemPrompt, userPrompt, tierOption(cmd.UseComplexModel)...)
	if err != nil {
		return nil, nil, err
	}

	plan := &mealplan.MealPlan{
		Name:      ai.Field(reply, "plan_name", "Week of "+startText),
		StartDate: start,
		EndDate:   mealplan.EndDateFor(start, numDays),
		Meals:     s.mapper.mealSlots(reply, start),
		Notes:     ai.Field(reply, "tips", ""),
	}
	if plan.Name == "" {
		plan.Name = "Week of " + startText
	}
	shopping := s.mapper.shoppingList(reply)

	s.logger.Info("Meal plan generated",
		zap.Int("meals", len(plan.Meals)),
		zap.Int("shopping_items", len(shopping)),
	)
	return plan, shopping, nil
}
