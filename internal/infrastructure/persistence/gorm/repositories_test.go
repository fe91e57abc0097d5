package gorm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/domain/recipe"
	gormrepo "github.com/chefwise/chefwise/internal/infrastructure/persistence/gorm"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
	"github.com/chefwise/chefwise/test/testutils"
)

type RepositorySuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	repos   outbound.Repositories
	recipes *testutils.RecipeFactory
	plans   *testutils.MealPlanFactory
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutils.NewSQLiteDB(s.T())
	s.repos = gormrepo.NewRepositories(s.db)
	s.recipes = testutils.NewRecipeFactory(7)
	s.plans = testutils.NewMealPlanFactory(7)
}

func (s *RepositorySuite) createRecipe() *recipe.Recipe {
	r := s.recipes.Recipe()
	s.Require().NoError(s.repos.Recipes().Create(s.ctx, r))
	return r
}

func (s *RepositorySuite) TestRecipe_CreateAndFind() {
	expected := s.recipes.Recipe()
	expected.DietaryTags = []recipe.DietaryTag{recipe.DietaryTagVegan, recipe.DietaryTagGlutenFree}

	s.Require().NoError(s.repos.Recipes().Create(s.ctx, expected))
	testutils.NewRecipeAssertions(s.T()).Persisted(expected)

	found, err := s.repos.Recipes().FindByID(s.ctx, expected.ID)
	s.Require().NoError(err)
	testutils.NewRecipeAssertions(s.T()).SameContent(expected, found)
	s.Equal(expected.TotalTimeMinutes(), found.TotalTimeMinutes())
}

func (s *RepositorySuite) TestRecipe_AbsentTimesStayAbsent() {
	r := s.recipes.Recipe()
	r.PrepTimeMinutes = nil
	r.CookTimeMinutes = nil
	s.Require().NoError(s.repos.Recipes().Create(s.ctx, r))

	found, err := s.repos.Recipes().FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Nil(found.PrepTimeMinutes)
	s.Nil(found.CookTimeMinutes)
	s.Nil(found.TotalTimeMinutes())
}

func (s *RepositorySuite) TestRecipe_IDsAreNeverReused() {
	first := s.createRecipe()
	second := s.createRecipe()
	s.Require().NoError(s.repos.Recipes().Delete(s.ctx, second.ID))

	third := s.createRecipe()
	s.Greater(third.ID, second.ID)
	s.Greater(second.ID, first.ID)
}

func (s *RepositorySuite) TestRecipe_FindAllNewestFirst() {
	first := s.createRecipe()
	second := s.createRecipe()
	third := s.createRecipe()

	all, err := s.repos.Recipes().FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]uint{third.ID, second.ID, first.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})
}

func (s *RepositorySuite) TestRecipe_SearchIsCaseInsensitiveOnTitleOrDescription() {
	byTitle := s.recipes.Recipe()
	byTitle.Title = "Creamy Mushroom Risotto"
	byTitle.Description = "Comfort food"
	s.Require().NoError(s.repos.Recipes().Create(s.ctx, byTitle))

	byDescription := s.recipes.Recipe()
	byDescription.Title = "Weeknight Pasta"
	byDescription.Description = "Loaded with MUSHROOMS and garlic"
	s.Require().NoError(s.repos.Recipes().Create(s.ctx, byDescription))

	other := s.recipes.Recipe()
	other.Title = "Lemon Tart"
	other.Description = "Bright dessert"
	s.Require().NoError(s.repos.Recipes().Create(s.ctx, other))

	found, err := s.repos.Recipes().Search(s.ctx, "mushroom")
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.ElementsMatch([]uint{byTitle.ID, byDescription.ID}, []uint{found[0].ID, found[1].ID})

	none, err := s.repos.Recipes().Search(s.ctx, "anchovy")
	s.Require().NoError(err)
	s.Empty(none)

	everything, err := s.repos.Recipes().Search(s.ctx, "  ")
	s.Require().NoError(err)
	s.Len(everything, 3)
}

func (s *RepositorySuite) TestRecipe_SearchMatchesWildcardsLiterally() {
	create := func(title string) *recipe.Recipe {
		r := s.recipes.Recipe()
		r.Title = title
		r.Description = "Plain"
		s.Require().NoError(s.repos.Recipes().Create(s.ctx, r))
		return r
	}
	percent := create("50% Rye Loaf")
	create("500g Grain Bowl")
	underscore := create("snap_pea stir fry")
	create("snapXpea salad")
	backslash := create(`back\slash bake`)

	found, err := s.repos.Recipes().Search(s.ctx, "50%")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(percent.ID, found[0].ID)

	found, err = s.repos.Recipes().Search(s.ctx, "snap_pea")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(underscore.ID, found[0].ID)

	found, err = s.repos.Recipes().Search(s.ctx, `k\s`)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(backslash.ID, found[0].ID)
}

func (s *RepositorySuite) TestRecipe_Update() {
	r := s.createRecipe()
	createdAt := r.CreatedAt

	r.Title = "Renamed"
	r.Servings = 10
	r.DietaryTags = []recipe.DietaryTag{recipe.DietaryTagKeto}
	s.Require().NoError(s.repos.Recipes().Update(s.ctx, r))

	found, err := s.repos.Recipes().FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", found.Title)
	s.Equal(10, found.Servings)
	s.Equal([]recipe.DietaryTag{recipe.DietaryTagKeto}, found.DietaryTags)
	s.True(createdAt.Equal(found.CreatedAt))
}

func (s *RepositorySuite) TestRecipe_MissingIDs() {
	_, err := s.repos.Recipes().FindByID(s.ctx, 999)
	s.True(apperrors.Is(err, apperrors.CodeRecipeNotFound))

	missing := s.recipes.Recipe()
	missing.ID = 999
	s.True(apperrors.Is(s.repos.Recipes().Update(s.ctx, missing), apperrors.CodeRecipeNotFound))
	s.True(apperrors.Is(s.repos.Recipes().Delete(s.ctx, 999), apperrors.CodeRecipeNotFound))
}

func (s *RepositorySuite) TestRecipe_DeleteKeepsSlotTitle() {
	r := s.createRecipe()

	plan := s.plans.Plan(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 2)
	plan.Meals[0].RecipeID = &r.ID
	plan.Meals[0].RecipeTitle = r.Title
	s.Require().NoError(s.repos.MealPlans().Create(s.ctx, plan))

	s.Require().NoError(s.repos.Recipes().Delete(s.ctx, r.ID))

	slot, err := s.repos.MealSlots().FindByID(s.ctx, plan.Meals[0].ID)
	s.Require().NoError(err)
	s.Nil(slot.RecipeID)
	s.Equal(r.Title, slot.RecipeTitle)
}

func (s *RepositorySuite) TestMealPlan_CreateAndFind() {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	plan := s.plans.Plan(start, 3)
	plan.Meals = append(plan.Meals, mealplan.MealSlot{
		Date:        start,
		MealType:    mealplan.MealTypeBreakfast,
		RecipeTitle: "Porridge",
	})

	s.Require().NoError(s.repos.MealPlans().Create(s.ctx, plan))
	s.NotZero(plan.ID)
	s.Require().Len(plan.Meals, 4)
	for _, slot := range plan.Meals {
		s.NotZero(slot.ID)
	}

	found, err := s.repos.MealPlans().FindByID(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Equal(plan.Name, found.Name)
	s.True(start.Equal(found.StartDate))
	s.True(mealplan.EndDateFor(start, 3).Equal(found.EndDate))
	s.Len(found.Meals, 4)

	days := found.Days()
	s.Require().Len(days, 3)
	s.Equal(mealplan.MealTypeBreakfast, days[0].Meals[0].MealType)
	s.Equal(mealplan.MealTypeDinner, days[0].Meals[1].MealType)

	slots, err := s.repos.MealSlots().FindByMealPlan(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Len(slots, 4)
}

func (s *RepositorySuite) TestMealPlan_UpdateReplacesSlots() {
	plan := s.plans.Plan(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 3)
	s.Require().NoError(s.repos.MealPlans().Create(s.ctx, plan))
	oldSlotID := plan.Meals[0].ID

	plan.Name = "Lighter week"
	plan.Meals = plan.Meals[:1]
	plan.Meals[0].RecipeTitle = "Salad"
	s.Require().NoError(s.repos.MealPlans().Update(s.ctx, plan))

	found, err := s.repos.MealPlans().FindByID(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Equal("Lighter week", found.Name)
	s.Require().Len(found.Meals, 1)
	s.Equal("Salad", found.Meals[0].RecipeTitle)
	s.EqualValues(1, testutils.CountRows(s.T(), s.db, &gormrepo.MealSlotModel{}))

	_, err = s.repos.MealSlots().FindByID(s.ctx, oldSlotID)
	s.True(apperrors.Is(err, apperrors.CodeMealSlotNotFound))
}

func (s *RepositorySuite) TestMealPlan_DeleteCascadesToSlots() {
	plan := s.plans.Plan(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 5)
	s.Require().NoError(s.repos.MealPlans().Create(s.ctx, plan))
	s.EqualValues(5, testutils.CountRows(s.T(), s.db, &gormrepo.MealSlotModel{}))
	slotIDs := make([]uint, 0, len(plan.Meals))
	for _, slot := range plan.Meals {
		s.Require().NotZero(slot.ID)
		slotIDs = append(slotIDs, slot.ID)
	}

	s.Require().NoError(s.repos.MealPlans().Delete(s.ctx, plan.ID))

	s.EqualValues(0, testutils.CountRows(s.T(), s.db, &gormrepo.MealSlotModel{}))
	for _, id := range slotIDs {
		_, err := s.repos.MealSlots().FindByID(s.ctx, id)
		s.True(apperrors.Is(err, apperrors.CodeMealSlotNotFound), "slot %d", id)
	}
	_, err := s.repos.MealPlans().FindByID(s.ctx, plan.ID)
	s.True(apperrors.Is(err, apperrors.CodeMealPlanNotFound))
	s.True(apperrors.Is(s.repos.MealPlans().Delete(s.ctx, plan.ID), apperrors.CodeMealPlanNotFound))
}

func (s *RepositorySuite) TestMealPlan_FindAllNewestFirst() {
	older := s.plans.Plan(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 2)
	newer := s.plans.Plan(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 2)
	s.Require().NoError(s.repos.MealPlans().Create(s.ctx, older))
	s.Require().NoError(s.repos.MealPlans().Create(s.ctx, newer))

	all, err := s.repos.MealPlans().FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(newer.ID, all[0].ID)
	s.Len(all[0].Meals, 2)
}

func (s *RepositorySuite) TestMealPlan_FindCurrent() {
	today := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	wide := s.plans.Plan(today.AddDate(0, 0, -3), 7)
	narrow := s.plans.Plan(today.AddDate(0, 0, -1), 3)
	past := s.plans.Plan(today.AddDate(0, 0, -20), 7)
	for _, p := range []*mealplan.MealPlan{wide, narrow, past} {
		s.Require().NoError(s.repos.MealPlans().Create(s.ctx, p))
	}

	current, err := s.repos.MealPlans().FindCurrent(s.ctx, today)
	s.Require().NoError(err)
	s.Equal(narrow.ID, current.ID)

	lastDay, err := s.repos.MealPlans().FindCurrent(s.ctx, wide.EndDate)
	s.Require().NoError(err)
	s.Equal(wide.ID, lastDay.ID)

	_, err = s.repos.MealPlans().FindCurrent(s.ctx, today.AddDate(1, 0, 0))
	s.True(apperrors.IsNotFound(err))
}

func (s *RepositorySuite) TestPreferences_LazyDefaultSingleRow() {
	prefs, err := s.repos.Preferences().Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(preferences.SkillIntermediate, prefs.SkillLevel)
	s.Equal(preferences.DefaultServingSize, prefs.ServingSize)
	s.Empty(prefs.Allergies)

	_, err = s.repos.Preferences().Get(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, testutils.CountRows(s.T(), s.db, &gormrepo.UserPreferencesModel{}))
}

func (s *RepositorySuite) TestPreferences_UpdateInPlace() {
	_, err := s.repos.Preferences().Get(s.ctx)
	s.Require().NoError(err)

	updated := testutils.Preferences()
	s.Require().NoError(s.repos.Preferences().Update(s.ctx, &updated))
	s.Require().NoError(s.repos.Preferences().Update(s.ctx, &updated))

	got, err := s.repos.Preferences().Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(updated.Allergies, got.Allergies)
	s.Equal(updated.FavoriteCuisines, got.FavoriteCuisines)
	s.Equal(updated.SkillLevel, got.SkillLevel)
	s.Equal(2, got.ServingSize)
	s.Require().NotNil(got.MaxCookTimeMinutes)
	s.Equal(30, *got.MaxCookTimeMinutes)
	s.True(got.PreferQuickMeals)
	s.False(got.BudgetConscious)
	s.EqualValues(1, testutils.CountRows(s.T(), s.db, &gormrepo.UserPreferencesModel{}))
}

func TestPreferences_UpdateBeforeFirstRead(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	repo := gormrepo.NewPreferencesRepository(db)

	prefs := testutils.Preferences()
	require.NoError(t, repo.Update(context.Background(), &prefs))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prefs.DietaryRestrictions, got.DietaryRestrictions)
	assert.EqualValues(t, 1, testutils.CountRows(t, db, &gormrepo.UserPreferencesModel{}))
}
