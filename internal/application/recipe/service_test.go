package recipe_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/chefwise/chefwise/internal/application/recipe"
	domain "github.com/chefwise/chefwise/internal/domain/recipe"
	gormrepo "github.com/chefwise/chefwise/internal/infrastructure/persistence/gorm"
	"github.com/chefwise/chefwise/internal/infrastructure/persistence/memory"
	"github.com/chefwise/chefwise/pkg/errors"
	"github.com/chefwise/chefwise/test/testutils"
)

type LibraryServiceSuite struct {
	suite.Suite
	ctx     context.Context
	drafts  *memory.DraftStore
	service *recipe.LibraryService
	factory *testutils.RecipeFactory
}

func TestLibraryServiceSuite(t *testing.T) {
	suite.Run(t, new(LibraryServiceSuite))
}

func (s *LibraryServiceSuite) SetupTest() {
	logger := zaptest.NewLogger(s.T())
	db := testutils.NewSQLiteDB(s.T())

	s.ctx = context.Background()
	s.drafts = memory.NewDraftStore(0)
	s.service = recipe.NewLibraryService(gormrepo.NewUnitOfWork(db, logger), s.drafts, logger)
	s.factory = testutils.NewRecipeFactory(99)
}

func (s *LibraryServiceSuite) TestSaveSuggestion_DropsUnknownTags() {
	suggestion := s.factory.Suggestion()
	suggestion.DietaryTags = []string{"vegan", "pescatarian", "Keto", "gluten_free"}

	saved, err := s.service.SaveSuggestion(s.ctx, suggestion)
	s.Require().NoError(err)
	testutils.NewRecipeAssertions(s.T()).Persisted(saved)
	s.Equal([]domain.DietaryTag{domain.DietaryTagVegan, domain.DietaryTagGlutenFree}, saved.DietaryTags)

	found, err := s.service.GetRecipe(s.ctx, saved.ID)
	s.Require().NoError(err)
	testutils.NewRecipeAssertions(s.T()).SameContent(saved, found)
}

func (s *LibraryServiceSuite) TestSaveSuggestion_RejectsInvalid() {
	suggestion := s.factory.Suggestion()
	suggestion.Title = ""

	_, err := s.service.SaveSuggestion(s.ctx, suggestion)
	s.True(errors.Is(err, errors.CodeValidationFailed))

	all, err := s.service.ListRecipes(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *LibraryServiceSuite) TestDrafts_StashThenSave() {
	suggestions := []domain.RecipeSuggestion{s.factory.Suggestion(), s.factory.Suggestion()}

	ids, err := s.service.StashSuggestions(s.ctx, suggestions)
	s.Require().NoError(err)
	s.Require().Len(ids, 2)
	s.NotEqual(ids[0], ids[1])

	draft, err := s.service.GetDraft(s.ctx, ids[1])
	s.Require().NoError(err)
	s.Equal(suggestions[1].Title, draft.Title)

	saved, err := s.service.SaveDraft(s.ctx, ids[1])
	s.Require().NoError(err)
	s.Equal(suggestions[1].Title, saved.Title)

	_, err = s.service.GetDraft(s.ctx, ids[1])
	s.True(errors.Is(err, errors.CodeDraftNotFound))

	_, err = s.service.SaveDraft(s.ctx, ids[1])
	s.True(errors.Is(err, errors.CodeDraftNotFound))

	_, err = s.service.GetDraft(s.ctx, ids[0])
	s.NoError(err)
}

func (s *LibraryServiceSuite) TestLibrary_ListSearchUpdateDelete() {
	first := s.factory.Suggestion()
	first.Title = "Smoky Black Bean Chili"
	second := s.factory.Suggestion()
	second.Title = "Garden Salad"
	second.Description = "Crunchy, with a smoky dressing"

	a, err := s.service.SaveSuggestion(s.ctx, first)
	s.Require().NoError(err)
	b, err := s.service.SaveSuggestion(s.ctx, second)
	s.Require().NoError(err)

	all, err := s.service.ListRecipes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(b.ID, all[0].ID)

	found, err := s.service.SearchRecipes(s.ctx, "SMOKY")
	s.Require().NoError(err)
	s.Len(found, 2)

	a.Servings = 12
	updated, err := s.service.UpdateRecipe(s.ctx, a)
	s.Require().NoError(err)
	s.Equal(12, updated.Servings)

	s.Require().NoError(s.service.DeleteRecipe(s.ctx, a.ID))
	_, err = s.service.GetRecipe(s.ctx, a.ID)
	s.True(errors.Is(err, errors.CodeRecipeNotFound))
	s.True(errors.IsNotFound(s.service.DeleteRecipe(s.ctx, a.ID)))
}

func (s *LibraryServiceSuite) TestUpdateRecipe_Validation() {
	unsaved := s.factory.Recipe()
	_, err := s.service.UpdateRecipe(s.ctx, unsaved)
	s.True(errors.Is(err, errors.CodeValidationFailed))
	s.ErrorIs(err, domain.ErrMissingID)

	saved, err := s.service.SaveSuggestion(s.ctx, s.factory.Suggestion())
	s.Require().NoError(err)
	saved.Servings = 0
	_, err = s.service.UpdateRecipe(s.ctx, saved)
	s.True(errors.Is(err, errors.CodeValidationFailed))
}

func TestSaveDraft_KeepsSavedRecipeWhenDiscardFails(t *testing.T) {
	logger := zaptest.NewLogger(t)
	db := testutils.NewSQLiteDB(t)
	drafts := &testutils.MockDraftStore{}
	service := recipe.NewLibraryService(gormrepo.NewUnitOfWork(db, logger), drafts, logger)

	suggestion := testutils.NewRecipeFactory(1).Suggestion()
	drafts.On("Get", mock.Anything, "draft-1").Return(&suggestion, nil)
	drafts.On("Delete", mock.Anything, "draft-1").Return(stderrors.New("connection reset"))

	saved, err := service.SaveDraft(context.Background(), "draft-1")
	require.NoError(t, err)
	assert.Equal(t, suggestion.Title, saved.Title)
	drafts.AssertExpectations(t)
}

func TestStashSuggestions_StopsOnStoreFailure(t *testing.T) {
	drafts := &testutils.MockDraftStore{}
	service := recipe.NewLibraryService(&testutils.MockUnitOfWork{}, drafts, zaptest.NewLogger(t))

	factory := testutils.NewRecipeFactory(2)
	first, second := factory.Suggestion(), factory.Suggestion()
	drafts.On("Save", mock.Anything, first).Return("a", nil).Once()
	drafts.On("Save", mock.Anything, second).Return("", stderrors.New("redis unavailable")).Once()

	ids, err := service.StashSuggestions(context.Background(), []domain.RecipeSuggestion{first, second})
	assert.Error(t, err)
	assert.Nil(t, ids)
}
