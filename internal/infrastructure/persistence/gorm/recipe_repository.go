// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
)

// likeEscaper makes LIKE wildcards in a search query match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.NewDatabaseError("create recipe", err)
	}

	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	rec.UpdatedAt = model.UpdatedAt
	return nil
}

// Update updates an existing recipe
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	var existing RecipeModel
	if err := r.db.WithContext(ctx).First(&existing, rec.ID).Error; err != nil {
		return r.lookupError("update recipe", rec.ID, err)
	}

	model := RecipeToModel(rec)
	model.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.NewDatabaseError("update recipe", err)
	}

	rec.CreatedAt = model.CreatedAt
	rec.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes a recipe. Meal slots that referenced it keep their title
// and lose the link.
func (r *RecipeRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	if err := db.Model(&MealSlotModel{}).
		Where("recipe_id = ?", id).
		Update("recipe_id", nil).Error; err != nil {
		return apperrors.NewDatabaseError("unlink recipe from meal slots", err)
	}

	result := db.Delete(&RecipeModel{}, id)
	if result.Error != nil {
		return apperrors.NewDatabaseError("delete recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewRecipeNotFoundError(id)
	}
	return nil
}

// FindByID retrieves a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uint) (*recipe.Recipe, error) {
	var model RecipeModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, r.lookupError("find recipe", id, err)
	}
	return RecipeFromModel(&model), nil
}

// FindAll lists every recipe, newest first
func (r *RecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}
	return recipesFromModels(models), nil
}

// Search finds recipes whose title or description contains query
func (r *RecipeRepository) Search(ctx context.Context, query string) ([]*recipe.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.FindAll(ctx)
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var models []RecipeModel
	if err := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, apperrors.NewDatabaseError("search recipes", err)
	}
	return recipesFromModels(models), nil
}

func (r *RecipeRepository) lookupError(operation string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewRecipeNotFoundError(id)
	}
	return apperrors.NewDatabaseError(operation, err)
}

func recipesFromModels(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, RecipeFromModel(&models[i]))
	}
	return recipes
}
