package gorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
)

// PreferencesRepository stores the single preferences row
type PreferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(db *gorm.DB) outbound.PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Get returns the stored preferences, inserting the defaults first when the
// row does not exist yet
func (r *PreferencesRepository) Get(ctx context.Context) (*preferences.UserPreferences, error) {
	db := r.db.WithContext(ctx)

	defaults := preferences.Default()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(PreferencesToModel(&defaults)).Error; err != nil {
		return nil, apperrors.NewDatabaseError("create default preferences", err)
	}

	var model UserPreferencesModel
	if err := db.First(&model, preferences.SingletonID).Error; err != nil {
		return nil, apperrors.NewDatabaseError("load preferences", err)
	}
	return PreferencesFromModel(&model), nil
}

// Update overwrites the preferences row
func (r *PreferencesRepository) Update(ctx context.Context, prefs *preferences.UserPreferences) error {
	model := PreferencesToModel(prefs)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"dietary_restrictions",
			"allergies",
			"disliked_ingredients",
			"favorite_cuisines",
			"skill_level",
			"serving_size",
			"max_cook_time_minutes",
			"prefer_quick_meals",
			"budget_conscious",
			"updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return apperrors.NewDatabaseError("update preferences", err)
	}

	prefs.UpdatedAt = model.UpdatedAt
	return nil
}
