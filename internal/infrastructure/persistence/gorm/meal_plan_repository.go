package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create stores the plan together with its slots
func (r *MealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	model := MealPlanToModel(plan)
	model.ID = 0
	for i := range model.Meals {
		model.Meals[i].ID = 0
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.NewDatabaseError("create meal plan", err)
	}

	saved := MealPlanFromModel(model)
	plan.ID = saved.ID
	plan.Meals = saved.Meals
	plan.CreatedAt = saved.CreatedAt
	plan.UpdatedAt = saved.UpdatedAt
	return nil
}

// Update overwrites the plan and replaces all of its slots
func (r *MealPlanRepository) Update(ctx context.Context, plan *mealplan.MealPlan) error {
	db := r.db.WithContext(ctx)

	var existing MealPlanModel
	if err := db.First(&existing, plan.ID).Error; err != nil {
		return r.lookupError("update meal plan", plan.ID, err)
	}

	model := MealPlanToModel(plan)
	model.CreatedAt = existing.CreatedAt
	if err := db.Omit("Meals").Save(model).Error; err != nil {
		return apperrors.NewDatabaseError("update meal plan", err)
	}

	if err := db.Where("meal_plan_id = ?", plan.ID).Delete(&MealSlotModel{}).Error; err != nil {
		return apperrors.NewDatabaseError("replace meal slots", err)
	}

	slots := make([]MealSlotModel, 0, len(plan.Meals))
	for _, slot := range plan.Meals {
		m := MealSlotToModel(plan.ID, slot)
		m.ID = 0
		slots = append(slots, *m)
	}
	if len(slots) > 0 {
		if err := db.Create(&slots).Error; err != nil {
			return apperrors.NewDatabaseError("replace meal slots", err)
		}
	}

	meals := make([]mealplan.MealSlot, 0, len(slots))
	for i := range slots {
		meals = append(meals, MealSlotFromModel(&slots[i]))
	}
	plan.Meals = meals
	plan.CreatedAt = model.CreatedAt
	plan.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes the plan and its slots
func (r *MealPlanRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	var existing MealPlanModel
	if err := db.Select("id").First(&existing, id).Error; err != nil {
		return r.lookupError("delete meal plan", id, err)
	}

	if err := db.Where("meal_plan_id = ?", id).Delete(&MealSlotModel{}).Error; err != nil {
		return apperrors.NewDatabaseError("delete meal slots", err)
	}
	if err := db.Delete(&MealPlanModel{}, id).Error; err != nil {
		return apperrors.NewDatabaseError("delete meal plan", err)
	}
	return nil
}

// FindByID retrieves a plan and its slots
func (r *MealPlanRepository) FindByID(ctx context.Context, id uint) (*mealplan.MealPlan, error) {
	var model MealPlanModel
	if err := r.withMeals(ctx).First(&model, id).Error; err != nil {
		return nil, r.lookupError("find meal plan", id, err)
	}
	return MealPlanFromModel(&model), nil
}

// FindAll lists every plan, newest first
func (r *MealPlanRepository) FindAll(ctx context.Context) ([]*mealplan.MealPlan, error) {
	var models []MealPlanModel
	if err := r.withMeals(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, apperrors.NewDatabaseError("list meal plans", err)
	}

	plans := make([]*mealplan.MealPlan, 0, len(models))
	for i := range models {
		plans = append(plans, MealPlanFromModel(&models[i]))
	}
	return plans, nil
}

// FindCurrent returns the newest plan whose range includes day
func (r *MealPlanRepository) FindCurrent(ctx context.Context, day time.Time) (*mealplan.MealPlan, error) {
	d := mealplan.DateOf(day)

	var model MealPlanModel
	err := r.withMeals(ctx).
		Where("start_date <= ? AND end_date >= ?", d, d).
		Order("start_date DESC, id DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("Current meal plan").
			WithMetadata("date", mealplan.FormatDate(d))
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find current meal plan", err)
	}
	return MealPlanFromModel(&model), nil
}

func (r *MealPlanRepository) withMeals(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Meals", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC, id ASC")
	})
}

func (r *MealPlanRepository) lookupError(operation string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewMealPlanNotFoundError(id)
	}
	return apperrors.NewDatabaseError(operation, err)
}

// MealSlotRepository implements the meal slot repository interface using GORM
type MealSlotRepository struct {
	db *gorm.DB
}

// NewMealSlotRepository creates a new meal slot repository
func NewMealSlotRepository(db *gorm.DB) outbound.MealSlotRepository {
	return &MealSlotRepository{db: db}
}

// FindByID retrieves a single slot
func (r *MealSlotRepository) FindByID(ctx context.Context, id uint) (*mealplan.MealSlot, error) {
	var model MealSlotModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewMealSlotNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find meal slot", err)
	}
	slot := MealSlotFromModel(&model)
	return &slot, nil
}

// FindByMealPlan lists the slots of one plan in date order
func (r *MealSlotRepository) FindByMealPlan(ctx context.Context, planID uint) ([]mealplan.MealSlot, error) {
	var models []MealSlotModel
	if err := r.db.WithContext(ctx).
		Where("meal_plan_id = ?", planID).
		Order("date ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, apperrors.NewDatabaseError("list meal slots", err)
	}

	slots := make([]mealplan.MealSlot, 0, len(models))
	for i := range models {
		slots = append(slots, MealSlotFromModel(&models[i]))
	}
	return slots, nil
}
