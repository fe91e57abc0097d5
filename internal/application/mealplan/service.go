// Package mealplan provides the application layer for saved meal plans
package mealplan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	"github.com/chefwise/chefwise/pkg/errors"
)

// Service implements the meal plan library use cases
type Service struct {
	uow    outbound.UnitOfWork
	logger *zap.Logger
	now    func() time.Time
}

var _ inbound.MealPlanLibrary = (*Service)(nil)

// Option configures a Service
type Option func(*Service)

// WithClock replaces the time source used to find the current plan
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new meal plan library service
func NewService(uow outbound.UnitOfWork, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		uow:    uow,
		logger: logger.Named("meal-plan-library"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SavePlan persists a new plan and its slots
func (s *Service) SavePlan(ctx context.Context, plan *mealplan.MealPlan) (*mealplan.MealPlan, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		return repos.MealPlans().Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Meal plan saved",
		zap.Uint("meal_plan_id", plan.ID),
		zap.String("name", plan.Name),
		zap.Int("meals", len(plan.Meals)),
	)
	return plan, nil
}

// GetPlan retrieves a plan with its slots
func (s *Service) GetPlan(ctx context.Context, id uint) (*mealplan.MealPlan, error) {
	var plan *mealplan.MealPlan
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		plan, err = repos.MealPlans().FindByID(ctx, id)
		return err
	})
	return plan, err
}

// ListPlans returns every saved plan, newest first
func (s *Service) ListPlans(ctx context.Context) ([]*mealplan.MealPlan, error) {
	var plans []*mealplan.MealPlan
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		plans, err = repos.MealPlans().FindAll(ctx)
		return err
	})
	return plans, err
}

// CurrentPlan returns the newest plan covering today
func (s *Service) CurrentPlan(ctx context.Context) (*mealplan.MealPlan, error) {
	var plan *mealplan.MealPlan
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		plan, err = repos.MealPlans().FindCurrent(ctx, s.now())
		return err
	})
	return plan, err
}

// UpdatePlan overwrites a plan, replacing all of its slots
func (s *Service) UpdatePlan(ctx context.Context, plan *mealplan.MealPlan) (*mealplan.MealPlan, error) {
	if plan.ID == 0 {
		return nil, errors.NewValidationError("meal plan ID is required")
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		return repos.MealPlans().Update(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Meal plan updated", zap.Uint("meal_plan_id", plan.ID))
	return plan, nil
}

// DeletePlan removes a plan and its slots
func (s *Service) DeletePlan(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		return repos.MealPlans().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Meal plan deleted", zap.Uint("meal_plan_id", id))
	return nil
}

// GetSlot retrieves a single planned meal
func (s *Service) GetSlot(ctx context.Context, id uint) (*mealplan.MealSlot, error) {
	var slot *mealplan.MealSlot
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		slot, err = repos.MealSlots().FindByID(ctx, id)
		return err
	})
	return slot, err
}
