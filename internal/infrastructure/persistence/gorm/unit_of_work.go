package gorm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chefwise/chefwise/internal/infrastructure/monitoring"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
)

// repositories binds every repository to one *gorm.DB session
type repositories struct {
	db *gorm.DB
}

// NewRepositories returns repositories bound to db
func NewRepositories(db *gorm.DB) outbound.Repositories {
	return &repositories{db: db}
}

func (r *repositories) Recipes() outbound.RecipeRepository     { return NewRecipeRepository(r.db) }
func (r *repositories) MealPlans() outbound.MealPlanRepository { return NewMealPlanRepository(r.db) }
func (r *repositories) MealSlots() outbound.MealSlotRepository { return NewMealSlotRepository(r.db) }
func (r *repositories) Preferences() outbound.PreferencesRepository {
	return NewPreferencesRepository(r.db)
}

// UnitOfWork runs work inside a database transaction
type UnitOfWork struct {
	db      *gorm.DB
	logger  *zap.Logger
	metrics *monitoring.Metrics
	tracer  *monitoring.Tracer
}

// UnitOfWorkOption configures a UnitOfWork
type UnitOfWorkOption func(*UnitOfWork)

// WithUnitOfWorkMetrics records commit and rollback counts
func WithUnitOfWorkMetrics(m *monitoring.Metrics) UnitOfWorkOption {
	return func(u *UnitOfWork) { u.metrics = m }
}

// WithUnitOfWorkTracer wraps each unit of work in a span
func WithUnitOfWorkTracer(t *monitoring.Tracer) UnitOfWorkOption {
	return func(u *UnitOfWork) { u.tracer = t }
}

// NewUnitOfWork creates a new transactional unit of work
func NewUnitOfWork(db *gorm.DB, logger *zap.Logger, opts ...UnitOfWorkOption) *UnitOfWork {
	u := &UnitOfWork{
		db:     db,
		logger: logger.Named("unit-of-work"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

var _ outbound.UnitOfWork = (*UnitOfWork)(nil)

// Do runs fn in a transaction. The transaction commits when fn returns nil;
// on an error or a panic it is rolled back and the error or panic propagates.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos outbound.Repositories) error) (err error) {
	ctx, span := u.tracer.StartUnitOfWorkSpan(ctx)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		err = apperrors.NewDatabaseError("begin transaction", tx.Error)
		monitoring.EndSpan(span, err)
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		if rbErr := tx.Rollback().Error; rbErr != nil {
			u.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		u.metrics.RecordUnitOfWork(monitoring.OutcomeRollback)

		if r := recover(); r != nil {
			monitoring.EndSpan(span, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		u.logger.Debug("transaction rolled back", zap.Error(err))
		monitoring.EndSpan(span, err)
	}()

	if err = fn(NewRepositories(tx)); err != nil {
		return err
	}

	if err = tx.Commit().Error; err != nil {
		err = apperrors.NewDatabaseError("commit transaction", err)
		return err
	}

	committed = true
	u.metrics.RecordUnitOfWork(monitoring.OutcomeCommit)
	monitoring.EndSpan(span, nil)
	return nil
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return apperrors.NewDatabaseError("migrate schema", err)
	}
	return nil
}
