// Package preferences provides the application layer for the
// installation's single preferences record
package preferences

import (
	"context"

	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/internal/ports/outbound"
)

// Service implements the preferences use cases
type Service struct {
	uow    outbound.UnitOfWork
	logger *zap.Logger
}

var _ inbound.PreferencesService = (*Service)(nil)

// NewService creates a new preferences service
func NewService(uow outbound.UnitOfWork, logger *zap.Logger) *Service {
	return &Service{
		uow:    uow,
		logger: logger.Named("preferences"),
	}
}

// GetPreferences returns the stored preferences, creating the defaults on
// first use
func (s *Service) GetPreferences(ctx context.Context) (*preferences.UserPreferences, error) {
	var prefs *preferences.UserPreferences
	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		var err error
		prefs, err = repos.Preferences().Get(ctx)
		return err
	})
	return prefs, err
}

// UpdatePreferences validates and stores prefs
func (s *Service) UpdatePreferences(ctx context.Context, prefs preferences.UserPreferences) (*preferences.UserPreferences, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(repos outbound.Repositories) error {
		return repos.Preferences().Update(ctx, &prefs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Preferences updated",
		zap.Strings("dietary_restrictions", prefs.DietaryRestrictions),
		zap.String("skill_level", string(prefs.SkillLevel)),
		zap.Int("serving_size", prefs.ServingSize),
	)
	return &prefs, nil
}
