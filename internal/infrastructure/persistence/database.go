// Package persistence opens the configured database
package persistence

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chefwise/chefwise/internal/infrastructure/config"
	gormrepo "github.com/chefwise/chefwise/internal/infrastructure/persistence/gorm"
	"github.com/chefwise/chefwise/internal/infrastructure/persistence/postgres"
	"github.com/chefwise/chefwise/internal/infrastructure/persistence/sqlite"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
)

// Open connects to the database selected by cfg.Database.Driver and
// migrates the schema when auto-migration is enabled
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormLogger := gormrepo.NewLogger(log, cfg.App.LogLevel)

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = postgres.Open(cfg, gormLogger, log)
	case config.DriverSQLite, "":
		db, err = sqlite.SetupDatabase(cfg.Database.Path, gormLogger)
	default:
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("unsupported database driver %q", cfg.Database.Driver),
			"Set database.driver to sqlite or postgres.",
		)
	}
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.NewDatabaseError("open database", err)
	}

	if cfg.Database.AutoMigrate {
		if err := gormrepo.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	log.Debug("Database ready",
		zap.String("driver", cfg.Database.Driver),
		zap.String("location", cfg.StorageLocation()),
	)
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
