package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/chefwise/chefwise/internal/infrastructure/config"
	"github.com/chefwise/chefwise/internal/infrastructure/container"
	"github.com/chefwise/chefwise/pkg/errors"
)

// loadConfig loads configuration and applies the global flag overrides
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, errors.NewConfigurationError(err.Error(), "Check the config file and the CHEFWISE_ environment variables.").
			WithCause(err)
	}
	if opts.metricsFile != "" {
		cfg.Monitoring.EnableMetrics = true
		cfg.Monitoring.MetricsFile = opts.metricsFile
	}
	return cfg, nil
}

// run builds the application, fills targets, and calls fn between start
// and stop
func run(ctx context.Context, opts *rootOptions, fn func(ctx context.Context) error, targets ...interface{}) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	app := container.New(cfg, targets...)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := app.Stop(context.Background()); err == nil {
			err = stopErr
		}
	}()

	return fn(ctx)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid id %q: must be a positive integer", arg))
	}
	return uint(id), nil
}
