package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/chefwise/chefwise/pkg/errors"
	"github.com/chefwise/chefwise/pkg/healthcheck"
)

func doctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the database, draft store and model settings",
		Long: `Check that the database and draft store are reachable and that a model
API key is configured. A missing key is reported as degraded, not unhealthy,
because library commands still work without it.`,
		Args: positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hc *healthcheck.HealthCheck
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				response := hc.Check(ctx)
				response.Version = version

				if err := printJSON(cmd.OutOrStdout(), response); err != nil {
					return err
				}
				if response.Status == healthcheck.StatusUnhealthy {
					return errors.NewInternalError("One or more health checks failed")
				}
				return nil
			}, &hc)
		},
	}
}
