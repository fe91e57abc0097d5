// Package main is the entry point for the chefwise CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chefwise/chefwise/pkg/errors"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.UserMessage(err))
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath  string
	metricsFile string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chefwise",
		Short: "ChefWise recipe assistant",
		Long: `ChefWise suggests recipes from the ingredients you have, plans meals,
and adapts recipes to your needs. Suggestions, plans and preferences are kept
in a local database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewValidationError(err.Error())
	})

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	cmd.AddCommand(suggestCmd(opts))
	cmd.AddCommand(planCmd(opts))
	cmd.AddCommand(modifyCmd(opts))
	cmd.AddCommand(scaleCmd(opts))
	cmd.AddCommand(substituteCmd(opts))
	cmd.AddCommand(recipesCmd(opts))
	cmd.AddCommand(plansCmd(opts))
	cmd.AddCommand(prefsCmd(opts))
	cmd.AddCommand(doctorCmd(opts))
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chefwise version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

// positional reports positional argument mistakes as validation errors
func positional(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := check(cmd, a); err != nil {
			return errors.NewValidationError(err.Error())
		}
		return nil
	}
}
