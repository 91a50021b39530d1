package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
	"github.com/zatekoja/shortstay/backend/migrations"
	"github.com/zatekoja/shortstay/backend/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the shortstay database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			observability.InitLogger("shortstay-migrate", cfg.App.Env)
			if databaseURL == "" {
				databaseURL = cfg.Database.MigrationURL()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "",
		"postgres:// URL (defaults to the DB_* environment)")

	withRunner := func(fn func(r *migrations.Runner) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			runner, err := migrations.NewRunner(databaseURL)
			if err != nil {
				return err
			}
			defer runner.Close()
			return fn(runner)
		}
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(r *migrations.Runner) error {
			if err := r.Up(); err != nil {
				return err
			}
			return printVersion(r)
		}),
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(r *migrations.Runner) error {
			if err := r.Down(steps); err != nil {
				return err
			}
			return printVersion(r)
		}),
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE:  withRunner(printVersion),
	}

	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
	return rootCmd
}

func printVersion(r *migrations.Runner) error {
	version, dirty, err := r.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	return nil
}
