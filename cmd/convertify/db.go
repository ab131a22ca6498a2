package main

import (
	"context"
	"errors"
	"fmt"

	"convertify/internal/repository/postgres"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the postgres record table",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the converted_files table if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd.Context(), func(ctx context.Context, repo *postgres.PostgresConversionRepository) error {
			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (prefix: %s)\n", cfg.TablePrefix)
			return nil
		})
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the converted_files table (refused when ENVIRONMENT=prod)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Environment == "prod" {
			return errors.New("refusing to drop tables in the prod environment")
		}
		return withRepository(cmd.Context(), func(ctx context.Context, repo *postgres.PostgresConversionRepository) error {
			if err := repo.DropSchema(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "table dropped (prefix: %s)\n", cfg.TablePrefix)
			return nil
		})
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd, dbDropCmd)
	rootCmd.AddCommand(dbCmd)
}

func withRepository(ctx context.Context, fn func(context.Context, *postgres.PostgresConversionRepository) error) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	repo := postgres.NewConversionRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	})
	defer repo.Close()
	return fn(ctx, repo)
}
