package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/unas-org/unas-backend/infra"
	"gorm.io/gorm"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			if err := infra.MigrateUp(db); err != nil {
				return err
			}
			return printVersion(cmd, db)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (all of them unless --steps is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 0 {
				return errors.New("--steps must not be negative")
			}
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			if err := infra.MigrateDown(db, steps); err != nil {
				return err
			}
			return printVersion(cmd, db)
		},
	}
	down.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back; 0 rolls back all")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			return printVersion(cmd, db)
		},
	}

	migrateCmd.AddCommand(up, down, version)
	return migrateCmd
}

func openDB(ctx context.Context) (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return infra.OpenPostgres(ctx, cfg.DB, cfg.Env)
}

func printVersion(cmd *cobra.Command, db *gorm.DB) error {
	v, dirty, err := infra.MigrationVersion(db)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", v, dirty)
	return err
}
