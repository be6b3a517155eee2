package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/unas-org/unas-backend/infra/initializer"
	"github.com/unas-org/unas-backend/pkg/app"
)

func newBootstrapAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the admin user and the administrative unit if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			admin, created, err := a.BootstrapService.EnsureAdmin(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (%s)\n", admin.Email, admin.ID)
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", admin.Email)
			}
			return err
		},
	}
}

func newReportCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "report <unit_id>",
		Short: "Print the report of a unit as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unitID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid unit id %q: %w", args[0], err)
			}
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			r, err := a.ReportService.ForUnit(cmd.Context(), unitID, month)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM; empty for all time")
	return cmd
}

func buildApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	deps, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return app.New(deps, cfg), nil
}
