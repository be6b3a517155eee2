package main

import (
	"github.com/spf13/cobra"
	_ "github.com/unas-org/unas-backend/docs"
	"github.com/unas-org/unas-backend/infra/initializer"
	"github.com/unas-org/unas-backend/pkg/app"
	"github.com/unas-org/unas-backend/webapi"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			deps, err := initializer.InitializeDependencies(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return webapi.Serve(cmd.Context(), app.New(deps, cfg))
		},
	}
}
