package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/unas-org/unas-backend/pkg/config"
)

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "unas",
		Short: "UNAS backend administration",
		Long: `Administrative commands for the UNAS backend.

Configuration is read from the environment and from the env file given
with --env-file (searched upwards from the working directory).`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newBootstrapAdminCmd(),
		newReportCmd(),
	)
	return root
}

func loadConfig() (*config.App, error) {
	return config.Load(envFile)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
