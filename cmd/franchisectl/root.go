// cmd/franchisectl/root.go
package main

import (
	"github.com/spf13/cobra"

	"franchise-ops/internal/common/config"
	"franchise-ops/internal/common/logger"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "franchisectl",
		Short:         "Operator tool for franchise dashboards and menus",
		Long:          `franchisectl derives dashboard views, exports reports, seeds menu catalogs and maintains the activity registry without going through a workflow.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "configs/config.yaml", "config file used by commands that reach Postgres, Redis or Elasticsearch")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newDashboardCmd(opts),
		newExportCmd(opts),
		newCacheCmd(opts),
		newMenuCmd(opts),
		newRegistryCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger() logger.Logger {
	return logger.NewStructured(o.logLevel, "console")
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadFromFile(o.configFile)
}
