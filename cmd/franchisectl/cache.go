// cmd/franchisectl/cache.go
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"franchise-ops/internal/common/database"
	"franchise-ops/internal/dashboard"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the dashboard view cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Delete every cached dashboard view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			rdb, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			defer rdb.Close()

			cache := dashboard.NewCachedPipeline(
				dashboard.NewSeedPipeline(),
				rdb.Client,
				cfg.Dashboard.KeyPrefix,
				time.Duration(cfg.Dashboard.CacheTTL)*time.Second,
				opts.logger(),
			)
			n, err := cache.Invalidate(cmd.Context())
			if err != nil {
				return fmt.Errorf("flush dashboard cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cached views\n", n)
			return nil
		},
	})
	return cmd
}
