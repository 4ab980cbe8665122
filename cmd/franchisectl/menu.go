// cmd/franchisectl/menu.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"franchise-ops/internal/common/config"
	"franchise-ops/internal/common/database"
	"franchise-ops/internal/menu"
	"franchise-ops/internal/models"
)

var seedActor = models.Actor{Role: models.RoleSuperadmin}

type seedOptions struct {
	count    int
	seed     int64
	postgres bool
	index    bool
}

func newMenuCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect and seed the menu catalog",
	}

	seed := &seedOptions{}
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo menu items and assign them to dining sessions",
		Long: `seed creates the default dining sessions when missing and saves generated
menu items through the menu service. Without --postgres the catalog lives in
memory and is printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seed.count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			if seed.index && !seed.postgres {
				return fmt.Errorf("--index requires --postgres")
			}
			if !seed.postgres {
				svc := menu.NewService(menu.ServiceDependencies{
					Repository: menu.NewMemoryRepository(),
					Logger:     opts.logger(),
				})
				if _, err := seedMenu(cmd.Context(), svc, seed.count, seed.seed); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), catalogSnapshot(svc.Catalog()))
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return seedPostgres(cmd, opts, cfg, seed)
		},
	}
	seedCmd.Flags().IntVar(&seed.count, "count", 20, "number of menu items to generate")
	seedCmd.Flags().Int64Var(&seed.seed, "seed", time.Now().UnixNano(), "random seed; the same seed yields the same items")
	seedCmd.Flags().BoolVar(&seed.postgres, "postgres", false, "write to the configured Postgres database")
	seedCmd.Flags().BoolVar(&seed.index, "index", false, "also sync the configured Elasticsearch index")

	cmd.AddCommand(seedCmd)
	return cmd
}

func seedPostgres(cmd *cobra.Command, opts *rootOptions, cfg *config.Config, seed *seedOptions) error {
	ctx := cmd.Context()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()

	repo := menu.NewPostgresRepository(pg.GetDB())
	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate menu schema: %w", err)
	}

	deps := menu.ServiceDependencies{Repository: repo, Logger: opts.logger()}

	var searchIndex *menu.ESIndex
	if seed.index {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		if err := es.EnsureIndex(ctx, cfg.Menu.SearchIndex, menu.SearchMapping); err != nil {
			return err
		}
		searchIndex = menu.NewESIndex(es.Client, cfg.Menu.SearchIndex)
		deps.Indexer = searchIndex
	}

	svc := menu.NewService(deps)
	if err := svc.Load(ctx); err != nil {
		return err
	}

	n, err := seedMenu(ctx, svc, seed.count, seed.seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %d menu items\n", n)

	if searchIndex != nil {
		indexed, err := searchIndex.Sync(ctx, svc.Catalog())
		if err != nil {
			return fmt.Errorf("sync search index: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents into %s\n", indexed, cfg.Menu.SearchIndex)
	}
	return nil
}

// seedMenu saves any missing default session, then count generated items.
// It stops at the first failed save and reports how many items were saved.
func seedMenu(ctx context.Context, svc *menu.Service, count int, seed int64) (int, error) {
	for _, s := range menu.DefaultSessions() {
		if _, ok := svc.Catalog().Session(s.ID); ok {
			continue
		}
		if err := svc.SaveSession(ctx, s); err != nil {
			return 0, fmt.Errorf("save session %s: %w", s.ID, err)
		}
	}

	saved := 0
	for _, seedItem := range menu.NewItemFactory(seed).Generate(count, svc.Catalog().Sessions()) {
		if _, err := svc.SaveMenuItem(ctx, seedActor, seedItem.Item, seedItem.SessionIDs); err != nil {
			return saved, fmt.Errorf("save %s: %w", seedItem.Item.Name, err)
		}
		saved++
	}
	return saved, nil
}

type catalogView struct {
	Sessions []models.DiningSession `json:"sessions"`
	Items    []models.MenuItem      `json:"items"`
}

func catalogSnapshot(c *menu.Catalog) catalogView {
	return catalogView{Sessions: c.Sessions(), Items: c.Items()}
}
