package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcdickinson/notionvault/internal/migrate"
	"github.com/jcdickinson/notionvault/internal/notion"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Write Notion pages into the vault",
	Long: `Convert pages to Markdown and write them into the vault as <title>.md.

With --page a single page is migrated. Otherwise the source database is
queried for pages whose migrated checkbox is unset, newest first.`,
	Example: `  notionvault migrate --page 1aeb266e0c708060a6fec6eb458e1379
  notionvault migrate --limit 5
  notionvault migrate --no-mark --limit 20`,
	Args: cobra.NoArgs,
	Run:  runMigrate,
}

var (
	migratePage   string
	migrateLimit  int
	migrateNoMark bool
)

func init() {
	migrateCmd.Flags().StringVar(&migratePage, "page", "", "migrate a single page (id or URL)")
	migrateCmd.Flags().IntVar(&migrateLimit, "limit", 0, "max pages to migrate from the database (default source.limit)")
	migrateCmd.Flags().BoolVar(&migrateNoMark, "no-mark", false, "do not tick the migrated checkbox afterwards")
}

func runMigrate(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	provider, err := a.provider()
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts := []migrate.Option{
		migrate.WithProvider(provider),
		migrate.WithProgress(func(msg string) { fmt.Printf("  %s\n", msg) }),
	}
	if !migrateNoMark && a.cfg.Properties.Migrated != "" {
		opts = append(opts, migrate.WithPostProcessor(migrate.MarkMigrated{
			Updater:  a.client,
			Property: a.cfg.Properties.Migrated,
		}))
	}

	m, err := a.migrator(ctx, opts...)
	if err != nil {
		log.Fatalf("failed to set up migration: %v", err)
	}

	res, err := m.Migrate(ctx)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	for _, f := range res.Failures {
		fmt.Printf("  %s: error: %v\n", f.Title, f.Err)
	}
	fmt.Printf("migrated %d / %d pages\n", res.Succeeded, res.Total)
	if res.Succeeded < res.Total {
		a.Close()
		os.Exit(1)
	}
}

func (a *app) provider() (migrate.PageProvider, error) {
	if migratePage != "" {
		id, err := pageID(migratePage)
		if err != nil {
			return nil, err
		}
		return migrate.SinglePage(a.client, id), nil
	}

	if a.cfg.Source.DatabaseID == "" {
		return nil, fmt.Errorf("no --page given and source.database_id (ALL_DATABASE_ID) is not set")
	}
	dbID, err := notion.NormalizeID(a.cfg.Source.DatabaseID)
	if err != nil {
		return nil, fmt.Errorf("source database: %w", err)
	}

	limit := migrateLimit
	if limit <= 0 {
		limit = a.cfg.Source.Limit
	}
	return migrate.DatabaseQuery{
		Source:           a.client,
		DatabaseID:       dbID,
		Limit:            limit,
		MigratedProperty: a.cfg.Properties.Migrated,
		CreatedProperty:  a.cfg.Properties.Created,
	}, nil
}
