package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcdickinson/notionvault/internal/cache"
	"github.com/jcdickinson/notionvault/internal/cas"
	"github.com/jcdickinson/notionvault/internal/config"
	"github.com/jcdickinson/notionvault/internal/db"
	"github.com/jcdickinson/notionvault/internal/migrate"
	"github.com/jcdickinson/notionvault/internal/notion"
)

// app holds everything a command needs to talk to Notion and the vault.
type app struct {
	cfg    *config.Config
	client *notion.Client
	ledger *db.DB
	store  *cas.Store
	trees  *cache.TreeCache
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ledger, err := db.New(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	a := &app{
		cfg: cfg,
		client: notion.NewClient(cfg.Notion.Token.Value,
			notion.WithBaseURL(cfg.Notion.BaseURL),
			notion.WithVersion(cfg.Notion.Version),
			notion.WithRateLimit(cfg.Notion.RequestsPerSecond),
		),
		ledger: ledger,
		store:  cas.New(config.CASDir()),
	}
	if cfg.Cache.Enabled {
		a.trees = cache.New(config.TreeCacheDir())
	}
	return a, nil
}

func (a *app) Close() error {
	return a.ledger.Close()
}

// frontmatter returns the tag-aware generator when a tag database is
// configured, otherwise the default one.
func (a *app) frontmatter(ctx context.Context) (migrate.FrontmatterGenerator, error) {
	if a.cfg.Source.TagDatabaseID == "" {
		return migrate.DefaultFrontmatter{}, nil
	}
	tagDB, err := notion.NormalizeID(a.cfg.Source.TagDatabaseID)
	if err != nil {
		return nil, fmt.Errorf("tag database: %w", err)
	}
	tags, err := migrate.LoadTags(ctx, a.client, tagDB, a.cfg.Properties.Title)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded tags", "count", len(tags))
	return migrate.TagFrontmatter{Tags: tags}, nil
}

// migrator builds a Migrator from config. extra options are applied last.
func (a *app) migrator(ctx context.Context, extra ...migrate.Option) (*migrate.Migrator, error) {
	front, err := a.frontmatter(ctx)
	if err != nil {
		return nil, err
	}

	opts := []migrate.Option{
		migrate.WithOutputDir(a.cfg.Vault.Dir),
		migrate.WithFrontmatter(front),
		migrate.WithLedger(a.ledger),
		migrate.WithSnapshots(a.store),
		migrate.WithLinkRewrite(a.cfg.Links.Rewrite),
		migrate.WithTitleProperty(a.cfg.Properties.Title),
		migrate.WithMaxDepth(a.cfg.Render.MaxDepth),
		migrate.WithLogger(slog.Default()),
	}
	if a.trees != nil {
		opts = append(opts, migrate.WithTreeCache(a.trees))
	}
	return migrate.New(a.client, append(opts, extra...)...), nil
}

// pageID normalizes a page id or URL given on the command line.
func pageID(arg string) (string, error) {
	id, err := notion.NormalizeID(arg)
	if err != nil {
		return "", errors.New("expected a Notion page id or URL")
	}
	return id, nil
}
