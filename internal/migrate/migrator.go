// Package migrate converts Notion pages into notes in an Obsidian vault.
//
// A Migrator asks its PageProvider which pages to convert, then for each one
// fetches the block tree, renders it, writes "<title>.md" into the vault and
// runs the PostProcessor. A failing page is logged and counted; the rest of
// the batch still runs.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jcdickinson/notionvault/internal/blocks"
	"github.com/jcdickinson/notionvault/internal/cache"
	"github.com/jcdickinson/notionvault/internal/cas"
	"github.com/jcdickinson/notionvault/internal/db"
	"github.com/jcdickinson/notionvault/internal/fetch"
	"github.com/jcdickinson/notionvault/internal/markdown"
	"github.com/jcdickinson/notionvault/internal/notion"
	"github.com/jcdickinson/notionvault/internal/render"
)

// UntitledName is used when a page has no usable title.
const UntitledName = "Untitled"

// cacheSettle is how long after its last edit a page's tree is always
// fetched. last_edited_time has minute precision, so an edit within the same
// minute keeps the same cache key.
const cacheSettle = 2 * time.Minute

// Source is the part of the Notion API a Migrator reads from.
type Source interface {
	fetch.Source
	PageRetriever
}

// Ledger records what was migrated. *db.DB implements it.
type Ledger interface {
	RecordMigration(p db.Page) error
	PathsByID() (map[string]string, error)
	RecordRun(r db.Run) (int, error)
}

type Migrator struct {
	src           Source
	outputDir     string
	provider      PageProvider
	frontmatter   FrontmatterGenerator
	post          PostProcessor
	trees         *cache.TreeCache
	ledger        Ledger
	snapshots     *cas.Store
	rewriteLinks  bool
	titleProperty string
	maxDepth      int
	logger        *slog.Logger
	progress      func(string)

	pathsOnce sync.Once
	pathsMu   sync.RWMutex
	paths     map[string]string
}

type Option func(*Migrator)

// WithOutputDir sets the vault directory notes are written to.
func WithOutputDir(dir string) Option {
	return func(m *Migrator) { m.outputDir = dir }
}

func WithProvider(p PageProvider) Option {
	return func(m *Migrator) { m.provider = p }
}

func WithFrontmatter(g FrontmatterGenerator) Option {
	return func(m *Migrator) { m.frontmatter = g }
}

func WithPostProcessor(p PostProcessor) Option {
	return func(m *Migrator) { m.post = p }
}

// WithTreeCache reuses fetched trees for pages that have not been edited
// since they were cached.
func WithTreeCache(c *cache.TreeCache) Option {
	return func(m *Migrator) { m.trees = c }
}

func WithLedger(l Ledger) Option {
	return func(m *Migrator) { m.ledger = l }
}

// WithSnapshots stores every written note in s, keyed by content hash.
func WithSnapshots(s *cas.Store) Option {
	return func(m *Migrator) { m.snapshots = s }
}

// WithLinkRewrite turns links to already migrated Notion pages into links
// to their notes.
func WithLinkRewrite(enabled bool) Option {
	return func(m *Migrator) { m.rewriteLinks = enabled }
}

// WithTitleProperty names the property holding a page's title. When empty
// the first title-typed property is used.
func WithTitleProperty(name string) Option {
	return func(m *Migrator) { m.titleProperty = name }
}

func WithMaxDepth(depth int) Option {
	return func(m *Migrator) { m.maxDepth = depth }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Migrator) { m.logger = l }
}

// WithProgress receives one human readable line per step of a run.
func WithProgress(fn func(string)) Option {
	return func(m *Migrator) { m.progress = fn }
}

func New(src Source, opts ...Option) *Migrator {
	m := &Migrator{
		src:         src,
		outputDir:   ".",
		frontmatter: DefaultFrontmatter{},
		post:        NoopPostProcessor{},
		logger:      slog.Default(),
		progress:    func(string) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Failure describes a page that could not be migrated.
type Failure struct {
	PageID string
	Title  string
	Err    error
}

type Result struct {
	Succeeded int
	Total     int
	Failures  []Failure
}

// Title returns the name a page is written under.
func (m *Migrator) Title(page *notion.Page) string {
	title := ""
	if m.titleProperty != "" {
		title = page.TitleOf(m.titleProperty)
	}
	if title == "" {
		title = page.Title()
	}
	if title == "" {
		return UntitledName
	}
	return title
}

// Filename returns the vault file name for a page.
func (m *Migrator) Filename(page *notion.Page) string {
	name := markdown.SanitizeFilename(m.Title(page))
	if name == "" {
		name = UntitledName
	}
	return name + ".md"
}

// Tree returns the page's block tree, from the tree cache when the page is
// unchanged since it was cached. Recently edited pages bypass the cache.
func (m *Migrator) Tree(ctx context.Context, page *notion.Page) ([]blocks.BlockNode, error) {
	useCache := m.trees != nil && time.Since(page.LastEditedTime) >= cacheSettle
	if useCache && m.trees.Has(page.ID, page.LastEditedTime) {
		tree, err := m.trees.Load(page.ID, page.LastEditedTime)
		if err == nil {
			m.logger.Debug("using cached tree", "page", page.ID)
			return tree, nil
		}
		m.logger.Warn("failed to load cached tree", "page", page.ID, "error", err)
	}

	tree, err := fetch.New(m.src, m.maxDepth, m.logger).Fetch(ctx, page.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	if useCache {
		if err := m.trees.Save(page.ID, page.LastEditedTime, tree); err != nil {
			m.logger.Warn("failed to cache tree", "page", page.ID, "error", err)
		}
	}
	return tree, nil
}

// Convert returns the full note for a page: frontmatter followed by the
// rendered body.
func (m *Migrator) Convert(ctx context.Context, page *notion.Page) (string, error) {
	front, err := m.frontmatter.Generate(page)
	if err != nil {
		return "", fmt.Errorf("generating frontmatter: %w", err)
	}

	tree, err := m.Tree(ctx, page)
	if err != nil {
		return "", err
	}

	body := render.Render(tree)
	if m.rewriteLinks {
		body = markdown.RewriteLinks(body, markdown.VaultLinkResolver(m.knownPaths()))
	}
	return front + body, nil
}

// ConvertByID retrieves a page and converts it.
func (m *Migrator) ConvertByID(ctx context.Context, id string) (*notion.Page, string, error) {
	page, err := m.src.RetrievePage(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	content, err := m.Convert(ctx, page)
	if err != nil {
		return nil, "", err
	}
	return page, content, nil
}

// MigratePage converts one page, writes it into the vault and runs the
// post-processor. It returns the path written.
func (m *Migrator) MigratePage(ctx context.Context, page *notion.Page) (string, error) {
	title := m.Title(page)
	m.progress(fmt.Sprintf("converting %s", title))

	content, err := m.Convert(ctx, page)
	if err != nil {
		return "", err
	}

	name := m.Filename(page)
	path := filepath.Join(m.outputDir, name)
	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating vault directory: %w", ErrWrite, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	m.rememberPath(page.ID, name)
	m.record(page, title, name, content)

	if err := m.post.Process(ctx, page); err != nil {
		return path, fmt.Errorf("%w: %w", ErrPostProcess, err)
	}

	m.progress(fmt.Sprintf("wrote %s", path))
	return path, nil
}

// MigrateByID retrieves a page and migrates it.
func (m *Migrator) MigrateByID(ctx context.Context, id string) (string, error) {
	page, err := m.src.RetrievePage(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	return m.MigratePage(ctx, page)
}

// record stores the snapshot and ledger entry. Failures are logged only; the
// note itself is already in the vault.
func (m *Migrator) record(page *notion.Page, title, name, content string) {
	hash := cas.Hash(content)
	if m.snapshots != nil {
		if _, err := m.snapshots.Write(content); err != nil {
			m.logger.Warn("failed to store snapshot", "page", page.ID, "error", err)
		}
	}
	if m.ledger == nil {
		return
	}
	edited := page.LastEditedTime
	if err := m.ledger.RecordMigration(db.Page{
		PageID:       page.ID,
		Title:        title,
		Path:         name,
		ContentHash:  hash,
		LastEditedAt: &edited,
	}); err != nil {
		m.logger.Warn("failed to record migration", "page", page.ID, "error", err)
	}
}

// Migrate converts every page the provider selects. The returned error is
// non-nil only when the provider itself fails.
func (m *Migrator) Migrate(ctx context.Context) (Result, error) {
	if m.provider == nil {
		return Result{}, errors.New("no page provider configured")
	}
	started := time.Now()

	pages, err := m.provider.Pages(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("selecting pages: %w", err)
	}
	m.progress(fmt.Sprintf("found %d pages to migrate", len(pages)))

	result := Result{Total: len(pages)}
	for i := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		page := &pages[i]
		title := m.Title(page)

		path, err := m.MigratePage(ctx, page)
		if err != nil {
			m.logger.Error("failed to migrate page", "page", page.ID, "title", title, "error", err)
			m.progress(fmt.Sprintf("%s: error: %v", title, err))
			result.Failures = append(result.Failures, Failure{PageID: page.ID, Title: title, Err: err})
			continue
		}
		m.logger.Info("migrated page", "page", page.ID, "title", title, "path", path)
		result.Succeeded++
	}

	if m.ledger != nil {
		if _, err := m.ledger.RecordRun(db.Run{
			StartedAt:  started,
			FinishedAt: time.Now(),
			Succeeded:  result.Succeeded,
			Total:      result.Total,
		}); err != nil {
			m.logger.Warn("failed to record run", "error", err)
		}
	}
	return result, nil
}

// knownPaths returns the page id to note name map used for link rewriting,
// seeded from the ledger on first use.
func (m *Migrator) knownPaths() map[string]string {
	m.pathsOnce.Do(func() {
		paths := make(map[string]string)
		if m.ledger != nil {
			stored, err := m.ledger.PathsByID()
			if err != nil {
				m.logger.Warn("failed to load migrated paths", "error", err)
			}
			for id, p := range stored {
				paths[id] = p
			}
		}
		m.pathsMu.Lock()
		for id, p := range m.paths {
			paths[id] = p
		}
		m.paths = paths
		m.pathsMu.Unlock()
	})

	m.pathsMu.RLock()
	defer m.pathsMu.RUnlock()
	out := make(map[string]string, len(m.paths))
	for id, p := range m.paths {
		out[id] = p
	}
	return out
}

func (m *Migrator) rememberPath(pageID, name string) {
	m.pathsMu.Lock()
	defer m.pathsMu.Unlock()
	if m.paths == nil {
		m.paths = make(map[string]string)
	}
	m.paths[pageID] = name
}
