package migrate

import (
	"context"

	"github.com/jcdickinson/notionvault/internal/notion"
)

// PostProcessor runs after a note has been written.
type PostProcessor interface {
	Process(ctx context.Context, page *notion.Page) error
}

// CheckboxUpdater sets a checkbox property on a page.
type CheckboxUpdater interface {
	UpdateCheckbox(ctx context.Context, pageID, property string, value bool) error
}

type NoopPostProcessor struct{}

func (NoopPostProcessor) Process(context.Context, *notion.Page) error { return nil }

// MarkMigrated ticks the named checkbox so the page is not selected again.
type MarkMigrated struct {
	Updater  CheckboxUpdater
	Property string
}

func (m MarkMigrated) Process(ctx context.Context, page *notion.Page) error {
	return m.Updater.UpdateCheckbox(ctx, page.ID, m.Property, true)
}
