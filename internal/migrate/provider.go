package migrate

import (
	"context"
	"fmt"

	"github.com/jcdickinson/notionvault/internal/notion"
)

// PageRetriever fetches a single page with its properties.
type PageRetriever interface {
	RetrievePage(ctx context.Context, id string) (*notion.Page, error)
}

// DatabaseQuerier runs a database query.
type DatabaseQuerier interface {
	QueryDatabase(ctx context.Context, databaseID string, q notion.Query) ([]notion.Page, error)
}

// PageProvider selects the pages a migration run converts.
type PageProvider interface {
	Pages(ctx context.Context) ([]notion.Page, error)
}

type singlePage struct {
	src PageRetriever
	id  string
}

// SinglePage provides exactly one page.
func SinglePage(src PageRetriever, id string) PageProvider {
	return singlePage{src: src, id: id}
}

func (p singlePage) Pages(ctx context.Context) ([]notion.Page, error) {
	page, err := p.src.RetrievePage(ctx, p.id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	return []notion.Page{*page}, nil
}

// DatabaseQuery provides the pages of a database whose migrated checkbox is
// unset, newest first.
type DatabaseQuery struct {
	Source           DatabaseQuerier
	DatabaseID       string
	Limit            int
	MigratedProperty string
	CreatedProperty  string
}

func (q DatabaseQuery) query() notion.Query {
	nq := notion.Query{Limit: q.Limit}
	if q.MigratedProperty != "" {
		nq.Filter = &notion.CheckboxFilter{Property: q.MigratedProperty, Equals: false}
	}
	if q.CreatedProperty != "" {
		nq.Sorts = []notion.Sort{{Property: q.CreatedProperty, Direction: notion.Descending}}
	}
	return nq
}

func (q DatabaseQuery) Pages(ctx context.Context) ([]notion.Page, error) {
	pages, err := q.Source.QueryDatabase(ctx, q.DatabaseID, q.query())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	return pages, nil
}
