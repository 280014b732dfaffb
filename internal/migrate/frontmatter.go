package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/jcdickinson/notionvault/internal/markdown"
	"github.com/jcdickinson/notionvault/internal/notion"
)

// FrontmatterGenerator produces the YAML block written above a note's body.
type FrontmatterGenerator interface {
	Generate(page *notion.Page) (string, error)
}

const createdLayout = "2006-01-02 15:04"

func formatCreated(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(createdLayout)
}

// DefaultFrontmatter writes only the page's creation time. A nil Location
// uses the local zone.
type DefaultFrontmatter struct {
	Location *time.Location
}

func (g DefaultFrontmatter) Generate(page *notion.Page) (string, error) {
	var f markdown.Frontmatter
	f.Field("created", formatCreated(page.CreatedTime, g.Location))
	return f.String(), nil
}

// TagFrontmatter lists the page's related tags as wiki links under "types",
// followed by its url property and creation time. Tags maps tag page ids to
// tag names; relations to unknown pages are dropped.
type TagFrontmatter struct {
	Tags     map[string]string
	Location *time.Location
}

func (g TagFrontmatter) Generate(page *notion.Page) (string, error) {
	var types []string
	for _, id := range page.Relations() {
		if name, ok := g.Tags[id]; ok {
			types = append(types, fmt.Sprintf("%q", "[["+name+"]]"))
		}
	}

	var f markdown.Frontmatter
	f.List("types", types)
	if u := page.PropertyURL(); u != "" {
		f.Field("URL", u)
	}
	f.Field("created", formatCreated(page.CreatedTime, g.Location))
	return f.String(), nil
}

// LoadTags reads a tag database into a page id to name map, querying in
// ascending order of the title property.
func LoadTags(ctx context.Context, src DatabaseQuerier, databaseID, titleProperty string) (map[string]string, error) {
	q := notion.Query{}
	if titleProperty != "" {
		q.Sorts = []notion.Sort{{Property: titleProperty, Direction: notion.Ascending}}
	}
	pages, err := src.QueryDatabase(ctx, databaseID, q)
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}

	tags := make(map[string]string, len(pages))
	for i := range pages {
		name := pages[i].TitleOf(titleProperty)
		if titleProperty == "" {
			name = pages[i].Title()
		}
		if name != "" {
			tags[pages[i].ID] = name
		}
	}
	return tags, nil
}
