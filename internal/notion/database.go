package notion

import (
	"context"
	"fmt"
)

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

type Sort struct {
	Property  string        `json:"property"`
	Direction SortDirection `json:"direction"`
}

// CheckboxFilter matches pages whose checkbox property equals Equals.
type CheckboxFilter struct {
	Property string
	Equals   bool
}

// Query selects pages from a database. A zero Limit returns every match.
type Query struct {
	Filter *CheckboxFilter
	Sorts  []Sort
	Limit  int
}

type queryBody struct {
	Filter      map[string]any `json:"filter,omitempty"`
	Sorts       []Sort         `json:"sorts,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// QueryDatabase runs q against a database, following cursors until the
// results are exhausted or q.Limit pages have been collected.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q Query) ([]Page, error) {
	body := queryBody{Sorts: q.Sorts}
	if q.Filter != nil {
		body.Filter = map[string]any{
			"property": q.Filter.Property,
			"checkbox": map[string]any{"equals": q.Filter.Equals},
		}
	}

	var pages []Page
	for {
		body.PageSize = maxPageSize
		if q.Limit > 0 && q.Limit-len(pages) < maxPageSize {
			body.PageSize = q.Limit - len(pages)
		}

		var resp queryResponse
		if err := c.do(ctx, "POST", "/databases/"+databaseID+"/query", nil, body, &resp); err != nil {
			return nil, fmt.Errorf("querying database %s: %w", databaseID, err)
		}
		pages = append(pages, resp.Results...)

		if q.Limit > 0 && len(pages) >= q.Limit {
			return pages[:q.Limit], nil
		}
		if !resp.HasMore || resp.NextCursor == nil {
			return pages, nil
		}
		body.StartCursor = *resp.NextCursor
	}
}
