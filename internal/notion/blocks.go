package notion

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jcdickinson/notionvault/internal/blocks"
)

// BlockList is one page of a block children listing.
type BlockList struct {
	Results    []blocks.Block `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor *string        `json:"next_cursor"`
}

// Cursor returns the continuation token, or "" when the listing is done.
func (l *BlockList) Cursor() string {
	if !l.HasMore || l.NextCursor == nil {
		return ""
	}
	return *l.NextCursor
}

// ListBlockChildren fetches one page of the direct children of a block.
// Pass an empty cursor for the first page.
func (c *Client) ListBlockChildren(ctx context.Context, blockID, cursor string) (*BlockList, error) {
	q := url.Values{}
	q.Set("page_size", strconv.Itoa(maxPageSize))
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}

	var list BlockList
	if err := c.do(ctx, "GET", "/blocks/"+blockID+"/children", q, nil, &list); err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", blockID, err)
	}
	return &list, nil
}
