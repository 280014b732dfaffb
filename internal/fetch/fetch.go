// Package fetch resolves a block and all of its descendants into an
// in-memory tree.
package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcdickinson/notionvault/internal/blocks"
	"github.com/jcdickinson/notionvault/internal/notion"
)

// DefaultMaxDepth bounds how many levels of nested blocks are fetched.
const DefaultMaxDepth = 64

// Source lists one page of a block's direct children.
type Source interface {
	ListBlockChildren(ctx context.Context, blockID, cursor string) (*notion.BlockList, error)
}

type Fetcher struct {
	src      Source
	maxDepth int
	logger   *slog.Logger
}

// New returns a Fetcher. A maxDepth of zero or less uses DefaultMaxDepth.
func New(src Source, maxDepth int, logger *slog.Logger) *Fetcher {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{src: src, maxDepth: maxDepth, logger: logger}
}

type pending struct {
	id    string
	depth int
	dest  *[]blocks.BlockNode
}

// Fetch returns the children of rootID with every descendant resolved.
// Traversal uses an explicit stack; each parent's listing is paginated to
// exhaustion before any child is visited. Blocks nested deeper than the
// configured depth are kept but their children are not fetched.
func (f *Fetcher) Fetch(ctx context.Context, rootID string) ([]blocks.BlockNode, error) {
	var root []blocks.BlockNode
	stack := []pending{{id: rootID, depth: 1, dest: &root}}
	requests, total := 0, 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, n, err := f.listAll(ctx, p.id)
		requests += n
		if err != nil {
			return nil, err
		}
		total += len(children)

		nodes := make([]blocks.BlockNode, len(children))
		for i := range children {
			nodes[i].Block = children[i]
		}
		*p.dest = nodes

		// Pushed in reverse so siblings are visited in document order.
		for i := len(nodes) - 1; i >= 0; i-- {
			b := &nodes[i].Block
			if !b.HasChildren || b.ID == "" {
				continue
			}
			if p.depth >= f.maxDepth {
				f.logger.Warn("skipping children beyond max depth", "block", b.ID, "depth", p.depth)
				continue
			}
			stack = append(stack, pending{id: b.ID, depth: p.depth + 1, dest: &nodes[i].Children})
		}
	}

	f.logger.Debug("fetched block tree", "root", rootID, "blocks", total, "requests", requests)
	return root, nil
}

func (f *Fetcher) listAll(ctx context.Context, blockID string) ([]blocks.Block, int, error) {
	var (
		out      []blocks.Block
		cursor   string
		requests int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, requests, err
		}
		page, err := f.src.ListBlockChildren(ctx, blockID, cursor)
		requests++
		if err != nil {
			return nil, requests, fmt.Errorf("fetching children of %s: %w", blockID, err)
		}
		out = append(out, page.Results...)

		cursor = page.Cursor()
		if cursor == "" {
			return out, requests, nil
		}
	}
}
