// Package render turns a tree of Notion blocks into a flat Markdown document.
//
// Rendering is pure: it never fails, never mutates the tree, and allocates
// its own list numbering state per sibling sequence.
package render

import (
	"strings"

	"github.com/jcdickinson/notionvault/internal/blocks"
)

// Render renders a sequence of sibling nodes. Numbering restarts at 1
// whenever a numbered item follows a sibling that is not one.
func Render(nodes []blocks.BlockNode) string {
	var sb strings.Builder
	ctx := NewListContext()
	prev := blocks.Type("")

	for i := range nodes {
		kind := nodes[i].Block.Kind()
		if prev != "" && prev != blocks.TypeNumberedListItem && kind == blocks.TypeNumberedListItem {
			ctx = NewListContext()
		}
		sb.WriteString(renderBlock(&nodes[i], ctx))
		prev = kind
	}
	return sb.String()
}
