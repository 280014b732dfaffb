package markdown

import (
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// Resolver maps a link destination to its replacement. ok is false for
// destinations that should be left alone.
type Resolver func(dest string) (replacement string, ok bool)

// linkDestinations returns the distinct destinations of every link in src,
// in document order.
func linkDestinations(src string) []string {
	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	seen := make(map[string]bool)
	var dests []string
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		link, ok := node.(*ast.Link)
		if !entering || !ok {
			return ast.GoToNext
		}
		dest := string(link.Destination)
		if !seen[dest] {
			seen[dest] = true
			dests = append(dests, dest)
		}
		return ast.GoToNext
	})
	return dests
}

// RewriteLinks replaces link destinations that resolve maps. The document is
// parsed only to find destinations; replacement is textual so the rest of
// the rendered output is untouched. Both inline links and reference
// definitions are rewritten.
func RewriteLinks(src string, resolve Resolver) string {
	if resolve == nil || src == "" {
		return src
	}

	var inline []string
	refs := make(map[string]string)
	for _, dest := range linkDestinations(src) {
		to, ok := resolve(dest)
		if !ok || to == dest {
			continue
		}
		inline = append(inline, "]("+dest+")", "]("+to+")")
		refs["]: "+dest] = "]: " + to
	}
	if len(refs) == 0 {
		return src
	}

	lines := strings.Split(strings.NewReplacer(inline...).Replace(src), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for from, to := range refs {
			if strings.HasSuffix(trimmed, from) {
				lines[i] = strings.Replace(line, from, to, 1)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
