package markdown

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jcdickinson/notionvault/internal/notion"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[/\\:*?"<>|]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
)

// SanitizeFilename strips characters that are invalid in file names on common
// platforms and collapses whitespace.
func SanitizeFilename(name string) string {
	s := invalidFilenameChars.ReplaceAllString(name, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NotionPageID returns the page id a link points at when the link targets a
// Notion page, either as an absolute notion.so/notion.site URL or as the
// workspace-relative "/<id>" form the API emits for inline page links.
func NotionPageID(dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil {
		return "", false
	}
	switch {
	case u.Host == "":
		if !strings.HasPrefix(u.Path, "/") {
			return "", false
		}
	case u.Host == "notion.so" || strings.HasSuffix(u.Host, ".notion.so"),
		strings.HasSuffix(u.Host, ".notion.site"):
	default:
		return "", false
	}
	id, err := notion.NormalizeID(u.Path)
	if err != nil {
		return "", false
	}
	return id, true
}

// VaultLinkResolver rewrites links to migrated Notion pages into relative
// links to the notes they were written to. paths maps page ids to file names.
func VaultLinkResolver(paths map[string]string) Resolver {
	return func(dest string) (string, bool) {
		id, ok := NotionPageID(dest)
		if !ok {
			return "", false
		}
		p, ok := paths[id]
		if !ok {
			return "", false
		}
		return (&url.URL{Path: p}).EscapedPath(), true
	}
}
