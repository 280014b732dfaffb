package notion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var idPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12}`)

// NormalizeID accepts a dashed or undashed id, or a Notion URL ending in
// one, and returns the canonical dashed lower-case form.
func NormalizeID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	matches := idPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("no notion id in %q", s)
	}
	id, err := uuid.Parse(matches[len(matches)-1])
	if err != nil {
		return "", fmt.Errorf("parsing notion id %q: %w", s, err)
	}
	return id.String(), nil
}

// CompactID returns id without dashes, the form Notion uses in URLs.
func CompactID(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), "-", "")
}
