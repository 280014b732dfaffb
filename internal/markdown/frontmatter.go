package markdown

import "strings"

// Frontmatter accumulates YAML front-matter lines in insertion order.
// Values are written verbatim.
type Frontmatter struct {
	b strings.Builder
}

// Field appends "key: value".
func (f *Frontmatter) Field(key, value string) {
	f.b.WriteString(key + ": " + value + "\n")
}

// List appends a key followed by one indented "- item" line per item. The
// key is written even when items is empty.
func (f *Frontmatter) List(key string, items []string) {
	f.b.WriteString(key + ":\n")
	for _, item := range items {
		f.b.WriteString("  - " + item + "\n")
	}
}

// String returns the block delimited by "---" lines.
func (f *Frontmatter) String() string {
	return "---\n" + f.b.String() + "---\n"
}
