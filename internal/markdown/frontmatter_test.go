package markdown

import "testing"

func TestFrontmatter(t *testing.T) {
	t.Parallel()

	var f Frontmatter
	f.List("types", []string{`"[[Book]]"`, `"[[Idea]]"`})
	f.Field("URL", "https://example.com")
	f.Field("created", "2024-03-01 10:20")

	want := "---\ntypes:\n  - \"[[Book]]\"\n  - \"[[Idea]]\"\nURL: https://example.com\ncreated: 2024-03-01 10:20\n---\n"
	if got := f.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFrontmatter_EmptyList(t *testing.T) {
	t.Parallel()

	var f Frontmatter
	f.List("types", nil)
	if got := f.String(); got != "---\ntypes:\n---\n" {
		t.Errorf("got %q", got)
	}
}
