package markdown

import (
	"strings"
	"testing"
)

func mapResolver(m map[string]string) Resolver {
	return func(dest string) (string, bool) {
		v, ok := m[dest]
		return v, ok
	}
}

func TestRewriteLinks_InlineLinks(t *testing.T) {
	t.Parallel()
	src := "See [Foo](old/path) for details."
	got := RewriteLinks(src, mapResolver(map[string]string{"old/path": "Foo.md"}))
	want := "See [Foo](Foo.md) for details."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRewriteLinks_ReferenceStyleLinks(t *testing.T) {
	t.Parallel()
	src := "See [Foo][ref] for details.\n\n[ref]: old/path"
	got := RewriteLinks(src, mapResolver(map[string]string{"old/path": "New.md"}))
	if !strings.Contains(got, "[ref]: New.md") {
		t.Errorf("reference link not rewritten: %q", got)
	}
}

func TestRewriteLinks_NilResolver(t *testing.T) {
	t.Parallel()
	src := "Hello [world](url)."
	if got := RewriteLinks(src, nil); got != src {
		t.Errorf("expected unchanged, got %q", got)
	}
}

func TestRewriteLinks_NoMatchingLinks(t *testing.T) {
	t.Parallel()
	src := "Check [this](keep-me) out."
	got := RewriteLinks(src, mapResolver(map[string]string{"other": "x.md"}))
	if got != src {
		t.Errorf("expected unchanged, got %q", got)
	}
}

func TestRewriteLinks_MultipleLinks(t *testing.T) {
	t.Parallel()
	src := "[A](a-dest) and [B](b-dest) together."
	got := RewriteLinks(src, mapResolver(map[string]string{
		"a-dest": "A.md",
		"b-dest": "B.md",
	}))
	if !strings.Contains(got, "(A.md)") {
		t.Error("link A not rewritten")
	}
	if !strings.Contains(got, "(B.md)") {
		t.Error("link B not rewritten")
	}
}

func TestRewriteLinks_InsideRenderedList(t *testing.T) {
	t.Parallel()
	src := "- see [Other](/1aeb266e0c708060a6fec6eb458e1379)\n  - nested **[x](https://example.com)**\n"
	resolve := VaultLinkResolver(map[string]string{
		"1aeb266e-0c70-8060-a6fe-c6eb458e1379": "Other Note.md",
	})
	got := RewriteLinks(src, resolve)
	want := "- see [Other](Other%20Note.md)\n  - nested **[x](https://example.com)**\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
