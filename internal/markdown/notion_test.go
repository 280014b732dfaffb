package markdown

import "testing"

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Plain title":            "Plain title",
		`a/b\c:d*e?f"g<h>i|j`:    "abcdefghij",
		"  lots   of\t\nspace  ": "lots of space",
		"日本語: メモ":                "日本語 メモ",
		"":                       "",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNotionPageID(t *testing.T) {
	t.Parallel()

	want := "1aeb266e-0c70-8060-a6fe-c6eb458e1379"
	hits := []string{
		"/1aeb266e0c708060a6fec6eb458e1379",
		"https://www.notion.so/My-Page-1aeb266e0c708060a6fec6eb458e1379",
		"https://notion.so/1aeb266e0c708060a6fec6eb458e1379?pvs=4",
		"https://team.notion.site/Page-1aeb266e0c708060a6fec6eb458e1379",
	}
	for _, dest := range hits {
		got, ok := NotionPageID(dest)
		if !ok || got != want {
			t.Errorf("NotionPageID(%q) = %q, %v", dest, got, ok)
		}
	}

	misses := []string{
		"https://example.com/1aeb266e0c708060a6fec6eb458e1379",
		"relative/1aeb266e0c708060a6fec6eb458e1379",
		"/docs/readme",
		"https://www.notion.so/pricing",
	}
	for _, dest := range misses {
		if id, ok := NotionPageID(dest); ok {
			t.Errorf("NotionPageID(%q) unexpectedly matched %q", dest, id)
		}
	}
}

func TestVaultLinkResolver_UnknownPage(t *testing.T) {
	t.Parallel()

	resolve := VaultLinkResolver(map[string]string{})
	if _, ok := resolve("/1aeb266e0c708060a6fec6eb458e1379"); ok {
		t.Error("unmigrated page should not resolve")
	}
}
