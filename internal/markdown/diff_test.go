package markdown

import (
	"strings"
	"testing"
)

func TestDiff_Equal(t *testing.T) {
	t.Parallel()
	if got := Diff("a\nb\n", "a\nb\n"); got != "" {
		t.Errorf("expected empty diff, got %q", got)
	}
}

func TestDiff_Lines(t *testing.T) {
	t.Parallel()

	got := Diff("# Title\nold line\nkeep\n", "# Title\nnew line\nkeep\n")
	for _, want := range []string{" # Title\n", "-old line\n", "+new line\n", " keep\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff missing %q:\n%s", want, got)
		}
	}
}

func TestDiff_MissingTrailingNewline(t *testing.T) {
	t.Parallel()

	got := Diff("a", "b")
	if got != "-a\n+b\n" {
		t.Errorf("got %q", got)
	}
}
