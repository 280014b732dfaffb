package render

import (
	"strings"
	"testing"

	"github.com/jcdickinson/notionvault/internal/blocks"
)

func n(b blocks.Block, children ...blocks.BlockNode) blocks.BlockNode {
	return blocks.Node(b, children...)
}

func text(s string) blocks.RichText { return blocks.Text(s) }

func TestRender_Document(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Heading(1, text("Title"))),
		n(blocks.Paragraph(blocks.Bold("hi"))),
		n(blocks.Bulleted(text("a")), n(blocks.Bulleted(text("b")))),
	}
	got := Render(doc)
	want := "# Title\n**hi**\n- a\n  - b\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()
	if got := Render(nil); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestRender_NumberingRestartsAfterInterruption(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Paragraph(text("p"))),
		n(blocks.Numbered(text("a"))),
		n(blocks.Numbered(text("b"))),
		n(blocks.Paragraph(text("q"))),
		n(blocks.Numbered(text("c"))),
	}
	got := Render(doc)
	want := "p\n1. a\n2. b\nq\n1. c\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_NestedNumberedLists(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Numbered(text("a"))),
		n(blocks.Numbered(text("b")),
			n(blocks.Numbered(text("x"))),
			n(blocks.Numbered(text("y"))),
			n(blocks.Numbered(text("z"))),
		),
		n(blocks.Numbered(text("c"))),
	}
	got := Render(doc)
	want := "1. a\n2. b\n  1. x\n  2. y\n  3. z\n3. c\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_DeepBullets(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Bulleted(text("a")),
			n(blocks.Bulleted(text("b")),
				n(blocks.Bulleted(text("c"))),
			),
		),
	}
	got := Render(doc)
	want := "- a\n  - b\n    - c\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Paragraphs(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Paragraph(text("   "))),
		n(blocks.Paragraph()),
		n(blocks.Paragraph(text("body"))),
	}
	if got := Render(doc); got != "\n\nbody\n" {
		t.Errorf("got %q", got)
	}
}

func TestRender_Headings(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Heading(1, text("one"))),
		n(blocks.Heading(2, text("two"))),
		n(blocks.Heading(3, text("three"))),
	}
	if got := Render(doc); got != "# one\n## two\n### three\n" {
		t.Errorf("got %q", got)
	}
}

func TestRender_ToDo(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.ToDo(true, text("done"))),
		n(blocks.ToDo(false, text("open"))),
	}
	if got := Render(doc); got != "- [x] done\n- [ ] open\n" {
		t.Errorf("got %q", got)
	}
}

func TestRender_ToggleCollapsesBlankLines(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Toggle(text("t")),
			n(blocks.Paragraph(text("x"))),
			n(blocks.Paragraph()),
			n(blocks.Paragraph(text("y"))),
		),
	}
	got := Render(doc)
	want := "- t\n  x\n  y\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Quote(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Quote(text("line1\nline2")), n(blocks.Paragraph(text("kid")))),
	}
	got := Render(doc)
	want := "> line1\n> line2\n>kid\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_QuoteChildrenNotCollapsed(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Quote(text("q")), n(blocks.Divider())),
	}
	got := Render(doc)
	want := "> q\n>---\n>\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_CalloutDropsLinesEqualToText(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Callout(text("Note")),
			n(blocks.Paragraph(text("Note"))),
			n(blocks.Paragraph(text("body"))),
		),
	}
	got := Render(doc)
	want := "> [!note] Note\n>body\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_CalloutWithoutChildren(t *testing.T) {
	t.Parallel()

	got := Render([]blocks.BlockNode{n(blocks.Callout(text("tip")))})
	if got != "> [!note] tip\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestRender_Code(t *testing.T) {
	t.Parallel()

	got := Render([]blocks.BlockNode{n(blocks.Code("Rust", text("fn main() {}")))})
	want := "```rust\nfn main() {}\n```\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_CodeMultiWordLanguage(t *testing.T) {
	t.Parallel()

	got := Render([]blocks.BlockNode{n(blocks.Code("Plain Text", text("hello")))})
	want := "```plaintext\nhello\n```\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_MediaAndLinks(t *testing.T) {
	t.Parallel()

	hosted := blocks.Block{Type: blocks.TypeVideo, Video: &blocks.FileRef{
		Type: "file",
		File: &blocks.FileLink{URL: "https://files/v.mp4"},
	}}
	doc := []blocks.BlockNode{
		n(blocks.Image("https://img/a.png")),
		n(hosted),
		n(blocks.Bookmark("https://b.example")),
		n(blocks.LinkPreview("https://lp.example")),
		n(blocks.Divider()),
		n(blocks.Embed("https://embed.example")),
	}
	got := Render(doc)
	want := "![](https://img/a.png)\n\n" +
		"![](https://files/v.mp4)\n\n" +
		"[https://b.example](https://b.example)\n\n" +
		"[https://lp.example](https://lp.example)\n\n" +
		"---\n\n" +
		`<iframe src="https://embed.example" width="100%" height="500px"></iframe>` + "\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Table(2),
			n(blocks.TableRowOf("h1", "h2")),
			n(blocks.TableRowOf("a", "b")),
			n(blocks.TableRowOf("c", "d")),
		),
	}
	got := Render(doc)
	want := "| h1 | h2 |\n| --- | --- |\n| a | b |\n| c | d |\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_TableWithoutRows(t *testing.T) {
	t.Parallel()

	if got := Render([]blocks.BlockNode{n(blocks.Table(3))}); got != "\n" {
		t.Errorf("got %q, want single newline", got)
	}
}

func TestRender_UnsupportedRecursesIntoChildren(t *testing.T) {
	t.Parallel()

	column := blocks.Block{Type: "column"}
	doc := []blocks.BlockNode{
		n(column, n(blocks.Paragraph(text("inside")))),
		n(blocks.Block{Type: "child_page"}),
	}
	if got := Render(doc); got != "inside\n" {
		t.Errorf("got %q", got)
	}
}

func TestRender_TopLevelTableRowRendersChildrenOnly(t *testing.T) {
	t.Parallel()

	if got := Render([]blocks.BlockNode{n(blocks.TableRowOf("x"))}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestRender_HasChildrenFalseSkipsChildRendering(t *testing.T) {
	t.Parallel()

	node := blocks.BlockNode{Block: blocks.Bulleted(text("solo"))}
	if got := Render([]blocks.BlockNode{node}); got != "- solo\n" {
		t.Errorf("got %q", got)
	}
}

func TestRender_DoesNotMutateTree(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Numbered(text("a")), n(blocks.Numbered(text("b")))),
		n(blocks.Callout(text("c")), n(blocks.Paragraph(text("d")))),
	}
	first := Render(doc)
	second := Render(doc)
	if first != second {
		t.Errorf("render is not repeatable:\n%q\n%q", first, second)
	}
	if len(doc[0].Children) != 1 || blocks.PlainTexts(doc[0].Block.NumberedListItem.RichText) != "a" {
		t.Error("tree was modified")
	}
}

func TestRender_NestedBlankLinesCollapseOncePerLevel(t *testing.T) {
	t.Parallel()

	doc := []blocks.BlockNode{
		n(blocks.Bulleted(text("outer")),
			n(blocks.Quote(text("q"))),
			n(blocks.Paragraph(text("after"))),
		),
	}
	got := Render(doc)
	if !strings.HasPrefix(got, "- outer\n  > q\n") {
		t.Errorf("unexpected output %q", got)
	}
	if strings.Contains(got, "\n\n") {
		t.Errorf("blank line should be collapsed at this level, got %q", got)
	}
}
