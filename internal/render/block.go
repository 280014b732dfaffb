package render

import (
	"strconv"
	"strings"

	"github.com/jcdickinson/notionvault/internal/blocks"
)

// renderBlock renders one node. Every fragment ends with the newline(s) its
// variant needs so siblings can be concatenated directly.
func renderBlock(node *blocks.BlockNode, ctx *ListContext) string {
	b := &node.Block
	children := node.Children

	switch b.Kind() {
	case blocks.TypeParagraph:
		text := FormatRichText(b.Paragraph.RichText)
		if strings.TrimSpace(text) == "" {
			return "\n"
		}
		return text + "\n"

	case blocks.TypeHeading1:
		return "# " + FormatRichText(b.Heading1.RichText) + "\n"
	case blocks.TypeHeading2:
		return "## " + FormatRichText(b.Heading2.RichText) + "\n"
	case blocks.TypeHeading3:
		return "### " + FormatRichText(b.Heading3.RichText) + "\n"

	case blocks.TypeBulletedListItem:
		content := "- " + FormatRichText(b.BulletedListItem.RichText) + "\n"
		if len(children) > 0 {
			content += indentLines(Render(children), "  ", nil)
		}
		return content

	case blocks.TypeNumberedListItem:
		number := ctx.Next()
		content := strconv.Itoa(number) + ". " + FormatRichText(b.NumberedListItem.RichText) + "\n"
		if len(children) > 0 {
			ctx.Push()
			childContent := Render(children)
			ctx.Pop()
			content += indentLines(childContent, "  ", nil)
		}
		return content

	case blocks.TypeToDo:
		checkbox := "[ ]"
		if b.ToDo.Checked {
			checkbox = "[x]"
		}
		return "- " + checkbox + " " + FormatRichText(b.ToDo.RichText) + "\n"

	case blocks.TypeToggle:
		content := "- " + FormatRichText(b.Toggle.RichText) + "\n"
		if len(children) > 0 {
			content += indentLines(Render(children), "  ", nil)
		}
		return content

	case blocks.TypeQuote:
		var sb strings.Builder
		for _, line := range splitLines(FormatRichText(b.Quote.RichText)) {
			sb.WriteString("> " + line + "\n")
		}
		if len(children) > 0 {
			sb.WriteString(prefixLines(Render(children), ">", nil))
		}
		sb.WriteString("\n")
		return sb.String()

	case blocks.TypeCode:
		language := strings.ReplaceAll(strings.ToLower(b.Code.Language), " ", "")
		return "```" + language + "\n" + FormatRichText(b.Code.RichText) + "\n```\n"

	case blocks.TypeCallout:
		text := FormatRichText(b.Callout.RichText)
		content := "> [!note] " + text + "\n"
		if len(children) > 0 {
			content += indentLines(Render(children), ">", func(line string) bool {
				return line != text
			})
		}
		return content + "\n"

	case blocks.TypeImage:
		return "![](" + b.Image.URL() + ")\n\n"
	case blocks.TypeVideo:
		return "![](" + b.Video.URL() + ")\n\n"

	case blocks.TypeBookmark:
		return "[" + b.Bookmark.URL + "](" + b.Bookmark.URL + ")\n\n"
	case blocks.TypeLinkPreview:
		return "[" + b.LinkPreview.URL + "](" + b.LinkPreview.URL + ")\n\n"

	case blocks.TypeDivider:
		return "---\n\n"

	case blocks.TypeEmbed:
		return `<iframe src="` + b.Embed.URL + `" width="100%" height="500px"></iframe>` + "\n\n"

	case blocks.TypeTable:
		return renderTable(children)

	case blocks.TypeTableRow, blocks.TypeUnsupported:
		return renderChildren(children)
	}
	return ""
}

func renderChildren(children []blocks.BlockNode) string {
	if len(children) == 0 {
		return ""
	}
	return Render(children)
}

// renderTable uses the first row as the header. Without a leading table_row
// only the trailing blank line is emitted.
func renderTable(rows []blocks.BlockNode) string {
	var sb strings.Builder
	if len(rows) > 0 && rows[0].Block.Kind() == blocks.TypeTableRow {
		header := rows[0].Block.TableRow
		writeRow(&sb, header)

		sb.WriteString("|")
		for range header.Cells {
			sb.WriteString(" --- |")
		}
		sb.WriteString("\n")

		for i := 1; i < len(rows); i++ {
			if rows[i].Block.Kind() != blocks.TypeTableRow {
				continue
			}
			writeRow(&sb, rows[i].Block.TableRow)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func writeRow(sb *strings.Builder, row *blocks.TableRow) {
	sb.WriteString("|")
	for _, cell := range row.Cells {
		sb.WriteString(" " + FormatRichText(cell) + " |")
	}
	sb.WriteString("\n")
}

// indentLines collapses blank-line runs in a child fragment once, then
// prefixes each remaining line with marker.
func indentLines(fragment, marker string, keep func(string) bool) string {
	return prefixLines(strings.ReplaceAll(fragment, "\n\n", "\n"), marker, keep)
}

// prefixLines prefixes every line of fragment with marker, dropping lines
// keep rejects. The result ends with a newline unless it is empty.
func prefixLines(fragment, marker string, keep func(string) bool) string {
	var out []string
	for _, line := range splitLines(fragment) {
		if keep != nil && !keep(line) {
			continue
		}
		out = append(out, marker+line)
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// splitLines splits on newlines without producing a trailing empty line for
// a terminating newline. An empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
