package render

import (
	"strings"

	"github.com/jcdickinson/notionvault/internal/blocks"
)

// FormatRichText converts styled runs into inline Markdown. Annotations wrap
// in a fixed order, innermost first: bold, italic, strikethrough, code.
// Markdown-significant characters in the source text are passed through.
func FormatRichText(runs []blocks.RichText) string {
	if len(runs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(formatRun(r))
	}
	return b.String()
}

func formatRun(r blocks.RichText) string {
	content := r.DisplayText()
	if url := r.LinkURL(); url != "" {
		content = "[" + content + "](" + url + ")"
	}

	a := r.Annotations
	if a == nil {
		return content
	}
	if a.Bold {
		content = "**" + content + "**"
	}
	if a.Italic {
		content = "*" + content + "*"
	}
	if a.Strikethrough {
		content = "~~" + content + "~~"
	}
	if a.Code {
		content = "`" + content + "`"
	}
	return content
}
