package blocks

import "strings"

// RichTextType discriminates the variants of a rich text run.
type RichTextType string

const (
	RichTextText     RichTextType = "text"
	RichTextMention  RichTextType = "mention"
	RichTextEquation RichTextType = "equation"
)

// RichText is a styled span of inline text. Only Text runs carry a link that
// is rendered; mentions and equations contribute their PlainText.
type RichText struct {
	Type        RichTextType `json:"type"`
	PlainText   string       `json:"plain_text"`
	Href        string       `json:"href,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

// Annotations is the inline style set. Underline and Color are decoded so
// the JSON round-trips but the renderer ignores them.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color,omitempty"`
}

// DisplayText returns the visible text of the run: plain_text when the API
// supplied it, otherwise the raw text content.
func (r RichText) DisplayText() string {
	switch r.Type {
	case RichTextText:
		if r.PlainText != "" {
			return r.PlainText
		}
		if r.Text != nil {
			return r.Text.Content
		}
		return ""
	case RichTextMention, RichTextEquation:
		return r.PlainText
	default:
		return ""
	}
}

// LinkURL returns the hyperlink target of a text run, if any.
func (r RichText) LinkURL() string {
	if r.Type != RichTextText || r.Text == nil || r.Text.Link == nil {
		return ""
	}
	return r.Text.Link.URL
}

// PlainTexts concatenates the display text of runs without any markup.
func PlainTexts(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.DisplayText())
	}
	return b.String()
}
