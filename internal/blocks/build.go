package blocks

// Constructors used by fixtures and tests. They mirror the shape the API
// returns so rendered output matches what a fetched tree produces.

// Text returns a plain text run.
func Text(content string) RichText {
	return RichText{
		Type:        RichTextText,
		PlainText:   content,
		Text:        &TextContent{Content: content},
		Annotations: &Annotations{},
	}
}

// LinkText returns a text run hyperlinked to url.
func LinkText(content, url string) RichText {
	r := Text(content)
	r.Text.Link = &Link{URL: url}
	r.Href = url
	return r
}

// Styled returns a copy of r with the given annotations applied.
func Styled(r RichText, a Annotations) RichText {
	r.Annotations = &a
	return r
}

func Bold(content string) RichText {
	return Styled(Text(content), Annotations{Bold: true})
}

// Mention returns a mention run with the given display text.
func Mention(display string) RichText {
	return RichText{Type: RichTextMention, PlainText: display, Annotations: &Annotations{}}
}

// Equation returns an inline equation run with the given display text.
func Equation(display string) RichText {
	return RichText{Type: RichTextEquation, PlainText: display, Annotations: &Annotations{}}
}

// Node wraps a block and its children, setting HasChildren accordingly.
func Node(b Block, children ...BlockNode) BlockNode {
	b.HasChildren = len(children) > 0
	return BlockNode{Block: b, Children: children}
}

func textBlock(runs []RichText) *TextBlock {
	return &TextBlock{RichText: runs}
}

func Paragraph(runs ...RichText) Block {
	return Block{Type: TypeParagraph, Paragraph: textBlock(runs)}
}

// Heading returns a heading block of level 1, 2 or 3.
func Heading(level int, runs ...RichText) Block {
	switch level {
	case 1:
		return Block{Type: TypeHeading1, Heading1: textBlock(runs)}
	case 2:
		return Block{Type: TypeHeading2, Heading2: textBlock(runs)}
	default:
		return Block{Type: TypeHeading3, Heading3: textBlock(runs)}
	}
}

func Bulleted(runs ...RichText) Block {
	return Block{Type: TypeBulletedListItem, BulletedListItem: textBlock(runs)}
}

func Numbered(runs ...RichText) Block {
	return Block{Type: TypeNumberedListItem, NumberedListItem: textBlock(runs)}
}

func ToDo(checked bool, runs ...RichText) Block {
	return Block{Type: TypeToDo, ToDo: &ToDoBlock{RichText: runs, Checked: checked}}
}

func Toggle(runs ...RichText) Block {
	return Block{Type: TypeToggle, Toggle: textBlock(runs)}
}

func Quote(runs ...RichText) Block {
	return Block{Type: TypeQuote, Quote: textBlock(runs)}
}

func Callout(runs ...RichText) Block {
	return Block{Type: TypeCallout, Callout: textBlock(runs)}
}

func Code(language string, runs ...RichText) Block {
	return Block{Type: TypeCode, Code: &CodeBlock{RichText: runs, Language: language}}
}

// Image returns an image block pointing at an external url.
func Image(url string) Block {
	return Block{Type: TypeImage, Image: &FileRef{Type: "external", External: &FileLink{URL: url}}}
}

func Video(url string) Block {
	return Block{Type: TypeVideo, Video: &FileRef{Type: "external", External: &FileLink{URL: url}}}
}

func Bookmark(url string) Block {
	return Block{Type: TypeBookmark, Bookmark: &URLBlock{URL: url}}
}

func LinkPreview(url string) Block {
	return Block{Type: TypeLinkPreview, LinkPreview: &URLBlock{URL: url}}
}

func Divider() Block {
	return Block{Type: TypeDivider, Divider: &struct{}{}}
}

func Embed(url string) Block {
	return Block{Type: TypeEmbed, Embed: &URLBlock{URL: url}}
}

func Table(width int) Block {
	return Block{Type: TypeTable, Table: &TableBlock{TableWidth: width}}
}

// TableRowOf returns a table row whose cells each hold a single text run.
func TableRowOf(cells ...string) Block {
	row := &TableRow{}
	for _, c := range cells {
		row.Cells = append(row.Cells, []RichText{Text(c)})
	}
	return Block{Type: TypeTableRow, TableRow: row}
}
