package blocks

// Type is the Notion block type discriminator ("paragraph", "to_do", ...).
type Type string

const (
	TypeParagraph        Type = "paragraph"
	TypeHeading1         Type = "heading_1"
	TypeHeading2         Type = "heading_2"
	TypeHeading3         Type = "heading_3"
	TypeBulletedListItem Type = "bulleted_list_item"
	TypeNumberedListItem Type = "numbered_list_item"
	TypeToDo             Type = "to_do"
	TypeToggle           Type = "toggle"
	TypeQuote            Type = "quote"
	TypeCallout          Type = "callout"
	TypeCode             Type = "code"
	TypeImage            Type = "image"
	TypeVideo            Type = "video"
	TypeBookmark         Type = "bookmark"
	TypeLinkPreview      Type = "link_preview"
	TypeDivider          Type = "divider"
	TypeTable            Type = "table"
	TypeTableRow         Type = "table_row"
	TypeEmbed            Type = "embed"

	// TypeUnsupported is reported by Kind for any block the model does not
	// know how to read.
	TypeUnsupported Type = "unsupported"
)

// Block is one structural unit of a page as returned by the blocks API.
// Exactly one payload pointer matching Type is set for known types.
type Block struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	HasChildren bool   `json:"has_children"`

	Paragraph        *TextBlock  `json:"paragraph,omitempty"`
	Heading1         *TextBlock  `json:"heading_1,omitempty"`
	Heading2         *TextBlock  `json:"heading_2,omitempty"`
	Heading3         *TextBlock  `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock  `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock  `json:"numbered_list_item,omitempty"`
	ToDo             *ToDoBlock  `json:"to_do,omitempty"`
	Toggle           *TextBlock  `json:"toggle,omitempty"`
	Quote            *TextBlock  `json:"quote,omitempty"`
	Callout          *TextBlock  `json:"callout,omitempty"`
	Code             *CodeBlock  `json:"code,omitempty"`
	Image            *FileRef    `json:"image,omitempty"`
	Video            *FileRef    `json:"video,omitempty"`
	Bookmark         *URLBlock   `json:"bookmark,omitempty"`
	LinkPreview      *URLBlock   `json:"link_preview,omitempty"`
	Divider          *struct{}   `json:"divider,omitempty"`
	Table            *TableBlock `json:"table,omitempty"`
	TableRow         *TableRow   `json:"table_row,omitempty"`
	Embed            *URLBlock   `json:"embed,omitempty"`
}

// TextBlock is the payload shared by every block that carries only rich text.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language"`
}

type URLBlock struct {
	URL string `json:"url"`
}

type TableBlock struct {
	TableWidth      int  `json:"table_width"`
	HasColumnHeader bool `json:"has_column_header"`
	HasRowHeader    bool `json:"has_row_header"`
}

// TableRow holds one rich-text run sequence per cell.
type TableRow struct {
	Cells [][]RichText `json:"cells"`
}

// FileRef is either an externally hosted file or one hosted by Notion.
type FileRef struct {
	Type     string    `json:"type"`
	External *FileLink `json:"external,omitempty"`
	File     *FileLink `json:"file,omitempty"`
}

type FileLink struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// URL returns the external url when present, otherwise the hosted one.
func (f *FileRef) URL() string {
	if f == nil {
		return ""
	}
	if f.External != nil && f.External.URL != "" {
		return f.External.URL
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}

// BlockNode is a block together with its resolved children.
type BlockNode struct {
	Block    Block       `json:"block"`
	Children []BlockNode `json:"children,omitempty"`
}

// Kind returns the block's variant, or TypeUnsupported when the type is
// unknown or its payload was not decoded.
func (b *Block) Kind() Type {
	var ok bool
	switch b.Type {
	case TypeParagraph:
		ok = b.Paragraph != nil
	case TypeHeading1:
		ok = b.Heading1 != nil
	case TypeHeading2:
		ok = b.Heading2 != nil
	case TypeHeading3:
		ok = b.Heading3 != nil
	case TypeBulletedListItem:
		ok = b.BulletedListItem != nil
	case TypeNumberedListItem:
		ok = b.NumberedListItem != nil
	case TypeToDo:
		ok = b.ToDo != nil
	case TypeToggle:
		ok = b.Toggle != nil
	case TypeQuote:
		ok = b.Quote != nil
	case TypeCallout:
		ok = b.Callout != nil
	case TypeCode:
		ok = b.Code != nil
	case TypeImage:
		ok = b.Image != nil
	case TypeVideo:
		ok = b.Video != nil
	case TypeBookmark:
		ok = b.Bookmark != nil
	case TypeLinkPreview:
		ok = b.LinkPreview != nil
	case TypeDivider:
		ok = true
	case TypeTable:
		ok = true
	case TypeTableRow:
		ok = b.TableRow != nil
	case TypeEmbed:
		ok = b.Embed != nil
	}
	if !ok {
		return TypeUnsupported
	}
	return b.Type
}
