package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Page is a Notion page. Properties stay as raw JSON and are read on demand;
// missing or malformed properties read as zero values.
type Page struct {
	ID             string    `json:"id"`
	CreatedTime    time.Time `json:"created_time"`
	LastEditedTime time.Time `json:"last_edited_time"`
	URL            string    `json:"url"`
	Archived       bool      `json:"archived"`

	raw []byte
}

func (p *Page) UnmarshalJSON(data []byte) error {
	type plain Page
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Page(decoded)
	p.raw = append([]byte(nil), data...)
	return nil
}

func (p Page) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type plain Page
	return json.Marshal(plain(p))
}

func (p *Page) properties() gjson.Result {
	return gjson.GetBytes(p.raw, "properties")
}

// property returns the first property matching name, or, with an empty name,
// the first property of the given type.
func (p *Page) property(name, typ string) gjson.Result {
	var found gjson.Result
	p.properties().ForEach(func(key, value gjson.Result) bool {
		if name != "" && key.String() != name {
			return true
		}
		if typ != "" && value.Get("type").String() != typ {
			return name == ""
		}
		found = value
		return false
	})
	return found
}

// Title returns the concatenated plain text of the page's title property.
func (p *Page) Title() string {
	return joinPlainText(p.property("", "title").Get("title"))
}

// TitleOf returns the title text stored under the named property.
func (p *Page) TitleOf(name string) string {
	return joinPlainText(p.property(name, "title").Get("title"))
}

// PropertyURL returns the value of the first url-typed property.
func (p *Page) PropertyURL() string {
	return p.property("", "url").Get("url").String()
}

// Relations returns the page ids of the first relation-typed property.
func (p *Page) Relations() []string {
	var ids []string
	p.property("", "relation").Get("relation").ForEach(func(_, value gjson.Result) bool {
		if id := value.Get("id").String(); id != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// Checkbox returns the value of the named checkbox property.
func (p *Page) Checkbox(name string) bool {
	return p.property(name, "checkbox").Get("checkbox").Bool()
}

func joinPlainText(runs gjson.Result) string {
	var b strings.Builder
	runs.ForEach(func(_, value gjson.Result) bool {
		b.WriteString(value.Get("plain_text").String())
		return true
	})
	return b.String()
}

// RetrievePage fetches a single page with its properties.
func (c *Client) RetrievePage(ctx context.Context, id string) (*Page, error) {
	var page Page
	if err := c.do(ctx, "GET", "/pages/"+id, nil, nil, &page); err != nil {
		return nil, fmt.Errorf("retrieving page %s: %w", id, err)
	}
	return &page, nil
}

// UpdateCheckbox sets a checkbox property on a page.
func (c *Client) UpdateCheckbox(ctx context.Context, pageID, property string, value bool) error {
	body := map[string]any{
		"properties": map[string]any{
			property: map[string]any{"checkbox": value},
		},
	}
	if err := c.do(ctx, "PATCH", "/pages/"+pageID, nil, body, nil); err != nil {
		return fmt.Errorf("updating %q on page %s: %w", property, pageID, err)
	}
	return nil
}
