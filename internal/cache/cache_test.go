package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jcdickinson/notionvault/internal/blocks"
	"github.com/jcdickinson/notionvault/internal/render"
)

func sampleTree() []blocks.BlockNode {
	return []blocks.BlockNode{
		blocks.Node(blocks.Heading(1, blocks.Text("Title"))),
		blocks.Node(blocks.Bulleted(blocks.Bold("a")),
			blocks.Node(blocks.Numbered(blocks.LinkText("b", "https://e.com"))),
		),
		blocks.Node(blocks.Table(2), blocks.Node(blocks.TableRowOf("x", "y"))),
	}
}

func TestTreeCache_RoundTrip(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir())
	edited := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	tree := sampleTree()

	if c.Has("page", edited) {
		t.Fatal("empty cache reports a hit")
	}
	if err := c.Save("page", edited, tree); err != nil {
		t.Fatal(err)
	}
	if !c.Has("page", edited) {
		t.Fatal("expected cache hit after save")
	}

	got, err := c.Load("page", edited)
	if err != nil {
		t.Fatal(err)
	}
	if render.Render(got) != render.Render(tree) {
		t.Errorf("cached tree renders differently:\n%q\n%q", render.Render(got), render.Render(tree))
	}
}

func TestTreeCache_EditTimeIsPartOfKey(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir())
	edited := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	if err := c.Save("page", edited, sampleTree()); err != nil {
		t.Fatal(err)
	}
	if c.Has("page", edited.Add(time.Minute)) {
		t.Error("a later edit must miss the cache")
	}
	if _, err := c.Load("page", edited.Add(time.Minute)); err == nil {
		t.Error("expected error loading a missing entry")
	}
}

func TestTreeCache_Clear(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "trees")
	c := New(dir)
	edited := time.Unix(1700000000, 0)
	if err := c.Save("page", edited, sampleTree()); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if c.Has("page", edited) {
		t.Error("entry survived Clear")
	}
}
