// Package cache stores fetched block trees on disk so unchanged pages are
// not re-fetched. Entries are keyed by page id and last edit time; an edit
// produces a new key and the old entry is simply never read again.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jcdickinson/notionvault/internal/blocks"
	"github.com/klauspost/compress/zstd"
)

type TreeCache struct {
	dir string
}

func New(dir string) *TreeCache {
	return &TreeCache{dir: dir}
}

func (c *TreeCache) path(pageID string, edited time.Time) string {
	return filepath.Join(c.dir, pageID+"_"+strconv.FormatInt(edited.UTC().Unix(), 10)+".json.zst")
}

// Save compresses and writes a fetched tree to disk.
func (c *TreeCache) Save(pageID string, edited time.Time, tree []blocks.BlockNode) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating tree cache dir: %w", err)
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding tree: %w", err)
	}

	f, err := os.Create(c.path(pageID, edited))
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	w, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing compressed data: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	return nil
}

// Load reads a cached tree for the page as of the given edit time.
func (c *TreeCache) Load(pageID string, edited time.Time) ([]blocks.BlockNode, error) {
	f, err := os.Open(c.path(pageID, edited))
	if err != nil {
		return nil, fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()

	var tree []blocks.BlockNode
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decoding cached tree: %w", err)
	}
	return tree, nil
}

// Has checks whether a tree for the page as of the given edit time exists.
func (c *TreeCache) Has(pageID string, edited time.Time) bool {
	_, err := os.Stat(c.path(pageID, edited))
	return err == nil
}

// Clear removes every cached tree.
func (c *TreeCache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("removing tree cache: %w", err)
	}
	return nil
}
