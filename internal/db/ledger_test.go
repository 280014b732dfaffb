package db

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRecordMigration_InsertAndGet(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)

	edited := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	err := d.RecordMigration(Page{
		PageID:       "p1",
		Title:        "Hello",
		Path:         "Hello.md",
		ContentHash:  "abc",
		LastEditedAt: &edited,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := d.GetPage("p1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected page")
	}
	if got.Title != "Hello" || got.Path != "Hello.md" || got.ContentHash != "abc" {
		t.Errorf("unexpected page: %+v", got)
	}
	if got.LastEditedAt == nil || !got.LastEditedAt.Equal(edited) {
		t.Errorf("last edited = %v, want %v", got.LastEditedAt, edited)
	}
}

func TestRecordMigration_Upsert(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)

	if err := d.RecordMigration(Page{PageID: "p1", Title: "Old", Path: "Old.md", ContentHash: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := d.RecordMigration(Page{PageID: "p1", Title: "New", Path: "New.md", ContentHash: "2"}); err != nil {
		t.Fatal(err)
	}

	pages, err := d.ListPages()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Title != "New" || pages[0].ContentHash != "2" {
		t.Errorf("upsert did not replace: %+v", pages[0])
	}
	if pages[0].LastEditedAt != nil {
		t.Errorf("expected NULL last edited, got %v", pages[0].LastEditedAt)
	}
}

func TestGetPage_Missing(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)

	got, err := d.GetPage("nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestPathsByID(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)

	for _, p := range []Page{
		{PageID: "a", Title: "A", Path: "A.md", ContentHash: "x"},
		{PageID: "b", Title: "B", Path: "B.md", ContentHash: "y"},
	} {
		if err := d.RecordMigration(p); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := d.PathsByID()
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths["a"] != "A.md" || paths["b"] != "B.md" {
		t.Errorf("paths = %v", paths)
	}
}

func TestRuns(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)

	last, err := d.LastRun()
	if err != nil {
		t.Fatal(err)
	}
	if last != nil {
		t.Fatalf("expected no runs, got %+v", last)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id1, err := d.RecordRun(Run{StartedAt: start, FinishedAt: start.Add(time.Second), Succeeded: 1, Total: 2})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := d.RecordRun(Run{StartedAt: start, FinishedAt: start.Add(2 * time.Second), Succeeded: 3, Total: 3})
	if err != nil {
		t.Fatal(err)
	}
	if id2 <= id1 {
		t.Errorf("run ids not increasing: %d, %d", id1, id2)
	}

	last, err = d.LastRun()
	if err != nil {
		t.Fatal(err)
	}
	if last.ID != id2 || last.Succeeded != 3 || last.Total != 3 {
		t.Errorf("last run = %+v", last)
	}
}
