package cas

import (
	"errors"
	"io/fs"
	"testing"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	content := "---\ncreated: 2024-03-01 10:20\n---\n# Hello\n"
	hash, err := s.Write(content)
	if err != nil {
		t.Fatal(err)
	}
	if hash != Hash(content) {
		t.Fatalf("hash = %q, want %q", hash, Hash(content))
	}

	got, err := s.Read(hash)
	if err != nil {
		t.Fatal(err)
	}
	if got != content {
		t.Errorf("round-trip failed: got %q, want %q", got, content)
	}
}

func TestWrite_Dedup(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	hash1, err := s.Write("duplicate content")
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := s.Write("duplicate content")
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != hash2 {
		t.Errorf("same content produced different hashes: %s vs %s", hash1, hash2)
	}
}

func TestWrite_DifferentContent(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	hash1, err := s.Write("content A")
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := s.Write("content B")
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash2 {
		t.Error("different content should produce different hashes")
	}
}

func TestRead_MissingHash(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())

	_, err := s.Read("0000000000000000000000000000000000000000000000000000000000000000")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := s.Read(""); err == nil {
		t.Fatal("expected error for empty hash")
	}
}
