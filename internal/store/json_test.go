// ABOUTME: Tests for the JSON-file saved-article store
// ABOUTME: Covers idempotent saves, removal, membership, and reopen persistence

package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/threatwire/internal/models"
	"github.com/harper/threatwire/internal/store"
)

func testArticle(id, url string) models.Article {
	return models.Article{
		ID:          id,
		Title:       "Title " + id,
		Description: "desc",
		URL:         url,
		Source:      "Test Source",
	}
}

func newTestStore(t *testing.T) (*store.JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saved.json")
	s, err := store.NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	return s, path
}

func TestSave_AndList(t *testing.T) {
	s, _ := newTestStore(t)

	ok, err := s.Save(testArticle("a-1", "https://example.com/1"))
	if err != nil || !ok {
		t.Fatalf("Save = %v, %v; want true, nil", ok, err)
	}

	saved, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("got %d saved articles, want 1", len(saved))
	}
	if saved[0].ID != "a-1" {
		t.Errorf("id = %q", saved[0].ID)
	}
	if saved[0].SavedAt.IsZero() {
		t.Error("savedAt not set")
	}
}

func TestSave_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)

	article := testArticle("a-1", "https://example.com/1")
	if ok, _ := s.Save(article); !ok {
		t.Fatal("first save rejected")
	}
	ok, err := s.Save(article)
	if err != nil {
		t.Fatalf("second save errored: %v", err)
	}
	if ok {
		t.Error("second save reported true, want idempotent false")
	}

	saved, _ := s.List()
	if len(saved) != 1 {
		t.Errorf("got %d saved articles after duplicate save, want 1", len(saved))
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	s.Save(testArticle("a-1", "https://example.com/1"))

	ok, err := s.Remove("a-1")
	if err != nil || !ok {
		t.Fatalf("Remove = %v, %v; want true, nil", ok, err)
	}
	ok, err = s.Remove("a-1")
	if err != nil {
		t.Fatalf("second remove errored: %v", err)
	}
	if ok {
		t.Error("removing an absent id reported true")
	}

	saved, _ := s.List()
	if len(saved) != 0 {
		t.Errorf("got %d saved articles after remove, want 0", len(saved))
	}
}

func TestContainsIDs(t *testing.T) {
	s, _ := newTestStore(t)
	s.Save(testArticle("a-1", "https://example.com/1"))
	s.Save(testArticle("a-2", "https://example.com/2"))

	ids, err := s.ContainsIDs()
	if err != nil {
		t.Fatalf("ContainsIDs: %v", err)
	}
	if len(ids) != 2 || !ids["a-1"] || !ids["a-2"] {
		t.Errorf("ids = %v", ids)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)
	s.Save(testArticle("a-1", "https://example.com/1"))
	s.Close()

	reopened, err := store.NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	saved, err := reopened.List()
	if err != nil {
		t.Fatalf("List after reopen: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != "a-1" {
		t.Errorf("saved after reopen = %+v", saved)
	}
}

func TestMissingFileIsEmptyList(t *testing.T) {
	s, _ := newTestStore(t)
	saved, err := s.List()
	if err != nil {
		t.Fatalf("List on missing file: %v", err)
	}
	if len(saved) != 0 {
		t.Errorf("got %d saved articles, want 0", len(saved))
	}
}

func TestCorruptFileErrors(t *testing.T) {
	s, path := newTestStore(t)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(); err == nil {
		t.Error("expected error for corrupt store file")
	}
}
