// ABOUTME: JSON-file implementation of the saved-article store
// ABOUTME: Persists a single JSON array with atomic writes and mutex-serialized access

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/harper/threatwire/internal/models"
)

// JSONStore keeps saved articles as a JSON array in a single file. Every
// operation is a read-modify-write under an internal mutex, so concurrent
// callers within one process cannot lose updates.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// Compile-time check that JSONStore implements Store.
var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a store backed by the given file, creating the parent
// directory if needed. A missing file means an empty list.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &JSONStore{path: path}, nil
}

// Close releases resources. For JSONStore this is a no-op.
func (s *JSONStore) Close() error {
	return nil
}

// List returns all saved articles, most recently saved first.
func (s *JSONStore) List() ([]models.SavedArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(saved, func(i, j int) bool {
		return saved[i].SavedAt.After(saved[j].SavedAt)
	})
	return saved, nil
}

// Save persists the article unless it is already present.
func (s *JSONStore) Save(article models.Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return false, err
	}
	for _, existing := range saved {
		if existing.ID == article.ID {
			return false, nil
		}
	}

	saved = append(saved, models.SavedArticle{
		Article: article,
		SavedAt: time.Now().UTC(),
	})
	if err := s.write(saved); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a saved article by id.
func (s *JSONStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return false, err
	}

	kept := saved[:0]
	removed := false
	for _, existing := range saved {
		if existing.ID == id {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return false, nil
	}
	if err := s.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

// ContainsIDs returns the set of saved article ids.
func (s *JSONStore) ContainsIDs() (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(saved))
	for _, existing := range saved {
		ids[existing.ID] = true
	}
	return ids, nil
}

func (s *JSONStore) load() ([]models.SavedArticle, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var saved []models.SavedArticle
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return saved, nil
}

// write replaces the file contents atomically: write a temp file in the same
// directory, then rename over the target.
func (s *JSONStore) write(saved []models.SavedArticle) error {
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".saved-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
