// ABOUTME: Storage interface for the user's saved-article list
// ABOUTME: Defines list, save, remove, and membership operations over SavedArticles

package store

import "github.com/harper/threatwire/internal/models"

// Store is the persistence contract for saved articles. Save is an
// idempotent no-op on an already-saved article (returns false, not an
// error); Remove likewise returns false for an unknown id.
type Store interface {
	// Close releases resources held by the store.
	Close() error

	// List returns all saved articles, most recently saved first.
	List() ([]models.SavedArticle, error)

	// Save persists an article with the current time as its savedAt.
	// Returns false when the article is already present.
	Save(article models.Article) (bool, error)

	// Remove deletes a saved article by id. Returns false when absent.
	Remove(id string) (bool, error)

	// ContainsIDs returns the set of saved article ids.
	ContainsIDs() (map[string]bool, error)
}
