// ABOUTME: Article model for the normalized, source-agnostic news record
// ABOUTME: Provides the deterministic article id hash and the SavedArticle wrapper

package models

import (
	"strconv"
	"time"
	"unicode/utf16"
)

// Article is the canonical record produced by the ingestion pipeline.
// Once built it is never mutated; downstream layers only read it.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	Published   string     `json:"publishedDate"`
	PublishedAt *time.Time `json:"-"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// SavedArticle is an Article the user persisted for offline viewing.
type SavedArticle struct {
	Article
	SavedAt time.Time `json:"savedAt"`
}

// ArticleID derives the stable identifier for an article from its source name
// and canonical URL. The hash is a 32-bit rolling multiply-add over the UTF-16
// code units of "source-url" with two's-complement wraparound, rendered in
// base36. Identical input always yields an identical id, so the same feed item
// keeps its identity across fetches even when title or description drift.
func ArticleID(source, url string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(source + "-" + url)) {
		h = h*31 + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return source + "-" + strconv.FormatInt(v, 36)
}
