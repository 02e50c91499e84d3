// ABOUTME: Feed document parsing and dispatch using the gofeed library
// ABOUTME: Handles RSS 2.0, Atom, and RDF input and yields normalized Articles

package parse

import (
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/harper/threatwire/internal/models"
	"github.com/harper/threatwire/internal/normalize"
)

// MaxItemsPerFeed caps how many items are taken from a single feed document.
const MaxItemsPerFeed = 20

// ParseFeed parses a raw feed document and normalizes its items into
// Articles for the named source. gofeed detects the document shape (RSS 2.0,
// Atom, or RDF/RSS 1.0) and always yields an item slice, so a single-item
// feed comes through as a one-element list. Items that fail normalization
// are dropped; an empty item list yields an empty result, not an error.
func ParseFeed(xmlText, source string) ([]models.Article, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(xmlText)
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", source, err)
	}

	channelImage := ""
	if feed.Image != nil {
		channelImage = feed.Image.URL
	}

	items := feed.Items
	if len(items) > MaxItemsPerFeed {
		items = items[:MaxItemsPerFeed]
	}

	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		if a := normalize.Item(item, source, channelImage); a != nil {
			articles = append(articles, *a)
		}
	}
	return articles, nil
}
