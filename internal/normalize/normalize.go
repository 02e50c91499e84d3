// ABOUTME: Maps parsed feed items into the canonical Article shape
// ABOUTME: Applies the title/link validity gate, text cleaning, and id derivation

package normalize

import (
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/harper/threatwire/internal/media"
	"github.com/harper/threatwire/internal/models"
	"github.com/harper/threatwire/internal/textutil"
)

// NoDescription is the placeholder used when an item carries no usable
// description text.
const NoDescription = "No description available"

// Item maps a parsed feed item into an Article for the given source.
// Returns nil when the item lacks a title or a usable absolute http(s) link
// after normalization; a partial item must never reach the output.
func Item(item *gofeed.Item, source, channelImage string) *models.Article {
	if item == nil {
		return nil
	}

	title := textutil.CleanText(item.Title)
	link := itemLink(item)
	if title == "" || link == "" {
		return nil
	}

	description := textutil.CleanDescription(pickDescription(item))
	if description == "" {
		description = NoDescription
	}

	article := &models.Article{
		ID:          models.ArticleID(source, link),
		Title:       title,
		Description: description,
		URL:         link,
		Source:      source,
		Published:   pickPublished(item),
		PublishedAt: pickPublishedAt(item),
		ImageURL:    media.ExtractImage(item, link, channelImage),
	}
	return article
}

// itemLink resolves the item's canonical link. gofeed already prefers the
// Atom rel="alternate" link when populating Link; the Links slice covers
// items where only secondary links were present. Anything that is not an
// absolute http(s) URL is discarded.
func itemLink(item *gofeed.Item) string {
	candidates := append([]string{item.Link}, item.Links...)
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		u, err := url.Parse(c)
		if err != nil || !u.IsAbs() || u.Host == "" {
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			continue
		}
		return c
	}
	return ""
}

// pickDescription prefers the explicit description, falling back to the full
// content body. gofeed maps content:encoded to Content and Atom summary to
// Description.
func pickDescription(item *gofeed.Item) string {
	if strings.TrimSpace(item.Description) != "" {
		return item.Description
	}
	return item.Content
}

// pickPublished returns the raw feed timestamp string best representing the
// publish time. No format validation happens here; ordering is decided at
// sort time from the parsed form.
func pickPublished(item *gofeed.Item) string {
	if item.Published != "" {
		return item.Published
	}
	return item.Updated
}

// pickPublishedAt returns the parsed publish time, or nil when the feed's
// date was absent or unparseable. Unparseable dates deliberately stay nil
// instead of defaulting to now, so stale articles cannot jump to the top of
// the aggregate ordering.
func pickPublishedAt(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}
