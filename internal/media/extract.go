// ABOUTME: Prioritized image extraction cascade over a parsed feed item
// ABOUTME: Tries enclosures, body markup, media/itunes extensions, and channel fallback

package media

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// ExtractImage finds the best representative image URL for a feed item,
// trying strategies in fixed priority order and returning the first candidate
// that survives NormalizeImageURL. Returns "" when no strategy produces a
// usable URL; feeds without images are expected, not an error.
func ExtractImage(item *gofeed.Item, articleURL, channelImage string) string {
	if item == nil {
		return ""
	}

	body := itemBody(item)

	candidates := [][]string{
		enclosureImages(item),
		{firstSubstantialImage(body)},
		{firstLazyImage(body)},
		{bareImageURL(body)},
		mediaExtensionURLs(item.Extensions, "thumbnail"),
		rankedMediaContent(mediaExtensions(item.Extensions, "content")),
		itunesImage(item),
		mediaGroupImages(item.Extensions),
		{socialMetaImage(body)},
		{channelImage},
	}

	for _, group := range candidates {
		for _, candidate := range group {
			if candidate == "" {
				continue
			}
			if u := NormalizeImageURL(candidate, articleURL); u != "" {
				return u
			}
		}
	}
	return ""
}

// itemBody concatenates the HTML-bearing fields of an item. gofeed maps
// content:encoded to Content and both RSS description and Atom summary to
// Description.
func itemBody(item *gofeed.Item) string {
	parts := make([]string, 0, 2)
	if item.Content != "" {
		parts = append(parts, item.Content)
	}
	if item.Description != "" {
		parts = append(parts, item.Description)
	}
	return strings.Join(parts, "\n")
}

func enclosureImages(item *gofeed.Item) []string {
	var urls []string
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			urls = append(urls, enc.URL)
		}
	}
	return urls
}

func itunesImage(item *gofeed.Item) []string {
	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		return []string{item.ITunesExt.Image}
	}
	return nil
}

// mediaExtensions returns the raw extension elements for a media:* local name.
func mediaExtensions(extensions ext.Extensions, name string) []ext.Extension {
	if extensions == nil {
		return nil
	}
	media, ok := extensions["media"]
	if !ok {
		return nil
	}
	return media[name]
}

// mediaExtensionURLs extracts url attributes for a media:* local name.
func mediaExtensionURLs(extensions ext.Extensions, name string) []string {
	var urls []string
	for _, e := range mediaExtensions(extensions, name) {
		if u := extensionURL(e); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func extensionURL(e ext.Extension) string {
	if u := e.Attrs["url"]; u != "" {
		return u
	}
	return e.Attrs["href"]
}

// rankedMediaContent orders media:content candidates by keyword hint
// (full > large > has explicit dimensions > neither), breaking ties by pixel
// area descending, and returns their URLs best first.
func rankedMediaContent(elements []ext.Extension) []string {
	type candidate struct {
		url  string
		rank int
		area int
	}

	var ranked []candidate
	for _, e := range elements {
		u := extensionURL(e)
		if u == "" {
			continue
		}
		c := candidate{url: u, area: extensionArea(e)}
		lower := strings.ToLower(u)
		switch {
		case strings.Contains(lower, "full"):
			c.rank = 3
		case strings.Contains(lower, "large"):
			c.rank = 2
		case c.area > 0:
			c.rank = 1
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].rank != ranked[j].rank {
			return ranked[i].rank > ranked[j].rank
		}
		return ranked[i].area > ranked[j].area
	})

	urls := make([]string, len(ranked))
	for i, c := range ranked {
		urls[i] = c.url
	}
	return urls
}

func extensionArea(e ext.Extension) int {
	w, _ := strconv.Atoi(e.Attrs["width"])
	h, _ := strconv.Atoi(e.Attrs["height"])
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// mediaGroupImages collects thumbnail and content variants nested under an
// Atom media:group, content variants ranked the same way as top-level
// media:content.
func mediaGroupImages(extensions ext.Extensions) []string {
	var urls []string
	for _, group := range mediaExtensions(extensions, "group") {
		for _, thumb := range group.Children["thumbnail"] {
			if u := extensionURL(thumb); u != "" {
				urls = append(urls, u)
			}
		}
		urls = append(urls, rankedMediaContent(group.Children["content"])...)
	}
	return urls
}
