// ABOUTME: Tests for feed parsing across RSS, Atom, and RDF shapes
// ABOUTME: Covers single-item feeds, the item cap, and invalid item handling

package parse_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/harper/threatwire/internal/normalize"
	"github.com/harper/threatwire/internal/parse"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Security News</title>
    <item>
      <title>First story</title>
      <link>https://example.com/1</link>
      <description>First description</description>
      <pubDate>Tue, 10 Feb 2026 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.com/2</link>
      <description>Second description</description>
      <pubDate>Mon, 09 Feb 2026 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No link, must be dropped</title>
      <description>orphan</description>
    </item>
  </channel>
</rss>`

func TestParseFeed_RSS(t *testing.T) {
	articles, err := parse.ParseFeed(rssFeed, "Example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 (invalid item dropped)", len(articles))
	}
	if articles[0].Title != "First story" || articles[0].URL != "https://example.com/1" {
		t.Errorf("unexpected first article: %+v", articles[0])
	}
	if articles[0].Source != "Example" {
		t.Errorf("source = %q", articles[0].Source)
	}
	if articles[0].PublishedAt == nil {
		t.Error("expected parsed publish date")
	}
}

func TestParseFeed_SingleItem(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>One</title>
    <item>
      <title>Only story</title>
      <link>https://example.com/only</link>
    </item>
  </channel>
</rss>`

	articles, err := parse.ParseFeed(feed, "One")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want exactly 1", len(articles))
	}
	if articles[0].Description != normalize.NoDescription {
		t.Errorf("description = %q, want placeholder", articles[0].Description)
	}
}

func TestParseFeed_Atom(t *testing.T) {
	feed := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Source</title>
  <entry>
    <title>Atom entry</title>
    <link rel="alternate" href="https://example.com/atom-1"/>
    <link rel="enclosure" href="https://example.com/atom-1.mp3"/>
    <summary>Atom summary</summary>
    <updated>2026-02-01T10:00:00Z</updated>
  </entry>
</feed>`

	articles, err := parse.ParseFeed(feed, "Atom Source")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].URL != "https://example.com/atom-1" {
		t.Errorf("url = %q, want the alternate link", articles[0].URL)
	}
	if articles[0].Description != "Atom summary" {
		t.Errorf("description = %q", articles[0].Description)
	}
}

func TestParseFeed_RDF(t *testing.T) {
	feed := `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns="http://purl.org/rss/1.0/"
         xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel rdf:about="https://example.com/">
    <title>RDF Source</title>
    <link>https://example.com/</link>
    <description>desc</description>
  </channel>
  <item rdf:about="https://example.com/rdf-1">
    <title>RDF item</title>
    <link>https://example.com/rdf-1</link>
    <description>RDF description</description>
    <dc:date>2026-02-02T09:00:00Z</dc:date>
  </item>
</rdf:RDF>`

	articles, err := parse.ParseFeed(feed, "RDF Source")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Title != "RDF item" {
		t.Errorf("title = %q", articles[0].Title)
	}
}

func TestParseFeed_CapsItemCount(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Big</title>`)
	for i := 0; i < parse.MaxItemsPerFeed+5; i++ {
		fmt.Fprintf(&b, `<item><title>Story %d</title><link>https://example.com/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)

	articles, err := parse.ParseFeed(b.String(), "Big")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != parse.MaxItemsPerFeed {
		t.Errorf("got %d articles, want cap of %d", len(articles), parse.MaxItemsPerFeed)
	}
}

func TestParseFeed_EmptyChannel(t *testing.T) {
	feed := `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`
	articles, err := parse.ParseFeed(feed, "Empty")
	if err != nil {
		t.Fatalf("empty channel should not error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("got %d articles, want 0", len(articles))
	}
}

func TestParseFeed_CorruptXML(t *testing.T) {
	if _, err := parse.ParseFeed("this is not a feed at all", "Bad"); err == nil {
		t.Error("expected error for corrupt input")
	}
}

func TestParseFeed_MediaContentImage(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Media</title>
    <item>
      <title>With media</title>
      <link>https://example.com/m1</link>
      <media:content url="https://example.com/images/m1-full.jpg" width="1280" height="720"/>
    </item>
  </channel>
</rss>`

	articles, err := parse.ParseFeed(feed, "Media")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].ImageURL != "https://example.com/images/m1-full.jpg" {
		t.Errorf("imageUrl = %q", articles[0].ImageURL)
	}
}
