// ABOUTME: Integration tests for the full aggregation workflow
// ABOUTME: Tests end-to-end scenarios including fetch, parse, merge, and saving

package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/threatwire/internal/aggregate"
	"github.com/harper/threatwire/internal/config"
	"github.com/harper/threatwire/internal/fetch"
	"github.com/harper/threatwire/internal/store"
)

const alphaFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Alpha Security</title>
    <link>https://alpha.example.com</link>
    <item>
      <title>Critical RCE in widget server</title>
      <link>https://alpha.example.com/rce-widget</link>
      <description><![CDATA[<p>A <b>critical</b> flaw allows remote code execution.</p>]]></description>
      <pubDate>Tue, 25 Aug 2026 10:00:00 GMT</pubDate>
      <media:thumbnail url="https://alpha.example.com/img/rce.jpg"/>
    </item>
    <item>
      <title>Phishing wave hits banks</title>
      <link>https://alpha.example.com/phishing-banks</link>
      <description>Large phishing campaign observed.</description>
      <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const betaFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Beta Threat Intel</title>
  <entry>
    <title>Botnet takedown announced</title>
    <link rel="alternate" href="https://beta.example.com/botnet-takedown"/>
    <summary>International operation dismantles botnet.</summary>
    <updated>2026-08-26T12:00:00Z</updated>
  </entry>
  <entry>
    <title>Duplicate coverage of widget flaw</title>
    <link rel="alternate" href="https://ALPHA.example.com/rce-widget"/>
    <summary>Same story, different outlet.</summary>
    <updated>2026-08-26T13:00:00Z</updated>
  </entry>
</feed>`

// TestFullWorkflow runs the pipeline end to end: two live test feeds,
// concurrent aggregation with dedup and sorting, then the saved list.
func TestFullWorkflow(t *testing.T) {
	alpha := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(alphaFeed))
	}))
	defer alpha.Close()

	beta := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(betaFeed))
	}))
	defer beta.Close()

	sources := []config.Source{
		{Name: "Alpha", URL: alpha.URL},
		{Name: "Beta", URL: beta.URL},
	}

	fetcher := fetch.NewClient(5*time.Second, nil)
	agg := aggregate.New(fetcher, sources)

	articles := agg.FetchAll(context.Background())

	// 4 items fetched, one is a duplicate URL (case-insensitive)
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles after dedup, got %d", len(articles))
	}

	// Newest first
	wantOrder := []string{
		"Botnet takedown announced",
		"Critical RCE in widget server",
		"Phishing wave hits banks",
	}
	for i, want := range wantOrder {
		if articles[i].Title != want {
			t.Errorf("article %d: expected %q, got %q", i, want, articles[i].Title)
		}
	}

	// The duplicate kept the first source's version
	for _, a := range articles {
		if strings.EqualFold(a.URL, "https://alpha.example.com/rce-widget") {
			if a.Source != "Alpha" {
				t.Errorf("expected duplicate to keep Alpha's version, got source %q", a.Source)
			}
			if a.ImageURL != "https://alpha.example.com/img/rce.jpg" {
				t.Errorf("expected media:thumbnail image, got %q", a.ImageURL)
			}
			if strings.Contains(a.Description, "<") {
				t.Errorf("expected cleaned description, got %q", a.Description)
			}
		}
	}

	// IDs are deterministic across runs
	again := agg.FetchAll(context.Background())
	if len(again) != len(articles) {
		t.Fatalf("expected stable result count, got %d then %d", len(articles), len(again))
	}
	for i := range articles {
		if articles[i].ID != again[i].ID {
			t.Errorf("article %d: id changed between runs: %q vs %q", i, articles[i].ID, again[i].ID)
		}
	}

	// Save one article, reopen the store, and verify it persisted
	tmpDir := t.TempDir()
	savedPath := filepath.Join(tmpDir, "saved.json")

	st, err := store.NewJSONStore(savedPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	saved, err := st.Save(articles[0])
	if err != nil {
		t.Fatalf("failed to save article: %v", err)
	}
	if !saved {
		t.Error("expected first save to report true")
	}

	saved, err = st.Save(articles[0])
	if err != nil {
		t.Fatalf("failed to re-save article: %v", err)
	}
	if saved {
		t.Error("expected second save to be a no-op")
	}

	if err := st.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened, err := store.NewJSONStore(savedPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	list, err := reopened.List()
	if err != nil {
		t.Fatalf("failed to list saved articles: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 saved article, got %d", len(list))
	}
	if list[0].ID != articles[0].ID {
		t.Errorf("expected saved id %q, got %q", articles[0].ID, list[0].ID)
	}

	ids, err := reopened.ContainsIDs()
	if err != nil {
		t.Fatalf("failed to read saved ids: %v", err)
	}
	if !ids[articles[0].ID] {
		t.Error("expected ContainsIDs to include the saved article")
	}
}

// TestWorkflowWithDeadSource verifies one unreachable source never sinks
// the rest of the stream.
func TestWorkflowWithDeadSource(t *testing.T) {
	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(alphaFeed))
	}))
	defer alive.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	sources := []config.Source{
		{Name: "Dead", URL: deadURL},
		{Name: "Alpha", URL: alive.URL},
	}

	fetcher := fetch.NewClient(2*time.Second, nil)
	agg := aggregate.New(fetcher, sources)

	articles := agg.FetchAll(context.Background())
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles from the live source, got %d", len(articles))
	}
	for _, a := range articles {
		if a.Source != "Alpha" {
			t.Errorf("expected all articles from Alpha, got %q", a.Source)
		}
	}
}
