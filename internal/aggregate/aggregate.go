// ABOUTME: Concurrent multi-source article aggregation with partial-success semantics
// ABOUTME: Fetches every source in parallel, then dedupes by URL and sorts by recency

package aggregate

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/harper/threatwire/internal/config"
	"github.com/harper/threatwire/internal/fetch"
	"github.com/harper/threatwire/internal/models"
	"github.com/harper/threatwire/internal/parse"
)

// Aggregator runs the fetch+parse pipeline for a fixed set of sources.
type Aggregator struct {
	fetcher *fetch.Client
	sources []config.Source
}

// New creates an Aggregator over the given fetch client and source list.
func New(fetcher *fetch.Client, sources []config.Source) *Aggregator {
	return &Aggregator{fetcher: fetcher, sources: sources}
}

// SourceNames returns the configured source names in aggregation order.
func (a *Aggregator) SourceNames() []string {
	names := make([]string, len(a.sources))
	for i, s := range a.sources {
		names[i] = s.Name
	}
	return names
}

// FetchAll runs every source concurrently and returns the merged article
// stream. A failing source contributes zero articles and is logged; it never
// aborts or delays the others beyond its own timeout. All source tasks are
// joined before the merge, so a slow source is waited for, not dropped. The
// result is deduplicated by lowercased URL, keeping the first occurrence in
// source order, and sorted newest first with undated articles last.
func (a *Aggregator) FetchAll(ctx context.Context) []models.Article {
	results := make([][]models.Article, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src config.Source) {
			defer wg.Done()
			results[i] = a.fetchSource(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var merged []models.Article
	for _, articles := range results {
		merged = append(merged, articles...)
	}

	return sortByRecency(dedupeByURL(merged))
}

// fetchSource runs one source's pipeline. Every failure mode, including a
// panic from parsing fully corrupt input, is contained here so the source
// simply contributes nothing.
func (a *Aggregator) fetchSource(ctx context.Context, src config.Source) (articles []models.Article) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("source %s: panic recovered: %v", src.Name, r)
			articles = nil
		}
	}()

	xmlText, err := a.fetcher.FetchFeed(ctx, src.URL)
	if err != nil {
		log.Printf("source %s: %v", src.Name, err)
		return nil
	}

	articles, err = parse.ParseFeed(xmlText, src.Name)
	if err != nil {
		log.Printf("source %s: %v", src.Name, err)
		return nil
	}
	return articles
}

// dedupeByURL removes case-insensitive URL duplicates, keeping the first.
func dedupeByURL(articles []models.Article) []models.Article {
	seen := make(map[string]bool, len(articles))
	deduped := articles[:0]
	for _, a := range articles {
		key := strings.ToLower(a.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, a)
	}
	return deduped
}

// sortByRecency orders articles newest first. Articles whose publish date
// did not parse sort after every dated article; among themselves they keep
// their merge order, so unordered input cannot crash or reshuffle the list.
func sortByRecency(articles []models.Article) []models.Article {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, tj := articles[i].PublishedAt, articles[j].PublishedAt
		switch {
		case ti == nil && tj == nil:
			return false
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
	return articles
}
