// ABOUTME: Centralized configuration defaults for threatwire
// ABOUTME: Holds the fixed source list, proxy templates, and tuning constants

package config

import "time"

// HTTP settings
const (
	DefaultFetchTimeout = 15 * time.Second
)

// Display settings
const (
	DefaultListLimit = 20
	DisplayIDLength  = 12
	SeparatorWidth   = 60
	DateFormatShort  = "02 Jan 06 15:04 MST"
)

// Storage settings
const (
	DefaultDirPerms = 0755
	savedFilename   = "saved.json"
)

// Source is one configured feed: a human-readable name and its document URL.
// The list is static configuration, not runtime input.
type Source struct {
	Name string
	URL  string
}

// Sources returns the fixed cybersecurity news sources, in aggregation
// order. Dedup keeps the first occurrence in this order.
func Sources() []Source {
	return []Source{
		{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews"},
		{Name: "Bleeping Computer", URL: "https://www.bleepingcomputer.com/feed/"},
		{Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/"},
		{Name: "Dark Reading", URL: "https://www.darkreading.com/rss.xml"},
		{Name: "SecurityWeek", URL: "https://www.securityweek.com/feed/"},
	}
}

// Proxies returns the ordered CORS proxy templates tried when a direct fetch
// fails. Each takes the URL-encoded target at %s or appended.
func Proxies() []string {
	return []string{
		"https://api.allorigins.win/get?url=%s",
		"https://api.codetabs.com/v1/proxy?quest=%s",
		"https://corsproxy.io/?url=%s",
	}
}
