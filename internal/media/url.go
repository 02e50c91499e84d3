// ABOUTME: Candidate image URL validation, resolution, and cleanup
// ABOUTME: Handles relative references, tracking params, and WordPress CDN rewrites

package media

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/harper/threatwire/internal/textutil"
)

var (
	wpSizeSuffixPattern = regexp.MustCompile(`-\d+x\d+(\.[a-zA-Z]{3,4})$`)
	wpScaledPattern     = regexp.MustCompile(`-scaled(\.[a-zA-Z]{3,4})$`)
	wpCDNHostPattern    = regexp.MustCompile(`(^|\.)wp\.com$`)
)

var imageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".svg", ".bmp",
}

var nonImageExtensions = []string{
	".html", ".htm", ".php", ".asp", ".aspx", ".xml", ".json", ".js", ".css",
}

var imageHostHints = []string{
	"wp.com", "gravatar.com", "cloudinary.com", "imgix.net", "imgur.com",
	"ytimg.com", "twimg.com", "staticflickr.com", "githubusercontent.com",
	"cdn.", "images.", "img.", "media.",
}

var nonImagePathHints = []string{
	"/feed", "/rss", "/atom", "/api/", "/wp-json/", "/xmlrpc",
}

var trackingParams = []string{
	"ref", "fbclid", "gclid", "mc_cid", "mc_eid", "_ga", "_gid",
}

// NormalizeImageURL validates and cleans a candidate image URL, resolving it
// against baseURL when relative. Returns the empty string when the candidate
// cannot be turned into an absolute http(s) URL that plausibly points at an
// image. It never panics on garbage input; malformed candidates fail closed.
func NormalizeImageURL(candidate, baseURL string) string {
	s := strings.TrimSpace(candidate)
	s = strings.Trim(s, "\"'<>()[]{},;")
	if s == "" {
		return ""
	}

	s = textutil.DecodeEntities(s)

	if i := strings.Index(s, "#"); i >= 0 {
		s = s[:i]
	}

	s = resolveReference(s, baseURL)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if !looksLikeImage(u) {
		return ""
	}

	u = unwrapWordPressCDN(u)
	stripTrackingParams(u)
	stripWordPressSizeSuffix(u)

	return u.String()
}

// resolveReference turns protocol-relative, root-relative, and bare-relative
// candidates into absolute URLs. Relative candidates without a usable base
// fail closed.
func resolveReference(s, baseURL string) string {
	if strings.HasPrefix(s, "//") {
		return "https:" + s
	}
	if strings.Contains(s, "://") {
		return s
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return ""
	}
	ref, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// looksLikeImage applies a content-type heuristic over the URL. Clear
// negatives (feed, API, and script-like paths, non-image extensions) are
// rejected; known image hosts, image-ish path segments, and explicit image
// extensions are accepted; ambiguous query-bearing URLs get the benefit of
// the doubt.
func looksLikeImage(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	host := strings.ToLower(u.Host)

	for _, hint := range nonImagePathHints {
		if strings.Contains(path, hint) {
			return false
		}
	}
	for _, ext := range nonImageExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) || strings.Contains(path, ext+"?") {
			return true
		}
	}
	for _, hint := range imageHostHints {
		if strings.Contains(host, hint) {
			return true
		}
	}
	for _, seg := range []string{"/image", "/img/", "/uploads/", "/media/", "/photo"} {
		if strings.Contains(path, seg) {
			return true
		}
	}

	// No extension and no recognizable segment. CDN resize endpoints usually
	// carry their parameters in the query, so keep those.
	return u.RawQuery != ""
}

// unwrapWordPressCDN recovers the origin URL encoded in an i*.wp.com path,
// e.g. https://i0.wp.com/example.com/img.jpg?w=300 -> https://example.com/img.jpg.
// When the path does not reconstruct into a valid URL it falls back to
// stripping the CDN resize parameters.
func unwrapWordPressCDN(u *url.URL) *url.URL {
	if !wpCDNHostPattern.MatchString(strings.ToLower(u.Host)) {
		return u
	}

	trimmed := strings.TrimPrefix(u.Path, "/")
	if host, _, ok := strings.Cut(trimmed, "/"); ok && strings.Contains(host, ".") {
		if origin, err := url.Parse("https://" + trimmed); err == nil && origin.Host != "" {
			return origin
		}
	}

	q := u.Query()
	for _, p := range []string{"resize", "ssl", "w", "h"} {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u
}

// stripTrackingParams removes analytics query parameters in place.
func stripTrackingParams(u *url.URL) {
	if u.RawQuery == "" {
		return
	}
	q := u.Query()
	for name := range q {
		if strings.HasPrefix(strings.ToLower(name), "utm_") {
			q.Del(name)
		}
	}
	for _, p := range trackingParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
}

// stripWordPressSizeSuffix rewrites /wp-content/uploads/ asset paths to drop
// the auto-generated -WIDTHxHEIGHT and -scaled suffixes, recovering the
// full-resolution original.
func stripWordPressSizeSuffix(u *url.URL) {
	if !strings.Contains(u.Path, "/wp-content/uploads/") {
		return
	}
	u.Path = wpSizeSuffixPattern.ReplaceAllString(u.Path, "$1")
	u.Path = wpScaledPattern.ReplaceAllString(u.Path, "$1")
}
