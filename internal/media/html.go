// ABOUTME: HTML fragment scanning for representative images
// ABOUTME: Finds substantial img tags, lazy-load attributes, and social meta tags

package media

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minSubstantialSize is the pixel threshold below which a declared
// width+height pair marks an image as decorative.
const minSubstantialSize = 200

var (
	decorativePattern = regexp.MustCompile(`(?i)avatar|icon|logo|thumb|badge|button|spinner|spacer|pixel|emoji`)
	bareImagePattern  = regexp.MustCompile(`https?://[^\s"'<>\\]+\.(?:jpe?g|png|gif|webp)(?:\?[^\s"'<>\\]*)?`)
	resizeHintPattern = regexp.MustCompile(`(?i)[?&](?:w|h|width|height|resize|fit)=`)
	thumbNamePattern  = regexp.MustCompile(`(?i)thumb|icon|avatar|-\d{2,3}x\d{2,3}\.`)
)

var lazyAttrs = []string{"data-src", "data-lazy-src", "data-original"}

// firstSubstantialImage scans an HTML fragment for the first img tag that
// plausibly shows article content: not declared tiny, not named like an
// avatar or icon. When a srcset is present the largest labeled candidate
// wins. Falls back to the first img of any kind, with WordPress size
// suffixes stripped, when nothing substantial is found. Returns "" when the
// fragment has no images at all.
func firstSubstantialImage(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var fallback string
	var found string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		src = strings.TrimSpace(src)

		if fallback == "" && src != "" {
			fallback = wpSizeSuffixPattern.ReplaceAllString(src, "$1")
		}

		if isDecorative(sel) {
			return true
		}

		if srcset, ok := sel.Attr("srcset"); ok {
			if best := bestSrcsetCandidate(srcset); best != "" {
				found = best
				return false
			}
		}

		if src != "" {
			found = src
			return false
		}
		return true
	})

	if found != "" {
		return found
	}
	return fallback
}

// isDecorative reports whether an img tag is declared too small or named
// like chrome rather than content.
func isDecorative(sel *goquery.Selection) bool {
	w, wok := parseDimension(sel.AttrOr("width", ""))
	h, hok := parseDimension(sel.AttrOr("height", ""))
	if wok && hok && w < minSubstantialSize && h < minSubstantialSize {
		return true
	}

	alt := sel.AttrOr("alt", "")
	class := sel.AttrOr("class", "")
	return decorativePattern.MatchString(alt) || decorativePattern.MatchString(class)
}

func parseDimension(s string) (int, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// bestSrcsetCandidate picks the candidate with the largest numeric size
// descriptor. When no candidate is labeled, it prefers one whose URL carries
// no resize query hints.
func bestSrcsetCandidate(srcset string) string {
	var bestURL string
	bestSize := -1
	var unlabeled []string

	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}
		candidate := fields[0]
		if len(fields) > 1 {
			desc := strings.TrimRight(fields[1], "wxh")
			if n, err := strconv.Atoi(desc); err == nil && n > bestSize {
				bestSize = n
				bestURL = candidate
			}
			continue
		}
		unlabeled = append(unlabeled, candidate)
	}

	if bestURL != "" {
		return bestURL
	}
	for _, candidate := range unlabeled {
		if !resizeHintPattern.MatchString(candidate) {
			return candidate
		}
	}
	if len(unlabeled) > 0 {
		return unlabeled[0]
	}
	return ""
}

// firstLazyImage returns the first lazy-loading attribute value found in
// document order.
func firstLazyImage(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("img, source, div, span, a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, attr := range lazyAttrs {
			if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
				found = strings.TrimSpace(v)
				return false
			}
		}
		return true
	})
	return found
}

// bareImageURL matches an image URL directly in raw text, skipping anything
// named like a thumbnail.
func bareImageURL(body string) string {
	for _, match := range bareImagePattern.FindAllString(body, -1) {
		if !thumbNamePattern.MatchString(match) {
			return match
		}
	}
	return ""
}

// socialMetaImage scans og:image, twitter:image, and generic image meta tags.
// The goquery pass tolerates any attribute ordering in the source markup.
func socialMetaImage(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	wanted := map[string]bool{
		"og:image":            true,
		"og:image:secure_url": true,
		"twitter:image":       true,
		"image":               true,
	}

	var found string
	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		key := sel.AttrOr("property", sel.AttrOr("name", ""))
		if !wanted[strings.ToLower(key)] {
			return true
		}
		if v := strings.TrimSpace(sel.AttrOr("content", "")); v != "" {
			found = v
			return false
		}
		return true
	})
	return found
}
