// ABOUTME: Text normalization for feed-derived strings
// ABOUTME: Decodes character entities and strips embedded markup to plain text

package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

// DescriptionLimit caps cleaned description length in characters.
const DescriptionLimit = 200

var (
	entityPattern = regexp.MustCompile(`&(#[xX]?[0-9a-fA-F]+|[a-zA-Z]+);`)
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
)

var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
}

// DecodeEntities replaces numeric and named character references with their
// literal characters in a single left-to-right pass. The replacement is never
// re-scanned, so "&amp;lt;" decodes to "&lt;" and stops there. Unrecognized
// entities are left verbatim.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return entityPattern.ReplaceAllStringFunc(text, func(m string) string {
		body := m[1 : len(m)-1]
		if strings.HasPrefix(body, "#") {
			num := body[1:]
			base := 10
			if len(num) > 1 && (num[0] == 'x' || num[0] == 'X') {
				num = num[1:]
				base = 16
			}
			n, err := strconv.ParseInt(num, base, 32)
			if err != nil || n <= 0 || n > 0x10FFFF {
				return m
			}
			return string(rune(n))
		}
		if lit, ok := namedEntities[body]; ok {
			return lit
		}
		return m
	})
}

// CleanText decodes entities once and then strips tag-like spans until a pass
// makes no further change, so nested or malformed tags cannot survive. Any
// stray angle brackets left behind are dropped as well. Entities are never
// re-decoded after stripping: a second decode pass is what would revive
// double-encoded markup like "&amp;lt;script&amp;gt;" into live tags.
func CleanText(text string) string {
	text = DecodeEntities(text)
	for {
		stripped := tagPattern.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}
	text = strings.ReplaceAll(text, "<", "")
	text = strings.ReplaceAll(text, ">", "")
	return strings.TrimSpace(text)
}

// CleanDescription produces the plain-text article description: CleanText
// output truncated to DescriptionLimit characters.
func CleanDescription(html string) string {
	text := CleanText(html)
	runes := []rune(text)
	if len(runes) > DescriptionLimit {
		text = string(runes[:DescriptionLimit])
	}
	return text
}
