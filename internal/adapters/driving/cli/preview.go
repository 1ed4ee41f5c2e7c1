package cli

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

var (
	invisibleTags = regexp.MustCompile(`(?is)<(?:script|style|svg|canvas|head)\b[^>]*>.*?</(?:script|style|svg|canvas|head)>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// plainText reduces an HTML fragment to its visible text on one line.
func plainText(fragment string) string {
	s := invisibleTags.ReplaceAllString(fragment, " ")
	s = htmlComments.ReplaceAllString(s, " ")
	s = anyTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// contentPreview returns up to limit runes of the visible text of generated
// content. Fields are used, in key order, when there is no HTML.
func contentPreview(c domain.GeneratedContent, limit int) string {
	text := plainText(c.HTML)
	if text == "" && len(c.Fields) > 0 {
		keys := make([]string, 0, len(c.Fields))
		for k := range c.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if t := plainText(c.Fields[k]); t != "" {
				parts = append(parts, t)
			}
		}
		text = strings.Join(parts, " | ")
	}

	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		return strings.TrimSpace(string(runes[:limit-1])) + "…"
	}
	return text
}
