package pipeline

import (
	"fmt"
	"html"
	"regexp"
)

var (
	blockedTags       = []string{"script", "iframe", "object", "embed", "form"}
	blockedAttributes = []string{"onload", "onclick", "onerror", "href", "src"}
	// Content of these elements is dropped along with the tags.
	blockedContainers = []string{"script", "iframe", "object"}

	sanitizeRules = compileRules()
)

func compileRules() []*regexp.Regexp {
	var rules []*regexp.Regexp
	for _, tag := range blockedContainers {
		rules = append(rules, regexp.MustCompile(fmt.Sprintf(`(?is)<\s*%s\b[^>]*>.*?<\s*/\s*%s\s*>`, tag, tag)))
	}
	for _, tag := range blockedTags {
		rules = append(rules, regexp.MustCompile(fmt.Sprintf(`(?i)</?\s*%s\b[^>]*>`, tag)))
	}
	for _, attr := range blockedAttributes {
		rules = append(rules, regexp.MustCompile(fmt.Sprintf(`(?is)\b%s\s*=\s*['"].*?['"]`, attr)))
	}
	return append(rules,
		regexp.MustCompile(`(?i)href\s*=\s*['"]javascript:[^'"]*['"]`),
		regexp.MustCompile(`(?i)javascript:[^\s<>'"]*`),
		regexp.MustCompile(`(?i)https?://[^\s<>]+`),
	)
}

// Sanitize strips blocked tags, blocked attributes, javascript: links and http(s) URLs,
// then HTML-encodes what is left. The result is safe to render verbatim.
//
// Entities are decoded before stripping, so an encoded tag cannot slip through, and
// stripping repeats until nothing matches, so removals cannot assemble a new tag.
// Both make Sanitize idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = html.UnescapeString(text)
	for {
		stripped := strip(text)
		if stripped == text {
			break
		}
		text = stripped
	}
	return html.EscapeString(text)
}

func strip(text string) string {
	for _, rule := range sanitizeRules {
		text = rule.ReplaceAllString(text, "")
	}
	return text
}
