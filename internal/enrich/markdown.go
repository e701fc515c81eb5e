package enrich

import (
	"regexp"
	"strings"
)

var (
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	emphasisRe   = regexp.MustCompile(`(\*{1,3}|_{1,3})([^*_]+)(\*{1,3}|_{1,3})`)
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	headingRe    = regexp.MustCompile(`^#{1,6}\s+`)
	bulletRe     = regexp.MustCompile(`^[-*+]\s+`)
	orderedRe    = regexp.MustCompile(`^\d+[.)]\s+`)
	quoteRe      = regexp.MustCompile(`^>\s?`)
)

// StripMarkdown converts a markdown fragment to plain text: code fences,
// heading/list/quote markers, emphasis, inline code and link targets are
// removed, blank lines are collapsed.
func StripMarkdown(s string) string {
	var out []string
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			out = append(out, trimmed)
			continue
		}

		trimmed = headingRe.ReplaceAllString(trimmed, "")
		trimmed = quoteRe.ReplaceAllString(trimmed, "")
		trimmed = bulletRe.ReplaceAllString(trimmed, "")
		trimmed = orderedRe.ReplaceAllString(trimmed, "")
		trimmed = linkRe.ReplaceAllString(trimmed, "$1")
		trimmed = emphasisRe.ReplaceAllString(trimmed, "$2")
		trimmed = inlineCodeRe.ReplaceAllString(trimmed, "$1")

		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
