package components

import (
	"regexp"
	"strings"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// wordsPattern matches any of words as a whole word, case-insensitively.
func wordsPattern(words []string) *regexp.Regexp {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			alts = append(alts, regexp.QuoteMeta(w))
		}
	}
	if len(alts) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// Highlight renders text with every occurrence of the lesson words styled.
func Highlight(text string, words []string) string {
	re := wordsPattern(words)
	if re == nil {
		return theme.Body.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(theme.Body.Render(text[last:loc[0]]))
		b.WriteString(theme.Word.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(theme.Body.Render(text[last:]))
	return b.String()
}

// HighlightedWords returns the lesson words found in text, in match order.
func HighlightedWords(text string, words []string) []string {
	re := wordsPattern(words)
	if re == nil {
		return nil
	}
	return re.FindAllString(text, -1)
}
