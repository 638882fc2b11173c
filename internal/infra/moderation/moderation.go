package moderation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yomogi/ghostboard/internal/usecase"
)

// Checker matches text against a prohibited-word list using word
// boundaries, so "class" never trips a ban on "ass".
type Checker struct {
	pattern *regexp.Regexp
}

// NewChecker compiles the word list into a single case-insensitive
// pattern. An empty list yields a checker that passes everything.
func NewChecker(words []string) (*Checker, error) {
	if len(words) == 0 {
		return &Checker{}, nil
	}

	escaped := make([]string, len(words))
	for i, word := range words {
		escaped[i] = regexp.QuoteMeta(word)
	}

	expr := `(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile prohibited-word pattern: %w", err)
	}

	return &Checker{pattern: pattern}, nil
}

// Check reports whether text is clean; when it isn't, matches carries the
// distinct matched terms, lowercased.
func (c *Checker) Check(text string) (bool, []string) {
	if c.pattern == nil {
		return true, nil
	}

	found := c.pattern.FindAllString(text, -1)
	if len(found) == 0 {
		return true, nil
	}

	seen := make(map[string]struct{}, len(found))
	matches := []string{}
	for _, term := range found {
		term = strings.ToLower(term)
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		matches = append(matches, term)
	}

	return false, matches
}

var _ usecase.ModerationChecker = (*Checker)(nil)
