package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// LabelFor derives the human-facing label for a field. When the description
// carries a parenthesized hint ("Resting blood pressure (mm Hg)") the text
// before the first parenthesis wins; otherwise the field name is title-cased
// with underscores turned into spaces.
func LabelFor(name, description string) string {
	if idx := strings.Index(description, "("); idx >= 0 {
		if label := strings.TrimSpace(description[:idx]); label != "" {
			return label
		}
	}
	return DefaultLabeler(name)
}

// DefaultLabeler converts a field name into a human-friendly label by
// splitting on underscores/dashes and capitalizing each word.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(word))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
