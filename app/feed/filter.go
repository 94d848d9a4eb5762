package feed

import (
	"log/slog"
	"strings"
)

// DefaultExcludedKeywords is applied when no exclusion list is given: terms
// associated with violence and death, kept out of a general digest unless
// the caller asks otherwise.
var DefaultExcludedKeywords = []string{
	"death", "died", "suicide", "murder", "killed", "violence",
	"attack", "assault", "harassment", "abuse", "hate crime",
}

// FilterByKeywords drops articles whose title or body contains any excluded
// term. Matching is a case-insensitive substring check over the concatenated
// title and content, deliberately without word boundaries: excluding
// "assault" also drops an article mentioning "assault rifle".
func FilterByKeywords(articles []Article, exclude []string) []Article {
	if len(exclude) == 0 {
		exclude = DefaultExcludedKeywords
	}

	lowered := make([]string, 0, len(exclude))
	for _, keyword := range exclude {
		if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword != "" {
			lowered = append(lowered, keyword)
		}
	}

	kept := make([]Article, 0, len(articles))
	excludedCount := 0

	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Content)

		excluded := false
		for _, keyword := range lowered {
			if strings.Contains(text, keyword) {
				excluded = true
				break
			}
		}

		if excluded {
			excludedCount++
			slog.Debug("Excluded article", "title", article.Title)
			continue
		}
		kept = append(kept, article)
	}

	if excludedCount > 0 {
		slog.Debug("Keyword filter applied", "excluded", excludedCount, "kept", len(kept))
	}

	return kept
}
