package feed

// Dedupe removes records sharing a fingerprint in a single left-to-right
// pass: the first occurrence wins, later duplicates are dropped silently.
// Duplication across sources is expected, not anomalous. Stable and
// idempotent.
func Dedupe(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]Article, 0, len(articles))

	for _, article := range articles {
		if _, ok := seen[article.HashID]; ok {
			continue
		}
		seen[article.HashID] = struct{}{}
		unique = append(unique, article)
	}

	return unique
}
