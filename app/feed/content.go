package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractContent returns the best available body text for an entry: the
// richest non-empty content field, stripped to plain text. An entry with no
// content fields yields an empty string.
func ExtractContent(e Entry) string {
	raw := RawContent(e)
	if raw == "" {
		return ""
	}
	return StripHTML(raw)
}

// RawContent returns the first non-empty content field without any cleanup,
// richest first. The thumbnail resolver searches this for image markup that
// stripping would destroy.
func RawContent(e Entry) string {
	for _, candidate := range []string{e.Content, e.Summary, e.Description} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

// StripHTML removes markup from an HTML fragment: script and style blocks
// are dropped entirely, visible text is extracted, and whitespace runs are
// collapsed.
func StripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()

	return strings.Join(strings.Fields(doc.Text()), " ")
}
