package feed

import (
	"testing"
)

func TestStripHTML_RemovesMarkup(t *testing.T) {
	got := StripHTML("<p>Hello <b>World</b></p>")

	if got != "Hello World" {
		t.Errorf("Expected 'Hello World', got %q", got)
	}
}

func TestStripHTML_DropsScriptAndStyle(t *testing.T) {
	html := `<div><script>alert("x")</script><style>p { color: red }</style><p>Visible</p></div>`

	got := StripHTML(html)

	if got != "Visible" {
		t.Errorf("Expected 'Visible', got %q", got)
	}
}

func TestStripHTML_CollapsesWhitespace(t *testing.T) {
	got := StripHTML("<p>One</p>\n\n  <p>Two\tThree</p>")

	if got != "One Two Three" {
		t.Errorf("Expected 'One Two Three', got %q", got)
	}
}

func TestStripHTML_PlainTextPassesThrough(t *testing.T) {
	got := StripHTML("Just plain text")

	if got != "Just plain text" {
		t.Errorf("Expected unchanged text, got %q", got)
	}
}

func TestExtractContent_PrefersRichestField(t *testing.T) {
	entry := Entry{
		Content:     "<p>Full body</p>",
		Summary:     "<p>Summary</p>",
		Description: "<p>Description</p>",
	}

	if got := ExtractContent(entry); got != "Full body" {
		t.Errorf("Expected content field, got %q", got)
	}

	entry.Content = ""
	if got := ExtractContent(entry); got != "Summary" {
		t.Errorf("Expected summary field, got %q", got)
	}

	entry.Summary = ""
	if got := ExtractContent(entry); got != "Description" {
		t.Errorf("Expected description field, got %q", got)
	}
}

func TestExtractContent_Empty(t *testing.T) {
	if got := ExtractContent(Entry{}); got != "" {
		t.Errorf("Expected empty string for empty entry, got %q", got)
	}

	// Whitespace-only fields count as empty.
	if got := ExtractContent(Entry{Content: "   "}); got != "" {
		t.Errorf("Expected empty string for whitespace content, got %q", got)
	}
}

func TestRawContent_PreservesMarkup(t *testing.T) {
	entry := Entry{Description: `<img src="https://example.com/a.jpg">`}

	got := RawContent(entry)

	if got != entry.Description {
		t.Errorf("Expected raw markup preserved, got %q", got)
	}
}
