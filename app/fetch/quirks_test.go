package fetch

import (
	"strings"
	"testing"
)

func TestFixGoogleNewsURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{
			"https://news.google.com/search?q=lgbtq&hl=en-US",
			"https://news.google.com/rss/search?q=lgbtq&hl=en-US",
		},
		{
			"https://news.google.com/topics/CAAqBwgKMKHL9QowkqbaAg",
			"https://news.google.com/rss/topics/CAAqBwgKMKHL9QowkqbaAg",
		},
		{
			// Already an RSS URL, left alone.
			"https://news.google.com/rss/search?q=lgbtq",
			"https://news.google.com/rss/search?q=lgbtq",
		},
		{
			// Other hosts are never rewritten.
			"https://example.com/search?q=lgbtq",
			"https://example.com/search?q=lgbtq",
		},
	}

	for _, tc := range cases {
		if got := fixGoogleNewsURL(tc.in); got != tc.want {
			t.Errorf("fixGoogleNewsURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHeadersFor(t *testing.T) {
	headers := headersFor("https://news.google.com/rss/search?q=x")
	if headers["Accept"] == "" {
		t.Errorf("Expected an Accept header for Google News")
	}

	if headers := headersFor("https://example.com/feed"); headers != nil {
		t.Errorf("Expected no extra headers for other hosts, got %v", headers)
	}
}

func TestRepairEncoding_UTF8Unchanged(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8"?><rss></rss>`)

	if got := repairEncoding(data); string(got) != string(data) {
		t.Errorf("UTF-8 feed should pass through unchanged")
	}
}

func TestRepairEncoding_NoDeclarationUnchanged(t *testing.T) {
	data := []byte(`<?xml version="1.0"?><rss></rss>`)

	if got := repairEncoding(data); string(got) != string(data) {
		t.Errorf("Feed without encoding declaration should pass through unchanged")
	}
}

func TestRepairEncoding_MislabeledASCII(t *testing.T) {
	// UTF-8 bytes behind a us-ascii declaration: the declaration is
	// rewritten, the bytes are kept.
	data := []byte(`<?xml version="1.0" encoding="us-ascii"?><rss><title>Caf` + "\xc3\xa9" + `</title></rss>`)

	got := string(repairEncoding(data))

	if !strings.Contains(got, `encoding="utf-8"`) {
		t.Errorf("Expected declaration rewritten to utf-8, got %q", got)
	}
	if !strings.Contains(got, "Caf\xc3\xa9") {
		t.Errorf("Expected multibyte content preserved, got %q", got)
	}
}

func TestRepairEncoding_TranscodesLegacyCharset(t *testing.T) {
	// 0xE9 is é in ISO-8859-1.
	data := []byte(`<?xml version="1.0" encoding="iso-8859-1"?><rss><title>Caf` + "\xe9" + `</title></rss>`)

	got := string(repairEncoding(data))

	if !strings.Contains(got, `encoding="utf-8"`) {
		t.Errorf("Expected declaration rewritten to utf-8, got %q", got)
	}
	if !strings.Contains(got, "Caf\xc3\xa9") {
		t.Errorf("Expected content transcoded to UTF-8, got %q", got)
	}
}

func TestRepairEncoding_UnknownCharsetUnchanged(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="x-not-a-charset"?><rss></rss>`)

	if got := repairEncoding(data); string(got) != string(data) {
		t.Errorf("Unknown charset should pass through unchanged")
	}
}
