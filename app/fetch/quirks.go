package fetch

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// fixGoogleNewsURL rewrites Google News web URLs to their RSS equivalents.
// Search and topic pages copied from a browser lack the /rss/ path segment
// and serve HTML instead of a feed.
func fixGoogleNewsURL(rawURL string) string {
	if !strings.Contains(rawURL, "news.google.com") {
		return rawURL
	}

	if strings.Contains(rawURL, "/search?") && !strings.Contains(rawURL, "/rss/") {
		return strings.Replace(rawURL, "/search?", "/rss/search?", 1)
	}
	if strings.Contains(rawURL, "/topics/") && !strings.Contains(rawURL, "/rss/") {
		return strings.Replace(rawURL, "/topics/", "/rss/topics/", 1)
	}

	return rawURL
}

// headersFor returns extra request headers for publishers that reject plain
// feed-reader requests.
func headersFor(rawURL string) map[string]string {
	if strings.Contains(rawURL, "news.google.com") {
		return map[string]string{
			"Accept": "application/rss+xml, application/xml, text/xml",
		}
	}
	return nil
}

var xmlEncodingRe = regexp.MustCompile(`encoding=["']([^"']+)["']`)

// repairEncoding fixes feeds whose XML declaration does not match the bytes
// they serve. The Advocate labels its UTF-8 feed as us-ascii, which makes
// strict XML parsers bail on the first multibyte character; other publishers
// serve legacy charsets that are transcoded to UTF-8.
func repairEncoding(data []byte) []byte {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}

	loc := xmlEncodingRe.FindSubmatchIndex(head)
	if loc == nil {
		return data
	}

	declared := strings.ToLower(string(data[loc[2]:loc[3]]))
	switch declared {
	case "utf-8":
		return data
	case "us-ascii":
		// The declaration is wrong, the bytes are fine.
		return spliceDeclaration(data, loc)
	}

	enc, err := htmlindex.Get(declared)
	if err != nil {
		return data
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return data
	}

	loc = xmlEncodingRe.FindSubmatchIndex(decoded)
	if loc == nil {
		return decoded
	}
	return spliceDeclaration(decoded, loc)
}

func spliceDeclaration(data []byte, loc []int) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data))
	buf.Write(data[:loc[0]])
	buf.WriteString(`encoding="utf-8"`)
	buf.Write(data[loc[1]:])
	return buf.Bytes()
}
