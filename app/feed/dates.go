package feed

import (
	"time"

	"github.com/araddon/dateparse"
)

// Fixed UTC offsets for the North American zone abbreviations feeds use in
// textual dates. Go resolves unknown abbreviations to offset zero, so these
// are applied after parsing.
var zoneOffsets = map[string]int{
	"EDT": -4 * 3600,
	"EST": -5 * 3600,
	"CDT": -5 * 3600,
	"CST": -6 * 3600,
	"MDT": -6 * 3600,
	"MST": -7 * 3600,
	"PDT": -7 * 3600,
	"PST": -8 * 3600,
}

// NormalizeTime converts any timestamp to UTC. Idempotent; every timestamp
// stored on an Article passes through here.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC()
}

// EntryDate resolves the publication instant of an entry, trying structured
// timestamps first and textual date fields second. The second return value
// reports whether any date was discoverable; the caller decides the
// fallback.
func EntryDate(e Entry) (time.Time, bool) {
	if e.PublishedParsed != nil {
		return NormalizeTime(*e.PublishedParsed), true
	}
	if e.UpdatedParsed != nil {
		return NormalizeTime(*e.UpdatedParsed), true
	}

	for _, raw := range []string{e.Published, e.Updated} {
		if raw == "" {
			continue
		}
		if t, err := parseDateText(raw); err == nil {
			return NormalizeTime(t), true
		}
	}

	return time.Time{}, false
}

// parseDateText parses a free-text date. A value without zone information is
// interpreted as UTC; a bare zone abbreviation from the table above is
// mapped to its fixed offset.
func parseDateText(raw string) (time.Time, error) {
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}

	if name, offset := t.Zone(); offset == 0 {
		if fixed, ok := zoneOffsets[name]; ok {
			loc := time.FixedZone(name, fixed)
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
		}
	}

	return t, nil
}
