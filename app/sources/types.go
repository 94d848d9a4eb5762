package sources

type Kind string

const (
	KindSyndication   Kind = "syndication"
	KindKeywordSearch Kind = "keyword-search"
)

// Source identifies one origin of news entries. Immutable after loading.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Kind Kind   `yaml:"kind"`

	// ExtractContent enables a live fetch of the article page when the feed
	// entry carries no usable body.
	ExtractContent bool `yaml:"extract_content"`
}

// Config is the immutable configuration set handed to the collector at
// construction: every source plus the keyword lists.
type Config struct {
	Sources         []Source `yaml:"sources"`
	SearchKeywords  []string `yaml:"search_keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
}

func (c *Config) Get(name string) (Source, bool) {
	for _, src := range c.Sources {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}

// Syndication returns the feed sources in configuration order.
func (c *Config) Syndication() []Source {
	return c.byKind(KindSyndication)
}

// KeywordSearch returns the search API sources in configuration order.
func (c *Config) KeywordSearch() []Source {
	return c.byKind(KindKeywordSearch)
}

func (c *Config) byKind(kind Kind) []Source {
	out := make([]Source, 0, len(c.Sources))
	for _, src := range c.Sources {
		if src.Kind == kind {
			out = append(out, src)
		}
	}
	return out
}
