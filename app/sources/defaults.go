package sources

// Default returns the built-in configuration used when no sources file is
// provided: LGBTQ+ news feeds, the keyword set driving the search API, and
// the default exclusion list.
func Default() *Config {
	return &Config{
		Sources: []Source{
			{Name: "advocate", URL: "https://www.advocate.com/rss.xml", Kind: KindSyndication},
			{Name: "pinknews", URL: "https://www.pinknews.co.uk/feed/", Kind: KindSyndication},
			{Name: "google_lgbtq_atlanta", URL: "https://news.google.com/rss/search?q=gay%20atlanta%20-matt%20-jazz&hl=en-US&gl=US&ceid=US%3Aen", Kind: KindSyndication},
			{Name: "google_lgbtq_general", URL: "https://news.google.com/rss/search?q=LGBTQ%20lesbian%20gay%20bisexual&hl=en-US&gl=US&ceid=US%3Aen", Kind: KindSyndication},
			{Name: "google_gay_rights", URL: "https://news.google.com/rss/topics/CAAqIggKIhxDQkFTRHdvSkwyMHZNR1EyTTJ0MEVnSmxiaWdBUAE?hl=en-US&gl=US&ceid=US%3Aen", Kind: KindSyndication},
			{Name: "google_pride_news", URL: "https://news.google.com/rss/search?q=pride%20month%20lgbtq&hl=en-US&gl=US&ceid=US%3Aen", Kind: KindSyndication},
			{Name: "google_transgender_news", URL: "https://news.google.com/rss/search?q=transgender%20rights&hl=en-US&gl=US&ceid=US%3Aen", Kind: KindSyndication},
			{Name: "theguardian", URL: "https://www.theguardian.com/world/lgbt-rights/rss", Kind: KindSyndication},
			{Name: "queerty", URL: "https://www.queerty.com/feed", Kind: KindSyndication},
			{Name: "lgbtqnation", URL: "https://www.lgbtqnation.com/feed/", Kind: KindSyndication},
			{Name: "washington_blade", URL: "https://www.washingtonblade.com/feed/", Kind: KindSyndication},
			{Name: "outsports", URL: "https://www.outsports.com/rss/index.xml", Kind: KindSyndication},
			{Name: "them", URL: "https://www.them.us/feed/rss", Kind: KindSyndication},
			{Name: "gaycitynews", URL: "https://gaycitynews.com/feed/", Kind: KindSyndication},
			{Name: "newsapi", URL: "https://newsapi.org/v2/everything", Kind: KindKeywordSearch},
		},
		SearchKeywords: []string{
			"LGBTQ", "LGBT", "gay", "lesbian", "transgender", "bisexual",
			"queer", "pride", "rainbow", "homosexual", "same-sex",
			"gender identity", "sexual orientation", "marriage equality",
			"trans rights", "gay rights", "GLAAD", "Pride Month",
		},
		ExcludeKeywords: nil,
	}
}
