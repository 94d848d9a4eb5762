package cfg

type Cfg struct {
	// HTTP server configuration
	Port         string
	APIAccessKey string

	// Collection configuration
	SourcesFile      string
	NewsAPIKey       string
	HoursBack        int
	FetchConcurrency int
	FetchTimeout     int

	// Background refresh configuration
	WorkerCount       int
	SchedulerInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
