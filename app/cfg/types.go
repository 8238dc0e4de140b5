package cfg

import "time"

type Cfg struct {
	// Storage
	DBPath string

	// Application configuration
	Port         string
	APIAccessKey string
	FeedsFile    string
	FetchTimeout time.Duration
	WorkerCount  int

	// Logging
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
