package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	DBPath string `long:"db-path" env:"DB_PATH" default:"./feedshelf.db" description:"Path to the SQLite database file"`

	Port         string `long:"port" env:"PORT" default:"3000" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key required in the X-API-Key header (optional)"`
	FeedsFile    string `long:"feeds-file" env:"FEEDS_FILE" description:"YAML file with subscriptions to import at startup (optional)"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"HTTP client timeout for feed downloads in seconds"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers importing subscriptions"`

	LogFile       string `long:"log-file" env:"LOG_FILE" description:"Write logs to this file with rotation instead of stderr"`
	LogMaxSize    int    `long:"log-max-size" env:"LOG_MAX_SIZE" default:"64" description:"Maximum log file size in megabytes before rotation"`
	LogMaxBackups int    `long:"log-max-backups" env:"LOG_MAX_BACKUPS" default:"5" description:"Number of rotated log files to keep"`
	LogMaxAge     int    `long:"log-max-age" env:"LOG_MAX_AGE" default:"30" description:"Days to keep rotated log files"`

	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Feedshelf/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load reads configuration from command-line flags and environment variables.
// It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.FetchTimeout <= 0 {
		return nil, fmt.Errorf("fetch timeout must be positive, got %d", raw.FetchTimeout)
	}

	if raw.WorkerCount <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", raw.WorkerCount)
	}

	cfg := &Cfg{
		DBPath:        raw.DBPath,
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		FeedsFile:     raw.FeedsFile,
		FetchTimeout:  time.Duration(raw.FetchTimeout) * time.Second,
		WorkerCount:   raw.WorkerCount,
		LogFile:       raw.LogFile,
		LogMaxSize:    raw.LogMaxSize,
		LogMaxBackups: raw.LogMaxBackups,
		LogMaxAge:     raw.LogMaxAge,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
