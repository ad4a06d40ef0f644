package app

import (
	"runtime"
	"time"
)

// Defaults applied by ApplyDefaults to fields left unset by flags, env and
// the config file.
const (
	DefaultInput     = "data/articles"
	DefaultOutputDir = "out"
	DefaultFormat    = "html"
	DefaultCacheDir  = ".goannotate-cache"
	DefaultUserAgent = "goannotate/1.0"
)

// Config holds runtime configuration for the application.
type Config struct {
	// InputPath is a directory of *.json exports, a single .json file or an
	// http(s) URL of an export document.
	InputPath string
	OutputDir string

	// Output
	Format      string
	Sanitize    bool
	RewriteDate bool
	Workers     int

	// HTTP cache for URL inputs
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheMaxBytes    int64
	CacheMaxEntries  int
	CacheClear       bool
	CacheStrictPerms bool

	UserAgent string

	// Behavior
	DryRun  bool
	Verbose bool
}

// ApplyDefaults fills fields that are still zero.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.InputPath == "" {
		cfg.InputPath = DefaultInput
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
}
