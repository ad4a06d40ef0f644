package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goannotate/internal/app"
)

// options carries values that select configuration sources rather than
// configure the run itself.
type options struct {
	configPath string
	envFiles   string
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var flags app.Config
	var opts options
	fs := newFlagSet(&flags, &opts)
	_ = fs.Parse(os.Args[1:])

	if err := app.LoadEnvFiles(splitList(opts.envFiles)...); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}
	cfg, err := resolveConfig(fs, flags, opts.configPath)
	if err != nil {
		log.Error().Err(err).Msg("configuration failed")
		os.Exit(1)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("run failed")
	}
	os.Exit(exitCode(err))
}

func newFlagSet(cfg *app.Config, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("goannotate", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML or JSON config file (env GOANNOTATE_CONFIG)")
	fs.StringVar(&opts.envFiles, "env", ".env", "Comma-separated dotenv files loaded before reading env")
	fs.StringVar(&cfg.InputPath, "input", app.DefaultInput, "Directory of *.json exports, a .json file, or an http(s) export URL")
	fs.StringVar(&cfg.OutputDir, "output", app.DefaultOutputDir, "Directory for rendered bodies and index.json")
	fs.StringVar(&cfg.Format, "format", app.DefaultFormat, "Output format: html or markdown")
	fs.BoolVar(&cfg.Sanitize, "sanitize", false, "Apply the sanitization policy to rendered bodies")
	fs.BoolVar(&cfg.RewriteDate, "date.rewrite", false, "Replace the printed date paragraph with a CP-style dateline")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Render concurrency")
	fs.StringVar(&cfg.CacheDir, "cache.dir", app.DefaultCacheDir, "HTTP cache directory for URL inputs")
	fs.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this (e.g. 24h); 0 disables")
	fs.Int64Var(&cfg.CacheMaxBytes, "cache.maxBytes", 0, "Evict least recently used cache entries above this size; 0 disables")
	fs.IntVar(&cfg.CacheMaxEntries, "cache.maxEntries", 0, "Evict least recently used cache entries above this count; 0 disables")
	fs.BoolVar(&cfg.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&cfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.StringVar(&cfg.UserAgent, "http.ua", app.DefaultUserAgent, "User-Agent for export downloads")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print cards without writing output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	return fs
}

// resolveConfig layers configuration sources: flags set on the command line,
// then env, then the config file, then defaults.
func resolveConfig(fs *flag.FlagSet, flags app.Config, configPath string) (app.Config, error) {
	var cfg app.Config
	explicit := map[string]func(){
		"input":             func() { cfg.InputPath = flags.InputPath },
		"output":            func() { cfg.OutputDir = flags.OutputDir },
		"format":            func() { cfg.Format = flags.Format },
		"sanitize":          func() { cfg.Sanitize = flags.Sanitize },
		"date.rewrite":      func() { cfg.RewriteDate = flags.RewriteDate },
		"workers":           func() { cfg.Workers = flags.Workers },
		"cache.dir":         func() { cfg.CacheDir = flags.CacheDir },
		"cache.maxAge":      func() { cfg.CacheMaxAge = flags.CacheMaxAge },
		"cache.maxBytes":    func() { cfg.CacheMaxBytes = flags.CacheMaxBytes },
		"cache.maxEntries":  func() { cfg.CacheMaxEntries = flags.CacheMaxEntries },
		"cache.clear":       func() { cfg.CacheClear = flags.CacheClear },
		"cache.strictPerms": func() { cfg.CacheStrictPerms = flags.CacheStrictPerms },
		"http.ua":           func() { cfg.UserAgent = flags.UserAgent },
		"dry-run":           func() { cfg.DryRun = flags.DryRun },
		"v":                 func() { cfg.Verbose = flags.Verbose },
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := explicit[f.Name]; ok {
			apply()
		}
	})

	app.ApplyEnvToConfig(&cfg)

	if strings.TrimSpace(configPath) == "" {
		configPath = os.Getenv("GOANNOTATE_CONFIG")
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	app.ApplyDefaults(&cfg)
	return cfg, app.ValidateConfig(cfg)
}

// exitCode maps run errors to the process exit status: 2 when the input
// held no usable articles, 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrNoArticles):
		return 2
	default:
		return 1
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
