package app

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    setString := func(dst *string, envKey string) {
        if *dst != "" { return }
        *dst = strings.TrimSpace(os.Getenv(envKey))
    }
    setString(&cfg.InputPath, "INPUT")
    setString(&cfg.OutputDir, "OUTPUT_DIR")
    setString(&cfg.Format, "FORMAT")
    setString(&cfg.CacheDir, "CACHE_DIR")
    setString(&cfg.UserAgent, "HTTP_UA")

    if cfg.Workers == 0 {
        if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("WORKERS"))); err == nil && n > 0 {
            cfg.Workers = n
        }
    }
    if cfg.CacheMaxEntries == 0 {
        if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("CACHE_MAX_ENTRIES"))); err == nil && n > 0 {
            cfg.CacheMaxEntries = n
        }
    }
    if cfg.CacheMaxBytes == 0 {
        if n, err := strconv.ParseInt(strings.TrimSpace(os.Getenv("CACHE_MAX_BYTES")), 10, 64); err == nil && n > 0 {
            cfg.CacheMaxBytes = n
        }
    }

    // Optional durations
    if cfg.CacheMaxAge == 0 {
        if s := os.Getenv("CACHE_MAX_AGE"); s != "" {
            if d, err := time.ParseDuration(s); err == nil {
                cfg.CacheMaxAge = d
            }
        }
    }

    // Booleans
    setBool := func(dst *bool, envKey string) {
        if *dst { return }
        switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
        case "1", "true", "yes", "on":
            *dst = true
        }
    }
    setBool(&cfg.Sanitize, "SANITIZE")
    setBool(&cfg.RewriteDate, "DATE_REWRITE")
    setBool(&cfg.DryRun, "DRY_RUN")
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.CacheClear, "CACHE_CLEAR")
    setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
}
