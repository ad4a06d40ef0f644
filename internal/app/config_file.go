package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/goannotate/internal/render"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to the dotted flag names.
type FileConfig struct {
    Input  string `yaml:"input" json:"input"`
    Output string `yaml:"output" json:"output"`
    Format string `yaml:"format" json:"format"`

    Sanitize bool `yaml:"sanitize" json:"sanitize"`
    Workers  int  `yaml:"workers" json:"workers"`

    Date struct {
        Rewrite bool `yaml:"rewrite" json:"rewrite"`
    } `yaml:"date" json:"date"`

    Cache struct {
        Dir         string        `yaml:"dir" json:"dir"`
        MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
        MaxBytes    int64         `yaml:"maxBytes" json:"maxBytes"`
        MaxEntries  int           `yaml:"maxEntries" json:"maxEntries"`
        Clear       bool          `yaml:"clear" json:"clear"`
        StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
    } `yaml:"cache" json:"cache"`

    HTTP struct {
        UA string `yaml:"ua" json:"ua"`
    } `yaml:"http" json:"http"`

    DryRun  bool `yaml:"dryRun" json:"dryRun"`
    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := strings.ToLower(filepath.Ext(path)); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are still unset. Flags and env are applied first, so they win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.InputPath == "" && fc.Input != "" { cfg.InputPath = fc.Input }
    if cfg.OutputDir == "" && fc.Output != "" { cfg.OutputDir = fc.Output }
    if cfg.Format == "" && fc.Format != "" { cfg.Format = fc.Format }
    if !cfg.Sanitize && fc.Sanitize { cfg.Sanitize = true }
    if cfg.Workers == 0 && fc.Workers > 0 { cfg.Workers = fc.Workers }
    if !cfg.RewriteDate && fc.Date.Rewrite { cfg.RewriteDate = true }

    if cfg.CacheDir == "" && fc.Cache.Dir != "" { cfg.CacheDir = fc.Cache.Dir }
    if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 { cfg.CacheMaxAge = fc.Cache.MaxAge }
    if cfg.CacheMaxBytes == 0 && fc.Cache.MaxBytes > 0 { cfg.CacheMaxBytes = fc.Cache.MaxBytes }
    if cfg.CacheMaxEntries == 0 && fc.Cache.MaxEntries > 0 { cfg.CacheMaxEntries = fc.Cache.MaxEntries }
    if !cfg.CacheClear && fc.Cache.Clear { cfg.CacheClear = true }
    if !cfg.CacheStrictPerms && fc.Cache.StrictPerms { cfg.CacheStrictPerms = true }

    if cfg.UserAgent == "" && fc.HTTP.UA != "" { cfg.UserAgent = fc.HTTP.UA }
    if !cfg.DryRun && fc.DryRun { cfg.DryRun = true }
    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }
}

// ValidateConfig performs minimal schema validation for required settings.
// For dry-run, the output directory may be omitted.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.InputPath) == "" {
        return errors.New("config: input path is required")
    }
    if !cfg.DryRun && strings.TrimSpace(cfg.OutputDir) == "" {
        return errors.New("config: output directory is required")
    }
    if _, err := render.ParseFormat(cfg.Format); err != nil {
        return fmt.Errorf("config: %w", err)
    }
    if cfg.Workers < 0 || cfg.CacheMaxBytes < 0 || cfg.CacheMaxEntries < 0 || cfg.CacheMaxAge < 0 {
        return errors.New("config: negative limits are not allowed")
    }
    return nil
}
