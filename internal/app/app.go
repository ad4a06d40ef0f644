package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goannotate/internal/article"
	"github.com/hyperifyio/goannotate/internal/cache"
	"github.com/hyperifyio/goannotate/internal/fetch"
	"github.com/hyperifyio/goannotate/internal/render"
)

// indexFile is written into the output directory next to the bodies.
const indexFile = "index.json"

// ErrNoArticles is returned when the input yields zero usable articles.
// Per the exit code policy this results in a non-zero process exit.
var ErrNoArticles = errors.New("no articles")

type App struct {
	cfg       Config
	format    render.Format
	httpCache *cache.HTTPCache
	fetcher   *fetch.Client
	stdout    io.Writer
}

// New validates cfg, fills defaults and prepares the HTTP cache when the
// input is a URL.
func New(ctx context.Context, cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, format: format, stdout: os.Stdout}

	if fetch.IsURL(cfg.InputPath) {
		if cfg.CacheDir != "" {
			if cfg.CacheClear {
				if err := cache.ClearDir(cfg.CacheDir); err != nil {
					log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
				}
			}
			// Maintenance is best-effort and never fails startup
			if n, err := cache.PurgeHTTPCacheByAge(cfg.CacheDir, cfg.CacheMaxAge); err == nil && n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired cache entries")
			}
			if n, err := cache.EnforceHTTPCacheLimits(cfg.CacheDir, cfg.CacheMaxBytes, cfg.CacheMaxEntries); err == nil && n > 0 {
				log.Debug().Int("removed", n).Msg("evicted cache entries over limit")
			}
			a.httpCache = &cache.HTTPCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
		}
		a.fetcher = &fetch.Client{
			HTTPClient:        newExportHTTPClient(),
			UserAgent:         cfg.UserAgent,
			MaxAttempts:       3,
			PerRequestTimeout: 60 * time.Second,
			Cache:             a.httpCache,
			RedirectMaxHops:   5,
			MaxConcurrent:     2,
			BypassCache:       cfg.CacheClear,
		}
	}
	return a, nil
}

func (a *App) Close() {
	// nothing yet
}

// Run loads the export, renders every article and writes the bodies plus
// index.json. In dry-run mode the cards are printed and nothing is written.
func (a *App) Run(ctx context.Context) error {
	res, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	for _, s := range res.Skipped {
		log.Warn().Err(s.Err).Str("source", s.Source).Msg("skipped export entry")
	}
	if len(res.Articles) == 0 {
		log.Warn().Str("input", a.cfg.InputPath).Msg("input yielded no usable articles")
		return ErrNoArticles
	}
	article.SortNewestFirst(res.Articles)
	log.Info().Int("articles", len(res.Articles)).Int("skipped", len(res.Skipped)).Msg("loaded export")

	opts := render.Options{Format: a.format, Sanitize: a.cfg.Sanitize}
	results := renderAll(ctx, res.Articles, a.cfg.Workers, opts, a.cfg.RewriteDate)
	if err := ctx.Err(); err != nil {
		return err
	}

	cards := make([]article.Card, len(results))
	for i, r := range results {
		cards[i] = r.card
	}
	if a.cfg.DryRun {
		return writeDryRun(a.stdout, a.cfg.InputPath, cards)
	}

	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	files := make([]fileEntry, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			log.Warn().Err(r.err).Str("slug", r.card.Slug).Msg("render failed; skipping body")
			continue
		}
		name := r.card.Slug + a.format.Ext()
		if err := os.WriteFile(filepath.Join(a.cfg.OutputDir, name), r.out.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, fileEntry{Slug: r.card.Slug, File: name, SHA256: r.out.SHA256, Bytes: len(r.out.Content)})
		log.Debug().Str("file", name).Int("bytes", len(r.out.Content)).Msg("wrote body")
	}

	data, err := marshalIndex(index{
		Meta: indexMeta{
			Generator:   "goannotate",
			Version:     BuildVersion,
			Commit:      BuildCommit,
			Input:       a.cfg.InputPath,
			Format:      string(a.format),
			Sanitized:   a.cfg.Sanitize,
			DateRewrite: a.cfg.RewriteDate,
			Articles:    len(cards),
			Skipped:     len(res.Skipped),
			HTTPCache:   a.httpCache != nil,
			GeneratedAt: time.Now().UTC(),
		},
		Cards: cards,
		Files: files,
	})
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	out := filepath.Join(a.cfg.OutputDir, indexFile)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputDir).Int("files", len(files)).Msg("wrote output")
	return nil
}

// load reads the export from a URL, a directory or a single file.
func (a *App) load(ctx context.Context) (article.LoadResult, error) {
	in := strings.TrimSpace(a.cfg.InputPath)
	if a.fetcher != nil {
		body, contentType, err := a.fetcher.Get(ctx, in)
		if err != nil {
			return article.LoadResult{}, err
		}
		log.Debug().Str("url", in).Str("content_type", contentType).Int("bytes", len(body)).Msg("fetched export")
		return article.Decode(in, body)
	}
	info, err := os.Stat(in)
	if err != nil {
		return article.LoadResult{}, err
	}
	if info.IsDir() {
		return article.LoadDir(in)
	}
	return article.LoadFile(in)
}

// writeDryRun prints one block per card in output order.
func writeDryRun(w io.Writer, input string, cards []article.Card) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# goannotate (dry run)\n\nInput: %s\nArticles: %d\n\n", input, len(cards))
	for i, c := range cards {
		fmt.Fprintf(&b, "%d. %s | %s (%s)\n", i+1, c.Date, c.Title, c.Slug)
		if c.Subhead != "" {
			fmt.Fprintf(&b, "   %s\n", c.Subhead)
		}
		if c.Preview != "" {
			fmt.Fprintf(&b, "   %s\n", c.Preview)
		}
		fmt.Fprintf(&b, "   %d words, %d min read\n", c.Words, c.ReadingMinutes)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
