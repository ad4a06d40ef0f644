package app

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "strings"
    "sync/atomic"
    "testing"

    "github.com/hyperifyio/goannotate/internal/render"
)

const exportFixture = `[
  {
    "slug": "council-budget",
    "title": "Council approves budget",
    "iso_date": "2024-05-03",
    "display_date": "May 3, 2024",
    "source_url": "https://news.example.com/council-budget",
    "content_html": "<h4>Taxes rise 2%</h4><p>May 3, 2024</p><p>By Jane Doe</p><p>The council voted on Tuesday to approve the budget.</p><p><img src=\"http://img.example/a.jpg\"></p><p>Originally appeared in Terrace Standard.</p>",
    "images": ["http://img.example/a.jpg"]
  },
  {
    "slug": "ferry-schedule",
    "title": "Ferry schedule changes",
    "iso_date": "2023-09-01",
    "display_date": "September 1, 2023",
    "content_html": "<p>By Staff</p><div>Sailings will change next week.</div>",
    "excerpt": "Sailings change."
  }
]`

func writeExport(t *testing.T, dir, name, content string) string {
    t.Helper()
    p := filepath.Join(dir, name)
    if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
        t.Fatalf("write export: %v", err)
    }
    return p
}

func readIndex(t *testing.T, dir string) index {
    t.Helper()
    b, err := os.ReadFile(filepath.Join(dir, indexFile))
    if err != nil {
        t.Fatalf("read index: %v", err)
    }
    var idx index
    if err := json.Unmarshal(b, &idx); err != nil {
        t.Fatalf("decode index: %v", err)
    }
    return idx
}

func TestRun_WritesBodiesAndIndex(t *testing.T) {
    t.Parallel()
    tmp := t.TempDir()
    in := filepath.Join(tmp, "articles")
    if err := os.MkdirAll(in, 0o755); err != nil {
        t.Fatalf("mkdir: %v", err)
    }
    writeExport(t, in, "export.json", exportFixture)
    writeExport(t, in, "broken.json", `{"slug":`)
    out := filepath.Join(tmp, "out")

    a, err := New(context.Background(), Config{InputPath: in, OutputDir: out, Workers: 2, RewriteDate: true})
    if err != nil {
        t.Fatalf("new app: %v", err)
    }
    defer a.Close()
    if err := a.Run(context.Background()); err != nil {
        t.Fatalf("run: %v", err)
    }

    idx := readIndex(t, out)
    if idx.Meta.Articles != 2 || idx.Meta.Skipped != 1 || idx.Meta.Format != "html" || idx.Meta.HTTPCache {
        t.Fatalf("unexpected meta: %+v", idx.Meta)
    }
    if len(idx.Cards) != 2 || idx.Cards[0].Slug != "council-budget" || idx.Cards[1].Slug != "ferry-schedule" {
        t.Fatalf("cards not newest first: %+v", idx.Cards)
    }
    if c := idx.Cards[0]; c.Subhead != "Taxes rise 2%" || c.Date != "May 3, 2024" || c.Image != "http://img.example/a.jpg" {
        t.Fatalf("unexpected card: %+v", c)
    }
    if c := idx.Cards[1]; c.Date != "Sept. 1, 2023" || c.Preview != "Sailings change." {
        t.Fatalf("fallback card fields: %+v", c)
    }
    if len(idx.Files) != 2 {
        t.Fatalf("files=%+v", idx.Files)
    }
    for _, f := range idx.Files {
        b, err := os.ReadFile(filepath.Join(out, f.File))
        if err != nil {
            t.Fatalf("read %s: %v", f.File, err)
        }
        if f.Bytes != len(b) || f.SHA256 != render.Digest(string(b)) {
            t.Fatalf("file entry does not match content: %+v", f)
        }
    }
    body, _ := os.ReadFile(filepath.Join(out, "council-budget.html"))
    got := string(body)
    for _, want := range []string{
        `<p class="text-sm text-gray-500 mb-6 mt-6">May 3, 2024</p>`,
        `<p><strong>By Jane Doe</strong></p>`,
        `<p><em>Originally appeared in Terrace Standard.</em></p>`,
        `<a href="http://img.example/a.jpg" target="_blank" class="article-image-link"><img src="http://img.example/a.jpg"></a>`,
    } {
        if !strings.Contains(got, want) {
            t.Fatalf("body missing %q:\n%s", want, got)
        }
    }
    if strings.Contains(got, "<h4>") {
        t.Fatalf("subhead not stripped:\n%s", got)
    }
}

func TestRun_Markdown(t *testing.T) {
    t.Parallel()
    tmp := t.TempDir()
    in := writeExport(t, tmp, "export.json", exportFixture)
    out := filepath.Join(tmp, "out")
    a, err := New(context.Background(), Config{InputPath: in, OutputDir: out, Format: "markdown"})
    if err != nil {
        t.Fatalf("new app: %v", err)
    }
    if err := a.Run(context.Background()); err != nil {
        t.Fatalf("run: %v", err)
    }
    b, err := os.ReadFile(filepath.Join(out, "council-budget.md"))
    if err != nil {
        t.Fatalf("read markdown: %v", err)
    }
    if !strings.Contains(string(b), "**By Jane Doe**") {
        t.Fatalf("unexpected markdown:\n%s", b)
    }
    if idx := readIndex(t, out); idx.Meta.Format != "markdown" || idx.Files[0].File != "council-budget.md" {
        t.Fatalf("unexpected index: %+v", idx)
    }
}

func TestRun_DryRunWritesNothing(t *testing.T) {
    t.Parallel()
    tmp := t.TempDir()
    in := writeExport(t, tmp, "export.json", exportFixture)
    out := filepath.Join(tmp, "out")
    a, err := New(context.Background(), Config{InputPath: in, OutputDir: out, DryRun: true})
    if err != nil {
        t.Fatalf("new app: %v", err)
    }
    var buf bytes.Buffer
    a.stdout = &buf
    if err := a.Run(context.Background()); err != nil {
        t.Fatalf("run: %v", err)
    }
    s := buf.String()
    if !strings.Contains(s, "# goannotate (dry run)") || !strings.Contains(s, "1. May 3, 2024 | Council approves budget (council-budget)") {
        t.Fatalf("unexpected dry-run output:\n%s", s)
    }
    if _, err := os.Stat(out); !os.IsNotExist(err) {
        t.Fatalf("dry run created output dir: %v", err)
    }
}

func TestRun_NoArticles(t *testing.T) {
    t.Parallel()
    tmp := t.TempDir()
    writeExport(t, tmp, "empty.json", `[{"title":"no slug"}]`)
    a, err := New(context.Background(), Config{InputPath: tmp, OutputDir: filepath.Join(tmp, "out")})
    if err != nil {
        t.Fatalf("new app: %v", err)
    }
    if err := a.Run(context.Background()); !errors.Is(err, ErrNoArticles) {
        t.Fatalf("expected ErrNoArticles, got %v", err)
    }
}

func TestRun_MissingInput(t *testing.T) {
    t.Parallel()
    tmp := t.TempDir()
    a, err := New(context.Background(), Config{InputPath: filepath.Join(tmp, "absent"), OutputDir: tmp})
    if err != nil {
        t.Fatalf("new app: %v", err)
    }
    if err := a.Run(context.Background()); err == nil || errors.Is(err, ErrNoArticles) {
        t.Fatalf("expected load error, got %v", err)
    }
}

func TestRun_RemoteExportRevalidatesFromCache(t *testing.T) {
    t.Parallel()
    var full, notModified int32
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Header.Get("If-None-Match") == `"v1"` {
            atomic.AddInt32(&notModified, 1)
            w.WriteHeader(http.StatusNotModified)
            return
        }
        atomic.AddInt32(&full, 1)
        w.Header().Set("Content-Type", "application/json")
        w.Header().Set("ETag", `"v1"`)
        _, _ = w.Write([]byte(exportFixture))
    }))
    defer srv.Close()

    tmp := t.TempDir()
    cfg := Config{
        InputPath: srv.URL + "/export.json",
        OutputDir: filepath.Join(tmp, "out"),
        CacheDir:  filepath.Join(tmp, "cache"),
    }
    for i := 0; i < 2; i++ {
        a, err := New(context.Background(), cfg)
        if err != nil {
            t.Fatalf("new app: %v", err)
        }
        if err := a.Run(context.Background()); err != nil {
            t.Fatalf("run %d: %v", i, err)
        }
    }
    if atomic.LoadInt32(&full) != 1 || atomic.LoadInt32(&notModified) != 1 {
        t.Fatalf("full=%d notModified=%d, want 1 and 1", full, notModified)
    }
    if idx := readIndex(t, cfg.OutputDir); !idx.Meta.HTTPCache || len(idx.Cards) != 2 {
        t.Fatalf("unexpected index: %+v", idx.Meta)
    }
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
    t.Parallel()
    if _, err := New(context.Background(), Config{InputPath: "x", OutputDir: "y", Format: "pdf"}); err == nil {
        t.Fatalf("expected error for unknown format")
    }
    if _, err := New(context.Background(), Config{InputPath: "x", OutputDir: "y", Workers: -1}); err == nil {
        t.Fatalf("expected error for negative workers")
    }
}
