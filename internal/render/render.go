package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Format selects how rendered bodies are written.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "html", "markdown" or "md", in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Ext is the file extension for the format, dot included.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".html"
}

// Options configures a Renderer.
type Options struct {
	Format   Format
	Sanitize bool
}

// Output is one rendered article body.
type Output struct {
	Content []byte
	SHA256  string
}

// Renderer turns annotated bodies into output files. A Renderer is not safe
// for concurrent use; give each worker its own.
type Renderer struct {
	opts   Options
	policy *bluemonday.Policy
	md     *converter.Converter
}

// New builds a Renderer for opts.
func New(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatHTML
	}
	r := &Renderer{opts: opts}
	if opts.Sanitize {
		r.policy = Policy()
	}
	if opts.Format == FormatMarkdown {
		r.md = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		)
	}
	return r
}

var targetBlank = regexp.MustCompile(`^_blank$`)

// Policy is the sanitization policy applied before output when enabled:
// user-generated-content rules plus the class and target attributes the
// annotator injects.
func Policy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowAttrs("target").Matching(targetBlank).OnElements("a")
	return p
}

// Render converts an annotated body. sourceURL, when set, resolves relative
// links in Markdown output.
func (r *Renderer) Render(body, sourceURL string) (Output, error) {
	if r.policy != nil {
		body = r.policy.Sanitize(body)
	}
	content := body
	if r.md != nil {
		var md string
		var err error
		if sourceURL != "" {
			md, err = r.md.ConvertString(body, converter.WithDomain(sourceURL))
		} else {
			md, err = r.md.ConvertString(body)
		}
		if err != nil {
			return Output{}, fmt.Errorf("convert markdown: %w", err)
		}
		content = md
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return Output{Content: []byte(content), SHA256: Digest(content)}, nil
}

// Digest returns the lowercase hex SHA-256 of s.
func Digest(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
