package article

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptySlug is returned for export records without a slug; the slug
// names output files and seeds the article ID.
var ErrEmptySlug = errors.New("article: empty slug")

// ErrUnsafeSlug is returned for slugs that cannot be used as a file name.
var ErrUnsafeSlug = errors.New("article: slug is not a plain file name")

// Article is one record of the journalism export. ContentHTML is the body
// exactly as the source CMS produced it.
type Article struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	ISODate     string    `json:"iso_date"`
	DisplayDate string    `json:"display_date"`
	SourceURL   string    `json:"source_url"`
	ContentHTML string    `json:"content_html"`
	Images      []string  `json:"images"`
	Captions    []string  `json:"captions"`
	Excerpt     string    `json:"excerpt"`
	Byline      *string   `json:"byline,omitempty"`
}

// idNamespace scopes slug-derived IDs so they cannot collide with IDs
// derived from the same text for other record kinds.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("goannotate:article"))

// normalize trims identifying fields and fills a missing ID with a UUIDv5
// of the slug, so re-imports of the same story keep the same ID.
func (a *Article) normalize() error {
	a.Slug = strings.TrimSpace(a.Slug)
	if a.Slug == "" {
		return ErrEmptySlug
	}
	if a.Slug == "." || a.Slug == ".." || strings.ContainsAny(a.Slug, `/\`+"\x00") {
		return ErrUnsafeSlug
	}
	a.Title = strings.TrimSpace(a.Title)
	if a.ID == uuid.Nil {
		a.ID = uuid.NewSHA1(idNamespace, []byte(a.Slug))
	}
	if a.Captions == nil {
		a.Captions = []string{}
	}
	return nil
}
