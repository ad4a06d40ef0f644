package article

import (
	"strings"

	"github.com/google/uuid"

	"github.com/hyperifyio/goannotate/internal/fragment"
	"github.com/hyperifyio/goannotate/internal/plaintext"
)

// Card is the list-view summary of an article.
type Card struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Subhead        string    `json:"subhead,omitempty"`
	Date           string    `json:"date"`
	Preview        string    `json:"preview"`
	Image          string    `json:"image,omitempty"`
	ImageCaption   string    `json:"image_caption,omitempty"`
	Byline         string    `json:"byline,omitempty"`
	SourceURL      string    `json:"source_url,omitempty"`
	Words          int       `json:"words"`
	ReadingMinutes int       `json:"reading_minutes"`
}

// PrintedDate is the date line printed in the body, or the stored display
// date when the body has none, in CP style.
func (a Article) PrintedDate() string {
	date, ok := fragment.ExtractPrintedDate(a.ContentHTML)
	if !ok {
		date = a.DisplayDate
	}
	return fragment.FormatCPStyle(date)
}

// Preview is the lead paragraph of the body, or the stored excerpt.
func (a Article) Preview() string {
	if p, ok := fragment.ExtractBodyPreview(a.ContentHTML); ok {
		return p
	}
	return a.Excerpt
}

// Card builds the list-view summary.
func (a Article) Card() Card {
	c := Card{
		ID:        a.ID,
		Slug:      a.Slug,
		Title:     a.Title,
		Date:      a.PrintedDate(),
		Preview:   a.Preview(),
		SourceURL: a.SourceURL,
	}
	if sub, ok := fragment.ExtractSubhead(a.ContentHTML); ok {
		c.Subhead = sub
	}
	if len(a.Images) > 0 {
		c.Image = a.Images[0]
		if len(a.Captions) > 0 {
			c.ImageCaption = strings.TrimSpace(a.Captions[0])
		}
	}
	if a.Byline != nil {
		c.Byline = strings.TrimSpace(*a.Byline)
	}
	doc := plaintext.FromFragment(fragment.StripFirstSubhead(a.ContentHTML))
	c.Words = doc.Words
	c.ReadingMinutes = doc.ReadingMinutes()
	return c
}

// RenderBody runs the render pipeline over the body. With rewriteDate the
// printed date paragraph is first replaced by a dateline in CP style.
func (a Article) RenderBody(rewriteDate bool) string {
	body := a.ContentHTML
	if rewriteDate {
		if date, ok := fragment.ExtractPrintedDate(body); ok {
			body = fragment.ReplaceDateParagraph(body, fragment.FormatCPStyle(date))
		}
	}
	return fragment.Render(body)
}
