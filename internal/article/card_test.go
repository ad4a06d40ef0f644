package article

import (
	"strings"
	"testing"
)

func TestCard_FromBody(t *testing.T) {
	a := Article{
		Slug:        "budget",
		Title:       "Budget passes",
		DisplayDate: "January 2, 2000",
		Excerpt:     "stored excerpt",
		Images:      []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
		ContentHTML: "<h4>Sub</h4><p>September 3, 2024</p><p>By Jane Doe</p><p>Real text here.</p>",
	}
	if err := a.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	c := a.Card()
	if c.Date != "Sept. 3, 2024" {
		t.Fatalf("date=%q", c.Date)
	}
	if c.Preview != "Real text here." {
		t.Fatalf("preview=%q", c.Preview)
	}
	if c.Subhead != "Sub" {
		t.Fatalf("subhead=%q", c.Subhead)
	}
	if c.Image != "https://example.com/a.jpg" {
		t.Fatalf("image=%q", c.Image)
	}
	if c.ID != a.ID {
		t.Fatalf("card id mismatch")
	}
	// September 3, 2024 / By Jane Doe / Real text here.
	if c.Words != 9 || c.ReadingMinutes != 1 {
		t.Fatalf("words=%d minutes=%d", c.Words, c.ReadingMinutes)
	}
}

func TestCard_FallsBackToStoredFields(t *testing.T) {
	a := Article{
		Slug:        "photo-essay",
		DisplayDate: "October 9, 2019",
		Excerpt:     "A look back.",
		ContentHTML: `<p><img src="x.jpg"></p><p>By Staff</p>`,
	}
	c := a.Card()
	if c.Date != "Oct. 9, 2019" {
		t.Fatalf("date=%q, want display date in CP style", c.Date)
	}
	if c.Preview != "A look back." {
		t.Fatalf("preview=%q, want excerpt", c.Preview)
	}
	if c.Subhead != "" || c.Image != "" {
		t.Fatalf("unexpected subhead/image: %+v", c)
	}
}

func TestRenderBody(t *testing.T) {
	a := Article{ContentHTML: `<h4>Sub</h4><p>November 5, 2021</p><p>By Jane</p><img src="p.jpg">`}

	plain := a.RenderBody(false)
	want := `<p>November 5, 2021</p><p><strong>By Jane</strong></p><a href="p.jpg" target="_blank" class="article-image-link"><img src="p.jpg"></a>`
	if plain != want {
		t.Fatalf("got %q, want %q", plain, want)
	}

	dated := a.RenderBody(true)
	if !strings.HasPrefix(dated, `<p class="text-sm text-gray-500 mb-6 mt-6">Nov. 5, 2021</p>`) {
		t.Fatalf("date paragraph not rewritten: %q", dated)
	}
	if strings.Contains(dated, "<h4") {
		t.Fatalf("subhead should be stripped: %q", dated)
	}
}

func TestCard_BylineAndCaption(t *testing.T) {
	byline := "  Jane Doe "
	a := Article{
		Slug:        "harbour",
		Byline:      &byline,
		Images:      []string{"https://example.com/h.jpg"},
		Captions:    []string{" The harbour at dawn. ", "unused"},
		ContentHTML: "<p>Text.</p>",
	}
	c := a.Card()
	if c.Byline != "Jane Doe" || c.ImageCaption != "The harbour at dawn." {
		t.Fatalf("byline=%q caption=%q", c.Byline, c.ImageCaption)
	}
	a.Byline = nil
	a.Images = nil
	if c := a.Card(); c.Byline != "" || c.ImageCaption != "" {
		t.Fatalf("expected no byline or caption without sources: %+v", c)
	}
}

func TestRenderBody_DateRewriteKeepsEntities(t *testing.T) {
	a := Article{
		Slug:        "ferry",
		ContentHTML: "<h4>S</h4><p>September 3, 2024&nbsp;</p><p>By Jane Doe</p><p>Fares &amp; schedules.</p>",
	}
	got := a.RenderBody(true)
	want := `<p class="text-sm text-gray-500 mb-6 mt-6">Sept. 3, 2024&nbsp;</p><p><strong>By Jane Doe</strong></p><p>Fares &amp; schedules.</p>`
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	if strings.Contains(got, "&amp;nbsp;") {
		t.Fatalf("entity escaped twice: %q", got)
	}
}
