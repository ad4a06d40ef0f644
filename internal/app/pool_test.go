package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hyperifyio/goannotate/internal/article"
	"github.com/hyperifyio/goannotate/internal/render"
)

func sampleArticles(n int) []article.Article {
	out := make([]article.Article, n)
	for i := range out {
		out[i] = article.Article{
			Slug:        fmt.Sprintf("story-%02d", i),
			Title:       fmt.Sprintf("Story %d", i),
			ContentHTML: fmt.Sprintf("<p>By Reporter %d</p><p>Body of story %d.</p>", i, i),
		}
	}
	return out
}

func TestRenderAll_PreservesOrder(t *testing.T) {
	articles := sampleArticles(25)
	results := renderAll(context.Background(), articles, 4, render.Options{Format: render.FormatHTML}, false)
	if len(results) != len(articles) {
		t.Fatalf("results=%d", len(results))
	}
	for i, r := range results {
		if r.err != nil {
			t.Fatalf("result %d: %v", i, r.err)
		}
		if r.card.Slug != articles[i].Slug {
			t.Fatalf("result %d has slug %q", i, r.card.Slug)
		}
		want := fmt.Sprintf("<p><strong>By Reporter %d</strong></p>", i)
		if !strings.Contains(string(r.out.Content), want) {
			t.Fatalf("result %d content %q", i, r.out.Content)
		}
	}
}

func TestRenderAll_Empty(t *testing.T) {
	if got := renderAll(context.Background(), nil, 4, render.Options{}, false); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestRenderAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	articles := sampleArticles(10)
	results := renderAll(ctx, articles, 2, render.Options{}, false)
	for i, r := range results {
		if r.card.Slug != articles[i].Slug {
			t.Fatalf("result %d missing card", i)
		}
		if r.err != nil && !errors.Is(r.err, context.Canceled) {
			t.Fatalf("result %d: unexpected error %v", i, r.err)
		}
	}
}
