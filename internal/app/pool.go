package app

import (
	"context"
	"sync"

	"github.com/hyperifyio/goannotate/internal/article"
	"github.com/hyperifyio/goannotate/internal/render"
)

// rendered is the outcome for one article, stored at the article's index.
type rendered struct {
	card article.Card
	out  render.Output
	err  error
}

// renderAll builds cards and rendered bodies with a fixed number of workers.
// Each worker owns a Renderer. Results keep the order of articles.
func renderAll(ctx context.Context, articles []article.Article, workers int, opts render.Options, rewriteDate bool) []rendered {
	results := make([]rendered, len(articles))
	if len(articles) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(articles) {
		workers = len(articles)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := render.New(opts)
			for i := range jobs {
				a := articles[i]
				res := rendered{card: a.Card()}
				res.out, res.err = r.Render(a.RenderBody(rewriteDate), a.SourceURL)
				results[i] = res
			}
		}()
	}

feed:
	for i := range articles {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if results[i].card.Slug == "" && results[i].err == nil {
			results[i] = rendered{card: articles[i].Card(), err: ctx.Err()}
		}
	}
	return results
}
