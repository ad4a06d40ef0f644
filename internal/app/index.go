package app

import (
	"encoding/json"
	"time"

	"github.com/hyperifyio/goannotate/internal/article"
)

// indexMeta captures run details that aid reproducibility.
type indexMeta struct {
	Generator   string    `json:"generator"`
	Version     string    `json:"version"`
	Commit      string    `json:"commit"`
	Input       string    `json:"input"`
	Format      string    `json:"format"`
	Sanitized   bool      `json:"sanitized"`
	DateRewrite bool      `json:"date_rewrite"`
	Articles    int       `json:"articles"`
	Skipped     int       `json:"skipped"`
	HTTPCache   bool      `json:"http_cache"`
	GeneratedAt time.Time `json:"generated_at"`
}

// fileEntry records one rendered body written next to the index.
type fileEntry struct {
	Slug   string `json:"slug"`
	File   string `json:"file"`
	SHA256 string `json:"sha256"`
	Bytes  int    `json:"bytes"`
}

// index is the document written to <output>/index.json.
type index struct {
	Meta  indexMeta      `json:"meta"`
	Cards []article.Card `json:"cards"`
	Files []fileEntry    `json:"files"`
}

func marshalIndex(idx index) ([]byte, error) {
	if idx.Cards == nil {
		idx.Cards = []article.Card{}
	}
	if idx.Files == nil {
		idx.Files = []fileEntry{}
	}
	b, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
