package article

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDuplicateSlug marks a record whose slug was already loaded.
var ErrDuplicateSlug = errors.New("article: duplicate slug")

// Skipped records an export entry that could not be used.
type Skipped struct {
	Source string
	Err    error
}

// LoadResult holds the usable articles of an export and the entries that
// were skipped. Bad records never fail the whole load.
type LoadResult struct {
	Articles []Article
	Skipped  []Skipped

	slugs map[string]struct{}
}

// Decode parses an export document holding one article object or an array
// of them. Each array element is decoded on its own so one malformed record
// only skips that record. source labels skipped entries.
func Decode(source string, data []byte) (LoadResult, error) {
	var res LoadResult
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return res, fmt.Errorf("decode %s: empty document", source)
	}
	if trimmed[0] != '[' {
		var a Article
		if err := json.Unmarshal(trimmed, &a); err != nil {
			return res, fmt.Errorf("decode %s: %w", source, err)
		}
		res.add(source, a)
		return res, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return res, fmt.Errorf("decode %s: %w", source, err)
	}
	for i, r := range raw {
		label := fmt.Sprintf("%s[%d]", source, i)
		var a Article
		if err := json.Unmarshal(r, &a); err != nil {
			res.Skipped = append(res.Skipped, Skipped{Source: label, Err: err})
			continue
		}
		res.add(label, a)
	}
	return res, nil
}

// LoadFile decodes a single export file.
func LoadFile(path string) (LoadResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read export: %w", err)
	}
	return Decode(path, b)
}

// LoadDir decodes every *.json file directly under dir, in name order.
// Unreadable or malformed files are reported as skipped.
func LoadDir(dir string) (LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read articles dir: %w", err)
	}
	var res LoadResult
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		part, err := LoadFile(path)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Source: path, Err: err})
			continue
		}
		res.merge(path, part)
	}
	return res, nil
}

func (r *LoadResult) add(source string, a Article) {
	if err := a.normalize(); err != nil {
		r.Skipped = append(r.Skipped, Skipped{Source: source, Err: err})
		return
	}
	if r.slugs == nil {
		r.slugs = make(map[string]struct{})
	}
	if _, ok := r.slugs[a.Slug]; ok {
		r.Skipped = append(r.Skipped, Skipped{Source: source, Err: fmt.Errorf("%w: %s", ErrDuplicateSlug, a.Slug)})
		return
	}
	r.slugs[a.Slug] = struct{}{}
	r.Articles = append(r.Articles, a)
}

func (r *LoadResult) merge(source string, o LoadResult) {
	r.Skipped = append(r.Skipped, o.Skipped...)
	for _, a := range o.Articles {
		r.add(source, a)
	}
}

// SortNewestFirst orders articles by ISO date, newest first. Articles with
// equal dates keep their relative order.
func SortNewestFirst(as []Article) {
	sort.SliceStable(as, func(i, j int) bool { return as[i].ISODate > as[j].ISODate })
}
