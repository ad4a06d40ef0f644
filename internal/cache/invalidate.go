package cache

import (
    "encoding/json"
    "errors"
    "io/fs"
    "os"
    "path/filepath"
    "sort"
    "strings"
    "time"
)

// ClearDir removes the directory and all contents. It recreates the directory
// afterwards to leave a valid empty cache location.
func ClearDir(dir string) error {
    if strings.TrimSpace(dir) == "" {
        return errors.New("empty dir")
    }
    if err := os.RemoveAll(dir); err != nil {
        return err
    }
    return os.MkdirAll(dir, 0o755)
}

// PurgeHTTPCacheByAge removes HTTP cache entries older than maxAge.
// It inspects <key>.meta.json for SavedAt timestamp and deletes both meta and
// corresponding <key>.body when expired.
func PurgeHTTPCacheByAge(dir string, maxAge time.Duration) (int, error) {
    if maxAge <= 0 {
        return 0, nil
    }
    now := time.Now().UTC()
    removed := 0
    err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            return err
        }
        if d.IsDir() || !strings.HasSuffix(d.Name(), ".meta.json") {
            return nil
        }
        b, err := os.ReadFile(path)
        if err != nil {
            return nil // skip unreadable
        }
        var e HTTPEntry
        if err := json.Unmarshal(b, &e); err != nil {
            return nil // skip malformed
        }
        if now.Sub(e.SavedAt) <= maxAge {
            return nil
        }
        removed++
        _ = os.Remove(path)
        _ = os.Remove(strings.TrimSuffix(path, ".meta.json") + ".body")
        return nil
    })
    return removed, err
}

type lruEntry struct {
    base    string
    size    int64
    touched time.Time
}

// EnforceHTTPCacheLimits evicts least recently used entries until the cache
// holds at most maxCount entries and maxBytes bytes. Zero disables a limit.
// Recency is the body file's modification time, refreshed on every read.
func EnforceHTTPCacheLimits(dir string, maxBytes int64, maxCount int) (int, error) {
    if maxBytes <= 0 && maxCount <= 0 {
        return 0, nil
    }
    byBase := map[string]*lruEntry{}
    err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            return err
        }
        if d.IsDir() {
            return nil
        }
        var base string
        switch {
        case strings.HasSuffix(path, ".meta.json"):
            base = strings.TrimSuffix(path, ".meta.json")
        case strings.HasSuffix(path, ".body"):
            base = strings.TrimSuffix(path, ".body")
        default:
            return nil
        }
        info, err := d.Info()
        if err != nil {
            return nil
        }
        e := byBase[base]
        if e == nil {
            e = &lruEntry{base: base}
            byBase[base] = e
        }
        e.size += info.Size()
        if strings.HasSuffix(path, ".body") {
            e.touched = info.ModTime()
        }
        return nil
    })
    if err != nil {
        return 0, err
    }

    entries := make([]*lruEntry, 0, len(byBase))
    var total int64
    for _, e := range byBase {
        entries = append(entries, e)
        total += e.size
    }
    sort.Slice(entries, func(i, j int) bool { return entries[i].touched.Before(entries[j].touched) })

    removed := 0
    for _, e := range entries {
        overCount := maxCount > 0 && len(entries)-removed > maxCount
        overBytes := maxBytes > 0 && total > maxBytes
        if !overCount && !overBytes {
            break
        }
        _ = os.Remove(e.base + ".body")
        _ = os.Remove(e.base + ".meta.json")
        total -= e.size
        removed++
    }
    return removed, nil
}
