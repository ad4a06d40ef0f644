package app

import (
    "bufio"
    "errors"
    "fmt"
    "os"
    "strings"
)

// LoadEnvFiles loads one or more dotenv files of KEY=VALUE pairs into the
// process environment. Later files override earlier ones and missing files
// are skipped. Variables already set in the environment win over every file.
func LoadEnvFiles(paths ...string) error {
    preset := map[string]bool{}
    for _, kv := range os.Environ() {
        if eq := strings.IndexByte(kv, '='); eq > 0 && kv[eq+1:] != "" {
            preset[kv[:eq]] = true
        }
    }
    for _, p := range paths {
        if strings.TrimSpace(p) == "" {
            continue
        }
        vars, err := readEnvFile(p)
        if err != nil {
            if errors.Is(err, os.ErrNotExist) {
                continue
            }
            return fmt.Errorf("load env %s: %w", p, err)
        }
        for _, kv := range vars {
            if preset[kv[0]] {
                continue
            }
            _ = os.Setenv(kv[0], kv[1])
        }
    }
    return nil
}

// readEnvFile returns the KEY=VALUE pairs of a dotenv file in file order.
// Blank lines, '#' comments and an optional "export " prefix are accepted.
// Values are not expanded.
func readEnvFile(path string) ([][2]string, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    var out [][2]string
    scanner := bufio.NewScanner(f)
    for scanner.Scan() {
        line := strings.TrimSpace(scanner.Text())
        if line == "" || strings.HasPrefix(line, "#") {
            continue
        }
        line = strings.TrimPrefix(line, "export ")
        eq := strings.IndexByte(line, '=')
        if eq <= 0 {
            // ignore malformed lines silently
            continue
        }
        key := strings.TrimSpace(line[:eq])
        out = append(out, [2]string{key, unquote(strings.TrimSpace(line[eq+1:]))})
    }
    return out, scanner.Err()
}

func unquote(val string) string {
    if len(val) >= 2 {
        if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
            return val[1 : len(val)-1]
        }
    }
    return val
}
