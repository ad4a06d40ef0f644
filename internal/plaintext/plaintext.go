package plaintext

import (
	"math"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WordsPerMinute is the reading speed used for ReadingMinutes.
const WordsPerMinute = 200

// Document is the readable text of one article body.
type Document struct {
	Text  string
	Words int
}

// ReadingMinutes rounds the reading time up to whole minutes. Any non-empty
// body takes at least one minute.
func (d Document) ReadingMinutes() int {
	if d.Words == 0 {
		return 0
	}
	return int(math.Ceil(float64(d.Words) / WordsPerMinute))
}

// FromFragment extracts readable text from an article body fragment. Block
// elements are separated by blank lines, entities are decoded, and embedded
// widgets (scripts, share bars, related-story boxes) are skipped.
func FromFragment(body string) Document {
	nodes, err := html.ParseFragment(strings.NewReader(body), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return Document{}
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(&b, n, false)
	}
	text := normalizeWhitespace(b.String())
	return Document{Text: text, Words: len(strings.Fields(text))}
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if n.Type == html.ElementNode {
		if isWidgetContainer(n) {
			return
		}
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Iframe, atom.Form, atom.Button:
			return
		case atom.Pre:
			inPre = true
		case atom.Br, atom.Hr:
			b.WriteString("\n")
		case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Li,
			atom.Blockquote, atom.Figcaption, atom.Ul, atom.Ol:
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.ReplaceAll(data, "\t", " ")
			data = strings.ReplaceAll(data, "\r", " ")
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Blockquote, atom.Figcaption:
			b.WriteString("\n\n")
		case atom.Li, atom.Pre:
			b.WriteString("\n")
		}
	}
}

// isWidgetContainer returns true for blocks CMS exports embed around the
// story: share buttons, newsletter prompts, related links and ads.
func isWidgetContainer(n *html.Node) bool {
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" {
			continue
		}
		val := strings.ToLower(attr.Val)
		if containsAny(val, []string{"share", "newsletter", "related", "advert", "sponsored"}) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func normalizeWhitespace(s string) string {
	// Collapse multiple spaces and blank lines
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, strings.Join(strings.Fields(trimmed), " "))
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
