// Package fragment reads and rewrites imported article bodies by scanning
// their markup as text. Output is identical to the input outside the spans a
// function targets, and every scan terminates on malformed input.
package fragment

import "strings"

// TagSpan locates one element inside a fragment. All offsets are byte
// offsets into the scanned string:
//
//	<p class="x">inner text</p>
//	^            ^         ^   ^
//	OpenStart    |         |   CloseEnd
//	             ContentStart
//	                       ContentEnd
type TagSpan struct {
	OpenStart    int
	ContentStart int
	ContentEnd   int
	CloseEnd     int
}

// Inner returns the element content of span within s.
func (sp TagSpan) Inner(s string) string {
	return s[sp.ContentStart:sp.ContentEnd]
}

// Outer returns the whole element, opening and closing tags included.
func (sp TagSpan) Outer(s string) string {
	return s[sp.OpenStart:sp.CloseEnd]
}

// FindBetween returns the text between the first open marker at or after
// from and the next close marker after it, plus the offset just past the
// close marker. Markers are bare substrings: "<p" also matches "<p class=..."
// so the returned text still carries the rest of the opening tag.
func FindBetween(haystack, openMarker, closeMarker string, from int) (string, int, bool) {
	if from < 0 || from > len(haystack) {
		return "", from, false
	}
	start := strings.Index(haystack[from:], openMarker)
	if start < 0 {
		return "", from, false
	}
	after := from + start + len(openMarker)
	end := strings.Index(haystack[after:], closeMarker)
	if end < 0 {
		return "", from, false
	}
	end += after
	return haystack[after:end], end + len(closeMarker), true
}

// Match reports how far LocateTag got.
type Match int

const (
	// NoMatch means no further opening marker, or an opening tag with no
	// closing tag after it. Scanning stops.
	NoMatch Match = iota
	// OpenOnly means the opening marker has no '>' after it. Only
	// TagSpan.OpenStart is set; callers skip past the marker and go on.
	OpenOnly
	// Found means every TagSpan offset is set.
	Found
)

// LocateTag finds the next <name ...>...</name> element at or after from.
func LocateTag(s, name string, from int) (TagSpan, Match) {
	if from < 0 || from > len(s) {
		return TagSpan{}, NoMatch
	}
	openMarker := "<" + name
	closeMarker := "</" + name + ">"
	rel := strings.Index(s[from:], openMarker)
	if rel < 0 {
		return TagSpan{}, NoMatch
	}
	sp := TagSpan{OpenStart: from + rel}
	gt := strings.IndexByte(s[sp.OpenStart:], '>')
	if gt < 0 {
		return sp, OpenOnly
	}
	sp.ContentStart = sp.OpenStart + gt + 1
	end := strings.Index(s[sp.ContentStart:], closeMarker)
	if end < 0 {
		return sp, NoMatch
	}
	sp.ContentEnd = sp.ContentStart + end
	sp.CloseEnd = sp.ContentEnd + len(closeMarker)
	return sp, Found
}

// openTagEnd returns the offset just past the first '>' in inner, or 0 when
// the opening tag is not closed inside inner.
func openTagEnd(inner string) int {
	if i := strings.IndexByte(inner, '>'); i >= 0 {
		return i + 1
	}
	return 0
}

// StripTags drops every character from '<' through the matching '>' and
// trims surrounding whitespace. It is not an HTML parser: entities stay
// encoded and an unterminated '<' swallows the rest of the input.
func StripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch r {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(b.String())
}
