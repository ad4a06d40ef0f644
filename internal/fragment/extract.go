package fragment

import "strings"

// Scan bounds for paragraph lookahead. Imported bodies put the date line
// within the first few paragraphs; the preview may sit behind a date, a
// byline and a handful of empty spacer paragraphs.
const (
	dateLookahead    = 5
	previewLookahead = 12
)

const bylinePrefix = "By "

// ExtractSubhead returns the tag-stripped text of the first <h4> element.
func ExtractSubhead(html string) (string, bool) {
	inner, _, ok := FindBetween(html, "<h4", "</h4>", 0)
	if !ok {
		return "", false
	}
	gt := strings.IndexByte(inner, '>')
	if gt < 0 {
		return "", false
	}
	return StripTags(inner[gt+1:]), true
}

// ExtractPrintedDate returns the first paragraph after the subhead (or
// from the top when there is none) whose text starts with a month.
func ExtractPrintedDate(html string) (string, bool) {
	var found string
	_, _, ok := scanParagraphs(html, dateLookahead, func(text string) bool {
		if StartsWithMonth(text) {
			found = text
			return true
		}
		return false
	})
	return found, ok
}

// ExtractBodyPreview returns the text of the first paragraph that is not
// empty, not a date line and not a byline.
func ExtractBodyPreview(html string) (string, bool) {
	var found string
	_, _, ok := scanParagraphs(html, previewLookahead, func(text string) bool {
		if text == "" || StartsWithMonth(text) || strings.HasPrefix(text, bylinePrefix) {
			return false
		}
		found = text
		return true
	})
	return found, ok
}

// bodyStart is the offset just past the first </h4>, or 0.
func bodyStart(html string) int {
	if i := strings.Index(html, "</h4>"); i >= 0 {
		return i + len("</h4>")
	}
	return 0
}

// scanParagraphs visits up to limit <p> paragraphs after the subhead,
// passing each one's stripped text to visit until it returns true. It
// returns the byte range of the accepted paragraph, from "<p" through
// "</p>".
func scanParagraphs(html string, limit int, visit func(text string) bool) (int, int, bool) {
	pos := bodyStart(html)
	for i := 0; i < limit; i++ {
		inner, next, ok := FindBetween(html, "<p", "</p>", pos)
		if !ok {
			return 0, 0, false
		}
		if visit(StripTags(inner[openTagEnd(inner):])) {
			return pos + strings.Index(html[pos:], "<p"), next, true
		}
		pos = next
	}
	return 0, 0, false
}
