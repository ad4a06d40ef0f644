package fragment

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	// maxBylineChars bounds the raw paragraph content treated as a byline;
	// longer "By ..." paragraphs are body copy.
	maxBylineChars = 100

	originPhrase   = "originally appeared in"
	imageLinkClass = "article-image-link"
	datelineClass  = "text-sm text-gray-500 mb-6 mt-6"
)

// BoldByline wraps the content of every short "By ..." paragraph in
// <strong>. A wrapped byline no longer starts with "By ", so running it
// again changes nothing.
func BoldByline(body string) string {
	return wrapInner(body, "p", "<strong>", "</strong>", isByline)
}

// ItalicizeOriginLine wraps the content of every paragraph mentioning
// "originally appeared in", in any letter case, in <em>.
func ItalicizeOriginLine(body string) string {
	return wrapInner(body, "p", "<em>", "</em>", isOriginLine)
}

// LinkifyImages wraps each <img> that has a src="..." attribute in an
// anchor opening that same URL in a new tab. Images already wrapped by a
// previous pass are left alone.
func LinkifyImages(body string) string {
	pos := 0
	for {
		rel := strings.Index(body[pos:], "<img")
		if rel < 0 {
			return body
		}
		open := pos + rel
		gt := strings.IndexByte(body[open:], '>')
		if gt < 0 {
			pos = open + len("<img")
			continue
		}
		end := open + gt + 1
		tag := body[open:end]
		src, ok := imageSrc(tag)
		if !ok || strings.HasSuffix(body[:open], imageLinkOpen(src)) {
			pos = end
			continue
		}
		wrapped := imageLinkOpen(src) + tag + "</a>"
		body = body[:open] + wrapped + body[end:]
		pos = open + len(wrapped)
	}
}

// StripFirstSubhead removes the first <h4>...</h4> element, tags included.
func StripFirstSubhead(body string) string {
	start := strings.Index(body, "<h4")
	if start < 0 {
		return body
	}
	end := strings.Index(body[start:], "</h4>")
	if end < 0 {
		return body
	}
	return body[:start] + body[start+end+len("</h4>"):]
}

// ReplaceDateParagraph swaps the printed date paragraph, as found by
// ExtractPrintedDate, for a styled dateline holding date. date is fragment
// text, entities included, and is inserted verbatim.
func ReplaceDateParagraph(body, date string) string {
	start, end, ok := scanParagraphs(body, dateLookahead, StartsWithMonth)
	if !ok {
		return body
	}
	return body[:start] + `<p class="` + datelineClass + `">` + date + "</p>" + body[end:]
}

// wrapInner surrounds the content of each <name> element accepted by match
// with before and after. The cursor resumes after the rewritten element so
// injected markup is never rescanned.
func wrapInner(body, name, before, after string, match func(inner string) bool) string {
	closeLen := len("</" + name + ">")
	pos := 0
	for {
		sp, m := LocateTag(body, name, pos)
		switch m {
		case NoMatch:
			return body
		case OpenOnly:
			pos = sp.OpenStart + 1 + len(name)
			continue
		}
		inner := sp.Inner(body)
		if !match(inner) {
			pos = sp.CloseEnd
			continue
		}
		wrapped := before + inner + after
		body = body[:sp.ContentStart] + wrapped + body[sp.ContentEnd:]
		pos = sp.ContentStart + len(wrapped) + closeLen
	}
}

func isByline(inner string) bool {
	return strings.HasPrefix(strings.TrimSpace(inner), bylinePrefix) &&
		utf8.RuneCountInString(inner) < maxBylineChars
}

func isOriginLine(inner string) bool {
	t := strings.TrimSpace(inner)
	if strings.HasPrefix(t, "<em>") && strings.HasSuffix(t, "</em>") {
		return false
	}
	// Casers are stateful and must not be shared between goroutines.
	return strings.Contains(cases.Fold().String(inner), originPhrase)
}

// imageSrc returns the value of the first src="..." inside an <img> tag.
func imageSrc(tag string) (string, bool) {
	i := strings.Index(tag, `src="`)
	if i < 0 {
		return "", false
	}
	v := tag[i+len(`src="`):]
	j := strings.IndexByte(v, '"')
	if j < 0 {
		return "", false
	}
	return v[:j], true
}

func imageLinkOpen(src string) string {
	return `<a href="` + src + `" target="_blank" class="` + imageLinkClass + `">`
}
