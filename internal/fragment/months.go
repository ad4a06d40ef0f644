package fragment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// monthTokens are the month spellings a printed date line may start with.
// Abbreviations follow CP style, which is why "Sept." has four letters.
var monthTokens = [...]string{
	"Jan.", "January", "Feb.", "February", "Mar.", "March", "Apr.", "April",
	"May", "June", "July", "Aug.", "August", "Sept.", "September", "Oct.",
	"October", "Nov.", "November", "Dec.", "December",
}

// cpReplacements is applied in order by FormatCPStyle. March through July
// are never abbreviated in CP style.
var cpReplacements = [...][2]string{
	{"January", "Jan."},
	{"February", "Feb."},
	{"August", "Aug."},
	{"September", "Sept."},
	{"October", "Oct."},
	{"November", "Nov."},
	{"December", "Dec."},
}

// StartsWithMonth reports whether s, ignoring leading whitespace, begins
// with a month token that is not the prefix of a longer word. "May 3" and
// "Dec." match, "Mayhem" does not.
func StartsWithMonth(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for _, m := range monthTokens {
		if !strings.HasPrefix(s, m) {
			continue
		}
		next, size := utf8.DecodeRuneInString(s[len(m):])
		if size == 0 || !unicode.IsLetter(next) {
			return true
		}
	}
	return false
}

// FormatCPStyle abbreviates full month names the way Canadian Press style
// prints them in datelines: "September 1, 2024" becomes "Sept. 1, 2024".
func FormatCPStyle(date string) string {
	for _, r := range cpReplacements {
		date = strings.ReplaceAll(date, r[0], r[1])
	}
	return date
}
