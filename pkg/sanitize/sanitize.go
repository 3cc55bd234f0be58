// Package sanitize reduces arbitrary text to the single-byte repertoire of the
// PDF core fonts.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var replacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u2032", "'",
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`, "\u2033", `"`,
	"\u2013", "-", "\u2014", "-", "\u2015", "-", "\u2212", "-",
	"\u2026", "...",
	"\u00a0", " ", "\u2009", " ", "\u202f", " ",
	"\u2248", "~",
	"\u2265", ">=",
	"\u2264", "<=",
	"\u2022", "-",
	"\u00d7", "x",
	"\r\n", "\n",
)

// String returns s with typographic punctuation substituted, accents folded and
// anything else outside printable ASCII removed. Newlines and tabs survive.
func String(s string) string {
	if isPlain(s) {
		return s
	}
	s = replacer.Replace(s)
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r >= 0x20 && r < 0x7F:
			b.WriteRune(r)
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		}
	}
	return b.String()
}

// StripEmphasis removes markdown bold markers.
func StripEmphasis(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

// Cell prepares a table cell: emphasis stripped, sanitized, trimmed.
func Cell(s string) string {
	return strings.TrimSpace(String(StripEmphasis(s)))
}

func isPlain(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x7F || (c < 0x20 && c != '\n' && c != '\t') {
			return false
		}
	}
	return true
}
