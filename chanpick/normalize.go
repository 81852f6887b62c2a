package chanpick

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey performs Unicode normalization on a group-key cell so that
// full-width digits and hyphen variants compare equal to the canonical key form.
func NormalizeKey(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		switch r {
		case '‐', '‑', '‒', '–', '−':
			return '-'
		}
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, normed)
	return normed
}
