package textnorm

import (
	"strings"
	"unicode"
)

// FixText applies the character repairs run when use_ftfy is enabled:
// byte-order marks are dropped, Windows line endings become plain newlines,
// and control characters other than newline and tab are removed.
func FixText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\uFEFF' {
			return -1
		}
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// Normalizer builds the cleaning function for a dataset section's flags.
// Steps run in pipeline order: character repair, then Unicode
// normalization, then WikiText detokenization. With every flag off the
// returned function is the identity.
func Normalizer(form Form, fixText, detokenize bool) func(string) string {
	return func(s string) string {
		if fixText {
			s = FixText(s)
			s = form.Apply(s)
		}
		if detokenize {
			s = WikitextDetokenize(s)
		}
		return s
	}
}
