package textnorm

import (
	"regexp"
	"strings"
)

var (
	slashDigitRe   = regexp.MustCompile(`/' ([0-9])/`)
	parenGroupRe   = regexp.MustCompile(`\(\s*([^)]*?)\s*\)`)
	bracketGroupRe = regexp.MustCompile(`\[\s*([^\]]*?)\s*\]`)
	braceGroupRe   = regexp.MustCompile(`\{\s*([^}]*?)\s*\}`)
	dquoteGroupRe  = regexp.MustCompile(`"\s*([^"]*?)\s*"`)
	squoteGroupRe  = regexp.MustCompile(`'\s*([^']*?)\s*'`)
)

// WikitextDetokenize undoes the token-level spacing of the raw WikiText
// dumps, applied when wikitext_detokenize is enabled. Rules run in a fixed
// order: possessives first, then the @-escaped number separators, then
// punctuation spacing, bracket and quote tightening, heading markers, and
// whitespace around newlines.
func WikitextDetokenize(s string) string {
	// Contractions.
	s = strings.ReplaceAll(s, "s '", "s'")
	s = slashDigitRe.ReplaceAllString(s, "/'$1/")

	// Number separators.
	s = strings.ReplaceAll(s, " @-@ ", "-")
	s = strings.ReplaceAll(s, " @,@ ", ",")
	s = strings.ReplaceAll(s, " @.@ ", ".")

	// Punctuation.
	s = strings.ReplaceAll(s, " : ", ": ")
	s = strings.ReplaceAll(s, " ; ", "; ")
	s = strings.ReplaceAll(s, " . ", ". ")
	s = strings.ReplaceAll(s, " ! ", "! ")
	s = strings.ReplaceAll(s, " ? ", "? ")
	s = strings.ReplaceAll(s, " , ", ", ")

	// Brackets and quotes.
	s = parenGroupRe.ReplaceAllString(s, "($1)")
	s = bracketGroupRe.ReplaceAllString(s, "[$1]")
	s = braceGroupRe.ReplaceAllString(s, "{$1}")
	s = dquoteGroupRe.ReplaceAllString(s, `"$1"`)
	s = squoteGroupRe.ReplaceAllString(s, "'$1'")

	// Heading markers and leftovers.
	s = strings.ReplaceAll(s, "= = = =", "====")
	s = strings.ReplaceAll(s, "= = =", "===")
	s = strings.ReplaceAll(s, "= =", "==")
	s = strings.ReplaceAll(s, " ° ", "°")
	s = strings.ReplaceAll(s, " \n", "\n")
	s = strings.ReplaceAll(s, "\n ", "\n")
	s = strings.ReplaceAll(s, " N ", " 1 ")
	s = strings.ReplaceAll(s, " 's", "'s")

	return s
}
