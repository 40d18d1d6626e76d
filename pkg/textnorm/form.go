// Package textnorm provides the text-normalization primitives the
// preprocessing pipeline applies before tokenization: Unicode normalization
// forms, lightweight character repair, and the WikiText detokenizer.
package textnorm

import (
	"golang.org/x/text/unicode/norm"
)

// Form names a Unicode normalization form as it appears in the
// ftfy_normalizer field of a dataset section.
type Form string

const (
	NFC  Form = "NFC"
	NFKC Form = "NFKC"
	NFD  Form = "NFD"
	NFKD Form = "NFKD"
)

var normForms = map[Form]norm.Form{
	NFC:  norm.NFC,
	NFKC: norm.NFKC,
	NFD:  norm.NFD,
	NFKD: norm.NFKD,
}

// Valid reports whether the form is a known variant.
func (f Form) Valid() bool {
	_, ok := normForms[f]
	return ok
}

// Forms returns all known variants, for error messages.
func Forms() []Form {
	return []Form{NFC, NFKC, NFD, NFKD}
}

// Apply normalizes s to the form. Unknown forms leave the input unchanged;
// manifest validation rejects them before text ever reaches this point.
func (f Form) Apply(s string) string {
	nf, ok := normForms[f]
	if !ok {
		return s
	}
	return nf.String(s)
}
