package http11

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// decodeLossy converts b to a string, replacing each maximal ill-formed
// subsequence with one U+FFFD.
//
// Allocation behavior: 1 alloc/op for valid input
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	// The decoder substitutes instead of failing, so err is always nil here.
	out, _ := unicode.UTF8.NewDecoder().Bytes(b)
	return string(out)
}
