package ir

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the canonical form of a display name used for
// hashing and lookup: NFC normalized, trimmed, with inner whitespace runs
// collapsed to a single space. Case is preserved.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}
