package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldHeader returns the comparison form of a column or show name.
// "  personal   RATING " and "Personal Rating" fold to the same string.
func FoldHeader(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	// Casers keep state and are not safe for concurrent use.
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are the same after FoldHeader.
func EqualFold(a, b string) bool {
	return FoldHeader(a) == FoldHeader(b)
}
