package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeName trims and collapses whitespace but keeps case, since insulin
// names and device forms are display keys.
// Returns nil if the input is nil or the result is empty.
func NormalizeName(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	s = multiSpace.ReplaceAllString(s, " ")
	return &s
}

// FoldKey returns the case- and whitespace-insensitive form of s used for
// forgiving lookups.
func FoldKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return multiSpace.ReplaceAllString(s, " ")
}
