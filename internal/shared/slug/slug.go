// Package slug turns product names and upload filenames into URL-safe keys.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when nothing usable is left.
const Fallback = "product"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// FromName lowercases s, drops accents ("Básicas" -> "basicas") and joins
// the remaining alphanumeric runs with "-".
func FromName(s string) string {
	s = strings.ToLower(strings.TrimSpace(fold(s)))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
