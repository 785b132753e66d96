package irail

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StationSlug normalizes a station display name into the ASCII form the
// connections endpoint expects: diacritics stripped, lower-cased.
// "Liège-Guillemins" becomes "liege-guillemins".
func StationSlug(name string) string {
	ascii, _, err := transform.String(deaccent, name)
	if err != nil {
		ascii = name
	}
	return strings.ToLower(strings.TrimSpace(ascii))
}
