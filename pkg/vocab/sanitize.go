package vocab

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	underscores = regexp.MustCompile(`_+`)
)

// SanitizeLocalName turns arbitrary text into a safe IRI local name:
// non-alphanumeric runs collapse to a single underscore, leading and
// trailing underscores are stripped, and names that would start with a
// digit get an "n" prefix. Empty input yields "unknown".
func SanitizeLocalName(text string) string {
	if text == "" {
		return "unknown"
	}

	s := nonAlnum.ReplaceAllString(text, "_")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if s != "" && !unicode.IsLetter(rune(s[0])) {
		s = "n" + s
	}
	if s == "" {
		return "unknown"
	}
	return s
}

// EntityIRI builds the node IRI for an entity code, e.g. "USA" ->
// Namespace + "USA". This is the naming scheme ingestion uses, kept here
// so generated identifiers and ingested identifiers cannot drift apart.
func EntityIRI(code string) string {
	return Namespace + SanitizeLocalName(code)
}
