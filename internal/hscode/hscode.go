// Package hscode provides pure helpers over Harmonized System code strings:
// chapter and root derivation, reference link generation, and the loose
// shape check used to route search terms.
package hscode

import (
	"fmt"
	"regexp"
	"strings"
)

// codeShape is the loose HS code pattern used for search dispatch:
// four digits optionally followed by one or two .NN groups.
var codeShape = regexp.MustCompile(`^\d{4}(\.\d{2})?(\.\d{2})?$`)

// LooksLikeCode reports whether term has the shape of an HS code.
// Terms matching this shape route to code-restricted search.
func LooksLikeCode(term string) bool {
	return codeShape.MatchString(strings.TrimSpace(term))
}

// Chapter returns the two-digit chapter prefix of code.
// Codes of two characters or fewer are returned unchanged.
func Chapter(code string) string {
	if len(code) > 2 {
		return code[:2]
	}
	return code
}

// Root returns the six-digit international root of code with dots stripped.
// Codes with fewer than six digits yield whatever digits exist.
func Root(code string) string {
	digits := strings.ReplaceAll(code, ".", "")
	if len(digits) > 6 {
		return digits[:6]
	}
	return digits
}

// Links is the fixed set of reference URLs derived from an HS code.
type Links struct {
	Portal   string `json:"portal"`
	Chapter  string `json:"chapter"`
	Detailed string `json:"detailed"`
	Search   string `json:"search"`
}

// ReferenceLinks derives the named reference URLs for code. It never fails:
// absent or short codes produce links with empty path segments.
func ReferenceLinks(code string) Links {
	return Links{
		Portal:   "https://hts.usitc.gov",
		Chapter:  fmt.Sprintf("https://www.tariffnumber.com/2025/%s", Chapter(code)),
		Detailed: fmt.Sprintf("https://www.findhs.codes/search/%s", Root(code)),
		Search:   fmt.Sprintf("https://hts.usitc.gov/search?query=%s", Root(code)),
	}
}
