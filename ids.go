package troubadour

import "regexp"

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// namePattern allows alphanumerics, whitespace, and a small punctuation
// set used by display names; spec.md §6.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9\s()\-_.,'/]{1,200}$`)

// ValidID reports whether id is a legal channel or bus identifier:
// non-empty, at most 100 bytes, alphanumeric plus '-' and '_'.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// ValidName reports whether name is a legal display name: at most 200
// bytes, alphanumerics, whitespace, or ()-_.,'/.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// busSeries is the ordered prefix of A-series bus ids a bus collection
// may ever contain; spec.md §3 bounds the count to [2, 5].
var busSeries = []string{"A1", "A2", "A3", "A4", "A5"}

const (
	MinBusCount = 2
	MaxBusCount = 5
)
