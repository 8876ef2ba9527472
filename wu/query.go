package wu

import (
	"strings"
	"unicode"

	"github.com/spf13/cast"
)

// SanitizeQuery turns a free-form location query into a path segment by
// stringifying it and dropping every whitespace character. "New  York"
// becomes "NewYork". Empty input yields "" and is not an error; the
// service decides what an empty location means.
func SanitizeQuery(query any) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cast.ToString(query))
}
