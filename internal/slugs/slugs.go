// Package slugs converts free text into filename field values.
//
// A field slug follows the placeholder grammar used by refactor patterns and
// the canonical filenames: a lowercase ASCII letter followed by lowercase
// letters, digits and dashes.
package slugs

import (
	"regexp"
	"strings"

	goslug "github.com/gosimple/slug"
)

var (
	fieldRe       = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	leadingNonLet = regexp.MustCompile(`^[^a-z]+`)
)

// Field slugifies s for use as a filename field. It returns "" when nothing
// usable is left.
func Field(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".md")
	slugged := goslug.Make(s)
	slugged = strings.ReplaceAll(slugged, "_", "-")
	slugged = strings.ReplaceAll(slugged, ".", "-")
	slugged = leadingNonLet.ReplaceAllString(slugged, "")
	for strings.Contains(slugged, "--") {
		slugged = strings.ReplaceAll(slugged, "--", "-")
	}
	return strings.TrimSuffix(slugged, "-")
}

// IsField reports whether s already satisfies the field grammar.
func IsField(s string) bool {
	return fieldRe.MatchString(s)
}
