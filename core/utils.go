package core

import (
	"strings"
	"unicode"
)

// Slugify lowers `s` and replaces every whitespace run with a single underscore.
func Slugify(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace), "_")
}
