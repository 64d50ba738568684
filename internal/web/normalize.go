package web

import "strings"

// Normalize canonicalizes a section name: surrounding whitespace is trimmed
// and every inner whitespace run, newlines included, becomes one space.
func Normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// DisplayKey renders a key for humans; the root section has an empty key.
func DisplayKey(key string) string {
	if key == "" {
		return "(root)"
	}
	return key
}
