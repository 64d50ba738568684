package extractor

import (
	"regexp"
	"strings"
)

var fileKV = regexp.MustCompile(`file\s*=\s*"([^"]+)"`)

// ExtractFenceFile returns the value of a file="..." attribute, if any.
func ExtractFenceFile(meta string) string {
	m := fileKV.FindStringSubmatch(meta)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

// ParseFenceHeader splits a fence info string into its language tag (the
// first word) and the optional file attribute.
func ParseFenceHeader(header string) (lang, file string) {
	parts := strings.Fields(header)
	if len(parts) > 0 {
		lang = parts[0]
	}
	file = ExtractFenceFile(header)
	return
}
