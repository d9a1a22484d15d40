package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// FromName derives a URL slug from a product or category name. Names that
// reduce to nothing fall back to "produk" so the slug column stays non-empty.
func FromName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "produk"
	}
	return s
}
