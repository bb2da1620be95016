// Package tags builds the slug to topic-tag index from the bundled seed dataset
// and the site's paginated listings
package tags

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoSlug means a URL does not point at a problem page
var ErrNoSlug = errors.New("no problem slug in url")

var (
	tagSeparator = regexp.MustCompile(`[;,]`)
	countMarker  = regexp.MustCompile(`^\d+\+$`)
	problemURL   = regexp.MustCompile(`(?i)leetcode\.com/problems/([^/?#]+)`)
)

// ParseTopicTags splits a free-text tag list such as "array, hash table; 2+".
// Standalone count markers like "2+" are dropped, whitespace is collapsed and the
// first character of each tag is upper-cased
func ParseTopicTags(raw string) []string {
	var out []string
	for _, token := range tagSeparator.Split(raw, -1) {
		var words []string
		for _, w := range strings.Fields(token) {
			if !countMarker.MatchString(w) {
				words = append(words, w)
			}
		}
		tag := strings.Join(words, " ")
		if tag == "" {
			continue
		}
		out = append(out, upperFirst(tag))
	}
	return out
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SlugFromURL extracts the lowercase problem slug from a problem URL
func SlugFromURL(url string) (string, error) {
	m := problemURL.FindStringSubmatch(url)
	if m == nil {
		return "", ErrNoSlug
	}
	return strings.ToLower(m[1]), nil
}
