// Package problem holds the provider-agnostic problem records shared by the
// ratings, tags, profile and recommend packages
package problem

import "strings"

// Difficulty is the site's coarse difficulty label. The zero value means unknown
type Difficulty string

const (
	DifficultyUnknown Difficulty = ""
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
)

// DifficultyFromLevel maps the numeric levels used by the REST listing
func DifficultyFromLevel(level int) Difficulty {
	switch level {
	case 1:
		return DifficultyEasy
	case 2:
		return DifficultyMedium
	case 3:
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// ParseDifficulty normalizes a label such as "MEDIUM" or "medium"
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// Solved is one accepted problem in a user's history
type Solved struct {
	Slug       string     `json:"slug" yaml:"slug"`
	Title      string     `json:"title" yaml:"title"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Tags       []string   `json:"tags" yaml:"tags"`
}

// Tagged is one row returned by a candidate or overlay provider
type Tagged struct {
	Slug  string   `json:"slug" yaml:"slug"`
	Title string   `json:"title" yaml:"title"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// Detail is the per-question lookup result
type Detail struct {
	Title      string     `json:"title" yaml:"title"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Tags       []string   `json:"tags" yaml:"tags"`
}

// Candidate is one recommended problem
type Candidate struct {
	Slug   string `json:"slug" yaml:"slug"`
	Title  string `json:"title" yaml:"title"`
	Rating int    `json:"rating" yaml:"rating"`
	// Fit describes the rating relative to the target, e.g. "warm-up"
	Fit string `json:"fit,omitempty" yaml:"fit,omitempty"`
}

// URL returns the problem page link
func (c Candidate) URL() string {
	return "https://leetcode.com/problems/" + c.Slug + "/"
}

// NormalizeSlug lowercases and trims a slug
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// SlugSet is the set of solved slugs used for exclusion
type SlugSet map[string]struct{}

// NewSlugSet builds a set from slugs, normalizing each
func NewSlugSet(slugs ...string) SlugSet {
	s := make(SlugSet, len(slugs))
	for _, slug := range slugs {
		if slug = NormalizeSlug(slug); slug != "" {
			s[slug] = struct{}{}
		}
	}
	return s
}

// SlugSetOf collects the slugs of a solved list
func SlugSetOf(solved []Solved) SlugSet {
	s := make(SlugSet, len(solved))
	for _, p := range solved {
		if p.Slug != "" {
			s[NormalizeSlug(p.Slug)] = struct{}{}
		}
	}
	return s
}

// Has reports whether slug is in the set
func (s SlugSet) Has(slug string) bool {
	_, ok := s[slug]
	return ok
}

// Slugs returns the members in no particular order
func (s SlugSet) Slugs() []string {
	out := make([]string, 0, len(s))
	for slug := range s {
		out = append(out, slug)
	}
	return out
}
