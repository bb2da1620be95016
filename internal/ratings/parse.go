// Package ratings loads the community difficulty-rating dataset and keeps the
// slug-keyed catalog used for recommendation matching
package ratings

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Record is one rated problem
type Record struct {
	Slug   string `json:"slug" yaml:"slug"`
	Rating int    `json:"rating" yaml:"rating"`
	Title  string `json:"title" yaml:"title"`
}

// Catalog is an immutable slug-keyed set of records
type Catalog struct {
	records map[string]Record
}

// NewCatalog builds a catalog from records. Later records replace earlier ones with the same slug
func NewCatalog(records []Record) *Catalog {
	c := &Catalog{records: make(map[string]Record, len(records))}
	for _, r := range records {
		c.records[r.Slug] = r
	}
	return c
}

// Get looks up a slug. The slug must already be lowercase
func (c *Catalog) Get(slug string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	r, ok := c.records[slug]
	return r, ok
}

// Len returns the number of records
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Records returns every record sorted by slug
func (c *Catalog) Records() []Record {
	if c == nil {
		return nil
	}
	out := make([]Record, 0, len(c.records))
	for _, r := range c.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

var (
	lineSplit     = regexp.MustCompile(`\r?\n`)
	headerPattern = regexp.MustCompile(`(?i)title\s*slug`)
	headerCell    = regexp.MustCompile(`(?i)^rating$`)
	legacyLine    = regexp.MustCompile(`^(\S+)\s+([\d.]+)\s+(.+)$`)
	leadingFloat  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// Parse reads the dataset text. When the first line is a tab-separated header naming
// a title slug column, rows are read as Rating, ID, Title, TitleZH, TitleSlug, ...;
// otherwise each line is read as "<slug> <rating> <title>"
func Parse(text string) *Catalog {
	var lines []string
	for _, l := range lineSplit.Split(text, -1) {
		if l != "" {
			lines = append(lines, l)
		}
	}

	c := &Catalog{records: make(map[string]Record)}
	if len(lines) == 0 {
		return c
	}

	if strings.Contains(lines[0], "\t") && headerPattern.MatchString(lines[0]) {
		parseTabular(c, lines)
		if len(c.records) > 0 {
			return c
		}
	}

	parseLegacy(c, lines)
	return c
}

func parseTabular(c *Catalog, lines []string) {
	for _, line := range lines {
		parts := strings.Split(line, "\t")
		if len(parts) < 5 || headerCell.MatchString(parts[0]) {
			continue
		}

		rating, ok := parseRating(parts[0])
		if !ok {
			continue
		}
		slug := strings.ToLower(strings.TrimSpace(parts[4]))
		if slug == "" {
			continue
		}
		title := strings.TrimSpace(parts[2])
		if title == "" {
			title = slug
		}
		c.records[slug] = Record{Slug: slug, Rating: rating, Title: title}
	}
}

func parseLegacy(c *Catalog, lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := legacyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rating, ok := parseRating(m[2])
		if !ok {
			continue
		}
		slug := strings.ToLower(m[1])
		c.records[slug] = Record{Slug: slug, Rating: rating, Title: strings.TrimSpace(m[3])}
	}
}

// parseRating reads the longest leading decimal prefix and rounds half up
func parseRating(s string) (int, bool) {
	num := leadingFloat.FindString(strings.TrimLeft(s, " \t"))
	if num == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Floor(f + 0.5)), true
}
