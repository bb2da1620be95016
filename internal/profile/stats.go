package profile

import (
	"fmt"
	"sort"

	"github.com/vijay-prabhu/leetboost/internal/problem"
)

// BandWidth is the rating span of one histogram bucket
const BandWidth = 200

// Band is one rating histogram bucket covering [Low, High]
type Band struct {
	Low   int `json:"low" yaml:"low"`
	High  int `json:"high" yaml:"high"`
	Count int `json:"count" yaml:"count"`
}

// Label renders the bucket as "1400-1599"
func (b Band) Label() string {
	return fmt.Sprintf("%d-%d", b.Low, b.High)
}

// RatingBands buckets ratings into BandWidth-wide bands sorted by lower bound
func RatingBands(ratings []int) []Band {
	counts := make(map[int]int)
	for _, r := range ratings {
		low := floorDiv(r, BandWidth) * BandWidth
		counts[low]++
	}

	bands := make([]Band, 0, len(counts))
	for low, n := range counts {
		bands = append(bands, Band{Low: low, High: low + BandWidth - 1, Count: n})
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].Low < bands[j].Low })
	return bands
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// TagCount is a tag and how many solved problems carry it
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// TagCounts returns the limit most frequent tags, most frequent first.
// Equal counts keep first-seen order. A limit below 1 returns all tags
func TagCounts(solved []problem.Solved, limit int) []TagCount {
	shares := tagShares(solved)
	out := make([]TagCount, 0, len(shares))
	for _, s := range shares {
		out = append(out, TagCount{Tag: s.Tag, Count: s.Count})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AllTags returns every distinct tag in the history, sorted
func AllTags(solved []problem.Solved) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range solved {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Median returns the middle rating; for an even count the floor of the mean of
// the middle pair. An empty list yields 0
func Median(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sorted := append([]int(nil), ratings...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return floorDiv(sorted[mid-1]+sorted[mid], 2)
}
