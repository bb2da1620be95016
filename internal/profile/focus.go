package profile

import (
	"sort"

	"github.com/vijay-prabhu/leetboost/internal/problem"
)

// FocusOptions bounds focus-tag selection
type FocusOptions struct {
	// Size is how many tags to return
	Size int
	// MinCount drops tags seen fewer times than this
	MinCount int
}

// DefaultFocusOptions returns size 3, minimum count 3
func DefaultFocusOptions() FocusOptions {
	return FocusOptions{Size: 3, MinCount: 3}
}

// TagShare is a tag's occurrence count and its share of the solved total
type TagShare struct {
	Tag   string  `json:"tag" yaml:"tag"`
	Count int     `json:"count" yaml:"count"`
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

// tagShares counts tag occurrences in first-seen order
func tagShares(solved []problem.Solved) []TagShare {
	index := make(map[string]int)
	var shares []TagShare
	for _, p := range solved {
		for _, t := range p.Tags {
			i, ok := index[t]
			if !ok {
				i = len(shares)
				index[t] = i
				shares = append(shares, TagShare{Tag: t})
			}
			shares[i].Count++
		}
	}

	total := len(solved)
	if total < 1 {
		total = 1
	}
	for i := range shares {
		shares[i].Ratio = float64(shares[i].Count) / float64(total)
	}
	return shares
}

// WeakTags returns tags with at least MinCount occurrences ordered by ascending share.
// Equal shares keep first-seen order
func WeakTags(solved []problem.Solved, opts FocusOptions) []TagShare {
	var eligible []TagShare
	for _, s := range tagShares(solved) {
		if s.Count >= opts.MinCount {
			eligible = append(eligible, s)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Ratio < eligible[j].Ratio
	})
	return eligible
}

// PickFocusTags returns the Size least-practiced tags among those practiced at
// least MinCount times
func PickFocusTags(solved []problem.Solved, opts FocusOptions) []string {
	weak := WeakTags(solved, opts)
	if len(weak) > opts.Size {
		weak = weak[:opts.Size]
	}
	out := make([]string, 0, len(weak))
	for _, s := range weak {
		out = append(out, s.Tag)
	}
	return out
}

// Toggle adds tag to selected, or removes it if present. The input is not modified
func Toggle(selected []string, tag string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, t := range selected {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}
