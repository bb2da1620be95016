// Package profile enriches a solved history with tags and derives the
// statistics shown on a profile: weak-topic focus tags, tag counts and rating bands
package profile

import (
	"context"

	"github.com/vijay-prabhu/leetboost/internal/logging"
	"github.com/vijay-prabhu/leetboost/internal/problem"
	"github.com/vijay-prabhu/leetboost/internal/tags"
)

// DefaultHydrateThreshold is the tagged fraction at which hydration is skipped
const DefaultHydrateThreshold = 0.6

// IndexBuilder supplies the slug to tags index
type IndexBuilder interface {
	Build(ctx context.Context) (tags.Index, error)
}

// Coverage returns the fraction of solved problems that carry at least one tag
func Coverage(solved []problem.Solved) float64 {
	tagged := 0
	for _, p := range solved {
		if len(p.Tags) > 0 {
			tagged++
		}
	}
	n := len(solved)
	if n < 1 {
		n = 1
	}
	return float64(tagged) / float64(n)
}

// HydrateTags fills empty tag lists from the index when coverage is below threshold.
// The slice is modified in place and returned. When coverage already meets the
// threshold the index is not built
func HydrateTags(ctx context.Context, solved []problem.Solved, builder IndexBuilder, threshold float64) []problem.Solved {
	coverage := Coverage(solved)
	if coverage >= threshold {
		return solved
	}

	idx, err := builder.Build(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("tag index unavailable, leaving history untagged")
		return solved
	}

	filled := 0
	for i := range solved {
		if len(solved[i].Tags) > 0 {
			continue
		}
		if t := idx[solved[i].Slug]; len(t) > 0 {
			solved[i].Tags = t
			filled++
		}
	}

	logging.Debug().
		Float64("coverage", coverage).
		Int("filled", filled).
		Msg("hydrated solved tags")

	return solved
}
