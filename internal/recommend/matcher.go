// Package recommend selects unsolved problems whose rating sits near a target
// and whose tags match the user's focus topics
package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/leetboost/internal/logging"
	"github.com/vijay-prabhu/leetboost/internal/problem"
	"github.com/vijay-prabhu/leetboost/internal/ratings"
)

// similarPoolCap is the internal cap used before re-ranking similar problems
const similarPoolCap = 50

// similarTagLimit is how many of the base problem's tags are queried
const similarTagLimit = 2

// CandidateProvider lists problems carrying a tag
type CandidateProvider interface {
	ProblemsByTag(ctx context.Context, tag string, limit int) ([]problem.Tagged, error)
}

// CatalogSource exposes the current rating catalog, nil when none is loaded
type CatalogSource interface {
	Catalog() *ratings.Catalog
}

// Options configures a Matcher
type Options struct {
	Scorer ScorerConfig
	// PerTagLimit is how many problems are requested per tag
	PerTagLimit int
	// Concurrency bounds simultaneous tag queries
	Concurrency int
}

// DefaultOptions returns a 100-per-tag limit, 3 concurrent queries and the default window
func DefaultOptions() Options {
	return Options{Scorer: DefaultScorerConfig(), PerTagLimit: 100, Concurrency: 3}
}

// Matcher joins tagged candidates with ratings and ranks them
type Matcher struct {
	provider CandidateProvider
	catalog  CatalogSource
	scorer   *Scorer
	opts     Options
	logger   zerolog.Logger
}

// New creates a Matcher
func New(provider CandidateProvider, catalog CatalogSource, opts Options) *Matcher {
	if opts.PerTagLimit <= 0 {
		opts.PerTagLimit = 100
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	return &Matcher{
		provider: provider,
		catalog:  catalog,
		scorer:   NewScorer(opts.Scorer),
		opts:     opts,
		logger:   logging.Component("recommend"),
	}
}

// Request describes one recommendation query
type Request struct {
	Solved       problem.SlugSet
	TargetRating int
	Tags         []string
	Cap          int
}

// Recommend returns at most Cap unsolved, rated problems tagged with any of Tags
// whose rating falls in the window around TargetRating, ordered by signed distance
// so the easiest come first. It returns an empty result when no tags are given or no catalog is loaded
func (m *Matcher) Recommend(ctx context.Context, req Request) []problem.Candidate {
	if len(req.Tags) == 0 || req.Cap <= 0 {
		return nil
	}
	catalog := m.catalog.Catalog()
	if catalog == nil {
		return nil
	}

	pool := m.gather(ctx, req.Tags)

	type scored struct {
		problem.Candidate
		distance int
	}
	var ranked []scored
	for _, p := range pool {
		rec, ok := catalog.Get(p.Slug)
		if !ok {
			continue
		}
		if !m.scorer.InWindow(rec.Rating, req.TargetRating) {
			continue
		}
		if req.Solved.Has(p.Slug) {
			continue
		}

		title := rec.Title
		if title == "" {
			title = p.Slug
		}
		ranked = append(ranked, scored{
			Candidate: problem.Candidate{
				Slug:   p.Slug,
				Title:  title,
				Rating: rec.Rating,
				Fit:    m.scorer.Explain(rec.Rating, req.TargetRating),
			},
			distance: m.scorer.Distance(rec.Rating, req.TargetRating),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	if len(ranked) > req.Cap {
		ranked = ranked[:req.Cap]
	}
	out := make([]problem.Candidate, len(ranked))
	for i, s := range ranked {
		out[i] = s.Candidate
	}

	m.logger.Debug().
		Strs("tags", req.Tags).
		Int("target", req.TargetRating).
		Int("pool", len(pool)).
		Int("returned", len(out)).
		Msg("recommendations ranked")

	return out
}

// gather queries every tag concurrently and unions the results in tag order,
// keeping the first occurrence of each slug. A failing tag contributes nothing
func (m *Matcher) gather(ctx context.Context, tags []string) []problem.Tagged {
	pools := make([][]problem.Tagged, len(tags))

	var g errgroup.Group
	g.SetLimit(m.opts.Concurrency)
	for i, tag := range tags {
		g.Go(func() error {
			rows, err := m.provider.ProblemsByTag(ctx, tag, m.opts.PerTagLimit)
			if err != nil {
				m.logger.Warn().Err(err).Str("tag", tag).Msg("candidate query failed")
				return nil
			}
			pools[i] = rows
			return nil
		})
	}
	g.Wait()

	seen := make(map[string]bool)
	var out []problem.Tagged
	for _, rows := range pools {
		for _, p := range rows {
			p.Slug = problem.NormalizeSlug(p.Slug)
			if p.Slug == "" || seen[p.Slug] {
				continue
			}
			seen[p.Slug] = true
			out = append(out, p)
		}
	}
	return out
}

// SimilarRequest describes a similar-problems query for one base problem
type SimilarRequest struct {
	BaseSlug string
	// BaseRating of 0 means the base problem has no rating
	BaseRating int
	BaseTags   []string
	Solved     problem.SlugSet
	Cap        int
}

// Similar returns up to Cap unsolved problems sharing the base problem's first two
// tags, ordered by absolute rating distance from the base. The base itself is excluded
func (m *Matcher) Similar(ctx context.Context, req SimilarRequest) []problem.Candidate {
	if req.BaseRating == 0 || len(req.BaseTags) == 0 {
		return nil
	}

	tags := req.BaseTags
	if len(tags) > similarTagLimit {
		tags = tags[:similarTagLimit]
	}

	pool := m.Recommend(ctx, Request{
		Solved:       req.Solved,
		TargetRating: req.BaseRating,
		Tags:         tags,
		Cap:          similarPoolCap,
	})

	base := problem.NormalizeSlug(req.BaseSlug)
	out := make([]problem.Candidate, 0, len(pool))
	for _, c := range pool {
		if c.Slug != base {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return abs(out[i].Rating-req.BaseRating) < abs(out[j].Rating-req.BaseRating)
	})

	if len(out) > req.Cap {
		out = out[:req.Cap]
	}
	return out
}
