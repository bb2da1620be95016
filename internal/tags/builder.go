package tags

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/vijay-prabhu/leetboost/internal/cache"
	"github.com/vijay-prabhu/leetboost/internal/logging"
	"github.com/vijay-prabhu/leetboost/internal/problem"
)

// PageFunc returns one page of tagged problems starting at skip
type PageFunc func(ctx context.Context, skip, limit int) ([]problem.Tagged, error)

// BuilderOptions configures a Builder
type BuilderOptions struct {
	// SeedPath overrides the bundled seed dataset
	SeedPath string
	PageSize int
	// Limit caps how far pagination goes
	Limit int
}

// Builder assembles the tag index from cache, seed and overlay listings
type Builder struct {
	store     cache.Store
	primary   PageFunc
	secondary PageFunc
	opts      BuilderOptions
	logger    zerolog.Logger
}

// NewBuilder creates a builder. secondary is only consulted when seed and primary leave the index empty
func NewBuilder(store cache.Store, primary, secondary PageFunc, opts BuilderOptions) *Builder {
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	if opts.Limit <= 0 {
		opts.Limit = 5000
	}
	return &Builder{
		store:     store,
		primary:   primary,
		secondary: secondary,
		opts:      opts,
		logger:    logging.Component("tags"),
	}
}

type indexEntry struct {
	Slug string   `json:"slug"`
	Tags []string `json:"tags"`
}

// Build returns the cached index when non-empty; otherwise it seeds, overlays and
// persists a fresh one. Cached indexes never expire; use Invalidate to rebuild
func (b *Builder) Build(ctx context.Context) (Index, error) {
	if idx := b.cached(ctx); len(idx) > 0 {
		return idx, nil
	}

	idx, err := LoadSeed(b.opts.SeedPath)
	if err != nil {
		b.logger.Warn().Err(err).Msg("seed dataset unavailable")
		idx = make(Index)
	}
	seeded := len(idx)

	n := b.overlay(ctx, idx, b.primary, "questionList")
	if len(idx) == 0 && b.secondary != nil {
		n = b.overlay(ctx, idx, b.secondary, "problemsetQuestionList")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.Info().
		Int("seeded", seeded).
		Int("overlaid", n).
		Int("total", len(idx)).
		Msg("tag index built")

	if len(idx) > 0 {
		if err := b.persist(ctx, idx); err != nil {
			b.logger.Warn().Err(err).Msg("failed to cache tag index")
		}
	}

	return idx, nil
}

// Lookup builds the index if needed and returns the tags for slug
func (b *Builder) Lookup(ctx context.Context, slug string) ([]string, error) {
	idx, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	return idx[problem.NormalizeSlug(slug)], nil
}

// Invalidate removes the cached index
func (b *Builder) Invalidate(ctx context.Context) error {
	return b.store.Delete(ctx, cache.KeyTagMap)
}

// overlay pages through src, replacing entries for every record carrying tags.
// It returns the number of records seen
func (b *Builder) overlay(ctx context.Context, idx Index, src PageFunc, name string) int {
	if src == nil {
		return 0
	}

	seen := 0
	for skip := 0; skip < b.opts.Limit; skip += b.opts.PageSize {
		page, err := src(ctx, skip, b.opts.PageSize)
		if err != nil {
			b.logger.Warn().Err(err).Str("source", name).Int("skip", skip).Msg("overlay page failed")
			break
		}
		if len(page) == 0 {
			break
		}

		seen += len(page)
		for _, p := range page {
			slug := problem.NormalizeSlug(p.Slug)
			if slug == "" || len(p.Tags) == 0 {
				continue
			}
			idx[slug] = p.Tags
		}

		if len(page) < b.opts.PageSize {
			break
		}
	}
	return seen
}

func (b *Builder) cached(ctx context.Context) Index {
	var entries []indexEntry
	ok, err := cache.GetJSON(ctx, b.store, cache.KeyTagMap, &entries)
	if err != nil {
		b.logger.Debug().Err(err).Msg("ignoring unreadable tag index cache")
		return nil
	}
	if !ok {
		return nil
	}

	idx := make(Index, len(entries))
	for _, e := range entries {
		idx[e.Slug] = e.Tags
	}
	return idx
}

func (b *Builder) persist(ctx context.Context, idx Index) error {
	entries := make([]indexEntry, 0, len(idx))
	for slug, tags := range idx {
		entries = append(entries, indexEntry{Slug: slug, Tags: tags})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })

	return cache.SetJSON(ctx, b.store, map[string]interface{}{cache.KeyTagMap: entries})
}
