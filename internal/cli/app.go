package cli

import (
	"context"
	"fmt"

	"github.com/vijay-prabhu/leetboost/internal/cache"
	"github.com/vijay-prabhu/leetboost/internal/config"
	"github.com/vijay-prabhu/leetboost/internal/leetcode"
	"github.com/vijay-prabhu/leetboost/internal/logging"
	"github.com/vijay-prabhu/leetboost/internal/problem"
	"github.com/vijay-prabhu/leetboost/internal/profile"
	"github.com/vijay-prabhu/leetboost/internal/ratings"
	"github.com/vijay-prabhu/leetboost/internal/recommend"
	"github.com/vijay-prabhu/leetboost/internal/tags"
	"github.com/vijay-prabhu/leetboost/internal/tracker"
)

// app holds the components a command needs, wired from config
type app struct {
	cfg     *config.Config
	store   cache.Store
	client  *leetcode.Client
	ratings *ratings.Loader
	tags    *tags.Builder
	tracker *tracker.Tracker
}

// openApp loads config, initializes logging and opens the cache
func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	client := leetcode.New(leetcode.Options{
		BaseURL:           cfg.LeetCode.BaseURL,
		Session:           cfg.LeetCode.Session,
		CSRFToken:         cfg.LeetCode.CSRFToken,
		RequestsPerSecond: cfg.LeetCode.RequestsPerSecond,
		MaxConcurrent:     cfg.LeetCode.MaxConcurrent,
		Timeout:           cfg.LeetCode.Timeout(),
	})

	loader := ratings.NewLoader(store, ratings.NewHTTPFetcher(cfg.Ratings.Timeout()), ratings.LoaderOptions{
		Sources: cfg.Ratings.Sources,
		TTL:     cfg.Ratings.TTL(),
	})

	category := cfg.Tags.OverlayCategory
	problemset := func(ctx context.Context, skip, limit int) ([]problem.Tagged, error) {
		return client.ProblemsetPage(ctx, category, skip, limit)
	}
	builder := tags.NewBuilder(store, client.QuestionListPage, problemset, tags.BuilderOptions{
		SeedPath: cfg.Tags.SeedPath,
		PageSize: cfg.Tags.PageSize,
		Limit:    cfg.Tags.OverlayLimit,
	})

	matcher := recommend.New(client, loader, recommend.Options{
		Scorer: recommend.ScorerConfig{
			WindowBelow:  cfg.Recommend.WindowBelow,
			WindowAbove:  cfg.Recommend.WindowAbove,
			BelowPenalty: 2,
		},
		PerTagLimit: cfg.Recommend.PerTagLimit,
		Concurrency: cfg.Recommend.Concurrency,
	})

	t := tracker.New(store, loader, builder, client, matcher, tracker.Options{
		Cap:        cfg.Recommend.Cap,
		SimilarCap: cfg.Recommend.SimilarCap,
		Focus: profile.FocusOptions{
			Size:     cfg.Focus.Size,
			MinCount: cfg.Focus.MinCount,
		},
		HydrateThreshold: cfg.Focus.HydrateThreshold,
		DetailBackfill:   cfg.Focus.DetailBackfill,
	})

	return &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		ratings: loader,
		tags:    builder,
		tracker: t,
	}, nil
}

// Close releases the cache
func (a *app) Close() error {
	return a.store.Close()
}
