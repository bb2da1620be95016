package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vijay-prabhu/leetboost/internal/cache"
	"github.com/vijay-prabhu/leetboost/internal/logging"
	"github.com/vijay-prabhu/leetboost/internal/problem"
	"github.com/vijay-prabhu/leetboost/internal/profile"
	"github.com/vijay-prabhu/leetboost/internal/ratings"
	"github.com/vijay-prabhu/leetboost/internal/recommend"
	"github.com/vijay-prabhu/leetboost/internal/tags"
)

// ErrNoRatings means the rating catalog could not be loaded from cache or any source
var ErrNoRatings = errors.New("rating catalog unavailable")

// ErrNoTarget means a recommendation was requested without a target rating
var ErrNoTarget = errors.New("target rating required")

// tagCountLimit is how many tags the tag-count chart shows
const tagCountLimit = 12

// RatingsLoader provides the rating catalog
type RatingsLoader interface {
	EnsureLoaded(ctx context.Context) bool
	Catalog() *ratings.Catalog
}

// Options configures the profile and problem flows
type Options struct {
	Cap              int
	SimilarCap       int
	Focus            profile.FocusOptions
	HydrateThreshold float64
	DetailBackfill   int
}

// DefaultOptions returns cap 12, similar cap 10, focus 3/3, threshold 0.6 and 100 backfilled details
func DefaultOptions() Options {
	return Options{
		Cap:              12,
		SimilarCap:       10,
		Focus:            profile.DefaultFocusOptions(),
		HydrateThreshold: profile.DefaultHydrateThreshold,
		DetailBackfill:   100,
	}
}

// Tracker orchestrates the profile and problem flows
type Tracker struct {
	store   cache.Store
	ratings RatingsLoader
	tags    profile.IndexBuilder
	history HistoryProvider
	matcher *recommend.Matcher
	opts    Options
}

// New creates a new Tracker
func New(store cache.Store, r RatingsLoader, t profile.IndexBuilder, h HistoryProvider, m *recommend.Matcher, opts Options) *Tracker {
	return &Tracker{
		store:   store,
		ratings: r,
		tags:    t,
		history: h,
		matcher: m,
		opts:    opts,
	}
}

// reporter serializes progress callbacks
type reporter struct {
	mu sync.Mutex
	cb ProgressCallback
}

func (r *reporter) send(p Progress) {
	if r == nil || r.cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cb(p)
}

func (r *reporter) report(phase ProgressPhase, current, total int, desc string) {
	r.send(Progress{Phase: phase, Current: current, Total: total, Description: desc})
}

// ProfileOptions configures a profile run
type ProfileOptions struct {
	// Tags replaces the stored or computed focus tags for this run only
	Tags []string
	// TargetRating replaces the median solved rating when non-zero
	TargetRating int
	Progress     ProgressCallback
}

// ProfileReport is everything a profile view shows
type ProfileReport struct {
	RunID           string              `json:"run_id" yaml:"run_id"`
	Username        string              `json:"username" yaml:"username"`
	Mode            HistoryMode         `json:"mode" yaml:"mode"`
	Note            string              `json:"note,omitempty" yaml:"note,omitempty"`
	SolvedCount     int                 `json:"solved_count" yaml:"solved_count"`
	RatedCount      int                 `json:"rated_count" yaml:"rated_count"`
	TagCoverage     float64             `json:"tag_coverage" yaml:"tag_coverage"`
	Bands           []profile.Band      `json:"bands" yaml:"bands"`
	TagCounts       []profile.TagCount  `json:"tag_counts" yaml:"tag_counts"`
	AllTags         []string            `json:"all_tags" yaml:"all_tags"`
	AutoFocus       []string            `json:"auto_focus" yaml:"auto_focus"`
	FocusTags       []string            `json:"focus_tags" yaml:"focus_tags"`
	FocusSource     string              `json:"focus_source" yaml:"focus_source"`
	TargetRating    int                 `json:"target_rating" yaml:"target_rating"`
	Recommendations []problem.Candidate `json:"recommendations" yaml:"recommendations"`
}

// Profile runs the full profile flow for username
func (t *Tracker) Profile(ctx context.Context, username string, opts ProfileOptions) (*ProfileReport, error) {
	log, runID := logging.WithRunID("profile")
	rep := &reporter{cb: opts.Progress}

	rep.report(PhaseRatings, 0, 0, "Loading community ratings")
	if !t.ratings.EnsureLoaded(ctx) {
		return nil, ErrNoRatings
	}
	catalog := t.ratings.Catalog()

	solved, mode, note := t.loadHistory(ctx, log, username, rep)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.saveSolvedSet(ctx, solved); err != nil {
		log.Warn().Err(err).Msg("failed to persist solved set")
	}

	var solvedRatings []int
	for _, p := range solved {
		if r, ok := catalog.Get(p.Slug); ok {
			solvedRatings = append(solvedRatings, r.Rating)
		}
	}

	rep.report(PhaseTags, 0, 0, "Tagging solved problems")
	solved = profile.HydrateTags(ctx, solved, t.tags, t.opts.HydrateThreshold)

	report := &ProfileReport{
		RunID:        runID,
		Username:     username,
		Mode:         mode,
		Note:         note,
		SolvedCount:  len(solved),
		RatedCount:   len(solvedRatings),
		TagCoverage:  profile.Coverage(solved),
		Bands:        profile.RatingBands(solvedRatings),
		TagCounts:    profile.TagCounts(solved, tagCountLimit),
		AllTags:      profile.AllTags(solved),
		AutoFocus:    profile.PickFocusTags(solved, t.opts.Focus),
		TargetRating: profile.Median(solvedRatings),
	}

	stored, hasStored, err := t.StoredFocus(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable focus tags")
	}
	switch {
	case len(opts.Tags) > 0:
		report.FocusTags = opts.Tags
		report.FocusSource = "override"
	case len(stored) > 0:
		report.FocusTags = stored
		report.FocusSource = "saved"
	default:
		report.FocusTags = report.AutoFocus
		report.FocusSource = "auto"
		if !hasStored {
			if err := t.SetFocus(ctx, report.AutoFocus); err != nil {
				log.Warn().Err(err).Msg("failed to persist focus tags")
			}
		}
	}

	if opts.TargetRating > 0 {
		report.TargetRating = opts.TargetRating
	}

	rep.report(PhaseRecommend, 0, 0, "Matching recommendations")
	report.Recommendations = t.matcher.Recommend(ctx, recommend.Request{
		Solved:       problem.SlugSetOf(solved),
		TargetRating: report.TargetRating,
		Tags:         report.FocusTags,
		Cap:          t.opts.Cap,
	})

	log.Info().
		Str("username", username).
		Str("mode", string(mode)).
		Int("solved", report.SolvedCount).
		Int("target", report.TargetRating).
		Int("recommended", len(report.Recommendations)).
		Msg("profile run complete")

	return report, nil
}

// ProblemReport is everything a problem view shows
type ProblemReport struct {
	Slug       string              `json:"slug" yaml:"slug"`
	Title      string              `json:"title,omitempty" yaml:"title,omitempty"`
	Rating     int                 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Rated      bool                `json:"rated" yaml:"rated"`
	Difficulty problem.Difficulty  `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Tags       []string            `json:"tags" yaml:"tags"`
	Similar    []problem.Candidate `json:"similar" yaml:"similar"`
}

// Problem runs the problem flow. slugOrURL may be a bare slug or a problem URL
func (t *Tracker) Problem(ctx context.Context, slugOrURL string, progress ProgressCallback) (*ProblemReport, error) {
	log, _ := logging.WithRunID("problem")
	rep := &reporter{cb: progress}

	slug, err := tags.SlugFromURL(slugOrURL)
	if err != nil {
		slug = problem.NormalizeSlug(slugOrURL)
	}
	if slug == "" {
		return nil, fmt.Errorf("empty problem slug")
	}

	report := &ProblemReport{Slug: slug}

	rep.report(PhaseRatings, 0, 0, "Loading community ratings")
	if t.ratings.EnsureLoaded(ctx) {
		if r, ok := t.ratings.Catalog().Get(slug); ok {
			report.Rating = r.Rating
			report.Rated = true
			report.Title = r.Title
		}
	}

	rep.report(PhaseHistory, 0, 0, "Fetching problem details")
	d, err := t.history.QuestionDetail(ctx, slug)
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("detail lookup failed")
	}
	if d != nil {
		if d.Title != "" {
			report.Title = d.Title
		}
		report.Difficulty = d.Difficulty
		report.Tags = d.Tags
	}

	solved, err := t.SolvedSet(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable solved set")
	}

	rep.report(PhaseRecommend, 0, 0, "Finding similar problems")
	report.Similar = t.matcher.Similar(ctx, recommend.SimilarRequest{
		BaseSlug:   slug,
		BaseRating: report.Rating,
		BaseTags:   report.Tags,
		Solved:     solved,
		Cap:        t.opts.SimilarCap,
	})

	return report, nil
}

// RecommendOptions configures a direct recommendation query
type RecommendOptions struct {
	// Tags defaults to the saved focus tags
	Tags         []string
	TargetRating int
	// Cap defaults to the configured cap
	Cap int
}

// Recommend matches against the saved solved set without fetching history
func (t *Tracker) Recommend(ctx context.Context, opts RecommendOptions) ([]problem.Candidate, error) {
	if opts.TargetRating <= 0 {
		return nil, ErrNoTarget
	}
	if !t.ratings.EnsureLoaded(ctx) {
		return nil, ErrNoRatings
	}

	focus := opts.Tags
	if len(focus) == 0 {
		stored, _, err := t.StoredFocus(ctx)
		if err != nil {
			return nil, err
		}
		focus = stored
	}
	if opts.Cap <= 0 {
		opts.Cap = t.opts.Cap
	}

	solved, err := t.SolvedSet(ctx)
	if err != nil {
		return nil, err
	}

	return t.matcher.Recommend(ctx, recommend.Request{
		Solved:       solved,
		TargetRating: opts.TargetRating,
		Tags:         focus,
		Cap:          opts.Cap,
	}), nil
}

// Rating looks up the community rating for a slug or problem URL
func (t *Tracker) Rating(ctx context.Context, slugOrURL string) (ratings.Record, bool, error) {
	if !t.ratings.EnsureLoaded(ctx) {
		return ratings.Record{}, false, ErrNoRatings
	}
	slug, err := tags.SlugFromURL(slugOrURL)
	if err != nil {
		slug = problem.NormalizeSlug(slugOrURL)
	}
	r, ok := t.ratings.Catalog().Get(slug)
	return r, ok, nil
}

// StoredFocus returns the saved focus tags and whether any were saved
func (t *Tracker) StoredFocus(ctx context.Context) ([]string, bool, error) {
	var focus []string
	ok, err := cache.GetJSON(ctx, t.store, cache.KeyFocusTags, &focus)
	if err != nil {
		return nil, false, err
	}
	return focus, ok, nil
}

// SetFocus saves the focus tags
func (t *Tracker) SetFocus(ctx context.Context, focus []string) error {
	if focus == nil {
		focus = []string{}
	}
	return cache.SetJSON(ctx, t.store, map[string]interface{}{cache.KeyFocusTags: focus})
}

// ToggleFocus adds or removes one saved focus tag and returns the new set
func (t *Tracker) ToggleFocus(ctx context.Context, tag string) ([]string, error) {
	stored, _, err := t.StoredFocus(ctx)
	if err != nil {
		return nil, err
	}
	next := profile.Toggle(stored, tag)
	if err := t.SetFocus(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ClearFocus forgets the saved focus tags so the next profile run recomputes them
func (t *Tracker) ClearFocus(ctx context.Context) error {
	return t.store.Delete(ctx, cache.KeyFocusTags)
}

// SolvedSet returns the solved slugs saved by the last profile run
func (t *Tracker) SolvedSet(ctx context.Context) (problem.SlugSet, error) {
	var slugs []string
	if _, err := cache.GetJSON(ctx, t.store, cache.KeySolvedSet, &slugs); err != nil {
		return problem.SlugSet{}, err
	}
	return problem.NewSlugSet(slugs...), nil
}

func (t *Tracker) saveSolvedSet(ctx context.Context, solved []problem.Solved) error {
	slugs := problem.SlugSetOf(solved).Slugs()
	sort.Strings(slugs)
	return cache.SetJSON(ctx, t.store, map[string]interface{}{cache.KeySolvedSet: slugs})
}

// Catalog returns the loaded rating catalog
func (t *Tracker) Catalog(ctx context.Context) (*ratings.Catalog, error) {
	if !t.ratings.EnsureLoaded(ctx) {
		return nil, ErrNoRatings
	}
	return t.ratings.Catalog(), nil
}
