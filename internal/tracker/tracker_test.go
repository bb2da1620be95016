package tracker

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/vijay-prabhu/leetboost/internal/cache"
	"github.com/vijay-prabhu/leetboost/internal/problem"
	"github.com/vijay-prabhu/leetboost/internal/ratings"
	"github.com/vijay-prabhu/leetboost/internal/recommend"
	"github.com/vijay-prabhu/leetboost/internal/tags"
)

type fakeRatings struct {
	catalog *ratings.Catalog
}

func (f *fakeRatings) EnsureLoaded(context.Context) bool { return f.catalog != nil }
func (f *fakeRatings) Catalog() *ratings.Catalog         { return f.catalog }

type fakeIndex struct {
	idx   tags.Index
	calls int
}

func (f *fakeIndex) Build(context.Context) (tags.Index, error) {
	f.calls++
	return f.idx, nil
}

type fakeHistory struct {
	mu       sync.Mutex
	signedIn string
	owner    []problem.Solved
	rest     []problem.Solved
	restErr  error
	recent   []problem.Solved
	details  map[string]*problem.Detail
	lookups  []string
}

func (f *fakeHistory) SignedInUsername(context.Context) (string, error) { return f.signedIn, nil }
func (f *fakeHistory) SolvedByOwner(context.Context) ([]problem.Solved, error) {
	return f.owner, nil
}
func (f *fakeHistory) SolvedByREST(context.Context) ([]problem.Solved, error) {
	return f.rest, f.restErr
}
func (f *fakeHistory) RecentAccepted(context.Context, string) ([]problem.Solved, error) {
	return f.recent, nil
}
func (f *fakeHistory) QuestionDetail(_ context.Context, slug string) (*problem.Detail, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, slug)
	f.mu.Unlock()
	return f.details[slug], nil
}

type fakeCandidates struct {
	byTag map[string][]problem.Tagged
}

func (f *fakeCandidates) ProblemsByTag(_ context.Context, tag string, _ int) ([]problem.Tagged, error) {
	return f.byTag[tag], nil
}

func testCatalog() *ratings.Catalog {
	return ratings.NewCatalog([]ratings.Record{
		{Slug: "s1", Rating: 1400, Title: "S1"},
		{Slug: "s2", Rating: 1500, Title: "S2"},
		{Slug: "s3", Rating: 1600, Title: "S3"},
		{Slug: "c-near", Rating: 1520, Title: "Near"},
		{Slug: "c-below", Rating: 1460, Title: "Below"},
		{Slug: "c-far", Rating: 2000, Title: "Far"},
	})
}

func solvedWith(tag string, slugs ...string) []problem.Solved {
	out := make([]problem.Solved, len(slugs))
	for i, s := range slugs {
		out[i] = problem.Solved{Slug: s, Title: s, Tags: []string{tag}}
	}
	return out
}

func newTestTracker(h *fakeHistory, idx *fakeIndex, store cache.Store, catalog *ratings.Catalog) *Tracker {
	r := &fakeRatings{catalog: catalog}
	candidates := &fakeCandidates{byTag: map[string][]problem.Tagged{
		"Greedy": {{Slug: "s2"}, {Slug: "c-near"}, {Slug: "c-below"}, {Slug: "c-far"}},
	}}
	m := recommend.New(candidates, r, recommend.DefaultOptions())
	return New(store, r, idx, h, m, DefaultOptions())
}

func TestProfileOwnerMode(t *testing.T) {
	store := cache.NewMemory()
	h := &fakeHistory{
		signedIn: "Alice",
		owner:    solvedWith("Greedy", "s1", "s2", "s3"),
	}
	idx := &fakeIndex{}
	tr := newTestTracker(h, idx, store, testCatalog())

	var phases []ProgressPhase
	report, err := tr.Profile(context.Background(), "alice", ProfileOptions{
		Progress: func(p Progress) { phases = append(phases, p.Phase) },
	})
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}

	if report.Mode != ModeOwner {
		t.Errorf("expected owner mode, got %s", report.Mode)
	}
	if report.TargetRating != 1500 {
		t.Errorf("expected median 1500, got %d", report.TargetRating)
	}
	if idx.calls != 0 {
		t.Error("fully tagged history must not build the tag index")
	}
	if !reflect.DeepEqual(report.FocusTags, []string{"Greedy"}) || report.FocusSource != "auto" {
		t.Errorf("unexpected focus %v (%s)", report.FocusTags, report.FocusSource)
	}

	// s2 is solved; c-far is outside the window
	var got []string
	for _, c := range report.Recommendations {
		got = append(got, c.Slug)
	}
	if !reflect.DeepEqual(got, []string{"c-below", "c-near"}) {
		t.Errorf("recommendations = %v", got)
	}

	// 1400 and 1500 share the 1400-1599 band
	if len(report.Bands) != 2 || report.Bands[0].Count != 2 {
		t.Errorf("unexpected rating bands %v", report.Bands)
	}
	if len(phases) == 0 || phases[0] != PhaseRatings {
		t.Errorf("expected progress to start with ratings, got %v", phases)
	}

	// Auto focus and solved set are persisted
	focus, ok, _ := tr.StoredFocus(context.Background())
	if !ok || !reflect.DeepEqual(focus, []string{"Greedy"}) {
		t.Errorf("expected persisted focus, got %v (ok=%v)", focus, ok)
	}
	solved, _ := tr.SolvedSet(context.Background())
	if !solved.Has("s3") || len(solved) != 3 {
		t.Errorf("unexpected persisted solved set %v", solved)
	}
}

func TestProfileOwnerFallsBackToREST(t *testing.T) {
	h := &fakeHistory{
		signedIn: "alice",
		rest:     []problem.Solved{{Slug: "s1", Tags: []string{}}, {Slug: "s2", Tags: []string{}}},
	}
	idx := &fakeIndex{idx: tags.Index{"s1": {"Greedy"}, "s2": {"Greedy"}}}
	tr := newTestTracker(h, idx, cache.NewMemory(), testCatalog())

	report, err := tr.Profile(context.Background(), "alice", ProfileOptions{})
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if report.Mode != ModeOwnerREST {
		t.Errorf("expected REST fallback, got %s", report.Mode)
	}
	if idx.calls != 1 {
		t.Errorf("untagged history should build the index once, got %d", idx.calls)
	}
	if report.TagCoverage != 1 {
		t.Errorf("expected full coverage after hydration, got %v", report.TagCoverage)
	}
}

func TestProfileHistoryFailureNote(t *testing.T) {
	h := &fakeHistory{signedIn: "alice", restErr: errors.New("offline")}
	tr := newTestTracker(h, &fakeIndex{}, cache.NewMemory(), testCatalog())

	report, err := tr.Profile(context.Background(), "alice", ProfileOptions{})
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if report.Note == "" || report.SolvedCount != 0 {
		t.Errorf("expected failure note and empty history, got %+v", report)
	}
	if report.TargetRating != 0 {
		t.Errorf("expected target 0 for empty history, got %d", report.TargetRating)
	}
}

func TestProfilePublicBackfill(t *testing.T) {
	h := &fakeHistory{
		signedIn: "someone-else",
		recent: []problem.Solved{
			{Slug: "s1", Title: "s1", Tags: []string{}},
			{Slug: "s2", Title: "s2", Tags: []string{}},
			{Slug: "s3", Title: "s3", Tags: []string{}},
		},
		details: map[string]*problem.Detail{
			"s1": {Title: "Problem One", Difficulty: problem.DifficultyEasy, Tags: []string{"Greedy"}},
			"s2": {Title: "Problem Two", Difficulty: problem.DifficultyMedium, Tags: []string{"Greedy"}},
		},
	}
	tr := newTestTracker(h, &fakeIndex{}, cache.NewMemory(), testCatalog())
	tr.opts.DetailBackfill = 2

	report, err := tr.Profile(context.Background(), "bob", ProfileOptions{})
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if report.Mode != ModePublic {
		t.Errorf("expected public mode, got %s", report.Mode)
	}
	if len(h.lookups) != 2 {
		t.Errorf("expected 2 detail lookups, got %v", h.lookups)
	}
	if len(report.TagCounts) != 1 || report.TagCounts[0].Count != 2 {
		t.Errorf("unexpected tag counts %v", report.TagCounts)
	}
}

func TestProfileStoredFocusAndOverrides(t *testing.T) {
	store := cache.NewMemory()
	h := &fakeHistory{signedIn: "alice", owner: solvedWith("Array", "s1", "s2", "s3")}
	tr := newTestTracker(h, &fakeIndex{}, store, testCatalog())
	ctx := context.Background()

	if err := tr.SetFocus(ctx, []string{"Greedy"}); err != nil {
		t.Fatal(err)
	}

	report, _ := tr.Profile(ctx, "alice", ProfileOptions{})
	if report.FocusSource != "saved" || report.FocusTags[0] != "Greedy" {
		t.Errorf("expected saved focus, got %v (%s)", report.FocusTags, report.FocusSource)
	}
	if report.AutoFocus[0] != "Array" {
		t.Errorf("auto focus should still be computed, got %v", report.AutoFocus)
	}

	report, _ = tr.Profile(ctx, "alice", ProfileOptions{Tags: []string{"Trie"}, TargetRating: 1800})
	if report.FocusSource != "override" || report.TargetRating != 1800 {
		t.Errorf("expected overrides, got %v target %d", report.FocusTags, report.TargetRating)
	}

	// An explicitly emptied focus set is kept, not replaced by the auto set
	tr.SetFocus(ctx, []string{})
	tr.Profile(ctx, "alice", ProfileOptions{})
	focus, ok, _ := tr.StoredFocus(ctx)
	if !ok || len(focus) != 0 {
		t.Errorf("expected empty stored focus to survive, got %v", focus)
	}
}

func TestProfileNoRatings(t *testing.T) {
	tr := newTestTracker(&fakeHistory{}, &fakeIndex{}, cache.NewMemory(), nil)
	if _, err := tr.Profile(context.Background(), "alice", ProfileOptions{}); !errors.Is(err, ErrNoRatings) {
		t.Errorf("expected ErrNoRatings, got %v", err)
	}
}

func TestProblemFlow(t *testing.T) {
	store := cache.NewMemory()
	h := &fakeHistory{details: map[string]*problem.Detail{
		"s2": {Title: "Second", Difficulty: problem.DifficultyMedium, Tags: []string{"Greedy"}},
	}}
	tr := newTestTracker(h, &fakeIndex{}, store, testCatalog())
	ctx := context.Background()

	cache.SetJSON(ctx, store, map[string]interface{}{cache.KeySolvedSet: []string{"c-below"}})

	report, err := tr.Problem(ctx, "https://leetcode.com/problems/S2/description/", nil)
	if err != nil {
		t.Fatalf("Problem() error: %v", err)
	}
	if report.Slug != "s2" || !report.Rated || report.Rating != 1500 {
		t.Errorf("unexpected report %+v", report)
	}
	if report.Title != "Second" || report.Difficulty != problem.DifficultyMedium {
		t.Errorf("expected detail fields, got %+v", report)
	}
	if len(report.Similar) != 1 || report.Similar[0].Slug != "c-near" {
		t.Errorf("expected only c-near as similar, got %+v", report.Similar)
	}

	report, err = tr.Problem(ctx, "unknown-slug", nil)
	if err != nil {
		t.Fatalf("Problem() error: %v", err)
	}
	if report.Rated || len(report.Similar) != 0 {
		t.Errorf("unrated problem should have no similar list, got %+v", report)
	}
}

func TestRecommendAndFocusOps(t *testing.T) {
	store := cache.NewMemory()
	tr := newTestTracker(&fakeHistory{}, &fakeIndex{}, store, testCatalog())
	ctx := context.Background()

	if _, err := tr.Recommend(ctx, RecommendOptions{Tags: []string{"Greedy"}}); !errors.Is(err, ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}

	focus, err := tr.ToggleFocus(ctx, "Greedy")
	if err != nil || !reflect.DeepEqual(focus, []string{"Greedy"}) {
		t.Fatalf("ToggleFocus() = %v, %v", focus, err)
	}

	got, err := tr.Recommend(ctx, RecommendOptions{TargetRating: 1500, Cap: 2})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "c-below" {
		t.Errorf("unexpected recommendations %+v", got)
	}

	focus, _ = tr.ToggleFocus(ctx, "Greedy")
	if len(focus) != 0 {
		t.Errorf("expected toggle to remove tag, got %v", focus)
	}
	if err := tr.ClearFocus(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := tr.StoredFocus(ctx); ok {
		t.Error("expected focus cleared")
	}

	r, ok, err := tr.Rating(ctx, "S3")
	if err != nil || !ok || r.Rating != 1600 {
		t.Errorf("Rating() = %+v, %v, %v", r, ok, err)
	}
}
