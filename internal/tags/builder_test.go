package tags

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vijay-prabhu/leetboost/internal/cache"
	"github.com/vijay-prabhu/leetboost/internal/problem"
)

// pager serves fixed pages and records the skips it was asked for
type pager struct {
	rows  []problem.Tagged
	err   error
	skips []int
}

func (p *pager) page(_ context.Context, skip, limit int) ([]problem.Tagged, error) {
	p.skips = append(p.skips, skip)
	if p.err != nil {
		return nil, p.err
	}
	if skip >= len(p.rows) {
		return nil, nil
	}
	end := skip + limit
	if end > len(p.rows) {
		end = len(p.rows)
	}
	return p.rows[skip:end], nil
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildOverlayReplacesSeed(t *testing.T) {
	store := cache.NewMemory()
	seed := writeSeed(t, `{"two-sum": ["Array"], "jump-game": ["Greedy"]}`)
	primary := &pager{rows: []problem.Tagged{
		{Slug: "Two-Sum", Tags: []string{"Array", "Hash Table"}},
		{Slug: "jump-game", Tags: nil},
		{Slug: "new-one", Tags: []string{"Graph"}},
	}}
	secondary := &pager{}

	b := NewBuilder(store, primary.page, secondary.page, BuilderOptions{SeedPath: seed, PageSize: 2})
	idx, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := Index{
		"two-sum":   {"Array", "Hash Table"},
		"jump-game": {"Greedy"},
		"new-one":   {"Graph"},
	}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("Build() = %v, want %v", idx, want)
	}
	if !reflect.DeepEqual(primary.skips, []int{0, 2}) {
		t.Errorf("expected pagination to stop at short page, skips %v", primary.skips)
	}
	if len(secondary.skips) != 0 {
		t.Error("secondary source should not run when primary yields records")
	}
}

func TestBuildSecondaryOnlyWhenIndexEmpty(t *testing.T) {
	tests := []struct {
		name          string
		seed          string
		primary       []problem.Tagged
		wantSecondary bool
		wantLen       int
	}{
		{"empty seed and primary", `{}`, nil, true, 1},
		{"seeded, primary empty", `{"two-sum": ["Array"]}`, nil, false, 1},
		{"primary yields", `{}`, []problem.Tagged{{Slug: "a", Tags: []string{"X"}}}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &pager{rows: tt.primary}
			secondary := &pager{rows: []problem.Tagged{{Slug: "coin-change", Tags: []string{"Dynamic Programming"}}}}

			b := NewBuilder(cache.NewMemory(), primary.page, secondary.page, BuilderOptions{SeedPath: writeSeed(t, tt.seed)})
			idx, err := b.Build(context.Background())
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}

			if ran := len(secondary.skips) > 0; ran != tt.wantSecondary {
				t.Errorf("secondary ran = %v, want %v", ran, tt.wantSecondary)
			}
			if len(idx) != tt.wantLen {
				t.Errorf("expected %d entries, got %v", tt.wantLen, idx)
			}
			if tt.wantSecondary && idx["coin-change"][0] != "Dynamic Programming" {
				t.Errorf("expected secondary overlay, got %v", idx)
			}
		})
	}
}

func TestBuildPageErrorKeepsGathered(t *testing.T) {
	store := cache.NewMemory()
	seed := writeSeed(t, `{"two-sum": ["Array"]}`)
	primary := &pager{err: errors.New("boom")}

	b := NewBuilder(store, primary.page, nil, BuilderOptions{SeedPath: seed})
	idx, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(idx) != 1 {
		t.Errorf("expected seed entries to survive overlay failure, got %v", idx)
	}
}

func TestBuildHardCap(t *testing.T) {
	rows := make([]problem.Tagged, 0, 300)
	for i := 0; i < 300; i++ {
		rows = append(rows, problem.Tagged{Slug: fmt.Sprintf("p-%d", i), Tags: []string{"Array"}})
	}
	primary := &pager{rows: rows}

	b := NewBuilder(cache.NewMemory(), primary.page, nil, BuilderOptions{
		SeedPath: writeSeed(t, `{}`),
		PageSize: 50,
		Limit:    100,
	})
	idx, _ := b.Build(context.Background())

	if len(idx) != 100 {
		t.Errorf("expected 100 entries under the cap, got %d", len(idx))
	}
}

func TestBuildCacheFirst(t *testing.T) {
	store := cache.NewMemory()
	seed := writeSeed(t, `{"two-sum": ["Array"]}`)
	primary := &pager{rows: []problem.Tagged{{Slug: "a", Tags: []string{"X"}}}}

	b := NewBuilder(store, primary.page, nil, BuilderOptions{SeedPath: seed})
	first, _ := b.Build(context.Background())
	calls := len(primary.skips)

	second, _ := b.Build(context.Background())
	if len(primary.skips) != calls {
		t.Error("second build should be served from cache")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached index differs: %v vs %v", first, second)
	}

	tags, err := b.Lookup(context.Background(), "Two-Sum")
	if err != nil || !reflect.DeepEqual(tags, []string{"Array"}) {
		t.Errorf("Lookup() = %v, %v", tags, err)
	}

	if err := b.Invalidate(context.Background()); err != nil {
		t.Fatal(err)
	}
	b.Build(context.Background())
	if len(primary.skips) == calls {
		t.Error("expected rebuild after Invalidate")
	}
}

func TestBuildEmptyNotPersisted(t *testing.T) {
	store := cache.NewMemory()
	b := NewBuilder(store, (&pager{}).page, (&pager{}).page, BuilderOptions{SeedPath: writeSeed(t, `[]`)})

	idx, err := b.Build(context.Background())
	if err != nil || len(idx) != 0 {
		t.Fatalf("Build() = %v, %v", idx, err)
	}
	got, _ := store.Get(context.Background(), cache.KeyTagMap)
	if len(got) != 0 {
		t.Error("empty index must not be cached")
	}
}
