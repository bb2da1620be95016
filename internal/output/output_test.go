package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vijay-prabhu/leetboost/internal/problem"
	"github.com/vijay-prabhu/leetboost/internal/profile"
	"github.com/vijay-prabhu/leetboost/internal/ratings"
	"github.com/vijay-prabhu/leetboost/internal/tracker"
)

func TestOutputFormats(t *testing.T) {
	record := ratings.Record{Slug: "two-sum", Rating: 1200, Title: "Two Sum"}

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"rating": 1200`},
		{"yaml", "rating: 1200"},
		{"table", "Rating:      1200"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := OutputTo(&buf, tt.format, record); err != nil {
				t.Fatalf("OutputTo(%s) error: %v", tt.format, err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output:\n%s", tt.want, buf.String())
			}
		})
	}

	if err := OutputTo(&bytes.Buffer{}, "xml", record); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTableUnsupported(t *testing.T) {
	if err := TableTo(&bytes.Buffer{}, 42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestProfileTable(t *testing.T) {
	report := &tracker.ProfileReport{
		Username:     "alice",
		Mode:         tracker.ModeOwner,
		SolvedCount:  3,
		RatedCount:   3,
		TagCoverage:  1,
		Bands:        []profile.Band{{Low: 1400, High: 1599, Count: 2}},
		TagCounts:    []profile.TagCount{{Tag: "Greedy", Count: 3}},
		FocusTags:    []string{"Greedy"},
		FocusSource:  "auto",
		TargetRating: 1500,
		Recommendations: []problem.Candidate{
			{Slug: "jump-game", Title: "Jump Game", Rating: 1480},
		},
	}

	var buf bytes.Buffer
	if err := TableTo(&buf, report); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"alice", "1400-1599", "Greedy", "Jump Game", "https://leetcode.com/problems/jump-game/"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestProblemTableUnrated(t *testing.T) {
	var buf bytes.Buffer
	if err := TableTo(&buf, &tracker.ProblemReport{Slug: "mystery"}); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "unrated") || !strings.Contains(out, "No similar problems found.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		n, max int
		want   int
	}{
		{0, 10, 0},
		{10, 10, barWidth},
		{5, 10, barWidth / 2},
		{1, 1000, 1},
	}
	for _, tt := range tests {
		if got := len(bar(tt.n, tt.max)); got != tt.want {
			t.Errorf("bar(%d, %d) length = %d, want %d", tt.n, tt.max, got, tt.want)
		}
	}
}
