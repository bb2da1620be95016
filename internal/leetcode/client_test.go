package leetcode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/leetboost/internal/problem"
)

type recordedRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// fakeSite serves GraphQL by dispatching on a query substring
type fakeSite struct {
	mu       sync.Mutex
	requests []recordedRequest
	headers  []http.Header
	handle   func(req recordedRequest) string
}

func (f *fakeSite) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/problems/all/" {
			w.Write([]byte(restBody))
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req recordedRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.headers = append(f.headers, r.Header.Clone())
		f.mu.Unlock()
		w.Write([]byte(f.handle(req)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	return New(Options{
		BaseURL:           url,
		Session:           "sess",
		CSRFToken:         "tok",
		RequestsPerSecond: 1000,
		MaxConcurrent:     2,
		Timeout:           5 * time.Second,
	})
}

func page(from, n int, status string) string {
	var items []string
	for i := from; i < from+n; i++ {
		items = append(items, fmt.Sprintf(
			`{"title":"P %d","titleSlug":"P-%d","difficulty":"MEDIUM","status":%s,"topicTags":[{"name":"Array"}]}`,
			i, i, status))
	}
	return `{"data":{"questionList":{"data":[` + strings.Join(items, ",") + `]}}}`
}

const restBody = `{"stat_status_pairs":[
	{"status":"ac","stat":{"question__title":"Two Sum","question__title_slug":"Two-Sum"},"difficulty":{"level":1}},
	{"status":null,"stat":{"question__title":"Skip","question__title_slug":"skip"},"difficulty":{"level":2}},
	{"status":"ac","stat":{"question__title":"","question__title_slug":"hard-one"},"difficulty":{"level":3}}
]}`

func TestProblemsByTagPaginates(t *testing.T) {
	site := &fakeSite{handle: func(req recordedRequest) string {
		skip := int(req.Variables["skip"].(float64))
		if skip == 0 {
			return page(0, 50, "null")
		}
		// Second page overlaps the first by one slug
		return page(49, 10, "null")
	}}
	c := newTestClient(site.server(t).URL)

	got, err := c.ProblemsByTag(context.Background(), "Dynamic Programming", 100)
	if err != nil {
		t.Fatalf("ProblemsByTag() error: %v", err)
	}
	if len(got) != 59 {
		t.Errorf("expected 59 unique problems, got %d", len(got))
	}
	if got[0].Slug != "p-0" {
		t.Errorf("expected lowercased slug, got %q", got[0].Slug)
	}
	if len(site.requests) != 2 {
		t.Errorf("expected 2 requests, got %d", len(site.requests))
	}

	filters := site.requests[0].Variables["filters"].(map[string]interface{})
	tags := filters["tags"].([]interface{})
	if tags[0] != "dynamic-programming" {
		t.Errorf("expected tag slug filter, got %v", tags)
	}

	h := site.headers[0]
	if h.Get("X-CSRFToken") != "tok" {
		t.Errorf("missing csrf header")
	}
	if !strings.Contains(h.Get("Cookie"), "LEETCODE_SESSION=sess") {
		t.Errorf("missing session cookie: %q", h.Get("Cookie"))
	}
}

func TestSolvedByOwnerKeepsAccepted(t *testing.T) {
	site := &fakeSite{handle: func(req recordedRequest) string {
		skip := int(req.Variables["skip"].(float64))
		switch skip {
		case 0:
			return page(0, 50, `"ac"`)
		default:
			return `{"data":{"questionList":{"data":[
				{"title":"A","titleSlug":"a","difficulty":"Easy","status":"notac","topicTags":[]},
				{"title":"B","titleSlug":"b","difficulty":"Hard","status":"ac","topicTags":[{"name":"Graph"}]}
			]}}}`
		}
	}}
	c := newTestClient(site.server(t).URL)

	solved, err := c.SolvedByOwner(context.Background())
	if err != nil {
		t.Fatalf("SolvedByOwner() error: %v", err)
	}
	if len(solved) != 51 {
		t.Fatalf("expected 51 accepted, got %d", len(solved))
	}
	last := solved[50]
	if last.Slug != "b" || last.Difficulty != problem.DifficultyHard || last.Tags[0] != "Graph" {
		t.Errorf("unexpected last record %+v", last)
	}
}

func TestSolvedByREST(t *testing.T) {
	site := &fakeSite{handle: func(recordedRequest) string { return `{}` }}
	c := newTestClient(site.server(t).URL)

	solved, err := c.SolvedByREST(context.Background())
	if err != nil {
		t.Fatalf("SolvedByREST() error: %v", err)
	}
	want := []problem.Solved{
		{Slug: "two-sum", Title: "Two Sum", Difficulty: problem.DifficultyEasy, Tags: []string{}},
		{Slug: "hard-one", Title: "hard-one", Difficulty: problem.DifficultyHard, Tags: []string{}},
	}
	if len(solved) != len(want) {
		t.Fatalf("got %d solved, want %d", len(solved), len(want))
	}
	for i := range want {
		if solved[i].Slug != want[i].Slug || solved[i].Title != want[i].Title || solved[i].Difficulty != want[i].Difficulty {
			t.Errorf("solved[%d] = %+v, want %+v", i, solved[i], want[i])
		}
	}
}

func TestRecentAcceptedDedup(t *testing.T) {
	site := &fakeSite{handle: func(recordedRequest) string {
		return `{"data":{"recentAcSubmissionList":[
			{"title":"Two Sum","titleSlug":"two-sum"},
			{"title":"Two Sum","titleSlug":"Two-Sum"},
			{"title":"","titleSlug":"3sum"},
			{"title":"x","titleSlug":""}
		]}}`
	}}
	c := newTestClient(site.server(t).URL)

	got, err := c.RecentAccepted(context.Background(), "alice")
	if err != nil {
		t.Fatalf("RecentAccepted() error: %v", err)
	}
	if len(got) != 2 || got[1].Title != "3sum" {
		t.Errorf("unexpected recent list %+v", got)
	}
	if site.requests[0].Variables["username"] != "alice" {
		t.Errorf("username not sent")
	}
}

func TestSignedInUsernameAndDetail(t *testing.T) {
	site := &fakeSite{handle: func(req recordedRequest) string {
		switch {
		case strings.Contains(req.Query, "userStatus"):
			return `{"data":{"userStatus":{"isSignedIn":true,"username":"alice"}}}`
		case strings.Contains(req.Query, "questionDetail"):
			if req.Variables["titleSlug"] == "missing" {
				return `{"data":{"question":null}}`
			}
			return `{"data":{"question":{"title":"Two Sum","difficulty":"Easy","topicTags":[{"name":"Array"},{"name":"Hash Table"}]}}}`
		}
		return `{"errors":[{"message":"unknown"}]}`
	}}
	c := newTestClient(site.server(t).URL)
	ctx := context.Background()

	user, err := c.SignedInUsername(ctx)
	if err != nil || user != "alice" {
		t.Errorf("SignedInUsername() = %q, %v", user, err)
	}

	d, err := c.QuestionDetail(ctx, "two-sum")
	if err != nil {
		t.Fatalf("QuestionDetail() error: %v", err)
	}
	if d.Difficulty != problem.DifficultyEasy || len(d.Tags) != 2 {
		t.Errorf("unexpected detail %+v", d)
	}

	d, err = c.QuestionDetail(ctx, "missing")
	if err != nil || d != nil {
		t.Errorf("expected nil detail for unknown slug, got %+v, %v", d, err)
	}
}

func TestGraphQLErrors(t *testing.T) {
	site := &fakeSite{handle: func(recordedRequest) string {
		return `{"errors":[{"message":"rate limited"}]}`
	}}
	c := newTestClient(site.server(t).URL)

	_, err := c.QuestionListPage(context.Background(), 0, 50)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("expected graphql error, got %v", err)
	}
}

func TestProblemsetPage(t *testing.T) {
	site := &fakeSite{handle: func(req recordedRequest) string {
		if req.Variables["categorySlug"] != "all-code-essentials" {
			return `{"errors":[{"message":"bad category"}]}`
		}
		return `{"data":{"problemsetQuestionList":{"questions":[{"titleSlug":"Jump-Game","topicTags":[{"name":"Greedy"}]}]}}}`
	}}
	c := newTestClient(site.server(t).URL)

	got, err := c.ProblemsetPage(context.Background(), "all-code-essentials", 0, 50)
	if err != nil {
		t.Fatalf("ProblemsetPage() error: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "jump-game" || got[0].Tags[0] != "Greedy" {
		t.Errorf("unexpected page %+v", got)
	}
}

func TestTagSlug(t *testing.T) {
	tests := map[string]string{
		"Array":                 "array",
		"Dynamic Programming":   "dynamic-programming",
		"Heap (Priority Queue)": "heap-priority-queue",
		"Depth-First Search":    "depth-first-search",
	}
	for in, want := range tests {
		if got := TagSlug(in); got != want {
			t.Errorf("TagSlug(%q) = %q, want %q", in, got, want)
		}
	}
}
