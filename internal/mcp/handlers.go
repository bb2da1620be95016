package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/leetboost/internal/profile"
	"github.com/vijay-prabhu/leetboost/internal/tracker"
)

func (s *Server) registerHandlers() {
	s.handlers["get_problem_rating"] = s.handleGetProblemRating
	s.handlers["recommend_problems"] = s.handleRecommendProblems
	s.handlers["similar_problems"] = s.handleSimilarProblems
	s.handlers["get_focus_tags"] = s.handleGetFocusTags
	s.handlers["set_focus_tags"] = s.handleSetFocusTags
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

type problemParams struct {
	Problem string `json:"problem"`
}

func (s *Server) handleGetProblemRating(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p problemParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Problem == "" {
		return nil, fmt.Errorf("problem is required")
	}

	record, ok, err := s.tracker.Rating(ctx, p.Problem)
	if err != nil {
		return nil, err
	}
	if !ok {
		return fmt.Sprintf("No community rating for %s", p.Problem), nil
	}
	return record, nil
}

type recommendParams struct {
	TargetRating int      `json:"target_rating"`
	Tags         []string `json:"tags"`
	Cap          int      `json:"cap"`
}

func (s *Server) handleRecommendProblems(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p recommendParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return s.tracker.Recommend(ctx, tracker.RecommendOptions{
		Tags:         p.Tags,
		TargetRating: p.TargetRating,
		Cap:          p.Cap,
	})
}

func (s *Server) handleSimilarProblems(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p problemParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Problem == "" {
		return nil, fmt.Errorf("problem is required")
	}

	return s.tracker.Problem(ctx, p.Problem, nil)
}

type focusResult struct {
	Tags  []string `json:"tags"`
	Saved bool     `json:"saved"`
}

func (s *Server) handleGetFocusTags(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	focus, ok, err := s.tracker.StoredFocus(ctx)
	if err != nil {
		return nil, err
	}
	if focus == nil {
		focus = []string{}
	}
	return focusResult{Tags: focus, Saved: ok}, nil
}

type setFocusParams struct {
	Tags   []string `json:"tags"`
	Toggle string   `json:"toggle"`
}

func (s *Server) handleSetFocusTags(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p setFocusParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.Toggle != "" {
		focus, err := s.tracker.ToggleFocus(ctx, p.Toggle)
		if err != nil {
			return nil, err
		}
		return focusResult{Tags: focus, Saved: true}, nil
	}

	if p.Tags == nil {
		return nil, fmt.Errorf("tags or toggle is required")
	}
	if err := s.tracker.SetFocus(ctx, p.Tags); err != nil {
		return nil, err
	}
	return focusResult{Tags: p.Tags, Saved: true}, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case URIFocus:
		return s.getResourceFocus(ctx)
	case URISolved:
		return s.getResourceSolved(ctx)
	case URICatalog:
		return s.getResourceCatalog(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceFocus(ctx context.Context) (string, error) {
	focus, ok, err := s.tracker.StoredFocus(ctx)
	if err != nil {
		return "", err
	}

	result := "Focus Tags\n==========\n\n"
	if !ok {
		return result + "No focus tags saved. Run 'leetboost profile <username>' to pick them.\n", nil
	}
	if len(focus) == 0 {
		return result + "Focus tags cleared.\n", nil
	}
	for _, t := range focus {
		result += fmt.Sprintf("  - %s\n", t)
	}
	return result, nil
}

func (s *Server) getResourceSolved(ctx context.Context) (string, error) {
	solved, err := s.tracker.SolvedSet(ctx)
	if err != nil {
		return "", err
	}

	slugs := solved.Slugs()
	sort.Strings(slugs)

	var b strings.Builder
	fmt.Fprintf(&b, "Solved Problems (%d)\n====================\n\n", len(slugs))
	if len(slugs) == 0 {
		b.WriteString("No solved set saved yet.\n")
		return b.String(), nil
	}
	for _, slug := range slugs {
		fmt.Fprintf(&b, "  - %s\n", slug)
	}
	return b.String(), nil
}

func (s *Server) getResourceCatalog(ctx context.Context) (string, error) {
	catalog, err := s.tracker.Catalog(ctx)
	if err != nil {
		return "", err
	}

	records := catalog.Records()
	values := make([]int, len(records))
	for i, r := range records {
		values[i] = r.Rating
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rating Catalog\n==============\n\nRated problems: %d\n", len(records))
	if len(values) > 0 {
		fmt.Fprintf(&b, "Median rating:  %d\n\n", profile.Median(values))
		for _, band := range profile.RatingBands(values) {
			fmt.Fprintf(&b, "  %s: %d\n", band.Label(), band.Count)
		}
	}
	return b.String(), nil
}
