package leetcode

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/leetboost/internal/problem"
)

const pageSize = 50

// ownerScanLimit caps how far the owner's problem list is paged
const ownerScanLimit = 2000

const (
	queryUserStatus = `query globalData { userStatus { isSignedIn username } }`

	queryQuestionDetail = `
    query questionDetail($titleSlug: String!) {
      question(titleSlug: $titleSlug) {
        title
        difficulty
        topicTags { name }
      }
    }`

	queryQuestionList = `
    query problemsetQuestionList($skip: Int!, $limit: Int!, $filters: QuestionListFilterInput) {
      questionList(skip: $skip, limit: $limit, filters: $filters) {
        data {
          title
          titleSlug
          difficulty
          status
          topicTags { name }
        }
      }
    }`

	queryProblemset = `
    query problemsetQuestions($categorySlug: String, $skip: Int!, $limit: Int!, $filters: QuestionListFilterInput) {
      problemsetQuestionList(categorySlug: $categorySlug, skip: $skip, limit: $limit, filters: $filters) {
        questions { title titleSlug topicTags { name } }
      }
    }`

	queryRecentAC = `
    query recentAcSubmissions($username: String!) {
      recentAcSubmissionList(username: $username) {
        title
        titleSlug
      }
    }`
)

type topicTag struct {
	Name string `json:"name"`
}

type question struct {
	Title      string     `json:"title"`
	TitleSlug  string     `json:"titleSlug"`
	Difficulty string     `json:"difficulty"`
	Status     *string    `json:"status"`
	TopicTags  []topicTag `json:"topicTags"`
}

func (q question) slug() string {
	return problem.NormalizeSlug(q.TitleSlug)
}

func (q question) tags() []string {
	out := make([]string, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		out = append(out, t.Name)
	}
	return out
}

func (q question) tagged() problem.Tagged {
	return problem.Tagged{Slug: q.slug(), Title: q.Title, Tags: q.tags()}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// TagSlug converts a display tag name to the slug used by listing filters,
// e.g. "Heap (Priority Queue)" to "heap-priority-queue"
func TagSlug(name string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// SignedInUsername returns the session's username, or "" when not signed in
func (c *Client) SignedInUsername(ctx context.Context) (string, error) {
	var data struct {
		UserStatus *struct {
			IsSignedIn bool    `json:"isSignedIn"`
			Username   *string `json:"username"`
		} `json:"userStatus"`
	}
	if err := c.graphQL(ctx, queryUserStatus, nil, &data); err != nil {
		return "", fmt.Errorf("failed to fetch user status: %w", err)
	}
	if data.UserStatus == nil || !data.UserStatus.IsSignedIn || data.UserStatus.Username == nil {
		return "", nil
	}
	return *data.UserStatus.Username, nil
}

// QuestionDetail returns title, difficulty and tags for slug, or nil when unknown
func (c *Client) QuestionDetail(ctx context.Context, slug string) (*problem.Detail, error) {
	var data struct {
		Question *question `json:"question"`
	}
	vars := map[string]interface{}{"titleSlug": slug}
	if err := c.graphQL(ctx, queryQuestionDetail, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch question %s: %w", slug, err)
	}
	if data.Question == nil {
		return nil, nil
	}
	return &problem.Detail{
		Title:      data.Question.Title,
		Difficulty: problem.ParseDifficulty(data.Question.Difficulty),
		Tags:       data.Question.tags(),
	}, nil
}

func (c *Client) questionList(ctx context.Context, skip, limit int, filters map[string]interface{}) ([]question, error) {
	if filters == nil {
		filters = map[string]interface{}{}
	}
	var data struct {
		QuestionList *struct {
			Data []question `json:"data"`
		} `json:"questionList"`
	}
	vars := map[string]interface{}{"skip": skip, "limit": limit, "filters": filters}
	if err := c.graphQL(ctx, queryQuestionList, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch question list: %w", err)
	}
	if data.QuestionList == nil {
		return nil, nil
	}
	return data.QuestionList.Data, nil
}

// QuestionListPage returns one unfiltered page of the question list
func (c *Client) QuestionListPage(ctx context.Context, skip, limit int) ([]problem.Tagged, error) {
	qs, err := c.questionList(ctx, skip, limit, nil)
	if err != nil {
		return nil, err
	}
	out := make([]problem.Tagged, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.tagged())
	}
	return out, nil
}

// ProblemsetPage returns one page of the category-scoped problem set listing
func (c *Client) ProblemsetPage(ctx context.Context, category string, skip, limit int) ([]problem.Tagged, error) {
	var data struct {
		ProblemsetQuestionList *struct {
			Questions []question `json:"questions"`
		} `json:"problemsetQuestionList"`
	}
	vars := map[string]interface{}{
		"categorySlug": category,
		"skip":         skip,
		"limit":        limit,
		"filters":      map[string]interface{}{},
	}
	if err := c.graphQL(ctx, queryProblemset, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch problem set: %w", err)
	}
	if data.ProblemsetQuestionList == nil {
		return nil, nil
	}
	out := make([]problem.Tagged, 0, len(data.ProblemsetQuestionList.Questions))
	for _, q := range data.ProblemsetQuestionList.Questions {
		out = append(out, q.tagged())
	}
	return out, nil
}

// ProblemsByTag returns up to limit problems carrying tag, deduplicated by slug
func (c *Client) ProblemsByTag(ctx context.Context, tag string, limit int) ([]problem.Tagged, error) {
	filters := map[string]interface{}{"tags": []string{TagSlug(tag)}}
	seen := make(map[string]bool)
	var out []problem.Tagged

	for skip := 0; skip < limit; skip += pageSize {
		qs, err := c.questionList(ctx, skip, pageSize, filters)
		if err != nil {
			if len(out) > 0 {
				return out, nil
			}
			return nil, err
		}
		if len(qs) == 0 {
			break
		}
		for _, q := range qs {
			slug := q.slug()
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			out = append(out, q.tagged())
		}
		if len(qs) < pageSize {
			break
		}
	}
	return out, nil
}

// SolvedByOwner pages through the signed-in user's problem list and keeps accepted ones
func (c *Client) SolvedByOwner(ctx context.Context) ([]problem.Solved, error) {
	var solved []problem.Solved
	for skip := 0; skip < ownerScanLimit; skip += pageSize {
		qs, err := c.questionList(ctx, skip, pageSize, nil)
		if err != nil {
			return solved, err
		}
		if len(qs) == 0 {
			break
		}
		for _, q := range qs {
			if q.Status == nil || *q.Status != "ac" {
				continue
			}
			solved = append(solved, problem.Solved{
				Slug:       q.slug(),
				Title:      q.Title,
				Difficulty: problem.ParseDifficulty(q.Difficulty),
				Tags:       q.tags(),
			})
		}
		if len(qs) < pageSize {
			break
		}
	}
	return solved, nil
}

type restListing struct {
	StatStatusPairs []struct {
		Status *string `json:"status"`
		Stat   struct {
			Title     string `json:"question__title"`
			TitleSlug string `json:"question__title_slug"`
		} `json:"stat"`
		Difficulty struct {
			Level int `json:"level"`
		} `json:"difficulty"`
	} `json:"stat_status_pairs"`
}

// SolvedByREST reads accepted problems from the legacy REST listing. Tags are not included
func (c *Client) SolvedByREST(ctx context.Context) ([]problem.Solved, error) {
	raw, err := c.do(ctx, "GET", c.baseURL+"/api/problems/all/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch problem listing: %w", err)
	}

	var listing restListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode problem listing: %w", err)
	}

	var solved []problem.Solved
	for _, p := range listing.StatStatusPairs {
		if p.Status == nil || *p.Status != "ac" {
			continue
		}
		slug := problem.NormalizeSlug(p.Stat.TitleSlug)
		if slug == "" {
			continue
		}
		title := p.Stat.Title
		if title == "" {
			title = slug
		}
		solved = append(solved, problem.Solved{
			Slug:       slug,
			Title:      title,
			Difficulty: problem.DifficultyFromLevel(p.Difficulty.Level),
			Tags:       []string{},
		})
	}
	return solved, nil
}

// RecentAccepted returns the user's public recent accepted submissions, one per slug
func (c *Client) RecentAccepted(ctx context.Context, username string) ([]problem.Solved, error) {
	var data struct {
		RecentAcSubmissionList []struct {
			Title     string `json:"title"`
			TitleSlug string `json:"titleSlug"`
		} `json:"recentAcSubmissionList"`
	}
	vars := map[string]interface{}{"username": username}
	if err := c.graphQL(ctx, queryRecentAC, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch recent submissions: %w", err)
	}

	seen := make(map[string]bool)
	var out []problem.Solved
	for _, s := range data.RecentAcSubmissionList {
		slug := problem.NormalizeSlug(s.TitleSlug)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		title := s.Title
		if title == "" {
			title = s.TitleSlug
		}
		out = append(out, problem.Solved{Slug: slug, Title: title, Tags: []string{}})
	}
	return out, nil
}
