// Package leetcode is a thin GraphQL and REST client for the problem site.
// It supplies solved history, per-question details and tagged problem listings
package leetcode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Options configures a Client
type Options struct {
	BaseURL   string
	Session   string
	CSRFToken string
	// RequestsPerSecond paces all requests from this client
	RequestsPerSecond float64
	// MaxConcurrent bounds in-flight requests
	MaxConcurrent int
	Timeout       time.Duration
}

// Client talks to the site's GraphQL endpoint and REST listing
type Client struct {
	baseURL    string
	session    string
	csrfToken  string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	bulkhead   bulkhead.Bulkhead[[]byte]
}

// New creates a client. Zero values in opts fall back to conservative defaults
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://leetcode.com"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 4
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}

	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		session:    opts.Session,
		csrfToken:  opts.CSRFToken,
		timeout:    opts.Timeout,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst),
		bulkhead: bulkhead.New[[]byte](bulkhead.Config{
			MaxConcurrent: opts.MaxConcurrent,
			MaxQueue:      opts.MaxConcurrent * 16,
			QueueTimeout:  opts.Timeout,
		}),
	}
}

// HasSession reports whether a session cookie is configured
func (c *Client) HasSession() bool {
	return c.session != ""
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// graphQL posts query and decodes the data member into out
func (c *Client) graphQL(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, c.baseURL+"/graphql", body)
	if err != nil {
		return err
	}

	var resp graphQLResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", resp.Errors[0].Message)
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return fmt.Errorf("graphql response has no data")
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// do sends one paced, bulkheaded request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	return c.bulkhead.Execute(ctx, func(ctx context.Context) ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request to %s failed: %w", url, err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("request to %s failed (status %d): %s", url, resp.StatusCode, truncate(string(respBody), 200))
		}
		return respBody, nil
	})
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("X-CSRFToken", c.csrfToken)

	var cookies []string
	if c.csrfToken != "" {
		cookies = append(cookies, "csrftoken="+c.csrfToken)
	}
	if c.session != "" {
		cookies = append(cookies, "LEETCODE_SESSION="+c.session)
	}
	if len(cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(cookies, "; "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
