package ratings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vijay-prabhu/leetboost/internal/cache"
	"github.com/vijay-prabhu/leetboost/internal/logging"
)

// Fetcher retrieves the raw dataset text from a source URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches sources over HTTP with a per-request timeout
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher. A zero timeout means 30s
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Fetch returns the body of a 2xx response
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}

// LoaderOptions configures a Loader
type LoaderOptions struct {
	Sources []string
	TTL     time.Duration
	// Now defaults to time.Now
	Now func() time.Time
}

// Loader owns the in-memory catalog and its weekly cache entry
type Loader struct {
	store   cache.Store
	fetcher Fetcher
	opts    LoaderOptions
	logger  zerolog.Logger

	mu      sync.Mutex
	catalog *Catalog
}

// NewLoader creates a loader backed by store and fetcher
func NewLoader(store cache.Store, fetcher Fetcher, opts LoaderOptions) *Loader {
	if opts.TTL <= 0 {
		opts.TTL = 7 * 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Loader{
		store:   store,
		fetcher: fetcher,
		opts:    opts,
		logger:  logging.Component("ratings"),
	}
}

// Catalog returns the loaded catalog, or nil before a successful EnsureLoaded
func (l *Loader) Catalog() *Catalog {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.catalog
}

// Invalidate drops the in-memory catalog. The cache entry is left alone
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.catalog = nil
	l.mu.Unlock()
}

// EnsureLoaded makes a catalog available, preferring memory, then a fresh cache
// entry, then the configured sources in order. It reports whether a catalog is loaded
func (l *Loader) EnsureLoaded(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.catalog != nil {
		return true
	}
	if c := l.fromCache(ctx); c != nil {
		l.catalog = c
		return true
	}
	return l.fetchLocked(ctx)
}

// Refresh ignores memory and cache and refetches from the sources
func (l *Loader) Refresh(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.catalog = nil
	return l.fetchLocked(ctx)
}

// Install adopts text parsed from a local file and persists it like a fetch
func (l *Loader) Install(ctx context.Context, text string) (int, error) {
	c := Parse(text)
	if c.Len() == 0 {
		return 0, fmt.Errorf("no rating records found")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.catalog = c
	if err := l.persist(ctx, c); err != nil {
		return c.Len(), err
	}
	return c.Len(), nil
}

// ParseFile reads and parses a local dataset file
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings file: %w", err)
	}
	return Parse(string(data)), nil
}

func (l *Loader) fromCache(ctx context.Context) *Catalog {
	var records []Record
	var ts int64

	okRecords, err := cache.GetJSON(ctx, l.store, cache.KeyRatings, &records)
	if err != nil {
		l.logger.Debug().Err(err).Msg("ignoring unreadable ratings cache")
		return nil
	}
	okTS, err := cache.GetJSON(ctx, l.store, cache.KeyRatingsTS, &ts)
	if err != nil {
		l.logger.Debug().Err(err).Msg("ignoring unreadable ratings timestamp")
		return nil
	}
	if !okRecords || !okTS || ts <= 0 {
		return nil
	}

	age := l.opts.Now().Sub(time.UnixMilli(ts))
	if age >= l.opts.TTL {
		l.logger.Debug().Dur("age", age).Msg("ratings cache is stale")
		return nil
	}

	l.logger.Debug().Int("records", len(records)).Msg("using cached ratings")
	return NewCatalog(records)
}

func (l *Loader) fetchLocked(ctx context.Context) bool {
	var text string
	fetched := false
	for _, src := range l.opts.Sources {
		body, err := l.fetcher.Fetch(ctx, src)
		if err != nil {
			l.logger.Warn().Err(err).Str("source", src).Msg("ratings source failed")
			continue
		}
		text = body
		fetched = true
		break
	}
	if !fetched {
		return false
	}

	c := Parse(text)
	if c.Len() == 0 {
		l.logger.Warn().Msg("ratings source returned no parseable records")
		return false
	}

	l.catalog = c
	if err := l.persist(ctx, c); err != nil {
		l.logger.Warn().Err(err).Msg("failed to cache ratings")
	}
	l.logger.Info().Int("records", c.Len()).Msg("ratings loaded")
	return true
}

func (l *Loader) persist(ctx context.Context, c *Catalog) error {
	return cache.SetJSON(ctx, l.store, map[string]interface{}{
		cache.KeyRatings:   c.Records(),
		cache.KeyRatingsTS: l.opts.Now().UnixMilli(),
	})
}
