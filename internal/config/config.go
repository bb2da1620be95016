package config

import "time"

// Config represents the application configuration
type Config struct {
	Ratings   RatingsConfig   `toml:"ratings"`
	LeetCode  LeetCodeConfig  `toml:"leetcode"`
	Tags      TagsConfig      `toml:"tags"`
	Recommend RecommendConfig `toml:"recommend"`
	Focus     FocusConfig     `toml:"focus"`
	Cache     CacheConfig     `toml:"cache"`
	Log       LogConfig       `toml:"log"`
	MCP       MCPConfig       `toml:"mcp"`
}

// RatingsConfig contains community rating dataset settings
type RatingsConfig struct {
	Sources        []string `toml:"sources"`
	TTLDays        int      `toml:"ttl_days"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// TTL returns the cache freshness window as a duration
func (r RatingsConfig) TTL() time.Duration {
	return time.Duration(r.TTLDays) * 24 * time.Hour
}

// Timeout returns the per-source fetch timeout
func (r RatingsConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// LeetCodeConfig contains upstream site settings
type LeetCodeConfig struct {
	BaseURL           string  `toml:"base_url"`
	Session           string  `toml:"session"`
	CSRFToken         string  `toml:"csrf_token"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	MaxConcurrent     int     `toml:"max_concurrent"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	// Session and CSRF token can also come from LEETCODE_SESSION and LEETCODE_CSRF
}

// Timeout returns the per-request timeout
func (l LeetCodeConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// TagsConfig contains tag index settings
type TagsConfig struct {
	SeedPath        string `toml:"seed_path"`
	PageSize        int    `toml:"page_size"`
	OverlayLimit    int    `toml:"overlay_limit"`
	OverlayCategory string `toml:"overlay_category"`
}

// RecommendConfig contains matching settings
type RecommendConfig struct {
	Cap         int `toml:"cap"`
	SimilarCap  int `toml:"similar_cap"`
	PerTagLimit int `toml:"per_tag_limit"`
	WindowBelow int `toml:"window_below"`
	WindowAbove int `toml:"window_above"`
	Concurrency int `toml:"concurrency"`
}

// FocusConfig contains weak-topic analysis settings
type FocusConfig struct {
	Size             int     `toml:"size"`
	MinCount         int     `toml:"min_count"`
	HydrateThreshold float64 `toml:"hydrate_threshold"`
	DetailBackfill   int     `toml:"detail_backfill"`
}

// CacheConfig contains persistent cache settings
type CacheConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Ratings: RatingsConfig{
			Sources: []string{
				"https://raw.githubusercontent.com/zerotrac/leetcode_problem_rating/main/ratings.txt",
				"https://cdn.jsdelivr.net/gh/zerotrac/leetcode_problem_rating/ratings.txt",
			},
			TTLDays:        7,
			TimeoutSeconds: 30,
		},
		LeetCode: LeetCodeConfig{
			BaseURL:           "https://leetcode.com",
			RequestsPerSecond: 4,
			MaxConcurrent:     4,
			TimeoutSeconds:    20,
		},
		Tags: TagsConfig{
			PageSize:        50,
			OverlayLimit:    5000,
			OverlayCategory: "all-code-essentials",
		},
		Recommend: RecommendConfig{
			Cap:         12,
			SimilarCap:  10,
			PerTagLimit: 100,
			WindowBelow: 50,
			WindowAbove: 150,
			Concurrency: 3,
		},
		Focus: FocusConfig{
			Size:             3,
			MinCount:         3,
			HydrateThreshold: 0.6,
			DetailBackfill:   100,
		},
		Cache: CacheConfig{
			Backend: "sqlite",
			Path:    "~/.local/share/leetboost/cache.db",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
