package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the config file lives unless --config says otherwise
const DefaultPath = "~/.config/leetboost/config.toml"

// Load reads and parses the configuration file. A missing file yields the defaults
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := Default()

	// Read file
	data, err := os.ReadFile(expandedPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// run 'leetboost config init' to write one
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// applyEnv overlays credentials from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv("LEETCODE_SESSION"); v != "" {
		c.LeetCode.Session = v
	}
	if v := os.Getenv("LEETCODE_CSRF"); v != "" {
		c.LeetCode.CSRFToken = v
	}
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Cache.Path, err = expandPath(c.Cache.Path)
	if err != nil {
		return err
	}

	c.Tags.SeedPath, err = expandPath(c.Tags.SeedPath)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Ratings validation
	if len(c.Ratings.Sources) == 0 {
		errs = append(errs, errors.New("ratings.sources must list at least one URL"))
	}
	if c.Ratings.TTLDays < 1 {
		errs = append(errs, errors.New("ratings.ttl_days must be at least 1"))
	}
	if c.Ratings.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("ratings.timeout_seconds must be at least 1"))
	}

	// LeetCode validation
	if c.LeetCode.BaseURL == "" {
		errs = append(errs, errors.New("leetcode.base_url is required"))
	}
	if c.LeetCode.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("leetcode.requests_per_second must be positive"))
	}
	if c.LeetCode.MaxConcurrent < 1 {
		errs = append(errs, errors.New("leetcode.max_concurrent must be at least 1"))
	}
	if c.LeetCode.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("leetcode.timeout_seconds must be at least 1"))
	}

	// Tags validation
	if c.Tags.PageSize < 1 || c.Tags.PageSize > 100 {
		errs = append(errs, errors.New("tags.page_size must be between 1 and 100"))
	}
	if c.Tags.OverlayLimit < c.Tags.PageSize {
		errs = append(errs, errors.New("tags.overlay_limit must be at least tags.page_size"))
	}

	// Recommend validation
	if c.Recommend.Cap < 1 {
		errs = append(errs, errors.New("recommend.cap must be at least 1"))
	}
	if c.Recommend.SimilarCap < 1 {
		errs = append(errs, errors.New("recommend.similar_cap must be at least 1"))
	}
	if c.Recommend.PerTagLimit < 1 {
		errs = append(errs, errors.New("recommend.per_tag_limit must be at least 1"))
	}
	if c.Recommend.WindowBelow < 0 || c.Recommend.WindowAbove < 0 {
		errs = append(errs, errors.New("recommend window bounds must not be negative"))
	}
	if c.Recommend.Concurrency < 1 {
		errs = append(errs, errors.New("recommend.concurrency must be at least 1"))
	}

	// Focus validation
	if c.Focus.Size < 1 {
		errs = append(errs, errors.New("focus.size must be at least 1"))
	}
	if c.Focus.MinCount < 1 {
		errs = append(errs, errors.New("focus.min_count must be at least 1"))
	}
	if c.Focus.HydrateThreshold < 0 || c.Focus.HydrateThreshold > 1 {
		errs = append(errs, errors.New("focus.hydrate_threshold must be between 0 and 1"))
	}
	if c.Focus.DetailBackfill < 0 {
		errs = append(errs, errors.New("focus.detail_backfill must not be negative"))
	}

	// Cache validation
	validBackends := map[string]bool{"sqlite": true, "badger": true, "memory": true}
	if !validBackends[c.Cache.Backend] {
		errs = append(errs, fmt.Errorf("cache.backend must be 'sqlite', 'badger' or 'memory', got '%s'", c.Cache.Backend))
	}
	if c.Cache.Backend != "memory" && c.Cache.Path == "" {
		errs = append(errs, errors.New("cache.path is required"))
	}

	// Log validation
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format must be 'json' or 'console', got '%s'", c.Log.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates the directory holding the cache
func (c *Config) EnsureDirectories() error {
	if c.Cache.Backend == "memory" {
		return nil
	}

	dir := filepath.Dir(c.Cache.Path)
	if c.Cache.Backend == "badger" {
		dir = c.Cache.Path
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}
