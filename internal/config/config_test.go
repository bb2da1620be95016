package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Ratings.TTLDays != 7 {
		t.Errorf("expected TTLDays=7, got %d", cfg.Ratings.TTLDays)
	}

	if len(cfg.Ratings.Sources) != 2 {
		t.Errorf("expected 2 rating sources, got %d", len(cfg.Ratings.Sources))
	}

	if cfg.Recommend.Cap != 12 {
		t.Errorf("expected Cap=12, got %d", cfg.Recommend.Cap)
	}

	if cfg.Recommend.WindowBelow != 50 || cfg.Recommend.WindowAbove != 150 {
		t.Errorf("expected window 50/150, got %d/%d", cfg.Recommend.WindowBelow, cfg.Recommend.WindowAbove)
	}

	if cfg.Focus.HydrateThreshold != 0.6 {
		t.Errorf("expected HydrateThreshold=0.6, got %v", cfg.Focus.HydrateThreshold)
	}

	if cfg.Cache.Backend != "sqlite" {
		t.Errorf("expected Backend=sqlite, got %s", cfg.Cache.Backend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "no rating sources",
			modify: func(c *Config) {
				c.Ratings.Sources = nil
			},
			wantErr: true,
		},
		{
			name: "invalid ttl",
			modify: func(c *Config) {
				c.Ratings.TTLDays = 0
			},
			wantErr: true,
		},
		{
			name: "invalid cache backend",
			modify: func(c *Config) {
				c.Cache.Backend = "redis"
			},
			wantErr: true,
		},
		{
			name: "memory backend without path",
			modify: func(c *Config) {
				c.Cache.Backend = "memory"
				c.Cache.Path = ""
			},
			wantErr: false,
		},
		{
			name: "threshold out of range",
			modify: func(c *Config) {
				c.Focus.HydrateThreshold = 1.5
			},
			wantErr: true,
		},
		{
			name: "page size too large",
			modify: func(c *Config) {
				c.Tags.PageSize = 500
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Log.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LEETCODE_SESSION", "")
	t.Setenv("LEETCODE_CSRF", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Recommend.SimilarCap != 10 {
		t.Errorf("expected SimilarCap=10, got %d", cfg.Recommend.SimilarCap)
	}
}

func TestLoadOverridesAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[recommend]
cap = 5

[cache]
backend = "memory"
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEETCODE_SESSION", "sess")
	t.Setenv("LEETCODE_CSRF", "tok")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Recommend.Cap != 5 {
		t.Errorf("expected Cap=5, got %d", cfg.Recommend.Cap)
	}
	if cfg.Recommend.SimilarCap != 10 {
		t.Errorf("expected default SimilarCap=10, got %d", cfg.Recommend.SimilarCap)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("expected Backend=memory, got %s", cfg.Cache.Backend)
	}
	if cfg.LeetCode.Session != "sess" || cfg.LeetCode.CSRFToken != "tok" {
		t.Errorf("env credentials not applied: %+v", cfg.LeetCode)
	}
}

func TestTTL(t *testing.T) {
	cfg := Default()
	expected := 7 * 24 * 60 * 60 // 7 days in seconds

	got := cfg.Ratings.TTL().Seconds()
	if int(got) != expected {
		t.Errorf("TTL() = %v seconds, want %v", got, expected)
	}
}
