package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile, err := config.ExpandPath(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg := config.Default()
	dataDir, err := config.ExpandPath(filepath.Dir(cfg.Cache.Path))
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}

	// Create directories
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'leetboost config show' to view current configuration")
		return nil
	}

	// Session cookies are secrets
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Copy the LEETCODE_SESSION and csrftoken cookies from a signed-in browser")
	fmt.Println("     into [leetcode], or export LEETCODE_SESSION and LEETCODE_CSRF")
	fmt.Println("  2. Run 'leetboost profile <username>'")
	fmt.Println()
	fmt.Println("Without a session, profiles use recent public submissions only.")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.ExpandPath(configPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'leetboost config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", path)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# leetboost configuration

[ratings]
sources = [
    "https://raw.githubusercontent.com/zerotrac/leetcode_problem_rating/main/ratings.txt",
    "https://cdn.jsdelivr.net/gh/zerotrac/leetcode_problem_rating/ratings.txt",
]
ttl_days = 7          # catalog is re-downloaded after this many days
timeout_seconds = 30

[leetcode]
base_url = "https://leetcode.com"
session = ""          # or LEETCODE_SESSION env var
csrf_token = ""       # or LEETCODE_CSRF env var
requests_per_second = 4
max_concurrent = 4
timeout_seconds = 20

[tags]
seed_path = ""        # empty uses the bundled dataset
page_size = 50
overlay_limit = 5000
overlay_category = "all-code-essentials"

[recommend]
cap = 12
similar_cap = 10
per_tag_limit = 100
window_below = 50     # candidates may sit this far below the target
window_above = 150    # and this far above it
concurrency = 3

[focus]
size = 3
min_count = 3         # tags seen fewer times are never focus tags
hydrate_threshold = 0.6
detail_backfill = 100

[cache]
backend = "sqlite"    # sqlite, badger or memory
path = "~/.local/share/leetboost/cache.db"

[log]
level = "warn"
format = "console"    # console or json

[mcp]
enabled = true
transport = "stdio"
`
