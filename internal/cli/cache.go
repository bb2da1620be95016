package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/cache"
)

var (
	clearRatings bool
	clearTags    bool
	clearFocus   bool
	clearSolved  bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached data",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached data",
	Long: `Clear deletes cached entries. With no flags everything is removed.

Examples:
  leetboost cache clear             # Remove everything
  leetboost cache clear --ratings   # Force a rating download on next use
  leetboost cache clear --tags --solved`,
	RunE: runCacheClear,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show which cache entries exist",
	RunE:  runCacheInfo,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheInfoCmd)

	cacheClearCmd.Flags().BoolVar(&clearRatings, "ratings", false, "Remove the rating catalog")
	cacheClearCmd.Flags().BoolVar(&clearTags, "tags", false, "Remove the tag index")
	cacheClearCmd.Flags().BoolVar(&clearFocus, "focus", false, "Remove saved focus tags")
	cacheClearCmd.Flags().BoolVar(&clearSolved, "solved", false, "Remove the saved solved set")
}

// selectedKeys maps the clear flags to cache keys; nil means clear everything
func selectedKeys() []string {
	var keys []string
	if clearRatings {
		keys = append(keys, cache.KeyRatings, cache.KeyRatingsTS)
	}
	if clearTags {
		keys = append(keys, cache.KeyTagMap)
	}
	if clearFocus {
		keys = append(keys, cache.KeyFocusTags)
	}
	if clearSolved {
		keys = append(keys, cache.KeySolvedSet)
	}
	return keys
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	keys := selectedKeys()
	if keys == nil {
		if err := a.store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cache cleared.")
		return nil
	}

	if err := a.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Printf("Removed %d cache entries.\n", len(keys))
	return nil
}

// sqlite stores also report health and per-key update times
type healthChecker interface {
	Health(ctx context.Context) error
}

type keyLister interface {
	Keys(ctx context.Context) (map[string]time.Time, error)
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if hc, ok := a.store.(healthChecker); ok {
		if err := hc.Health(ctx); err != nil {
			return fmt.Errorf("cache unhealthy: %w", err)
		}
	}

	values, err := a.store.Get(ctx, cache.AllKeys...)
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	var updated map[string]time.Time
	if kl, ok := a.store.(keyLister); ok {
		if updated, err = kl.Keys(ctx); err != nil {
			return err
		}
	}

	fmt.Printf("Backend: %s\n", a.cfg.Cache.Backend)
	if a.cfg.Cache.Backend != "memory" {
		fmt.Printf("Path:    %s\n", a.cfg.Cache.Path)
	}
	fmt.Println()

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Key", "Size", "Updated")
	for _, key := range cache.AllKeys {
		v, ok := values[key]
		if !ok {
			if err := table.Append([]string{key, "-", "-"}); err != nil {
				return err
			}
			continue
		}
		when := "-"
		if t, ok := updated[key]; ok {
			when = t.Local().Format("Jan 02, 2006 15:04")
		}
		if err := table.Append([]string{key, fmt.Sprintf("%d B", len(v)), when}); err != nil {
			return err
		}
	}
	return table.Render()
}
