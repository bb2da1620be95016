package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/output"
	"github.com/vijay-prabhu/leetboost/internal/tracker"
)

var (
	recommendTags   []string
	recommendTarget int
	recommendCap    int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend unsolved problems near a target rating",
	Long: `Recommend matches problems carrying the given tags against the rating
catalog. Problems within 50 below and 150 above the target qualify. They are
ordered by signed distance from the target, with distances below the target
doubled, so the easiest warm-ups come first and harder stretches follow.
Solved problems saved by the last profile run are excluded.

Examples:
  leetboost recommend --target=1600                   # Use saved focus tags
  leetboost recommend --target=1600 --tags=Graph,Trie
  leetboost recommend --target=1600 --cap=5 -o json`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringSliceVar(&recommendTags, "tags", nil, "Tags to match (default: saved focus tags)")
	recommendCmd.Flags().IntVar(&recommendTarget, "target", 0, "Target rating")
	recommendCmd.Flags().IntVar(&recommendCap, "cap", 0, "Maximum number of results")
	recommendCmd.MarkFlagRequired("target")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	candidates, err := a.tracker.Recommend(ctx, tracker.RecommendOptions{
		Tags:         recommendTags,
		TargetRating: recommendTarget,
		Cap:          recommendCap,
	})
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}

	return output.Output(outputFmt, candidates)
}
