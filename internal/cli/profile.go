package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/logging"
	"github.com/vijay-prabhu/leetboost/internal/output"
	"github.com/vijay-prabhu/leetboost/internal/tracker"
)

var (
	profileTags   []string
	profileTarget int
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Show rating profile, focus tags and recommendations for a user",
	Long: `Profile loads the community ratings and the user's solved history, then
shows a rating distribution, top tags, weak-topic focus tags and problems to
practice next.

When your session belongs to <username> the full solved list is used;
otherwise recent accepted submissions are used.

Examples:
  leetboost profile alice                          # Full profile
  leetboost profile alice --tags="Dynamic Programming,Graph"
  leetboost profile alice --target=1800            # Aim above your median
  leetboost profile alice -o json                  # Output as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().StringSliceVar(&profileTags, "tags", nil, "Focus tags for this run only (comma-separated)")
	profileCmd.Flags().IntVar(&profileTarget, "target", 0, "Target rating (default: median solved rating)")
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.client.HasSession() {
		logging.Info().Msg("no LeetCode session configured, using public history")
	}

	terminal := NewTerminal()
	report, err := a.tracker.Profile(ctx, args[0], tracker.ProfileOptions{
		Tags:         profileTags,
		TargetRating: profileTarget,
		Progress:     terminal.Progress(),
	})
	terminal.Done()
	if err != nil {
		return fmt.Errorf("profile failed: %w", err)
	}

	return output.Output(outputFmt, report)
}
