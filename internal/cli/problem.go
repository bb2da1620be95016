package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/output"
)

var problemCmd = &cobra.Command{
	Use:   "problem <slug|url>",
	Short: "Show a problem's rating and similar unsolved problems",
	Long: `Problem shows the community rating and difficulty of a problem along
with unsolved problems that share its first two tags, closest rating first.

Examples:
  leetboost problem two-sum
  leetboost problem https://leetcode.com/problems/two-sum/description/`,
	Args: cobra.ExactArgs(1),
	RunE: runProblem,
}

func init() {
	rootCmd.AddCommand(problemCmd)
}

func runProblem(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	terminal := NewTerminal()
	report, err := a.tracker.Problem(ctx, args[0], terminal.Progress())
	terminal.Done()
	if err != nil {
		return fmt.Errorf("problem lookup failed: %w", err)
	}

	return output.Output(outputFmt, report)
}
