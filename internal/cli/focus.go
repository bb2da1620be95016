package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/output"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Manage saved focus tags",
}

var focusShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved focus tags",
	RunE:  runFocusShow,
}

var focusSetCmd = &cobra.Command{
	Use:   "set <tag>...",
	Short: "Replace saved focus tags",
	Long: `Replace the saved focus tags. Tags with spaces must be quoted.

Examples:
  leetboost focus set "Dynamic Programming" Graph`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFocusSet,
}

var focusToggleCmd = &cobra.Command{
	Use:   "toggle <tag>",
	Short: "Add a tag to the focus set, or remove it if present",
	Args:  cobra.ExactArgs(1),
	RunE:  runFocusToggle,
}

var focusClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget saved focus tags so the next profile run picks new ones",
	RunE:  runFocusClear,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.AddCommand(focusShowCmd)
	focusCmd.AddCommand(focusSetCmd)
	focusCmd.AddCommand(focusToggleCmd)
	focusCmd.AddCommand(focusClearCmd)
}

func runFocusShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	focus, ok, err := a.tracker.StoredFocus(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read focus tags: %w", err)
	}
	if !ok && outputFmt == "table" {
		fmt.Println("No focus tags saved. Run 'leetboost profile <username>' to pick them.")
		return nil
	}
	return output.Output(outputFmt, output.TagList(focus))
}

func runFocusSet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.tracker.SetFocus(cmd.Context(), args); err != nil {
		return fmt.Errorf("failed to save focus tags: %w", err)
	}
	return output.Output(outputFmt, output.TagList(args))
}

func runFocusToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	focus, err := a.tracker.ToggleFocus(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to toggle focus tag: %w", err)
	}
	return output.Output(outputFmt, output.TagList(focus))
}

func runFocusClear(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.tracker.ClearFocus(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear focus tags: %w", err)
	}
	fmt.Println("Focus tags cleared.")
	return nil
}
