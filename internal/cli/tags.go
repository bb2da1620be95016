package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/output"
	"github.com/vijay-prabhu/leetboost/internal/tags"
)

var tagsRebuild bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Build and query the slug to tags index",
}

var tagsBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the tag index from the seed dataset and the site listing",
	RunE:  runTagsBuild,
}

var tagsGetCmd = &cobra.Command{
	Use:   "get <slug|url>",
	Short: "Show the indexed tags of a problem",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsGet,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsBuildCmd)
	tagsCmd.AddCommand(tagsGetCmd)

	tagsBuildCmd.Flags().BoolVar(&tagsRebuild, "rebuild", false, "Discard the cached index first")
}

func runTagsBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if tagsRebuild {
		if err := a.tags.Invalidate(ctx); err != nil {
			return fmt.Errorf("failed to drop cached index: %w", err)
		}
	}

	idx, err := a.tags.Build(ctx)
	if err != nil {
		return fmt.Errorf("tag index build failed: %w", err)
	}
	fmt.Printf("Tag index holds %d problems.\n", len(idx))
	return nil
}

func runTagsGet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	slug, err := tags.SlugFromURL(args[0])
	if err != nil {
		slug = args[0]
	}

	found, err := a.tags.Lookup(cmd.Context(), slug)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, output.TagList(found))
}
