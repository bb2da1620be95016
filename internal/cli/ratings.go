package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leetboost/internal/output"
	"github.com/vijay-prabhu/leetboost/internal/ratings"
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Query and manage the community rating catalog",
}

var ratingsGetCmd = &cobra.Command{
	Use:   "get <slug|url>",
	Short: "Show a problem's community rating",
	Args:  cobra.ExactArgs(1),
	RunE:  runRatingsGet,
}

var ratingsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-download the rating catalog, ignoring the weekly cache",
	RunE:  runRatingsRefresh,
}

var importDryRun bool

var ratingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Install a rating catalog from a local ratings.txt",
	Long: `Import parses a local copy of the community ratings file and installs it
as the cached catalog. Useful when the upstream mirrors are unreachable.`,
	Args: cobra.ExactArgs(1),
	RunE: runRatingsImport,
}

func init() {
	rootCmd.AddCommand(ratingsCmd)
	ratingsCmd.AddCommand(ratingsGetCmd)
	ratingsCmd.AddCommand(ratingsRefreshCmd)
	ratingsCmd.AddCommand(ratingsImportCmd)

	ratingsImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse the file and report the count without installing")
}

func runRatingsGet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	record, ok, err := a.tracker.Rating(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("No community rating for %s\n", args[0])
		return nil
	}
	return output.Output(outputFmt, record)
}

func runRatingsRefresh(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.ratings.Refresh(cmd.Context()) {
		return fmt.Errorf("all rating sources failed")
	}
	fmt.Printf("Loaded %d rated problems.\n", a.ratings.Catalog().Len())
	return nil
}

func runRatingsImport(cmd *cobra.Command, args []string) error {
	if importDryRun {
		catalog, err := ratings.ParseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s holds %d rated problems.\n", args[0], catalog.Len())
		return nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read ratings file: %w", err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.ratings.Install(cmd.Context(), string(data))
	if err != nil {
		return err
	}
	fmt.Printf("Installed %d rated problems from %s.\n", n, args[0])
	return nil
}
