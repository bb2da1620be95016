package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/leetboost/internal/problem"
	"github.com/vijay-prabhu/leetboost/internal/profile"
	"github.com/vijay-prabhu/leetboost/internal/ratings"
	"github.com/vijay-prabhu/leetboost/internal/tracker"
)

// barWidth is the longest histogram bar in characters
const barWidth = 30

// TagList is a plain list of tags, one per row
type TagList []string

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *tracker.ProfileReport:
		return profileReport(w, v)
	case *tracker.ProblemReport:
		return problemReport(w, v)
	case []problem.Candidate:
		return candidatesTable(w, v, "No recommendations found.")
	case ratings.Record:
		return ratingDetail(w, v)
	case []profile.TagCount:
		return tagCountsChart(w, v)
	case TagList:
		return tagList(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func profileReport(w io.Writer, r *tracker.ProfileReport) error {
	fmt.Fprintf(w, "User:        %s (%s)\n", r.Username, r.Mode)
	if r.Note != "" {
		fmt.Fprintf(w, "Note:        %s\n", r.Note)
	}
	fmt.Fprintf(w, "Solved:      %d (%d rated)\n", r.SolvedCount, r.RatedCount)
	fmt.Fprintf(w, "Tagged:      %.0f%%\n", r.TagCoverage*100)
	if r.TargetRating > 0 {
		fmt.Fprintf(w, "Target:      %d\n", r.TargetRating)
	} else {
		fmt.Fprintln(w, "Target:      n/a")
	}
	fmt.Fprintf(w, "Focus:       %s (%s)\n", joinOrNone(r.FocusTags), r.FocusSource)
	if r.FocusSource != "auto" {
		fmt.Fprintf(w, "Suggested:   %s\n", joinOrNone(r.AutoFocus))
	}

	if len(r.Bands) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rating distribution:")
		if err := bandsChart(w, r.Bands); err != nil {
			return err
		}
	}

	if len(r.TagCounts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top tags:")
		if err := tagCountsChart(w, r.TagCounts); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recommended:")
	return candidatesTable(w, r.Recommendations, "No recommendations for the current focus.")
}

func problemReport(w io.Writer, r *tracker.ProblemReport) error {
	title := r.Title
	if title == "" {
		title = r.Slug
	}
	fmt.Fprintf(w, "Problem:     %s\n", title)
	fmt.Fprintf(w, "URL:         %s\n", problem.Candidate{Slug: r.Slug}.URL())
	if r.Rated {
		fmt.Fprintf(w, "Rating:      %d\n", r.Rating)
	} else {
		fmt.Fprintln(w, "Rating:      unrated")
	}
	if r.Difficulty != "" {
		fmt.Fprintf(w, "Difficulty:  %s\n", r.Difficulty)
	}
	fmt.Fprintf(w, "Tags:        %s\n", joinOrNone(r.Tags))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Similar:")
	return candidatesTable(w, r.Similar, "No similar problems found.")
}

func candidatesTable(w io.Writer, candidates []problem.Candidate, empty string) error {
	if len(candidates) == 0 {
		fmt.Fprintln(w, empty)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Rating", "Fit", "Title", "URL")
	for _, c := range candidates {
		if err := table.Append([]string{strconv.Itoa(c.Rating), c.Fit, truncate(c.Title, 50), c.URL()}); err != nil {
			return err
		}
	}
	return table.Render()
}

func ratingDetail(w io.Writer, r ratings.Record) error {
	fmt.Fprintf(w, "Problem:     %s\n", r.Title)
	fmt.Fprintf(w, "Slug:        %s\n", r.Slug)
	fmt.Fprintf(w, "Rating:      %d\n", r.Rating)
	return nil
}

func bandsChart(w io.Writer, bands []profile.Band) error {
	max := 0
	for _, b := range bands {
		if b.Count > max {
			max = b.Count
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header("Band", "Solved", "")
	for _, b := range bands {
		if err := table.Append([]string{b.Label(), strconv.Itoa(b.Count), bar(b.Count, max)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func tagCountsChart(w io.Writer, counts []profile.TagCount) error {
	if len(counts) == 0 {
		fmt.Fprintln(w, "No tags found.")
		return nil
	}
	max := counts[0].Count
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header("Tag", "Solved", "")
	for _, c := range counts {
		if err := table.Append([]string{c.Tag, strconv.Itoa(c.Count), bar(c.Count, max)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func tagList(w io.Writer, tags TagList) error {
	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags.")
		return nil
	}
	for _, t := range tags {
		fmt.Fprintln(w, t)
	}
	return nil
}

// bar renders n as a bar scaled against max
func bar(n, max int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	width := n * barWidth / max
	if width < 1 {
		width = 1
	}
	return strings.Repeat("#", width)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
