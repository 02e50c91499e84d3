// ABOUTME: Fetch command to display the aggregated article stream
// ABOUTME: Supports period filtering and result limits with colored output

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/threatwire/internal/config"
	"github.com/harper/threatwire/internal/models"
	"github.com/harper/threatwire/internal/timeutil"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the aggregated news stream",
	Long: `Fetch articles from all configured sources concurrently and print the
merged stream, deduplicated and sorted newest first.

A source that is unreachable contributes nothing; the rest still load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		limit, _ := cmd.Flags().GetInt("limit")

		articles := aggregator.FetchAll(cmd.Context())

		if period != "" {
			cutoff, ok := timeutil.ParsePeriod(period)
			if !ok {
				return fmt.Errorf("unknown period %q (use today, yesterday, week, or month)", period)
			}
			filtered := articles[:0]
			for _, a := range articles {
				if timeutil.InPeriod(a.PublishedAt, cutoff) {
					filtered = append(filtered, a)
				}
			}
			articles = filtered
		}

		if limit > 0 && len(articles) > limit {
			articles = articles[:limit]
		}

		if len(articles) == 0 {
			fmt.Println("No articles. All sources may be unreachable; try again later.")
			return nil
		}

		savedIDs, err := savedStore.ContainsIDs()
		if err != nil {
			return fmt.Errorf("failed to read saved ids: %w", err)
		}

		for _, a := range articles {
			printArticle(a, savedIDs[a.ID])
		}

		faint := color.New(color.Faint).SprintFunc()
		fmt.Printf("%s\n", faint(fmt.Sprintf("%d article(s) from %d source(s)", len(articles), len(aggregator.SourceNames()))))
		return nil
	},
}

// printArticle renders one article as a short colored block.
func printArticle(a models.Article, saved bool) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	marker := " "
	if saved {
		marker = green("*")
	}

	published := a.Published
	if published == "" {
		published = "unknown date"
	}

	fmt.Printf("%s %s\n", marker, bold(a.Title))
	fmt.Printf("  %s %s %s\n", faint(a.Source), faint("|"), faint(published))
	fmt.Printf("  %s\n", cyan(a.URL))
	fmt.Printf("  %s\n\n", faint(a.ID))
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringP("period", "p", "", "only show articles from: today, yesterday, week, month")
	fetchCmd.Flags().IntP("limit", "n", config.DefaultListLimit, "maximum number of articles to show (0 = all)")
}
