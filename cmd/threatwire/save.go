// ABOUTME: Save command persisting an article from the current stream
// ABOUTME: Accepts an article id or URL; saving twice is a no-op

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <id-or-url>",
	Short: "Save an article for offline viewing",
	Long: `Fetch the current stream, locate the article by id or URL, and add it to
the saved list. Saving an already-saved article does nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := args[0]

		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		articles := aggregator.FetchAll(cmd.Context())
		for _, a := range articles {
			if a.ID != ref && !strings.EqualFold(a.URL, ref) {
				continue
			}
			saved, err := savedStore.Save(a)
			if err != nil {
				return fmt.Errorf("failed to save article: %w", err)
			}
			if saved {
				fmt.Printf("%s saved %q\n", green("v"), a.Title)
			} else {
				fmt.Printf("%s already saved %q\n", faint("-"), a.Title)
			}
			return nil
		}

		return fmt.Errorf("no article matching %q in the current stream", ref)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
