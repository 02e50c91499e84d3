// ABOUTME: Saved command listing persisted articles
// ABOUTME: Shows the saved list most recently saved first with timestamps

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/threatwire/internal/config"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved articles",
	Long:  "List the articles saved for offline viewing, most recently saved first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := savedStore.List()
		if err != nil {
			return fmt.Errorf("failed to list saved articles: %w", err)
		}

		if len(saved) == 0 {
			fmt.Println("No saved articles. Save one with 'threatwire save <id-or-url>'")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		for _, sa := range saved {
			fmt.Printf("%s\n", bold(sa.Title))
			fmt.Printf("  %s %s %s\n", faint(sa.Source), faint("|"), faint("saved "+sa.SavedAt.Local().Format(config.DateFormatShort)))
			fmt.Printf("  %s\n", cyan(sa.URL))
			fmt.Printf("  %s\n\n", faint(sa.ID))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(savedCmd)
}
