// ABOUTME: Remove command deleting an article from the saved list
// ABOUTME: Removing an unknown id is reported, not an error exit

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "unsave"},
	Short:   "Remove an article from the saved list",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		removed, err := savedStore.Remove(id)
		if err != nil {
			return fmt.Errorf("failed to remove saved article: %w", err)
		}

		if removed {
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s removed %s\n", green("v"), id)
		} else {
			faint := color.New(color.Faint).SprintFunc()
			fmt.Printf("%s no saved article with id %s\n", faint("-"), id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
