// ABOUTME: Sources command listing the configured feed names
// ABOUTME: The source list is fixed configuration, not runtime input

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured news sources",
	Long:  "List the configured source names in aggregation order. The list is fixed; sources cannot be added at runtime.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range aggregator.SourceNames() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
