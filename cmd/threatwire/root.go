// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure, config, the fetch client, and the saved store

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/threatwire/internal/aggregate"
	"github.com/harper/threatwire/internal/config"
	"github.com/harper/threatwire/internal/fetch"
	"github.com/harper/threatwire/internal/store"
)

var (
	dataDir    string
	cfg        *config.Config
	fetcher    *fetch.Client
	aggregator *aggregate.Aggregator
	savedStore store.Store
)

var rootCmd = &cobra.Command{
	Use:   "threatwire",
	Short: "Cybersecurity news aggregator",
	Long: `threatwire pulls cybersecurity news from a fixed set of sources into a
single deduplicated stream, newest first, and lets you keep a saved list
for offline reading.

Sources are fetched concurrently; one unreachable feed never blocks the
rest. Articles carry a stable id you can use with save, remove, and read.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		fetcher = fetch.NewClient(config.DefaultFetchTimeout, config.Proxies())
		aggregator = aggregate.New(fetcher, config.Sources())

		savedStore, err = store.NewJSONStore(cfg.SavedPath())
		if err != nil {
			return fmt.Errorf("failed to open saved store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if savedStore != nil {
			if err := savedStore.Close(); err != nil {
				return fmt.Errorf("failed to close saved store: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.local/share/threatwire)")
}
