package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the coverage snapshot from the upstream CMS",
	Long: `Fetch the coverage collections, resolve every reference field, and
replace the persisted snapshot atomically. On any upstream failure the
previous snapshot is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := buildService(cfg)
		if err != nil {
			return err
		}

		summary, err := svc.Refresh(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("refreshed %d entries, %d states in %s (snapshot %s)\n",
			summary.EntryCount, summary.StateCount,
			summary.Duration.Round(time.Millisecond), summary.LastUpdated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
