package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carebridge/cms-proxy/pkg/snapshot"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cache statistics",
	Long:  `Report whether a snapshot exists, how many entries it holds, and when it was last refreshed. Reads only the local cache file; never talks upstream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stats need no API token, so skip full config validation.
		cachePath := v.GetString("cache_path")
		if cachePath == "" {
			cachePath = snapshot.DefaultPath
		}

		stats := snapshot.NewStore(cachePath).Stats()
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
