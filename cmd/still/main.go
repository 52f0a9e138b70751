// Package main implements the still CLI, a meditation timer.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "still",
	Short: "still - a no-nonsense meditation timer",
	Long: `still runs meditation countdowns, records completed sessions, and
tracks day streaks. Sessions are synced across devices when a sync
account is available and kept on this device otherwise.`,
	SilenceUsage: true,
}
