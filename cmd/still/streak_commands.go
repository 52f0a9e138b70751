package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stillapp/still/internal/ui"
	"github.com/stillapp/still/streak"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show current and longest day streaks",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

func init() {
	rootCmd.AddCommand(streakCmd)
}

func runStreak(cmd *cobra.Command, args []string) error {
	gateway, _, err := openGateway(cmd.Context())
	if err != nil {
		return err
	}
	defer gateway.Close()

	records, err := gateway.ListValid()
	if err != nil {
		return err
	}

	now := time.Now()
	fmt.Printf("%s %d day(s)\n", ui.LabelStyle.Render("current streak:"), streak.Current(records, now))
	fmt.Printf("%s %d day(s)\n", ui.LabelStyle.Render("longest streak:"), streak.Longest(records, now.Location()))

	if last, ok := streak.LastMeditationDate(records); ok {
		fmt.Printf("%s %s (%s)\n", ui.LabelStyle.Render("last sat:"),
			ui.FormatDay(last.Local()), ui.FormatTimeAgo(last, now))
	} else {
		fmt.Printf("%s never\n", ui.LabelStyle.Render("last sat:"))
	}
	return nil
}
