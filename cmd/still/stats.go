package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stillapp/still/internal/markdown"
	"github.com/stillapp/still/internal/ui"
	"github.com/stillapp/still/streak"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a practice report",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	gateway, _, err := openGateway(cmd.Context())
	if err != nil {
		return err
	}
	defer gateway.Close()

	records, err := gateway.List()
	if err != nil {
		return err
	}

	now := time.Now()
	summary := streak.Summarize(records)

	valid := records[:0:0]
	for _, rec := range records {
		if rec.Valid && !rec.InProgress() {
			valid = append(valid, rec)
		}
	}

	var report strings.Builder
	report.WriteString("# Practice report\n\n")
	fmt.Fprintf(&report, "- **Sessions**: %d (%d counted, %d too short)\n",
		summary.TotalSessions, summary.ValidSessions, summary.TotalSessions-summary.ValidSessions)
	fmt.Fprintf(&report, "- **Time sat**: %s\n",
		ui.FormatDurationShort(time.Duration(summary.TotalMinutes*float64(time.Minute))))
	fmt.Fprintf(&report, "- **Paused sessions**: %d\n", summary.PausedSessions)
	fmt.Fprintf(&report, "- **Current streak**: %d day(s)\n", streak.Current(valid, now))
	fmt.Fprintf(&report, "- **Longest streak**: %d day(s)\n", streak.Longest(valid, now.Location()))
	if last, ok := streak.LastMeditationDate(valid); ok {
		fmt.Fprintf(&report, "- **Last sat**: %s\n", ui.FormatDay(last.Local()))
	}

	fmt.Println(markdown.Render(reportWidth(), report.String()))
	return nil
}

func reportWidth() int {
	if !ui.StdoutIsTerminal() {
		return 80
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 20 {
		return 80
	}
	return width
}
