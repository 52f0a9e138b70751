package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stillapp/still/internal/ids"
	"github.com/stillapp/still/internal/ui"
	"github.com/stillapp/still/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

var (
	logAll       bool
	logValidOnly bool
)

func init() {
	logCmd.Flags().BoolVar(&logAll, "all", false, "include in-progress sessions")
	logCmd.Flags().BoolVar(&logValidOnly, "valid", false, "only sessions that count toward streaks")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	if logAll && logValidOnly {
		return fmt.Errorf("--all and --valid are mutually exclusive")
	}

	gateway, _, err := openGateway(cmd.Context())
	if err != nil {
		return err
	}
	defer gateway.Close()

	var records []store.Record
	if logValidOnly {
		records, err = gateway.ListValid()
	} else {
		records, err = gateway.List()
	}
	if err != nil {
		return err
	}

	allIDs := make([]string, 0, len(records))
	for _, rec := range records {
		allIDs = append(allIDs, rec.ID)
	}
	short := ids.ShortIDs(allIDs)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		if rec.InProgress() && !logAll {
			continue
		}
		rows = append(rows, logRow(rec, short[rec.ID]))
	}

	if len(rows) == 0 {
		fmt.Println("no sessions recorded")
		return nil
	}

	fmt.Print(ui.FormatTable(
		[]string{"ID", "DATE", "PLANNED", "ACTUAL", "VALID", "PAUSES"},
		rows,
	))
	return nil
}

func logRow(rec store.Record, shortID string) []string {
	valid := "no"
	if rec.Valid {
		valid = "yes"
	}
	actual := ui.FormatMinutes(rec.ActualMinutes)
	if rec.InProgress() {
		valid = "-"
		actual = "(sitting)"
	}
	return []string{
		shortID,
		ui.FormatDay(rec.CreatedAt.Local()),
		fmt.Sprintf("%dm", rec.PlannedMinutes),
		actual,
		valid,
		fmt.Sprintf("%d", rec.PauseCount),
	}
}
