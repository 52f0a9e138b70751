package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard an unfinished session left behind by a crash",
	Args:  cobra.NoArgs,
	RunE:  runCancel,
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}

func runCancel(cmd *cobra.Command, args []string) error {
	gateway, _, err := openGateway(cmd.Context())
	if err != nil {
		return err
	}
	defer gateway.Close()

	rec, ok, err := gateway.Active()
	if err != nil {
		return fmt.Errorf("find active session: %w", err)
	}
	if !ok {
		fmt.Println("no unfinished session to cancel")
		return nil
	}
	if err := gateway.Delete(rec.ID); err != nil {
		return fmt.Errorf("discard session %s: %w", rec.ID, err)
	}
	fmt.Printf("discarded unfinished session %s\n", rec.ID)
	return nil
}
