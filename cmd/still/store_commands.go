package main

import (
	"fmt"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/stillapp/still/internal/ui"
	"github.com/stillapp/still/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and refresh session storage",
}

var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which storage tier is active",
	Args:  cobra.NoArgs,
	RunE:  runStoreStatus,
}

var storeRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-probe sync availability and reselect the storage tier",
	Args:  cobra.NoArgs,
	RunE:  runStoreRefresh,
}

func init() {
	storeCmd.AddCommand(storeStatusCmd, storeRefreshCmd)
	rootCmd.AddCommand(storeCmd)
}

func runStoreStatus(cmd *cobra.Command, args []string) error {
	gateway, _, err := openGateway(cmd.Context())
	if err != nil {
		return err
	}
	defer gateway.Close()

	printStoreStatus(gateway.Status())
	return nil
}

func runStoreRefresh(cmd *cobra.Command, args []string) error {
	gateway, _, err := openGateway(cmd.Context())
	if err != nil {
		return err
	}
	defer gateway.Close()

	printStoreStatus(gateway.RefreshStatus(cmd.Context()))
	return nil
}

func printStoreStatus(status store.Status) {
	mode := string(status.Mode)
	switch status.Mode {
	case store.ModeSynced:
		mode = ui.OKStyle.Render(mode)
	case store.ModeLocalOnly:
		mode = ui.WarnStyle.Render(mode)
	default:
		mode = ui.ErrorStyle.Render(mode)
	}

	fmt.Printf("%s %s\n", ui.LabelStyle.Render("mode:"), mode)
	fmt.Println(wordwrap.String(status.Description(), 72))
}
