package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stillapp/still/internal/ui"
	"github.com/stillapp/still/session"
	"github.com/stillapp/still/store"
	"github.com/stillapp/still/streak"
	"github.com/stillapp/still/timer"
)

var sitCmd = &cobra.Command{
	Use:   "sit [minutes]",
	Short: "Start a meditation session",
	Long: `Start a countdown for the given number of minutes (1-120) and record
the session when it ends. While sitting: p pauses, r resumes, q ends
early, x discards the attempt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSit,
}

var sitMinutes int

func init() {
	sitCmd.Flags().IntVar(&sitMinutes, "minutes", 0, "session length in minutes (alternative to the positional argument)")
	addMinutesFlagAliases(sitCmd)
	rootCmd.AddCommand(sitCmd)
}

func runSit(cmd *cobra.Command, args []string) error {
	gateway, cfg, err := openGateway(cmd.Context())
	if err != nil {
		return err
	}
	defer gateway.Close()

	minutes := cfg.Session.DefaultMinutes
	switch {
	case cmd.Flags().Changed("minutes"):
		if len(args) == 1 {
			return fmt.Errorf("cannot give minutes both as an argument and as --minutes")
		}
		minutes = sitMinutes
	case len(args) == 1:
		minutes, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", args[0])
		}
	}

	mgr, stale, err := session.Open(timer.New(), gateway)
	if err != nil {
		return err
	}
	if stale != "" {
		fmt.Fprintf(os.Stderr, "discarded interrupted session %s\n", stale)
	}

	if status := gateway.Status(); status.Mode != store.ModeSynced {
		fmt.Fprintln(os.Stderr, ui.WarnStyle.Render(status.Description()))
	}

	if _, err := mgr.Start(minutes); err != nil {
		return err
	}

	var discarded bool
	if ui.StdinIsTerminal() && ui.StdoutIsTerminal() {
		discarded, err = sitInteractive(mgr)
	} else {
		err = sitPlain(mgr)
	}
	if err != nil {
		return err
	}

	if discarded {
		if err := mgr.Cancel(); err != nil {
			return err
		}
		fmt.Println("session discarded")
		return nil
	}

	rec, err := mgr.End()
	if err != nil {
		return err
	}
	printSummary(gateway, rec)
	return nil
}

// sitInteractive runs the countdown with raw-terminal key control. It
// returns once the countdown completes or the sitter ends it, reporting
// whether the attempt should be discarded.
func sitInteractive(mgr *session.Manager) (discarded bool, err error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return false, sitPlain(mgr)
	}
	defer func() {
		term.Restore(fd, oldState)
		fmt.Println()
	}()

	keys := make(chan byte, 8)
	go readKeys(keys)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case key := <-keys:
			switch key {
			case 'p':
				reportControlError("pause", mgr.Pause())
			case 'r', ' ':
				reportControlError("resume", mgr.Resume())
			case 'q', 0x03: // ctrl-c
				return false, nil
			case 'x':
				return true, nil
			}
		case <-ticker.C:
			snap := mgr.Snapshot()
			renderCountdown(snap)
			if snap.Phase == timer.PhaseCompleted {
				return false, nil
			}
		}
	}
}

// reportControlError surfaces a failure to record a pause or resume on
// the session record. The countdown itself keeps running.
func reportControlError(action string, err error) {
	if line := controlErrorLine(action, err); line != "" {
		fmt.Fprint(os.Stderr, "\r\n"+line+"\r\n")
	}
}

func controlErrorLine(action string, err error) string {
	if err == nil {
		return ""
	}
	return ui.WarnStyle.Render(fmt.Sprintf("could not record %s: %v", action, err))
}

func readKeys(keys chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n > 0 {
			keys <- buf[0]
		}
	}
}

func renderCountdown(snap timer.Snapshot) {
	var hint string
	switch snap.Phase {
	case timer.PhasePaused:
		hint = ui.PausedStyle.Render("paused  r=resume q=finish x=discard")
	case timer.PhaseCompleted:
		hint = ui.OKStyle.Render("done")
	default:
		hint = ui.PhaseStyle.Render("p=pause q=finish x=discard")
	}

	fmt.Printf("\r\x1b[K%s  %s  %s",
		ui.ClockStyle.Render(ui.FormatClock(snap.Remaining)),
		ui.ProgressBar(snap.Progress()),
		hint,
	)
}

// sitPlain runs the countdown without terminal control: it waits for
// natural completion or an interrupt signal, then ends the session.
func sitPlain(mgr *session.Manager) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			return nil
		case <-ticker.C:
			if mgr.Snapshot().Phase == timer.PhaseCompleted {
				return nil
			}
		}
	}
}

func printSummary(gateway *store.Gateway, rec session.Record) {
	fmt.Printf("sat %s of %dm planned\n", ui.FormatMinutes(rec.ActualMinutes), rec.PlannedMinutes)
	if rec.WasPaused {
		fmt.Printf("paused %d time(s)\n", rec.PauseCount)
	}
	if !rec.Valid {
		fmt.Println(ui.WarnStyle.Render(
			fmt.Sprintf("too short to count toward your streak (minimum %ds)", store.MinValidSeconds)))
		return
	}

	records, err := gateway.ListValid()
	if err != nil {
		return
	}
	current := streak.Current(records, time.Now())
	fmt.Printf("%s %d day(s)\n", ui.LabelStyle.Render("current streak:"), current)
}
