package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/messagebar/internal/dbus"
	"github.com/jmylchreest/messagebar/internal/store"
)

var statusOpts struct {
	watch   bool
	offline bool
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the bar state in Waybar's custom module JSON format.

The state is read from the running messagebard. When the daemon is not
running, the saved state file is reported instead with class "saved".

This is designed to be used with Waybar's custom module:

  "custom/messagebar": {
    "exec": "messagebar status --watch",
    "return-type": "json",
    "on-click": "messagebar click",
    "on-click-right": "messagebar clear"
  }

The output includes:
  - text: The visible message, empty when hidden
  - alt/class: hidden, showing, hiding, saved or error
  - tooltip: Number of queued messages`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&statusOpts.watch, "watch", "w", false,
		"Print a new line each time the state file changes")
	statusCmd.Flags().BoolVar(&statusOpts.offline, "offline", false,
		"Read the state file without contacting the daemon")
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if err := outputStatus(out, currentStatus()); err != nil {
		return err
	}
	if !statusOpts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	changed := make(chan struct{}, 1)
	fw, err := store.NewFileWatcher(statePath(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to watch state file: %w", err)
	}
	if err := fw.Start(); err != nil {
		return fmt.Errorf("failed to watch state file: %w", err)
	}
	defer func() { _ = fw.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if err := outputStatus(out, currentStatus()); err != nil {
				return err
			}
		}
	}
}

// currentStatus asks the daemon, falling back to the state file.
func currentStatus() WaybarStatus {
	if !statusOpts.offline {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if c, err := dbus.Dial(ctx); err == nil {
			st, err := c.Status(ctx)
			if err == nil {
				return statusFromDaemon(st)
			}
			logger.Debug("status call failed", "error", err)
		} else {
			logger.Debug("daemon unavailable", "error", err)
		}
	}

	snap, err := store.Load[json.RawMessage](statePath())
	if err != nil {
		logger.Warn("failed to read state file", "error", err)
		return WaybarStatus{Alt: "error", Class: "error", Tooltip: err.Error()}
	}
	return statusFromSnapshot(snap, time.Now())
}

// statusFromDaemon creates a WaybarStatus from the live bar state.
func statusFromDaemon(st dbus.Status) WaybarStatus {
	return WaybarStatus{
		Text:    st.Current,
		Alt:     st.State,
		Class:   st.State,
		Tooltip: queuedTooltip(int(st.Queued)),
	}
}

// statusFromSnapshot creates a WaybarStatus from a saved state.
func statusFromSnapshot(snap *store.Snapshot[json.RawMessage], now time.Time) WaybarStatus {
	if snap.State.Empty() {
		return WaybarStatus{Alt: "hidden", Class: "hidden", Tooltip: "No saved messages"}
	}

	tooltip := queuedTooltip(len(snap.State.Queue))
	if snap.SavedAt > 0 {
		tooltip += "\nSaved " + humanize.RelTime(snap.SavedTime(), now, "ago", "from now")
	}

	return WaybarStatus{
		Text:    snap.State.Current.Text(),
		Alt:     "saved",
		Class:   "saved",
		Tooltip: tooltip,
	}
}

func queuedTooltip(queued int) string {
	switch queued {
	case 0:
		return "Nothing queued"
	case 1:
		return "1 message queued"
	default:
		return fmt.Sprintf("%d messages queued", queued)
	}
}

// outputStatus writes the status as one line of JSON.
func outputStatus(w io.Writer, status WaybarStatus) error {
	return json.NewEncoder(w).Encode(status)
}
