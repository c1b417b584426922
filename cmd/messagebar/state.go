package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/store"
)

var stateOpts struct {
	format  string
	summary bool
	demo    bool
	reset   bool
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the saved message queue",
	Long: `Print the saved bar state: the message that was visible and the queue
behind it. Tokens are printed as stored.

Examples:
  # JSON (default)
  messagebar state

  # YAML
  messagebar state --format yaml

  # One-line summary
  messagebar state --summary

  # Forget the demo session
  messagebar state --demo --reset`,
	Args: cobra.NoArgs,
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)

	stateCmd.Flags().StringVarP(&stateOpts.format, "format", "f", "json",
		"Output format: json, yaml")
	stateCmd.Flags().BoolVarP(&stateOpts.summary, "summary", "s", false,
		"Print a one-line summary instead of the state")
	stateCmd.Flags().BoolVar(&stateOpts.demo, "demo", false,
		"Use the demo session instead of the daemon state")
	stateCmd.Flags().BoolVar(&stateOpts.reset, "reset", false,
		"Delete the state file")
}

func runState(cmd *cobra.Command, args []string) error {
	path := statePath()
	if stateOpts.demo {
		path = config.DemoStatePath()
	}

	if stateOpts.reset {
		return removeState(path)
	}

	snap, err := store.Load[json.RawMessage](path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if stateOpts.summary {
		_, err := fmt.Fprintln(out, summarize(snap, time.Now()))
		return err
	}

	data, err := encodeState(snap.State, stateOpts.format)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// encodeState renders rec with the codec for format.
func encodeState(rec bar.StateRecord[json.RawMessage], format string) ([]byte, error) {
	var codec bar.Codec[json.RawMessage]
	switch format {
	case "json", "":
		codec = bar.JSONCodec[json.RawMessage]{}
	case "yaml", "yml":
		codec = bar.YAMLCodec[json.RawMessage]{}
	default:
		return nil, fmt.Errorf("unknown format: %s (use json or yaml)", format)
	}

	data, err := codec.Encode(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// summarize describes a snapshot in one line.
func summarize(snap *store.Snapshot[json.RawMessage], now time.Time) string {
	if snap.SavedAt == 0 {
		return "no saved state"
	}

	age := humanize.RelTime(snap.SavedTime(), now, "ago", "from now")
	by := snap.SavedBy
	if by == "" {
		by = "unknown"
	}

	if snap.State.Empty() {
		return fmt.Sprintf("empty, saved %s by %s", age, by)
	}
	return fmt.Sprintf("%s, saved %s by %s: %q",
		english.Plural(snap.State.Len(), "message", "messages"), age, by, snap.State.Current.Text())
}

// removeState deletes a state file; a missing file is not an error.
func removeState(path string) error {
	if err := store.Remove(path); err != nil {
		return fmt.Errorf("failed to remove state: %w", err)
	}
	logger.Info("removed state", "path", path)
	return nil
}
