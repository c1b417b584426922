package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/messagebar/internal/dbus"
)

const controlTimeout = 5 * time.Second

var showOpts struct {
	action string
	icon   string
}

var showCmd = &cobra.Command{
	Use:   "show TEXT",
	Short: "Show a message on the bar",
	Long: `Show a message on the running messagebard bar. If a message is already
visible the new one is queued behind it.

Examples:
  # Plain message
  messagebar show "Build finished"

  # Message with a button
  messagebar show "Message deleted" --action Undo --icon edit-undo`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Hide the visible message and drop the queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *dbus.Client) error {
			return c.Clear(ctx)
		})
	},
}

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Press the button of the visible message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *dbus.Client) error {
			return c.Click(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd, clearCmd, clickCmd)

	showCmd.Flags().StringVarP(&showOpts.action, "action", "a", "",
		"Action button label")
	showCmd.Flags().StringVarP(&showOpts.icon, "icon", "i", "",
		"Action button icon name or path")
}

func runShow(cmd *cobra.Command, args []string) error {
	if showOpts.icon != "" && showOpts.action == "" {
		logger.Warn("--icon has no effect without --action")
	}

	return withClient(func(ctx context.Context, c *dbus.Client) error {
		id, err := c.Show(ctx, args[0], showOpts.action, showOpts.icon)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	})
}

// withClient dials the running daemon and runs fn with a bounded context.
func withClient(fn func(ctx context.Context, c *dbus.Client) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), controlTimeout)
	defer cancel()

	c, err := dbus.Dial(ctx)
	if err != nil {
		if errors.Is(err, dbus.ErrNotRunning) {
			return fmt.Errorf("%w (start it with messagebard)", err)
		}
		return err
	}
	return fn(ctx, c)
}
