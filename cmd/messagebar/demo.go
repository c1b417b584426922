package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/tui"
)

var demoOpts struct {
	fresh bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive message bar demo",
	Long: `Run a message bar in the terminal.

Each key press shows a numbered sample message; messages shown while one is
visible are queued. Messages with a button report their number when clicked.
The queue and counter are saved on quit and restored on the next run.

Key bindings:
  s           Show a text message
  a           Show a message with a button
  enter, c    Click the button
  x           Clear the bar and the queue
  ?           Show help
  q           Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoOpts.fresh, "fresh", false,
		"Start without restoring the previous demo session")
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := config.EnsureDataDir(); err != nil {
		logger.Warn("failed to create data directory", "error", err)
	}

	path := config.DemoStatePath()
	if demoOpts.fresh {
		if err := removeState(path); err != nil {
			return err
		}
	}

	return tui.Run(tui.Options{
		Config:    cfg,
		StatePath: path,
		Logger:    logger,
	})
}
