// Package main is the entry point for the messagebard daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/daemon"
	"github.com/jmylchreest/messagebar/internal/display"
	"github.com/jmylchreest/messagebar/internal/theme"
)

const (
	appID   = "io.github.jmylchreest.messagebard"
	appName = "messagebard"
)

var (
	// Build-time variables
	version = "dev"
)

// options are the daemon's command line flags.
type options struct {
	configPath string
	monitor    bool
	headless   bool
	fresh      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config file (default: ~/.config/messagebar/messagebar.toml)")
	flag.BoolVar(&opts.monitor, "monitor", false, "Mirror notifications without claiming org.freedesktop.Notifications (works alongside another notification daemon)")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a display; messages are logged instead of drawn")
	flag.BoolVar(&opts.fresh, "fresh", false, "Do not restore the saved queue")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(appName, "version", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.EnsureDataDir(); err != nil {
		logger.Warn("failed to create data directory", "error", err)
	}

	if opts.headless {
		if err := runHeadless(cfg, opts, logger); err != nil {
			logger.Error("messagebard failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runDisplay(cfg, opts, logger)
}

// runDisplay runs the bar as a layer-shell window on the GTK main loop.
func runDisplay(cfg *config.Config, opts options, logger *slog.Logger) {
	logger.Info("starting messagebard", "version", version)

	app := adw.NewApplication(appID, 0)

	var (
		surface     *display.Surface
		themeLoader *theme.Loader
		rt          *runtime
		running     atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
		case <-ctx.Done():
			return
		}
		display.Post(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	post := func(fn func()) error {
		display.Post(fn)
		return nil
	}

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		var err error
		surface, err = display.NewSurface(&app.Application, cfg, logger)
		if err != nil {
			logger.Error("failed to create surface", "error", err)
			app.Quit()
			return
		}

		themeLoader = theme.NewLoader(display.Post, logger)
		themeLoader.Load(cfg.Display.Theme)
		themeLoader.Apply()

		sched := display.NewScheduler()
		animator := bar.NewFadeAnimator(sched, surface.SetAlpha)
		animator.SetFrameInterval(cfg.Timing.FrameInterval.Duration())

		b := bar.New[daemon.Token](surface, animator, sched, logger)
		surface.OnClick(b.Click)

		rt, err = start(b, post, cfg, opts, logger)
		if err != nil {
			logger.Error("failed to start", "error", err)
			app.Quit()
			return
		}
		rt.onReload = func(newConfig *config.Config) {
			surface.ApplyConfig(newConfig)
			if newConfig.Display.Theme != themeLoader.Current() {
				themeLoader.Load(newConfig.Display.Theme)
			}
			animator.SetFrameInterval(newConfig.Timing.FrameInterval.Duration())
		}

		logger.Info("messagebard ready", "monitor", opts.monitor)

		// Keeps the application alive while the bar is hidden
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if rt != nil {
			rt.daemon.Save()
			rt.stop()
		}
		if themeLoader != nil {
			themeLoader.Stop()
		}
		if surface != nil {
			surface.Close()
		}
		running.Store(false)
	})

	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("messagebard stopped")
}
