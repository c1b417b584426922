package main

import (
	"fmt"
	"log/slog"

	"github.com/jmylchreest/messagebar/internal/audio"
	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/daemon"
	"github.com/jmylchreest/messagebar/internal/dbus"
)

// runtime holds the components shared by the display and headless modes.
type runtime struct {
	server        *dbus.NotificationServer
	monitor       *dbus.Monitor
	daemon        *daemon.Daemon
	chime         *audio.Chime
	configWatcher *daemon.ConfigWatcher
	post          func(fn func()) error
	logger        *slog.Logger

	// onReload applies mode-specific settings of a reloaded config on the loop.
	onReload func(cfg *config.Config)
}

// start wires b to D-Bus, audio, persistence and config reload. b must
// already be driven by the loop behind post.
func start(b *bar.Bar[daemon.Token], post func(fn func()) error, cfg *config.Config, opts options, logger *slog.Logger) (*runtime, error) {
	rt := &runtime{post: post, logger: logger}

	b.SetTiming(cfg.Timing.HideDelay.Duration(), cfg.Timing.FadeDuration.Duration())

	rt.chime = audio.NewChime(cfg, logger)
	rt.chime.Start()

	notifier := daemon.NewInternalNotifier(logger)
	notifier.SetEnabled(cfg.Notices.Enabled)

	rt.server = dbus.NewNotificationServer(logger)
	rt.server.SetServerInfo(dbus.ServerInfo{
		Name:        appName,
		Vendor:      "messagebar",
		Version:     version,
		SpecVersion: "1.2",
	})
	rt.server.SetClaimNotifications(!opts.monitor)

	rt.daemon = daemon.New(b, daemon.Options{
		Server:    rt.server,
		Post:      post,
		Chime:     rt.chime,
		Notifier:  notifier,
		StatePath: cfg.StatePath(),
		Logger:    logger,
	})
	rt.server.SetNotifyHandler(rt.daemon.HandleNotification)
	rt.server.SetCloseHandler(rt.daemon.HandleClose)
	rt.server.SetController(rt.daemon.Controller())
	notifier.SetNotifyHandler(rt.server.NotifyInternal)

	if err := rt.server.Start(); err != nil {
		rt.chime.Stop()
		return nil, fmt.Errorf("failed to start D-Bus server: %w", err)
	}

	if opts.monitor || !rt.server.OwnsNotifications() {
		rt.monitor = dbus.NewMonitor(logger)
		rt.monitor.SetNotifyHandler(rt.daemon.HandleNotification)
		if err := rt.monitor.Start(); err != nil {
			logger.Warn("failed to start notification monitor", "error", err)
			rt.monitor = nil
		}
	}

	if cfg.State.RestoreOnStart && !opts.fresh {
		err := post(func() {
			if _, err := rt.daemon.Restore(); err != nil {
				logger.Warn("failed to restore state", "error", err)
			}
		})
		if err != nil {
			logger.Warn("failed to schedule restore", "error", err)
		}
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	rt.configWatcher = daemon.NewConfigWatcher(configPath, logger)
	rt.configWatcher.SetReloadCallback(func(newConfig *config.Config) {
		rt.chime.UpdateConfig(newConfig)
		_ = post(func() {
			rt.daemon.ApplyConfig(newConfig)
			if rt.onReload != nil {
				rt.onReload(newConfig)
			}
			notifier.NotifyConfigReloaded()
		})
	})
	rt.configWatcher.SetErrorCallback(notifier.NotifyConfigError)
	if err := rt.configWatcher.Start(cfg); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
	}

	return rt, nil
}

// stop shuts the components down. It does not touch the bar.
func (rt *runtime) stop() {
	rt.configWatcher.Stop()
	if rt.monitor != nil {
		if err := rt.monitor.Stop(); err != nil {
			rt.logger.Warn("error stopping monitor", "error", err)
		}
	}
	if err := rt.server.Stop(); err != nil {
		rt.logger.Warn("error stopping D-Bus server", "error", err)
	}
	rt.chime.Stop()
}
