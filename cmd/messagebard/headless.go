package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/daemon"
	"github.com/jmylchreest/messagebar/internal/loop"
)

// logSurface is a bar.Surface that logs what a display would draw.
type logSurface struct {
	logger  *slog.Logger
	text    string
	label   string
	icon    bar.Icon
	visible bool
}

func (s *logSurface) SetVisible(visible bool) {
	if visible == s.visible {
		return
	}
	s.visible = visible
	if !visible {
		s.logger.Info("bar hidden")
	}
}

func (s *logSurface) SetText(text string) {
	s.text = text
}

func (s *logSurface) SetTextAlignment(bar.Alignment) {}

func (s *logSurface) SetButtonVisible(visible bool) {
	if visible {
		s.logger.Info("bar showing", "text", s.text, "action", s.label, "icon", s.icon)
	} else {
		s.logger.Info("bar showing", "text", s.text)
	}
}

func (s *logSurface) SetButton(label string, icon bar.Icon) {
	s.label = label
	s.icon = icon
}

// runHeadless runs the bar on a plain event loop with a logging surface.
// Messages can still be clicked through the control interface.
func runHeadless(cfg *config.Config, opts options, logger *slog.Logger) error {
	logger.Info("starting messagebard (headless)", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loop.New(logger)
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- l.Run(context.Background())
	}()

	animator := bar.NewFadeAnimator(l, nil)
	animator.SetFrameInterval(cfg.Timing.FrameInterval.Duration())
	b := bar.New[daemon.Token](&logSurface{logger: logger}, animator, l, logger)

	rt, err := start(b, l.Post, cfg, opts, logger)
	if err != nil {
		l.Stop()
		return err
	}
	logger.Info("messagebard ready", "monitor", opts.monitor)

	select {
	case <-ctx.Done():
		logger.Info("received signal, shutting down")
	case err := <-loopDone:
		rt.stop()
		return err
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.Do(saveCtx, rt.daemon.Save); err != nil && !errors.Is(err, loop.ErrStopped) {
		logger.Warn("failed to save state on shutdown", "error", err)
	}

	rt.stop()
	l.Stop()
	logger.Info("messagebard stopped")
	return nil
}
