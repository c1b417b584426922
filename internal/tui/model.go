package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/store"
)

// DemoToken is the token carried by messages the demo shows with a button.
type DemoToken struct {
	Count int `json:"count" yaml:"count"`
}

const (
	demoSource    = "demo"
	countMetaKey  = "count"
	buttonLabel   = "Button!"
	buttonIcon    = bar.Icon("edit-undo")
	defaultWidth  = 60
	statusTimeout = 3 * time.Second
)

// demoState is shared between the Model copies Bubble Tea passes around and
// the bar listeners.
type demoState struct {
	count   int
	clicked string
}

// Model is the demo's Bubble Tea model.
type Model struct {
	bar     *bar.Bar[DemoToken]
	sched   *Scheduler
	surface *termSurface
	state   *demoState
	logger  *slog.Logger

	statePath string
	keys      KeyMap
	help      help.Model
	showHelp  bool

	statusMsg string
	statusErr bool
	width     int
}

// Options configures the demo.
type Options struct {
	Config    *config.Config
	StatePath string // Snapshot to restore from and save to (empty = no persistence)
	Logger    *slog.Logger
}

// New creates the demo model and restores any saved session.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sched := NewScheduler()
	surface := newTermSurface()
	animator := bar.NewFadeAnimator(sched, surface.SetAlpha)
	animator.SetFrameInterval(cfg.Timing.FrameInterval.Duration())

	b := bar.New[DemoToken](surface, animator, sched, logger)
	b.SetTiming(cfg.Timing.HideDelay.Duration(), cfg.Timing.FadeDuration.Duration())

	state := &demoState{}
	b.SetClickListener(func(token DemoToken) {
		state.clicked = fmt.Sprintf("You clicked message #%d", token.Count)
	})

	m := Model{
		bar:       b,
		sched:     sched,
		surface:   surface,
		state:     state,
		logger:    logger,
		statePath: opts.StatePath,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
	}
	m.restore()

	return m
}

// restore loads the saved session, if any.
func (m *Model) restore() {
	if m.statePath == "" {
		return
	}

	snap, err := store.Load[DemoToken](m.statePath)
	if err != nil {
		m.logger.Warn("failed to restore demo state", "path", m.statePath, "error", err)
		m.statusMsg = "Restore failed: " + err.Error()
		m.statusErr = true
		return
	}

	if n, err := strconv.Atoi(snap.Meta[countMetaKey]); err == nil {
		m.state.count = n
	}
	m.bar.RestoreState(snap.State)
}

// save writes the session to the state path.
func (m Model) save() error {
	if m.statePath == "" {
		return nil
	}

	snap := store.NewSnapshot(m.bar.SaveState(), demoSource)
	snap.Meta = map[string]string{countMetaKey: strconv.Itoa(m.state.count)}
	return store.Save(m.statePath, snap)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sched.Cmds()...)
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var next tea.Model
		next, cmd = m.handleKey(msg)
		m = next.(Model)

	case tea.WindowSizeMsg:
		m.width = min(msg.Width-2, 2*defaultWidth)
		m.help.Width = msg.Width

	case timerMsg:
		m.sched.Fire(msg.id)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		cmd = tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
	}

	return m, m.withTimers(cmd)
}

// withTimers batches cmd with the ticks for any newly scheduled callbacks.
func (m Model) withTimers(cmd tea.Cmd) tea.Cmd {
	cmds := m.sched.Cmds()
	if len(cmds) == 0 {
		return cmd
	}
	return tea.Batch(append(cmds, cmd)...)
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.save(); err != nil {
			m.logger.Warn("failed to save demo state", "path", m.statePath, "error", err)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Show):
		m.bar.Show(m.nextText())
		return m, nil

	case key.Matches(msg, m.keys.ShowAction):
		text := m.nextText()
		m.bar.ShowToken(text, buttonLabel, buttonIcon, DemoToken{Count: m.state.count - 1})
		return m, nil

	case key.Matches(msg, m.keys.Click):
		if !m.bar.Visible() {
			return m, nil
		}
		if cur, ok := m.bar.Current(); !ok || !cur.HasAction() {
			return m, func() tea.Msg {
				return statusMsg{text: "Message has no button"}
			}
		}
		m.bar.Click()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.bar.Clear()
		return m, func() tea.Msg {
			return statusMsg{text: "Cleared"}
		}
	}

	return m, nil
}

// nextText returns the text of the next sample message and bumps the counter.
func (m Model) nextText() string {
	text := fmt.Sprintf("Message #%d", m.state.count)
	m.state.count++
	return text
}

// View implements tea.Model.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var s string
	s += titleStyle.Render("messagebar demo") + "\n\n"

	if m.state.clicked != "" {
		s += m.state.clicked + "\n"
	} else {
		s += dimStyle.Render("No button clicked yet") + "\n"
	}
	s += dimStyle.Render(fmt.Sprintf("state: %s  queued: %d", m.bar.State(), len(m.bar.Pending()))) + "\n\n"

	s += m.surface.View(m.width) + "\n"

	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	}

	s += "\n" + m.help.View(m.keys)
	return s
}

// Run starts the demo and saves the session on exit.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
