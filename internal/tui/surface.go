package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/messagebar/internal/bar"
)

// iconGlyphs maps common icon theme names to terminal glyphs.
var iconGlyphs = map[bar.Icon]string{
	"edit-undo":          "↶",
	"edit-redo":          "↷",
	"edit-delete":        "✗",
	"dialog-ok":          "✓",
	"view-refresh":       "⟳",
	"document-open":      "▤",
	"dialog-information": "ℹ",
}

// termSurface is a bar.Surface rendered with lipgloss. It only records
// properties; View draws them.
type termSurface struct {
	visible       bool
	text          string
	align         bar.Alignment
	buttonVisible bool
	buttonLabel   string
	buttonIcon    bar.Icon
	alpha         float64
}

func newTermSurface() *termSurface {
	return &termSurface{alpha: 1}
}

func (s *termSurface) SetVisible(visible bool) { s.visible = visible }
func (s *termSurface) SetText(text string) { s.text = text }
func (s *termSurface) SetTextAlignment(a bar.Alignment) { s.align = a }
func (s *termSurface) SetButtonVisible(visible bool) { s.buttonVisible = visible }

func (s *termSurface) SetButton(label string, icon bar.Icon) {
	s.buttonLabel = label
	s.buttonIcon = icon
}

// SetAlpha is the fade applier.
func (s *termSurface) SetAlpha(alpha float64) {
	s.alpha = alpha
}

// shade maps alpha onto the 256-colour grayscale ramp (236 dim .. 255 white).
func shade(alpha float64) lipgloss.Color {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	return lipgloss.Color(strconv.Itoa(236 + int(alpha*19)))
}

// buttonText renders the action button contents: glyph plus label, or the
// raw icon name when it has no glyph and there is no label.
func (s *termSurface) buttonText() string {
	glyph, known := iconGlyphs[s.buttonIcon]
	switch {
	case known && s.buttonLabel != "":
		return glyph + " " + s.buttonLabel
	case known:
		return glyph
	case s.buttonLabel != "":
		return s.buttonLabel
	default:
		return string(s.buttonIcon)
	}
}

// View renders the bar at the given width. A hidden surface renders as an
// empty line so the layout does not jump.
func (s *termSurface) View(width int) string {
	if !s.visible {
		return ""
	}
	if width < 20 {
		width = 20
	}

	fg := shade(s.alpha)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Foreground(fg).
		Padding(0, 1)
	inner := width - box.GetHorizontalFrameSize()

	if !s.buttonVisible {
		text := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Render(s.text)
		return box.Render(text)
	}

	button := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(fg).
		Padding(0, 1).
		Render(s.buttonText())
	textWidth := inner - lipgloss.Width(button) - 1
	if textWidth < 1 {
		textWidth = 1
	}
	text := lipgloss.NewStyle().Width(textWidth).Align(lipgloss.Left).Render(s.text)

	return box.Render(lipgloss.JoinHorizontal(lipgloss.Center, text, " ", button))
}
