package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/config"
)

// Surface is a bar.Surface backed by a layer-shell window holding a label
// and one action button.
type Surface struct {
	window *gtk.Window
	box    *gtk.Box
	label  *gtk.Label
	button *gtk.Button
	logger *slog.Logger

	onClick func()
}

// NewSurface creates the bar window. It is not shown until the bar puts a
// message on it.
func NewSurface(app *gtk.Application, cfg *config.Config, logger *slog.Logger) (*Surface, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if gdk.DisplayGetDefault() == nil {
		return nil, &DisplayError{Message: "no display available"}
	}
	if !layershell.IsSupported() {
		return nil, &DisplayError{Message: "compositor does not support wlr-layer-shell"}
	}

	s := &Surface{logger: logger}

	s.window = gtk.NewWindow()
	s.window.SetApplication(app)
	s.window.SetDecorated(false)
	s.window.SetResizable(false)

	layershell.InitForWindow(s.window)
	layershell.SetLayer(s.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(s.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(s.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(s.window, "messagebar")

	s.box = gtk.NewBox(gtk.OrientationHorizontal, 12)
	s.box.AddCSSClass("messagebar")
	s.box.AddCSSClass(colorSchemeClass())
	s.box.SetMarginTop(8)
	s.box.SetMarginBottom(8)
	s.box.SetMarginStart(16)
	s.box.SetMarginEnd(8)

	s.label = gtk.NewLabel("")
	s.label.AddCSSClass("messagebar-text")
	s.label.SetHExpand(true)
	s.label.SetWrap(true)
	s.label.SetXAlign(0.5)
	s.box.Append(s.label)

	s.button = gtk.NewButton()
	s.button.AddCSSClass("flat")
	s.button.AddCSSClass("messagebar-action")
	s.button.SetVisible(false)
	s.button.ConnectClicked(func() {
		if s.onClick != nil {
			s.onClick()
		}
	})
	s.box.Append(s.button)

	s.window.SetChild(s.box)
	s.ApplyConfig(cfg)

	return s, nil
}

// OnClick sets the callback for action button clicks.
func (s *Surface) OnClick(fn func()) {
	s.onClick = fn
}

// ApplyConfig updates placement and width.
func (s *Surface) ApplyConfig(cfg *config.Config) {
	s.window.SetDefaultSize(cfg.Display.Width, -1)
	s.window.SetSizeRequest(cfg.Display.Width, -1)
	placementFor(config.Position(cfg.Display.Position), cfg.Display.OffsetX, cfg.Display.OffsetY).apply(s.window)
	s.logger.Debug("applied display config",
		"position", cfg.Display.Position,
		"width", cfg.Display.Width,
	)
}

// SetVisible implements bar.Surface.
func (s *Surface) SetVisible(visible bool) {
	if visible {
		s.window.Present()
		return
	}
	s.window.SetVisible(false)
}

// SetText implements bar.Surface.
func (s *Surface) SetText(text string) {
	s.label.SetText(text)
}

// SetTextAlignment implements bar.Surface.
func (s *Surface) SetTextAlignment(align bar.Alignment) {
	if align == bar.AlignLeft {
		s.label.SetXAlign(0)
		return
	}
	s.label.SetXAlign(0.5)
}

// SetButtonVisible implements bar.Surface.
func (s *Surface) SetButtonVisible(visible bool) {
	s.button.SetVisible(visible)
}

// SetButton implements bar.Surface.
func (s *Surface) SetButton(label string, icon bar.Icon) {
	if icon == bar.NoIcon {
		s.button.SetLabel(label)
		return
	}

	content := gtk.NewBox(gtk.OrientationHorizontal, 6)
	content.Append(gtk.NewImageFromIconName(string(icon)))
	if label != "" {
		content.Append(gtk.NewLabel(label))
	}
	s.button.SetChild(content)
}

// SetAlpha applies the fade opacity. It is the bar.Alpha of the surface.
func (s *Surface) SetAlpha(alpha float64) {
	s.window.SetOpacity(alpha)
}

// Close destroys the window.
func (s *Surface) Close() {
	s.window.Destroy()
}

// colorSchemeClass returns "dark" or "light" from the libadwaita style manager.
func colorSchemeClass() string {
	if adw.StyleManagerGetDefault().Dark() {
		return "dark"
	}
	return "light"
}
