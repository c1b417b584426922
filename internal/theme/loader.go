package theme

import (
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/messagebar/internal/store"
)

// Loader applies a theme to the default display and reloads user themes
// when their file changes. Methods must be called on the GTK main loop;
// post is used to get back onto it from the file watcher.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	dir      string
	theme    *Theme
	watcher  *store.FileWatcher
	post     func(fn func())
}

// NewLoader creates a Loader reading user themes from ThemesDir.
func NewLoader(post func(fn func()), logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		dir:      ThemesDir(),
		post:     post,
	}
}

// Apply attaches the loader's stylesheet to the default display.
func (l *Loader) Apply() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// Load resolves and applies the named theme, watching it when it is a user file.
func (l *Loader) Load(name string) {
	t := Resolve(name, l.dir)

	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "bundled", t.Bundled())

	l.watch(t)
}

// Current returns the loaded theme name.
func (l *Loader) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil {
		return ""
	}
	return l.theme.Name
}

func (l *Loader) watch(t *Theme) {
	l.Stop()
	if t.Bundled() {
		return
	}

	w, err := store.NewFileWatcher(t.Path, func() {
		l.post(func() { l.reload(t.Name) })
	}, l.logger)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		l.logger.Warn("failed to watch theme", "path", t.Path, "error", err)
		return
	}

	l.mu.Lock()
	l.watcher = w
	l.mu.Unlock()
}

func (l *Loader) reload(name string) {
	l.mu.Lock()
	current := l.theme
	l.mu.Unlock()
	if current == nil || current.Name != name {
		return
	}

	t := Resolve(name, l.dir)
	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	l.provider.LoadFromString(t.CSS)
	l.logger.Info("hot-reloaded theme", "name", name)
}

// Stop stops watching the theme file.
func (l *Loader) Stop() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		_ = w.Stop()
	}
}
