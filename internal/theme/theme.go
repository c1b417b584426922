package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jmylchreest/messagebar/internal/config"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet.
type Theme struct {
	Name string // Without the .css extension
	Path string // Empty for bundled themes
	CSS  string // With imports inlined
}

// Bundled reports whether the theme comes from the binary.
func (t *Theme) Bundled() bool {
	return t.Path == ""
}

// ThemesDir returns the user's themes directory.
func ThemesDir() string {
	return filepath.Join(filepath.Dir(config.ConfigPath()), "themes")
}

// Resolve finds a theme by name: a user file in dir wins over a bundled
// theme of the same name, and unknown names fall back to the default.
func Resolve(name, dir string) *Theme {
	if name == "" {
		name = DefaultThemeName
	}

	if dir != "" {
		path := filepath.Join(dir, name+".css")
		if t, err := Load(name, path); err == nil {
			return t
		}
	}

	css, ok := GetEmbeddedTheme(name)
	if !ok {
		name = DefaultThemeName
		css, _ = GetEmbeddedTheme(name)
	}
	return &Theme{Name: name, CSS: ProcessImports(css, "", nil)}
}

// Load reads a theme file and inlines its imports.
func Load(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name: name,
		Path: path,
		CSS:  ProcessImports(string(css), filepath.Dir(path), nil),
	}, nil
}

// ProcessImports inlines @import statements, resolving relative paths
// against baseDir. Imports that are not on disk are looked up among the
// bundled files, so user themes can import "_base.css". seen guards against
// import cycles and may be nil.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import skipped: " + importPath + " */"
		}
		seen[fullPath] = true

		if baseDir != "" || filepath.IsAbs(importPath) {
			if data, err := os.ReadFile(fullPath); err == nil {
				return ProcessImports(string(data), filepath.Dir(fullPath), seen)
			}
		}

		embedded := strings.TrimSuffix(filepath.Base(importPath), ".css")
		if data, ok := GetEmbeddedTheme(embedded); ok {
			return ProcessImports(data, "", seen)
		}
		return "/* import not found: " + importPath + " */"
	})
}
