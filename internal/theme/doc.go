// Package theme styles the bar window with GTK CSS. Themes are looked up in
// the user's themes directory first, then among the bundled ones, and a user
// theme is reloaded when its file changes.
package theme
