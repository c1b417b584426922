// Package store persists message bar state between runs.
//
// The snapshot is a single JSON file written atomically by messagebard and the
// demo TUI, and read back on start and by `messagebar status`.
package store
