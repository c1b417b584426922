// Package dbus connects messagebard to the session bus.
//
// The daemon serves a subset of org.freedesktop.Notifications so that any
// application can post to the bar with notify-send, and a small control
// interface (io.github.jmylchreest.MessageBar) used by the messagebar CLI.
// Monitor observes Notify traffic addressed to another notification daemon.
package dbus
