// Package daemon wires the message bar to the notification server for
// messagebard. It maps notifications onto bar messages, turns clicks and
// hides into D-Bus signals, persists the queue, reloads the configuration
// and posts the daemon's own notices.
package daemon
