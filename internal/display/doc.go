// Package display hosts the message bar in a GTK4 layer-shell window.
//
// Surface implements bar.Surface on a single undecorated window anchored to
// a screen edge, and Scheduler implements bar.Scheduler on the glib main
// loop. Every method must be called from the GTK main thread.
package display
