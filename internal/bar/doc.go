// Package bar implements the message bar: a single transient surface that shows
// short messages one at a time, each optionally carrying one action button.
//
// Messages shown while another is visible are queued in FIFO order. The visible
// message fades in, stays up for the hide delay, fades out, and the next queued
// message takes its place. Clicking the action reports the message's token to
// the click listener and advances immediately. The current message and the queue
// can be captured with SaveState and rebuilt with RestoreState.
//
// A Bar is driven by a single host event loop. All calls, timer callbacks and
// animation completions must run on that loop; the package does no locking.
package bar
