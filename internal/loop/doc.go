// Package loop provides single-threaded schedulers for driving a message bar
// outside a toolkit main loop: Loop runs callbacks on one goroutine in real
// time, and Manual runs them on a virtual clock advanced by hand.
package loop
