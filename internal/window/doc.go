// Package window defines the event source the dispatcher reads from.
//
// A window produces events: a key naming the element that fired, an optional
// compound detail (table clicks carry the kind of interaction and the
// clicked cell) and a snapshot of element values. Background work is handed
// to the window with PerformLongOperation; its result comes back as an
// ordinary event keyed by the caller-chosen name, so handlers never run off
// the loop goroutine.
//
// Queue is the channel-backed window used for headless runs and tests. The
// terminal package provides a tcell-backed window with the same contract.
package window
