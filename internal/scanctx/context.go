// Package scanctx bundles the per-invocation state threaded through every
// component of a scan: the wall-clock start time, a shared cancellation
// flag, and (when --verbose is set) a scan ID for log correlation. It is
// built once per invocation and never reused, matching the "lifecycle"
// note in the data model: all entities are constructed, assembled,
// serialized, and released within a single run.
package scanctx

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Context is the scan-scoped bundle passed to every component.
type Context struct {
	Root      string
	StartedAt time.Time
	ScanID    string
	Verbose   bool

	cancelled atomic.Bool
	timedOut  atomic.Bool
}

// New builds a Context rooted at root. verbose controls whether a ScanID
// is stamped.
func New(root string, verbose bool) *Context {
	c := &Context{
		Root:      root,
		StartedAt: time.Now(),
		Verbose:   verbose,
	}
	if verbose {
		c.ScanID = uuid.New().String()
	}
	return c
}

// Cancel marks the context cancelled. Safe to call from a timeout
// watchdog goroutine or an interrupt handler; idempotent.
func (c *Context) Cancel() {
	c.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested. Polled at
// directory, file, and chunk boundaries.
func (c *Context) Cancelled() bool {
	return c.cancelled.Load()
}

// TimedOut reports whether cancellation was caused by the timeout
// watchdog specifically, as opposed to an external interrupt — main
// uses this to choose between exit code 2 (timeout) and 130 (signal).
func (c *Context) TimedOut() bool {
	return c.timedOut.Load()
}

// ElapsedMs returns milliseconds since the context was created.
func (c *Context) ElapsedMs() int64 {
	return time.Since(c.StartedAt).Milliseconds()
}

// WatchTimeout spawns a goroutine that cancels the context once d
// elapses, unless stop is invoked first. A zero or negative d disables
// the watchdog. Returns a stop function the caller must invoke once the
// scan completes, to avoid leaking the timer goroutine.
func (c *Context) WatchTimeout(d time.Duration) (stop func()) {
	if d <= 0 {
		return func() {}
	}
	timer := time.NewTimer(d)
	done := make(chan struct{})
	go func() {
		select {
		case <-timer.C:
			c.timedOut.Store(true)
			c.Cancel()
		case <-done:
			timer.Stop()
		}
	}()
	return func() { close(done) }
}
