// Package debounce implements a delay-and-supersede scheduler: each Schedule
// call replaces the pending one, and a call only runs once the quiet window
// elapses without a newer Schedule.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet window used when New receives a non-positive delay.
const DefaultDelay = 500 * time.Millisecond

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock swaps the clock used to schedule calls.
func WithClock(clock Clock) Option {
	return func(d *Debouncer) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// Debouncer collapses bursts of Schedule calls into one delayed call.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	gen     uint64
	timer   Timer
	pending func()
	stopped bool
}

// Token identifies one scheduled call.
type Token struct {
	d   *Debouncer
	gen uint64
}

// New builds a debouncer with the given quiet window.
func New(delay time.Duration, opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		clock: RealClock{},
		delay: delay,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// Delay reports the quiet window.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule replaces any pending call with fn. fn runs on the clock's goroutine
// after the quiet window unless superseded, cancelled, or the debouncer is
// stopped first.
func (d *Debouncer) Schedule(fn func()) Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	if d.stopped || fn == nil {
		return Token{d: d, gen: gen}
	}

	d.pending = fn
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
	return Token{d: d, gen: gen}
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Flush runs the pending call immediately on the calling goroutine.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	if fn == nil {
		d.mu.Unlock()
		return false
	}
	d.cancelLocked()
	d.mu.Unlock()

	fn()
	return true
}

// Pending reports whether a call is waiting for its window to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels the pending call and turns later Schedule calls into no-ops.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() bool {
	if d.pending == nil {
		return false
	}
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	return true
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		// superseded after the timer had already fired
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Cancel drops the call identified by the token if it is still pending.
func (t Token) Cancel() bool {
	if t.d == nil {
		return false
	}
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	if t.gen != t.d.gen {
		return false
	}
	return t.d.cancelLocked()
}

// Superseded reports whether a newer Schedule, Cancel, or Flush replaced the
// call identified by the token.
func (t Token) Superseded() bool {
	if t.d == nil {
		return true
	}
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	return t.gen != t.d.gen
}
