package game

import "sync"

// FrameClock dispatches per-frame callbacks and fixed-period intervals.
//
// The app ticks it once per Update with the frame delta in seconds.
// Callbacks run on the update goroutine in registration order. Registration
// is safe from other goroutines (the loader registers video textures while
// the loading scene is ticking); removal happens on the update goroutine.
type FrameClock struct {
	mu      sync.Mutex
	entries []*clockEntry
	elapsed float64
}

type clockEntry struct {
	onTick   func(dt float64)
	interval *Interval
	scope    *ClockScope
	removed  bool
}

// NewFrameClock creates an empty clock.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Tick advances the clock by dt seconds. Entries registered during the tick
// first run on the next tick.
func (c *FrameClock) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.mu.Lock()
	c.elapsed += dt
	snapshot := make([]*clockEntry, len(c.entries))
	copy(snapshot, c.entries)
	c.mu.Unlock()

	for _, e := range snapshot {
		if e.removed {
			continue
		}
		if e.interval != nil {
			e.interval.advance(dt)
			continue
		}
		e.onTick(dt)
	}

	c.compact()
}

// Elapsed returns the total ticked time in seconds.
func (c *FrameClock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Len returns the number of live listeners and intervals.
func (c *FrameClock) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Add registers a listener that lives as long as the clock. The returned
// function removes it.
func (c *FrameClock) Add(fn func(dt float64)) (remove func()) {
	e := c.add(&clockEntry{onTick: fn})
	return func() { e.removed = true }
}

// NewScope creates a scope whose listeners and intervals are removed
// together by Close.
func (c *FrameClock) NewScope(name string) *ClockScope {
	return &ClockScope{clock: c, name: name}
}

func (c *FrameClock) add(e *clockEntry) *clockEntry {
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()
	return e
}

func (c *FrameClock) compact() {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := c.entries[:0]
	for _, e := range c.entries {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(c.entries); i++ {
		c.entries[i] = nil
	}
	c.entries = live
}

// ClockScope groups the callbacks owned by one scene.
type ClockScope struct {
	clock   *FrameClock
	name    string
	entries []*clockEntry
	closed  bool
}

// Name returns the scope name used in logs.
func (s *ClockScope) Name() string {
	return s.name
}

// OnTick registers a per-frame listener. It is a no-op on a closed scope.
func (s *ClockScope) OnTick(fn func(dt float64)) {
	if s.closed {
		return
	}
	e := s.clock.add(&clockEntry{onTick: fn, scope: s})
	s.entries = append(s.entries, e)
}

// SetInterval registers fn to run every period seconds. A closed scope
// returns an interval that never fires.
func (s *ClockScope) SetInterval(period float64, fn func()) *Interval {
	iv := &Interval{period: period, fn: fn}
	if s.closed {
		iv.stopped = true
		return iv
	}
	e := s.clock.add(&clockEntry{interval: iv, scope: s})
	iv.entry = e
	s.entries = append(s.entries, e)
	return iv
}

// Close removes every listener and interval of the scope.
func (s *ClockScope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, e := range s.entries {
		e.removed = true
		if e.interval != nil {
			e.interval.stopped = true
		}
	}
	s.entries = nil
}

// Closed reports whether Close has been called.
func (s *ClockScope) Closed() bool {
	return s.closed
}

// Interval fires a callback every period seconds of clock time.
type Interval struct {
	period  float64
	acc     float64
	fn      func()
	entry   *clockEntry
	stopped bool
}

// maxFiresPerTick bounds catch-up after a long frame.
const maxFiresPerTick = 64

func (iv *Interval) advance(dt float64) {
	iv.acc += dt
	fired := 0
	for !iv.stopped && iv.acc >= iv.period && fired < maxFiresPerTick {
		iv.acc -= iv.period
		fired++
		iv.fn()
	}
	if fired == maxFiresPerTick {
		iv.acc = 0
	}
}

// Period returns the current period in seconds.
func (iv *Interval) Period() float64 {
	return iv.period
}

// SetPeriod changes the period. Time already accumulated counts toward the
// new period, capped at one period, so a shorter period fires at most once
// on the very next tick before settling into the new rate.
func (iv *Interval) SetPeriod(period float64) {
	iv.period = period
	if iv.acc > period {
		iv.acc = period
	}
}

// Stop removes the interval from its clock.
func (iv *Interval) Stop() {
	iv.stopped = true
	if iv.entry != nil {
		iv.entry.removed = true
	}
}

// Stopped reports whether the interval was stopped or its scope closed.
func (iv *Interval) Stopped() bool {
	return iv.stopped
}
