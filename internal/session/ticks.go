package session

import (
	"sync"
	"time"
)

// TickSource delivers tick boundaries to a Runner.
// A closed channel ends the run.
type TickSource interface {
	C() <-chan time.Time
	Stop()
}

type wallTicker struct {
	ticker *time.Ticker
}

// NewTicker returns a wall-clock tick source firing rate times per second.
// Non-positive rates fall back to 10 Hz.
func NewTicker(rate int) TickSource {
	if rate <= 0 {
		rate = 10
	}
	return &wallTicker{ticker: time.NewTicker(time.Second / time.Duration(rate))}
}

func (w *wallTicker) C() <-chan time.Time {
	return w.ticker.C
}

func (w *wallTicker) Stop() {
	w.ticker.Stop()
}

// ManualTicks is a tick source driven by explicit Tick calls.
// Tests use it to step the simulation deterministically; the terminal UI
// feeds it from its own tick messages.
type ManualTicks struct {
	ch       chan time.Time
	stop     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex // Guards sends against close(ch)
	closed   bool
}

// NewManualTicks creates a manual source that can hold buffer pending ticks.
func NewManualTicks(buffer int) *ManualTicks {
	return &ManualTicks{
		ch:   make(chan time.Time, buffer),
		stop: make(chan struct{}),
	}
}

// Tick queues one tick. It blocks while the buffer is full, returns early
// once Stop is called and does nothing after Stop.
func (m *ManualTicks) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	select {
	case m.ch <- time.Time{}:
	case <-m.stop:
	}
}

// TryTick queues one tick without blocking. It reports false when the
// buffer is full or the source is stopped.
func (m *ManualTicks) TryTick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	select {
	case m.ch <- time.Time{}:
		return true
	default:
		return false
	}
}

// C returns the tick channel.
func (m *ManualTicks) C() <-chan time.Time {
	return m.ch
}

// Stop closes the channel. Ticks already queued are still delivered.
func (m *ManualTicks) Stop() {
	// Wake a blocked Tick before taking the lock it holds
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.ch)
	}
}

// countedTicks hands out a fixed number of ticks as fast as they are read.
type countedTicks struct {
	ch       chan time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// Immediate returns a source that delivers n ticks back to back and then
// closes. Ticks are produced on demand, so n does not affect memory use.
func Immediate(n int) TickSource {
	c := &countedTicks{
		ch:   make(chan time.Time),
		stop: make(chan struct{}),
	}
	go c.feed(n)
	return c
}

func (c *countedTicks) feed(n int) {
	defer close(c.ch)
	for range n {
		select {
		case c.ch <- time.Time{}:
		case <-c.stop:
			return
		}
	}
}

func (c *countedTicks) C() <-chan time.Time {
	return c.ch
}

// Stop ends the feed early; the channel closes right after.
func (c *countedTicks) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
