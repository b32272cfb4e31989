// Package clock produces the one-second ticks that drive a running timer.
package clock

import (
	"sync"
	"time"
)

// Tick is one interval delivered by a Driver.
// Generation identifies the arming that produced it.
type Tick struct {
	Generation uint64
	At         time.Time
}

// Ticker is the interval source behind a Driver.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

// NewTicker returns a Ticker backed by time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (t *realTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *realTicker) Stop() {
	t.ticker.Stop()
}

// Driver emits ticks on C while armed. A single channel carries ticks
// across every Start/Stop cycle so one reader can follow it for the
// driver's whole life; C is closed by Close.
type Driver struct {
	mu         sync.Mutex
	interval   time.Duration
	newTicker  TickerFunc
	ticks      chan Tick
	stopCh     chan struct{}
	generation uint64
	armed      bool
	closed     bool
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// New creates a disarmed Driver. A nil newTicker uses NewTicker.
func New(interval time.Duration, newTicker TickerFunc) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	if newTicker == nil {
		newTicker = NewTicker
	}
	return &Driver{
		interval:  interval,
		newTicker: newTicker,
		ticks:     make(chan Tick),
	}
}

// C returns the tick channel.
func (d *Driver) C() <-chan Tick {
	return d.ticks
}

// Start arms the driver. No-op when already armed or closed.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.armed || d.closed {
		return
	}
	d.armed = true
	d.generation++
	d.stopCh = make(chan struct{})

	d.wg.Add(1)
	go d.run(d.newTicker(d.interval), d.stopCh, d.generation)
}

// Stop disarms the driver. No-op when already disarmed.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.armed {
		return
	}
	d.armed = false
	close(d.stopCh)
}

// Armed reports whether the driver is currently emitting.
func (d *Driver) Armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Accept reports whether tick belongs to the current arming.
// Ticks read after Stop, or left over from an earlier arming, are rejected.
func (d *Driver) Accept(tick Tick) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed && tick.Generation == d.generation
}

// Close stops the driver for good, waits for its goroutine and closes C.
func (d *Driver) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		if d.armed {
			d.armed = false
			close(d.stopCh)
		}
		d.closed = true
		d.mu.Unlock()

		d.wg.Wait()
		close(d.ticks)
	})
}

func (d *Driver) run(ticker Ticker, stopCh <-chan struct{}, generation uint64) {
	defer d.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case at := <-ticker.C():
			if !d.current(generation) {
				return
			}
			select {
			case d.ticks <- Tick{Generation: generation, At: at}:
			case <-stopCh:
				return
			}
		}
	}
}

func (d *Driver) current(generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed && d.generation == generation
}
