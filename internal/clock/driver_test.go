package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTicker struct {
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (f *tickerFactory) newTicker(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{c: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *tickerFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func (f *tickerFactory) last() *manualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickers[len(f.tickers)-1]
}

func receive(t *testing.T, d *Driver) Tick {
	t.Helper()
	select {
	case tick := <-d.C():
		return tick
	case <-time.After(time.Second):
		t.Fatal("no tick delivered")
		return Tick{}
	}
}

func TestStartIsIdempotent(t *testing.T) {
	factory := &tickerFactory{}
	d := New(time.Second, factory.newTicker)
	defer d.Close()

	d.Start()
	d.Start()

	assert.Equal(t, 1, factory.count())
	assert.True(t, d.Armed())
}

func TestTicksCarryGeneration(t *testing.T) {
	factory := &tickerFactory{}
	d := New(time.Second, factory.newTicker)
	defer d.Close()

	d.Start()
	factory.last().c <- time.Now()
	first := receive(t, d)
	assert.True(t, d.Accept(first))

	d.Stop()
	assert.False(t, d.Accept(first), "tick must be rejected once disarmed")

	d.Start()
	require.Equal(t, 2, factory.count())
	factory.last().c <- time.Now()
	second := receive(t, d)

	assert.Greater(t, second.Generation, first.Generation)
	assert.True(t, d.Accept(second))
	assert.False(t, d.Accept(first), "tick from an earlier arming must be rejected")
}

func TestStopReleasesTicker(t *testing.T) {
	factory := &tickerFactory{}
	d := New(time.Second, factory.newTicker)
	defer d.Close()

	d.Start()
	d.Stop()
	d.Stop()

	assert.False(t, d.Armed())
	assert.Eventually(t, factory.last().isStopped, time.Second, 5*time.Millisecond)
}

func TestCloseClosesChannel(t *testing.T) {
	factory := &tickerFactory{}
	d := New(time.Second, factory.newTicker)

	d.Start()
	d.Close()
	d.Close()

	_, ok := <-d.C()
	assert.False(t, ok)
	assert.True(t, factory.last().isStopped())

	d.Start()
	assert.False(t, d.Armed(), "closed driver must not re-arm")
}
