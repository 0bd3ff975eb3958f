// Package clocktest provides a manually advanced ports.Clock for tests.
package clocktest

import (
	"sync"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/ports"
)

type Clock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*Ticker
}

var _ ports.Clock = (*Clock)(nil)

func New(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Clock) NewTicker(d time.Duration) ports.Ticker {
	if d <= 0 {
		panic("clocktest: non-positive ticker interval")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ticker := &Ticker{
		clock:  c,
		ch:     make(chan time.Time, 1),
		period: d,
		next:   c.now.Add(d),
	}
	c.tickers = append(c.tickers, ticker)

	return ticker
}

// Advance moves the clock forward and fires every active ticker whose
// deadline passed. Like time.Ticker, ticks are dropped when the receiver
// lags behind.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	for _, ticker := range c.tickers {
		if ticker.stopped {
			continue
		}
		for !ticker.next.After(c.now) {
			select {
			case ticker.ch <- ticker.next:
			default:
			}
			ticker.next = ticker.next.Add(ticker.period)
		}
	}
}

// ActiveTickers counts tickers created and not yet stopped.
func (c *Clock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := 0
	for _, ticker := range c.tickers {
		if !ticker.stopped {
			active++
		}
	}

	return active
}

// WaitForTickers polls until n tickers are active or timeout elapses.
func (c *Clock) WaitForTickers(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if c.ActiveTickers() == n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

type Ticker struct {
	clock   *Clock
	ch      chan time.Time
	period  time.Duration
	next    time.Time
	stopped bool
}

func (t *Ticker) C() <-chan time.Time {
	return t.ch
}

func (t *Ticker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	t.stopped = true
}
