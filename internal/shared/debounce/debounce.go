// Package debounce holds back bursts of search requests so only the last
// one in a typing burst reaches the HR API.
package debounce

import (
	"context"
	"sync"
	"time"
)

const DefaultDelay = 400 * time.Millisecond

type Gate struct {
	delay time.Duration

	mu      sync.Mutex
	counter uint64
	latest  map[string]uint64
}

func New(delay time.Duration) *Gate {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Gate{delay: delay, latest: make(map[string]uint64)}
}

func (g *Gate) Delay() time.Duration {
	return g.delay
}

// Wait registers a call under key, sleeps for the delay and reports whether
// the call is still the newest one for that key. A superseded call returns
// false and must not fetch.
func (g *Gate) Wait(ctx context.Context, key string) (bool, error) {
	g.mu.Lock()
	g.counter++
	ticket := g.counter
	g.latest[key] = ticket
	g.mu.Unlock()

	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		g.release(key, ticket)
		return false, ctx.Err()
	case <-timer.C:
	}

	return g.release(key, ticket), nil
}

func (g *Gate) release(key string, ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest[key] != ticket {
		return false
	}
	delete(g.latest, key)
	return true
}

// Pending is the number of keys with a call still waiting.
func (g *Gate) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.latest)
}
