package notification

import (
	"strconv"
	"sync"
)

const unreadCountEvent = "unread_count"

// Counters holds the unread count of each session and pushes every change
// to that session's streams. Pushes happen under mu so a stream sees counts
// in the order they were applied.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int
	hub    *Hub
}

func NewCounters(hub *Hub) *Counters {
	return &Counters{counts: make(map[string]int), hub: hub}
}

func (c *Counters) Get(sessionID string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.counts[sessionID]
	return n, ok
}

func (c *Counters) Set(sessionID string, n int) {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, ok := c.counts[sessionID]
	c.counts[sessionID] = n
	if !ok || prev != n {
		c.push(sessionID, n)
	}
}

// Adjust applies delta and never goes below zero. Sessions without a known
// count stay unknown.
func (c *Counters) Adjust(sessionID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, ok := c.counts[sessionID]
	if !ok {
		return
	}
	n := prev + delta
	if n < 0 {
		n = 0
	}
	c.counts[sessionID] = n
	if n != prev {
		c.push(sessionID, n)
	}
}

func (c *Counters) Reset(sessionID string) {
	c.mu.Lock()
	delete(c.counts, sessionID)
	c.mu.Unlock()
}

func (c *Counters) push(sessionID string, n int) {
	if c.hub == nil {
		return
	}
	c.hub.SendToSession(sessionID, Event{Type: unreadCountEvent, Data: `{"count":` + strconv.Itoa(n) + `}`})
}
