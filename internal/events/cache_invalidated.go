package events

import "time"

const CacheInvalidatedTopic = "hr.gateway.cache.invalidated.v1"

const CacheInvalidatedEventType = "cache_invalidated"

// CacheInvalidatedEvent carries the key prefixes a successful mutation marked
// stale, so other gateway replicas can mark the same entries.
type CacheInvalidatedEvent struct {
	EventType  string     `json:"event_type"`
	Prefixes   [][]string `json:"prefixes"`
	Source     string     `json:"source"`
	Origin     string     `json:"origin"`
	RequestID  string     `json:"request_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
