package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Fetch runs Query and decodes the payload into T.
func Fetch[T any](ctx context.Context, c *Cache, key Key, maxAge time.Duration, fetch Fetcher) (T, Meta, error) {
	var out T
	data, meta, err := c.Query(ctx, key, maxAge, fetch)
	if err != nil {
		return out, meta, err
	}
	if len(data) == 0 {
		return out, meta, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, meta, fmt.Errorf("decode cached %s: %w", key.String(), err)
	}
	return out, meta, nil
}

// JSONFetcher adapts a typed loader into a Fetcher by encoding its result.
func JSONFetcher[T any](load func(ctx context.Context) (T, error)) Fetcher {
	return func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
}
