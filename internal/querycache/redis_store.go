package querycache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

// markInvalidScript flags an existing hash only, so invalidating a key that
// expired between SCAN and the write does not recreate it without a TTL.
const markInvalidScript = `if redis.call('EXISTS', KEYS[1]) == 1 then
  redis.call('HSET', KEYS[1], 'invalidated', '1')
  return 1
end
return 0`

const (
	fieldData        = "data"
	fieldFetchedAt   = "fetched_at"
	fieldInvalidated = "invalidated"
	fieldError       = "error"
	fieldErrorAt     = "error_at"
)

// RedisStore keeps one hash per query key so several gateway replicas can
// share cached payloads and invalidation marks.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	vals, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	if len(vals) == 0 {
		return Entry{}, false, nil
	}

	e := Entry{
		Invalidated: vals[fieldInvalidated] == "1",
		Err:         vals[fieldError],
		FetchedAt:   parseUnixNano(vals[fieldFetchedAt]),
		ErrAt:       parseUnixNano(vals[fieldErrorAt]),
	}
	if data, ok := vals[fieldData]; ok {
		e.Data = []byte(data)
	}
	return e, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, e Entry, retention time.Duration) error {
	invalidated := "0"
	if e.Invalidated {
		invalidated = "1"
	}
	if err := s.rdb.HSet(ctx, key,
		fieldData, string(e.Data),
		fieldFetchedAt, formatUnixNano(e.FetchedAt),
		fieldInvalidated, invalidated,
		fieldError, e.Err,
		fieldErrorAt, formatUnixNano(e.ErrAt),
	).Err(); err != nil {
		return err
	}
	if retention > 0 {
		return s.rdb.Expire(ctx, key, retention).Err()
	}
	return nil
}

func (s *RedisStore) SetError(ctx context.Context, key string, msg string, at time.Time, retention time.Duration) error {
	if err := s.rdb.HSet(ctx, key,
		fieldError, msg,
		fieldErrorAt, formatUnixNano(at),
	).Err(); err != nil {
		return err
	}
	if retention > 0 {
		return s.rdb.Expire(ctx, key, retention).Err()
	}
	return nil
}

func (s *RedisStore) MarkInvalid(ctx context.Context, p Prefix) (int, error) {
	n := 0
	err := s.scan(ctx, p.Pattern(), func(keys []string) error {
		for _, k := range keys {
			marked, err := s.rdb.Eval(ctx, markInvalidScript, []string{k}).Int()
			if err != nil {
				return err
			}
			n += marked
		}
		return nil
	})
	return n, err
}

func (s *RedisStore) DeleteScope(ctx context.Context, scope string) (int, error) {
	n := 0
	err := s.scan(ctx, scopePattern(scope), func(keys []string) error {
		deleted, err := s.rdb.Del(ctx, keys...).Result()
		if err != nil {
			return err
		}
		n += int(deleted)
		return nil
	})
	return n, err
}

func (s *RedisStore) scan(ctx context.Context, pattern string, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func formatUnixNano(t time.Time) string {
	if t.IsZero() {
		return "0"
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

func parseUnixNano(s string) time.Time {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
