package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultRetention = 48 * time.Hour

// Fetcher loads the upstream payload for one key.
type Fetcher func(ctx context.Context) ([]byte, error)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Meta describes where a payload came from. Err is set together with Stale
// when a refresh failed and older data was served instead.
type Meta struct {
	FetchedAt time.Time
	FromCache bool
	Stale     bool
	Err       error
}

func (m Meta) Response() *response.CacheMeta {
	out := &response.CacheMeta{
		FetchedAt: m.FetchedAt,
		Stale:     m.Stale,
		FromCache: m.FromCache,
	}
	if m.Err != nil {
		out.Error = m.Err.Error()
	}
	return out
}

type State struct {
	Status      Status    `json:"status"`
	FetchedAt   time.Time `json:"fetched_at,omitempty"`
	Invalidated bool      `json:"invalidated"`
	LastError   string    `json:"last_error,omitempty"`
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l.Named("querycache")
		}
	}
}

// WithRetention bounds how long entries survive in the store regardless of
// staleness. Stale data must outlive its window to be served on error.
func WithRetention(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.retention = d
		}
	}
}

type flight struct {
	key   Key
	dirty bool
}

type Cache struct {
	store     Store
	group     singleflight.Group
	now       func() time.Time
	retention time.Duration
	logger    *zap.Logger

	mu       sync.Mutex
	inflight map[string]*flight
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:     store,
		now:       time.Now,
		retention: defaultRetention,
		logger:    zap.L().Named("querycache"),
		inflight:  make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loaded struct {
	data []byte
	at   time.Time
}

// Query returns the cached payload for key while it is younger than maxAge
// and not invalidated. Otherwise it fetches, collapsing concurrent callers of
// the same key into one upstream call. A failed fetch keeps the previous
// payload and returns it marked stale; without one the fetch error is
// returned as is.
func (c *Cache) Query(ctx context.Context, key Key, maxAge time.Duration, fetch Fetcher) ([]byte, Meta, error) {
	ks := key.String()

	entry, found, err := c.store.Get(ctx, ks)
	if err != nil {
		c.logger.Warn("cache read failed, treating as miss", zap.String("key", ks), zap.Error(err))
		found = false
	}
	if found && entry.hasData() && !entry.Invalidated && c.now().Sub(entry.FetchedAt) < maxAge {
		return entry.Data, Meta{FetchedAt: entry.FetchedAt, FromCache: true}, nil
	}

	v, err, _ := c.group.Do(ks, func() (any, error) {
		return c.load(context.WithoutCancel(ctx), key, ks, fetch)
	})
	if err != nil {
		if found && entry.hasData() {
			c.logger.Warn("refresh failed, serving stale data",
				zap.String("key", ks),
				zap.Time("fetched_at", entry.FetchedAt),
				zap.Error(err),
			)
			return entry.Data, Meta{FetchedAt: entry.FetchedAt, FromCache: true, Stale: true, Err: err}, nil
		}
		return nil, Meta{Err: err}, err
	}

	res := v.(loaded)
	return res.data, Meta{FetchedAt: res.at}, nil
}

func (c *Cache) load(ctx context.Context, key Key, ks string, fetch Fetcher) (loaded, error) {
	f := c.begin(key, ks)
	defer c.end(ks)

	data, err := fetch(ctx)
	at := c.now()
	if err != nil {
		if serr := c.store.SetError(ctx, ks, err.Error(), at, c.retention); serr != nil {
			c.logger.Warn("cache error write failed", zap.String("key", ks), zap.Error(serr))
		}
		return loaded{}, err
	}
	if data == nil {
		data = []byte{}
	}

	c.mu.Lock()
	dirty := f.dirty
	c.mu.Unlock()

	e := Entry{Data: data, FetchedAt: at, Invalidated: dirty}
	if serr := c.store.Set(ctx, ks, e, c.retention); serr != nil {
		c.logger.Warn("cache write failed", zap.String("key", ks), zap.Error(serr))
	}
	if dirty {
		c.logger.Debug("fetch overlapped invalidation, stored as stale", zap.String("key", ks))
	}
	return loaded{data: data, at: at}, nil
}

func (c *Cache) begin(key Key, ks string) *flight {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := &flight{key: key}
	c.inflight[ks] = f
	return f
}

func (c *Cache) end(ks string) {
	c.mu.Lock()
	delete(c.inflight, ks)
	c.mu.Unlock()
}

// State reports the lifecycle of one key as seen by this replica.
func (c *Cache) State(ctx context.Context, key Key) (State, error) {
	ks := key.String()

	c.mu.Lock()
	_, loading := c.inflight[ks]
	c.mu.Unlock()

	entry, found, err := c.store.Get(ctx, ks)
	if err != nil {
		return State{}, err
	}

	st := State{Status: StatusIdle}
	if found {
		st.FetchedAt = entry.FetchedAt
		st.Invalidated = entry.Invalidated
		st.LastError = entry.Err
		switch {
		case entry.Err != "" && !entry.ErrAt.Before(entry.FetchedAt):
			st.Status = StatusError
		case entry.hasData():
			st.Status = StatusSuccess
		}
	}
	if loading {
		st.Status = StatusLoading
	}
	return st, nil
}

// Invalidate marks every entry under the given prefixes stale, in all
// scopes. Cached data is kept so it can still be served if the refetch
// fails. Fetches already in flight for a matching key store their result
// as stale.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...Prefix) (int, error) {
	c.mu.Lock()
	for _, f := range c.inflight {
		for _, p := range prefixes {
			if f.key.HasPrefix(p) {
				f.dirty = true
				break
			}
		}
	}
	c.mu.Unlock()

	total := 0
	for _, p := range prefixes {
		n, err := c.store.MarkInvalid(ctx, p)
		if err != nil {
			return total, fmt.Errorf("invalidate %s: %w", p.String(), err)
		}
		total += n
	}
	c.logger.Debug("cache invalidated", zap.Int("prefixes", len(prefixes)), zap.Int("entries", total))
	return total, nil
}

// RemoveScope drops every entry that belongs to one session.
func (c *Cache) RemoveScope(ctx context.Context, scope string) (int, error) {
	n, err := c.store.DeleteScope(ctx, scope)
	if err != nil {
		return n, err
	}
	c.logger.Debug("cache scope removed", zap.String("scope", scope), zap.Int("entries", n))
	return n, nil
}
