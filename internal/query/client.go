// Package query runs keyed, cached reads against the explorer API.
//
// A query is identified by a resource name and its path params. Callers
// always get a usable value back: real data when it is cached or arrives
// within the caller's wait budget, otherwise the caller-supplied
// placeholder. Fetches continue detached from the caller and fill the
// cache, so a later read (or an Observer) sees the resolved record.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/thanhnp/tx-explorer/internal/explorerapi"
	"github.com/thanhnp/tx-explorer/internal/metrics"
	"github.com/thanhnp/tx-explorer/pkg/logger"
)

// ErrDisabled is set on results of queries that were not allowed to run
var ErrDisabled = errors.New("query disabled")

// Fetcher performs the network request for a resource
type Fetcher interface {
	FetchRaw(ctx context.Context, resource string, params explorerapi.PathParams) ([]byte, error)
}

// Store caches encoded query results. Get returns nil, nil on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Config tunes retry and cache freshness
type Config struct {
	StaleTime    time.Duration // cached data younger than this is served without refetch
	TTL          time.Duration // how long entries stay in the store
	RetryMax     int           // extra attempts after the first failure
	RetryDelay   time.Duration // base delay, doubled per attempt
	FetchTimeout time.Duration // per-attempt deadline of detached fetches
}

// Client executes queries
type Client struct {
	fetcher Fetcher
	store   Store
	cfg     Config
	group   singleflight.Group
	now     func() time.Time
}

// NewClient creates a new Client
func NewClient(fetcher Fetcher, store Store, cfg Config) *Client {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	return &Client{
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
		now:     time.Now,
	}
}

// entry is the cached form of a resolved query
type entry struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Options control a single Fetch
type Options[T any] struct {
	// Enabled gates execution; a disabled query reports the placeholder
	// and never touches the network.
	Enabled bool
	// Placeholder builds the value reported until real data is available.
	Placeholder func() T
	// Wait is how long Fetch blocks for the network on a cache miss.
	Wait time.Duration
}

// Result is what a query reports to its caller
type Result[T any] struct {
	Data              T
	IsPlaceholderData bool
	Err               error
	FetchedAt         time.Time
}

func placeholderResult[T any](opts Options[T], err error) Result[T] {
	var data T
	if opts.Placeholder != nil {
		data = opts.Placeholder()
	}
	return Result[T]{Data: data, IsPlaceholderData: true, Err: err}
}

func decodeResult[T any](e *entry) (Result[T], error) {
	var data T
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return Result[T]{}, fmt.Errorf("failed to decode query data: %w", err)
	}
	return Result[T]{Data: data, FetchedAt: e.FetchedAt}, nil
}

// Fetch runs the query identified by resource and params
func Fetch[T any](ctx context.Context, c *Client, resource string, params explorerapi.PathParams, opts Options[T]) Result[T] {
	res, ch := begin(ctx, c, resource, params, opts)
	if ch == nil || opts.Wait <= 0 {
		return res
	}

	timer := time.NewTimer(opts.Wait)
	defer timer.Stop()

	select {
	case r := <-ch:
		return resultFromFlight(opts, r)
	case <-timer.C:
		return res
	case <-ctx.Done():
		return placeholderResult(opts, ctx.Err())
	}
}

// begin reports what is known right now. When that is only the
// placeholder it also returns the channel of the fetch that will resolve
// the query; otherwise the channel is nil.
func begin[T any](ctx context.Context, c *Client, resource string, params explorerapi.PathParams, opts Options[T]) (Result[T], <-chan singleflight.Result) {
	if !opts.Enabled {
		metrics.QueryFetches.WithLabelValues(resource, "disabled").Inc()
		return placeholderResult(opts, ErrDisabled), nil
	}

	key := explorerapi.CacheKey(resource, params)
	if e := c.lookup(ctx, resource, params, key); e != nil {
		res, err := decodeResult[T](e)
		if err == nil {
			return res, nil
		}
		logger.Warn("dropping undecodable cache entry", "key", key, "error", err)
		if err := c.store.Delete(ctx, key); err != nil {
			logger.Warn("failed to drop undecodable cache entry", "key", key, "error", err)
		}
	}

	return placeholderResult[T](opts, nil), c.start(resource, params, key)
}

func resultFromFlight[T any](opts Options[T], r singleflight.Result) Result[T] {
	if r.Err != nil {
		return placeholderResult(opts, r.Err)
	}
	res, err := decodeResult[T](r.Val.(*entry))
	if err != nil {
		return placeholderResult(opts, err)
	}
	return res
}

// Invalidate drops the cached result of a query
func (c *Client) Invalidate(ctx context.Context, resource string, params explorerapi.PathParams) error {
	return c.store.Delete(ctx, explorerapi.CacheKey(resource, params))
}

// lookup returns a cached entry. Stale entries are still returned and a
// background refresh is started for them.
func (c *Client) lookup(ctx context.Context, resource string, params explorerapi.PathParams, key string) *entry {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(resource, "error").Inc()
		logger.Error("cache lookup failed", err, "key", key)
		return nil
	}
	if raw == nil {
		metrics.CacheLookups.WithLabelValues(resource, "miss").Inc()
		return nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		metrics.CacheLookups.WithLabelValues(resource, "error").Inc()
		logger.Warn("corrupt cache entry", "key", key, "error", err)
		return nil
	}

	if c.cfg.StaleTime > 0 && c.now().Sub(e.FetchedAt) >= c.cfg.StaleTime {
		metrics.CacheLookups.WithLabelValues(resource, "stale").Inc()
		c.start(resource, params, key)
	} else {
		metrics.CacheLookups.WithLabelValues(resource, "hit").Inc()
	}
	return &e
}

// start joins or begins the detached fetch for key
func (c *Client) start(resource string, params explorerapi.PathParams, key string) <-chan singleflight.Result {
	return c.group.DoChan(key, func() (interface{}, error) {
		return c.load(resource, params, key)
	})
}

// load fetches with retry and writes the result to the store
func (c *Client) load(resource string, params explorerapi.PathParams, key string) (*entry, error) {
	raw, err := c.fetchWithRetry(resource, params)
	if err != nil {
		metrics.QueryFetches.WithLabelValues(resource, "error").Inc()
		logger.Warn("query failed", "resource", resource, "key", key, "error", err)
		return nil, err
	}
	metrics.QueryFetches.WithLabelValues(resource, "ok").Inc()

	e := &entry{Data: raw, FetchedAt: c.now()}
	encoded, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.store.Set(ctx, key, encoded, c.cfg.TTL); err != nil {
		// the caller still gets the data
		logger.Error("cache write failed", err, "key", key)
	}
	return e, nil
}

func (c *Client) fetchWithRetry(resource string, params explorerapi.PathParams) (json.RawMessage, error) {
	delay := c.cfg.RetryDelay
	var lastErr error

	for attempt := 0; attempt <= c.cfg.RetryMax; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.FetchTimeout)
		raw, err := c.fetcher.FetchRaw(ctx, resource, params)
		cancel()
		if err == nil {
			if !json.Valid(raw) {
				return nil, fmt.Errorf("%s: response is not valid JSON", resource)
			}
			return raw, nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}
		logger.Debug("retrying query", "resource", resource, "attempt", attempt+1, "error", err)
	}

	return nil, lastErr
}

// retryable reports whether err may go away on its own: network errors,
// timeouts, 429 and 5xx. Other client errors are final.
func retryable(err error) bool {
	if errors.Is(err, explorerapi.ErrNotFound) {
		return false
	}
	var statusErr *explorerapi.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
