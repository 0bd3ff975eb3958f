// Package cache memoizes GET responses of the wallet API for a bounded
// time, with account-scoped invalidation.
package cache

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const DefaultMaxAge = 5 * time.Minute

// namespaces whose keys carry an account identifier after them.
var accountNamespaces = map[string]struct{}{
	"account": {},
	"tasks":   {},
}

type Config struct {
	MaxAge time.Duration
	Clock  ports.Clock
}

// Stats are counters for diagnostics.
type Stats struct {
	Hits          int64         `json:"hits"`
	Misses        int64         `json:"misses"`
	Sets          int64         `json:"sets"`
	Invalidations int64         `json:"invalidations"`
	Evictions     int64         `json:"evictions"`
	Size          int           `json:"size"`
	MaxAge        time.Duration `json:"max_age"`
}

type RequestCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	maxAge  time.Duration
	clock   ports.Clock

	hits          int64
	misses        int64
	sets          int64
	invalidations int64
	evictions     int64

	lookups metric.Int64Counter
}

type entry struct {
	payload  []byte
	storedAt time.Time
}

var _ ports.RequestCache = (*RequestCache)(nil)

func New(cfg Config) *RequestCache {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}

	lookups, err := otel.Meter("github.com/bnema/pft-wallet-cli/cache").Int64Counter(
		"pfw.cache.lookups",
		metric.WithDescription("Request cache lookups by result"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &RequestCache{
		entries: make(map[string]entry),
		maxAge:  cfg.MaxAge,
		clock:   cfg.Clock,
		lookups: lookups,
	}
}

// Key derives the cache key of an endpoint and its optional parameters.
func Key(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}

	return endpoint + "?" + params.Encode()
}

// Get returns a copy of the payload stored under key. Entries older than the
// max age are evicted on read.
func (c *RequestCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	stored, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.recordLookup(false)
		return nil, false
	}

	if c.clock.Now().Sub(stored.storedAt) > c.maxAge {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.storedAt.Equal(stored.storedAt) {
			delete(c.entries, key)
			atomic.AddInt64(&c.evictions, 1)
		}
		c.mu.Unlock()

		c.recordLookup(false)
		return nil, false
	}

	c.recordLookup(true)
	return append([]byte(nil), stored.payload...), true
}

// Set replaces the payload stored under key.
func (c *RequestCache) Set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload:  append([]byte(nil), payload...),
		storedAt: c.clock.Now(),
	}
	atomic.AddInt64(&c.sets, 1)
}

// InvalidateAccount drops every entry whose key names account inside an
// account or tasks namespace.
func (c *RequestCache) InvalidateAccount(account string) {
	if strings.TrimSpace(account) == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if keyMentionsAccount(key, account) {
			delete(c.entries, key)
			atomic.AddInt64(&c.invalidations, 1)
		}
	}
}

func (c *RequestCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	atomic.AddInt64(&c.invalidations, int64(len(c.entries)))
	c.entries = make(map[string]entry)
}

func (c *RequestCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *RequestCache) Stats() Stats {
	return Stats{
		Hits:          atomic.LoadInt64(&c.hits),
		Misses:        atomic.LoadInt64(&c.misses),
		Sets:          atomic.LoadInt64(&c.sets),
		Invalidations: atomic.LoadInt64(&c.invalidations),
		Evictions:     atomic.LoadInt64(&c.evictions),
		Size:          c.Len(),
		MaxAge:        c.maxAge,
	}
}

func (c *RequestCache) recordLookup(hit bool) {
	result := "miss"
	if hit {
		atomic.AddInt64(&c.hits, 1)
		result = "hit"
	} else {
		atomic.AddInt64(&c.misses, 1)
	}

	if c.lookups != nil {
		c.lookups.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", result)))
	}
}

// keyMentionsAccount matches keys such as /account/{a}/summary,
// /tasks/{a} and /tasks/start-refresh/{a}.
func keyMentionsAccount(key, account string) bool {
	path, _, _ := strings.Cut(key, "?")
	segments := strings.Split(strings.Trim(path, "/"), "/")

	inNamespace := false
	for _, segment := range segments {
		if _, ok := accountNamespaces[segment]; ok {
			inNamespace = true
			continue
		}
		if inNamespace && segment == account {
			return true
		}
	}

	return false
}
