package leads

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/lead-manager/pkg/logging"
)

const defaultCacheTTL = 30 * time.Second

// CachedStore serves ListOrdered from Redis and passes everything else through.
// Any successful mutation drops the cached list. Redis failures fall back to
// the wrapped store.
type CachedStore struct {
	next   Store
	redis  *redis.Client
	key    string
	ttl    time.Duration
	logger *logging.Logger
}

var _ Store = (*CachedStore)(nil)

// NewCachedStore wraps next with a Redis list cache stored under "leads:list:<table>".
func NewCachedStore(next Store, client *redis.Client, table string, ttl time.Duration, logger *logging.Logger) *CachedStore {
	if next == nil {
		panic("leads: cached store requires a backing store")
	}
	if client == nil {
		panic("leads: cached store requires a redis client")
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedStore{
		next:   next,
		redis:  client,
		key:    "leads:list:" + table,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedStore) ListOrdered(ctx context.Context) ([]Lead, error) {
	raw, err := c.redis.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var cached []Lead
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		c.logger.Warn("discarding unreadable lead cache entry", "key", c.key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("lead cache read failed", "error", err)
	}

	leads, err := c.next.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(leads); err == nil {
		if err := c.redis.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("lead cache write failed", "error", err)
		}
	}
	return leads, nil
}

// FindIDByEmail always asks the backing store so the duplicate probe sees fresh data.
func (c *CachedStore) FindIDByEmail(ctx context.Context, email string) (string, bool, error) {
	return c.next.FindIDByEmail(ctx, email)
}

func (c *CachedStore) Insert(ctx context.Context, form LeadFormData) (*Lead, error) {
	lead, err := c.next.Insert(ctx, form)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return lead, nil
}

func (c *CachedStore) DeleteByID(ctx context.Context, id string) error {
	if err := c.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedStore) invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, c.key).Err(); err != nil {
		c.logger.Warn("lead cache invalidation failed", "error", err)
	}
}
