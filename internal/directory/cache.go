package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"conftrack/internal/checkin"
)

const (
	cacheKeyPresent = "roster:present"
	cacheKeyAll     = "roster:all"
)

// Cached decorates a Directory with a short-TTL redis cache of the two
// dashboard listings. The dashboards poll every few seconds from many
// screens; the cache keeps that load off Postgres. Redis being down only
// costs the caching: reads fall through and writes still land.
type Cached struct {
	inner  checkin.Directory
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewCached wraps dir with a roster cache. A nil client disables caching.
func NewCached(dir checkin.Directory, client *redis.Client, ttl time.Duration, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{inner: dir, client: client, ttl: ttl, log: log}
}

func (c *Cached) List(ctx context.Context, presentOnly bool) ([]checkin.Attendee, error) {
	key := cacheKeyAll
	if presentOnly {
		key = cacheKeyPresent
	}

	if c.client != nil {
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var cached []checkin.Attendee
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			c.log.Debug("roster cache read failed", zap.Error(err))
		}
	}

	out, err := c.inner.List(ctx, presentOnly)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.log.Debug("roster cache write failed", zap.Error(err))
			}
		}
	}
	return out, nil
}

func (c *Cached) invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKeyPresent, cacheKeyAll).Err(); err != nil {
		c.log.Debug("roster cache invalidation failed", zap.Error(err))
	}
}

func (c *Cached) Get(ctx context.Context, id string) (checkin.Attendee, error) {
	return c.inner.Get(ctx, id)
}

func (c *Cached) ApplyScan(ctx context.Context, id string, upd checkin.ScanUpdate) (checkin.Attendee, error) {
	att, err := c.inner.ApplyScan(ctx, id, upd)
	if err == nil {
		c.invalidate(ctx)
	}
	return att, err
}

func (c *Cached) SetPresent(ctx context.Context, id string, present bool) (checkin.Attendee, error) {
	att, err := c.inner.SetPresent(ctx, id, present)
	if err == nil {
		c.invalidate(ctx)
	}
	return att, err
}

func (c *Cached) SetStatus(ctx context.Context, id string, status checkin.Status, scannedAt time.Time) (checkin.Attendee, error) {
	att, err := c.inner.SetStatus(ctx, id, status, scannedAt)
	if err == nil {
		c.invalidate(ctx)
	}
	return att, err
}

func (c *Cached) SeedUpsert(ctx context.Context, entries []checkin.RosterEntry, seededAt time.Time) (int, error) {
	count, err := c.inner.SeedUpsert(ctx, entries, seededAt)
	if err == nil {
		c.invalidate(ctx)
	}
	return count, err
}
