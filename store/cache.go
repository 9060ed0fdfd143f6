package store

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"project-board/domain"
)

// SnapshotCache keeps the encoded project list in Redis so repeated reads
// between board changes skip snapshot and encode work. Entries are evicted
// synchronously on every store change; a TTL bounds staleness if an eviction
// is lost. A nil Redis client disables caching and reads fall through to the
// store.
type SnapshotCache struct {
	store *Store
	redis *redis.Client
	ttl   time.Duration
}

// NewSnapshotCache wraps the store and subscribes for eviction. Cached
// snapshots from a previous process would describe a board that no longer
// exists, so the keys are dropped up front.
func NewSnapshotCache(s *Store, client *redis.Client, ttl time.Duration) *SnapshotCache {
	if s == nil {
		panic("store.NewSnapshotCache: store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	c := &SnapshotCache{store: s, redis: client, ttl: ttl}
	c.evict(context.Background())
	s.Subscribe(func([]domain.Project) {
		c.evict(context.Background())
	})
	return c
}

// ListJSON returns the encoded project list, filtered to one status when
// given, reading through the cache.
func (c *SnapshotCache) ListJSON(ctx context.Context, status domain.Status) ([]byte, error) {
	key := snapshotKey(status)
	if data, ok := c.load(ctx, key); ok {
		return data, nil
	}

	var projects []domain.Project
	if status == "" {
		projects = c.store.Projects()
	} else {
		projects = c.store.ProjectsByStatus(status)
	}
	data, err := sonic.Marshal(projects)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, data)
	return data, nil
}

func (c *SnapshotCache) load(ctx context.Context, key string) ([]byte, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// Redis trouble must never fail a read; drop the key and
			// serve from the store.
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	return data, true
}

func (c *SnapshotCache) save(ctx context.Context, key string, data []byte) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *SnapshotCache) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx,
		snapshotKey(""),
		snapshotKey(domain.StatusActive),
		snapshotKey(domain.StatusFinished),
	).Result()
}

func snapshotKey(status domain.Status) string {
	if status == "" {
		return "projects:all"
	}
	return "projects:" + string(status)
}
