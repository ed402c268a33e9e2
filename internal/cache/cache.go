package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"postpilot/internal/config"
	"postpilot/internal/logger"
)

// Cache wraps redis with an in-memory fallback so a missing redis only
// costs cross-instance consistency, never availability.
type Cache struct {
	client *redis.Client

	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

func New(cfg config.Redis) *Cache {
	c := &Cache{entries: map[string]memEntry{}}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Sugar.Warnw("redis unavailable, using in-memory cache", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return c
	}

	c.client = client
	return c
}

func (c *Cache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SaveState stores an OAuth state token with TTL to mitigate CSRF.
func (c *Cache) SaveState(ctx context.Context, state string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if c.client != nil {
		_ = c.client.Set(ctx, "oauth:state:"+state, "1", ttl).Err()
		return
	}
	c.mu.Lock()
	c.entries["oauth:state:"+state] = memEntry{value: []byte("1"), expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// ConsumeState validates and removes a state token. Single use.
func (c *Cache) ConsumeState(ctx context.Context, state string) bool {
	key := "oauth:state:" + state
	if c.client != nil {
		v, err := c.client.GetDel(ctx, key).Result()
		return err == nil && v != ""
	}
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return ok && time.Now().Before(entry.expiresAt)
}

// SetJSON caches a marshaled value under key with TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if c.client != nil {
		_ = c.client.Set(ctx, key, b, ttl).Err()
		return
	}
	c.mu.Lock()
	c.entries[key] = memEntry{value: b, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// GetJSON unmarshals a cached value into dest, reporting whether it was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	var b []byte
	if c.client != nil {
		v, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			return false
		}
		b = v
	} else {
		c.mu.Lock()
		entry, ok := c.entries[key]
		if ok && time.Now().After(entry.expiresAt) {
			delete(c.entries, key)
			ok = false
		}
		c.mu.Unlock()
		if !ok {
			return false
		}
		b = entry.value
	}
	return json.Unmarshal(b, dest) == nil
}

// Delete drops a cached key, used to invalidate stale dashboards after writes.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c.client != nil {
		_ = c.client.Del(ctx, key).Err()
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
