// Package cache is a Redis-backed store for normalized records. Reads
// and writes are best-effort: a Redis failure degrades to a cache miss,
// never to a request failure.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"marketlens/config"
	"marketlens/types"

	"github.com/redis/go-redis/v9"
)

// Config configures the Redis connection and entry lifetime.
type Config struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	TTL      time.Duration
}

// Cache wraps a Redis client with typed accessors for canonical records.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFromEnv creates a cache using REDIS_ADDR, REDIS_PASS, REDIS_DB and
// CACHE_TTL_SECONDS. Returns nil when REDIS_ADDR is unset: a nil *Cache
// is valid and disables caching.
func NewFromEnv() (*Cache, error) {
	addr := config.GetEnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		return nil, nil
	}
	return New(Config{
		Addr:     addr,
		Password: config.GetEnvOrDefault("REDIS_PASS", ""),
		DB:       config.GetEnvInt("REDIS_DB", 0),
		TTL:      config.GetEnvSeconds("CACHE_TTL_SECONDS", config.DefaultCacheTTL),
	})
}

// New creates a cache and verifies the connection.
func New(cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// GetArticle returns a cached article, or false on miss.
func (c *Cache) GetArticle(ctx context.Context, id string) (*types.Article, bool) {
	var a types.Article
	if !c.getJSON(ctx, "article:"+id, &a) {
		return nil, false
	}
	return &a, true
}

// SetArticle caches an article under its ID.
func (c *Cache) SetArticle(ctx context.Context, a *types.Article) {
	if a == nil || a.ID == "" {
		return
	}
	c.setJSON(ctx, "article:"+a.ID, a)
}

// GetNews returns a cached article list for the given limit, or false on miss.
func (c *Cache) GetNews(ctx context.Context, limit int) ([]*types.Article, bool) {
	var articles []*types.Article
	if !c.getJSON(ctx, fmt.Sprintf("news:%d", limit), &articles) {
		return nil, false
	}
	return articles, true
}

// SetNews caches an article list under its limit.
func (c *Cache) SetNews(ctx context.Context, limit int, articles []*types.Article) {
	c.setJSON(ctx, fmt.Sprintf("news:%d", limit), articles)
}

// GetStock returns a cached quote, or false on miss.
func (c *Cache) GetStock(ctx context.Context, symbol string) (*types.Stock, bool) {
	var s types.Stock
	if !c.getJSON(ctx, "stock:"+symbol, &s) {
		return nil, false
	}
	return &s, true
}

// SetStock caches a quote under its symbol.
func (c *Cache) SetStock(ctx context.Context, s *types.Stock) {
	if s == nil || s.Symbol == "" {
		return
	}
	c.setJSON(ctx, "stock:"+s.Symbol, s)
}

// GetHistory returns a cached quote-with-series, or false on miss.
func (c *Cache) GetHistory(ctx context.Context, symbol string, days int) (*types.Stock, bool) {
	var s types.Stock
	if !c.getJSON(ctx, fmt.Sprintf("history:%s:%d", symbol, days), &s) {
		return nil, false
	}
	return &s, true
}

// SetHistory caches a quote-with-series under its symbol and window.
func (c *Cache) SetHistory(ctx context.Context, symbol string, days int, s *types.Stock) {
	if s == nil {
		return
	}
	c.setJSON(ctx, fmt.Sprintf("history:%s:%d", symbol, days), s)
}

func (c *Cache) getJSON(ctx context.Context, key string, out interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("Warning: cache read failed for %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("Warning: cache entry for %s is corrupt, dropping: %v", key, err)
		c.client.Del(ctx, key)
		return false
	}
	return true
}

func (c *Cache) setJSON(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: cache encode failed for %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Warning: cache write failed for %s: %v", key, err)
	}
}
