package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kanban-api/pkg/config"
	"kanban-api/pkg/logger"
)

// Client ครอบ go-redis ให้เหลือเฉพาะคำสั่งแบบ flag ที่มี TTL ที่ session store ใช้
// ทุก key ถูก prefix ด้วย namespace ของแอปเพื่อแชร์ Redis กับบริการอื่นได้
type Client struct {
	rdb    *redis.Client
	prefix string
}

func NewClient(cfg *config.RedisConfig) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("Redis connected", "addr", opt.Addr, "db", opt.DB, "prefix", cfg.KeyPrefix)
	return &Client{rdb: rdb, prefix: cfg.KeyPrefix}, nil
}

func (c *Client) key(kind, id string) string {
	return c.prefix + kind + id
}

// SetFlag ตั้ง key ให้หมดอายุเอง ttl <= 0 ไม่ทำอะไร
func (c *Client) SetFlag(ctx context.Context, kind, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, c.key(kind, id), "1", ttl).Err()
}

// TakeFlag ลบ key และบอกว่ามีอยู่ก่อนหรือไม่ (DEL เป็น atomic ใช้ได้ครั้งเดียวแม้มีหลาย instance)
func (c *Client) TakeFlag(ctx context.Context, kind, id string) (bool, error) {
	n, err := c.rdb.Del(ctx, c.key(kind, id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *Client) HasFlag(ctx context.Context, kind, id string) (bool, error) {
	err := c.rdb.Get(ctx, c.key(kind, id)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping ใช้เป็น health check
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
