package rdb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "courseplatform:"

// Cache is a byte-valued cache in redis with a fixed TTL per entry.
type Cache struct {
	db  *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if rdb == nil {
		return nil, errors.New("got nil redis client")
	}

	return &Cache{db: rdb, ttl: ttl}, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.db.Ping(ctx).Err(); err != nil {
		return errors.Wrapf(err, "failed to connect to redis at %s", c.db.Options().Addr)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached value and false when the key is missing or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.db.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "failed to get key %s", key)
	}
	return data, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.db.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to set key %s", key)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.db.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete key %s", key)
	}
	return nil
}
