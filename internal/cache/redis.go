package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mmcloughlin/geohash"
)

// Cache is the narrow surface services need. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type RedisCache struct {
	Client *redis.Client
}

// NewRedis connects to addr and pings it once.
func NewRedis(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("[CACHE] connected to Redis addr=%s db=%d", addr, db)
	return &RedisCache{Client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// GeohashPrecision keeps reverse lookups within roughly 20m of each other on
// the same key.
const GeohashPrecision = 8

func ForwardGeocodeKey(location string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(location)), " ")
	return "geocode:fwd:" + normalized
}

func ReverseGeocodeKey(lat, lon float64) string {
	return "geocode:rev:" + geohash.EncodeWithPrecision(lat, lon, GeohashPrecision)
}
