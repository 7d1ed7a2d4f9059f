package cache

import (
	"charger-siting-service/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisTTL = 24 * time.Hour

// RedisGeocodeCache is the hot tier in front of SQLGeocodeCache.
type RedisGeocodeCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type redisEntry struct {
	Address string  `json:"address"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
}

// NewRedisGeocodeCache returns a cache using ttl for every entry; ttl <= 0 uses DefaultRedisTTL.
func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisGeocodeCache{client: client, prefix: "revgeo:", ttl: ttl}
}

func (r *RedisGeocodeCache) key(c domain.Coordinates) string {
	return r.prefix + CoordKey(c)
}

// Get returns the cached result for c. ok is false on a miss.
func (r *RedisGeocodeCache) Get(ctx context.Context, c domain.Coordinates) (domain.GeocodeResult, bool, error) {
	s, err := r.client.Get(ctx, r.key(c)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.GeocodeResult{}, false, nil
	}
	if err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("get redis geocode cache: %w", err)
	}

	var e redisEntry
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("get redis geocode cache: decode %q: %w", r.key(c), err)
	}

	return domain.GeocodeResult{
		Address:     e.Address,
		Coordinates: domain.Coordinates{Lon: e.Lon, Lat: e.Lat},
	}, true, nil
}

func (r *RedisGeocodeCache) Put(ctx context.Context, c domain.Coordinates, res domain.GeocodeResult) error {
	b, err := json.Marshal(redisEntry{
		Address: res.Address,
		Lon:     res.Coordinates.Lon,
		Lat:     res.Coordinates.Lat,
	})
	if err != nil {
		return fmt.Errorf("put redis geocode cache: %w", err)
	}

	if err := r.client.Set(ctx, r.key(c), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("put redis geocode cache: %w", err)
	}
	return nil
}
