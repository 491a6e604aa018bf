package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Powromita/EazyVenue/config"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/redis/go-redis/v9"
)

const postedVenuesKey = "catalog:venues:posted"

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// VenueCache stores the public venue catalog. A nil *VenueCache is a valid
// cache that always misses.
type VenueCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVenueCache(client *redis.Client, ttl time.Duration) *VenueCache {
	return &VenueCache{client: client, ttl: ttl}
}

// GetPosted returns the cached catalog and whether it was present.
func (c *VenueCache) GetPosted(ctx context.Context) ([]models.Venue, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, postedVenuesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get catalog from redis: %w", err)
	}

	var venues []models.Venue
	if err := json.Unmarshal(val, &venues); err != nil {
		return nil, false, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return venues, true, nil
}

func (c *VenueCache) SetPosted(ctx context.Context, venues []models.Venue) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := c.client.Set(ctx, postedVenuesKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set catalog in redis: %w", err)
	}
	return nil
}

func (c *VenueCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, postedVenuesKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog: %w", err)
	}
	return nil
}
