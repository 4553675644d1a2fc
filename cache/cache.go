package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"menuva/models"
)

const restaurantKeyPrefix = "restaurants:"

// Cache is a read-through redis cache for the public restaurant listing.
// A nil *Cache is valid and disables caching; the database stays the single
// source of truth either way.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// RestaurantListKey builds the cache key for a normalized listing query.
func RestaurantListKey(search string, openOnly bool) string {
	key := restaurantKeyPrefix + search
	if openOnly {
		key += ":open"
	}
	return key
}

// GetRestaurants returns the cached listing and whether it was present.
func (c *Cache) GetRestaurants(ctx context.Context, key string) ([]models.Restaurant, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var restaurants []models.Restaurant
	if err := json.Unmarshal(raw, &restaurants); err != nil {
		return nil, false
	}
	return restaurants, true
}

// SetRestaurants stores a listing under key for the configured TTL.
func (c *Cache) SetRestaurants(ctx context.Context, key string, restaurants []models.Restaurant) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(restaurants)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, payload, c.ttl)
}

// InvalidateRestaurants drops every cached listing after a catalog write.
func (c *Cache) InvalidateRestaurants(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, restaurantKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
