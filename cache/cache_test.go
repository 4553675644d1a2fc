package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuva/models"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, time.Minute)
}

func TestCache_RoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	key := RestaurantListKey("", true)

	_, ok := c.GetRestaurants(ctx, key)
	assert.False(t, ok)

	restaurants := []models.Restaurant{{ID: 1, Name: "Pizza Sun", IsOpen: true}}
	c.SetRestaurants(ctx, key, restaurants)

	cached, ok := c.GetRestaurants(ctx, key)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "Pizza Sun", cached[0].Name)
}

func TestCache_KeysAreQuerySpecific(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	c.SetRestaurants(ctx, RestaurantListKey("pizza", false), []models.Restaurant{{ID: 1}})

	_, ok := c.GetRestaurants(ctx, RestaurantListKey("pizza", true))
	assert.False(t, ok, "open-only listing must not reuse the unfiltered entry")
}

func TestCache_Invalidate(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	c.SetRestaurants(ctx, RestaurantListKey("", false), []models.Restaurant{{ID: 1}})
	c.SetRestaurants(ctx, RestaurantListKey("pizza", true), []models.Restaurant{{ID: 2}})

	c.InvalidateRestaurants(ctx)

	_, ok := c.GetRestaurants(ctx, RestaurantListKey("", false))
	assert.False(t, ok)
	_, ok = c.GetRestaurants(ctx, RestaurantListKey("pizza", true))
	assert.False(t, ok)
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, ok := c.GetRestaurants(ctx, RestaurantListKey("", false))
	assert.False(t, ok)
	// writes on a nil cache are no-ops, not panics
	c.SetRestaurants(ctx, RestaurantListKey("", false), nil)
	c.InvalidateRestaurants(ctx)
}
