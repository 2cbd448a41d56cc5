package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"mealdrop/internal/domain"

	"github.com/redis/go-redis/v9"
)

// CatalogCache keeps restaurant and menu listings in Redis for a short
// TTL. The catalog is read-only from this service's perspective, so
// staleness is bounded by the TTL alone.
type CatalogCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{Client: client, TTL: ttl}
}

func (c *CatalogCache) restaurantsKey() string {
	return "catalog:restaurants"
}

func (c *CatalogCache) menuKey(restaurantID int) string {
	return "catalog:menu:" + strconv.Itoa(restaurantID)
}

// GetRestaurants returns nil with no error on a cache miss.
func (c *CatalogCache) GetRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	payload, err := c.Client.Get(ctx, c.restaurantsKey()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var restaurants []domain.Restaurant
	if err := json.Unmarshal(payload, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *CatalogCache) SetRestaurants(ctx context.Context, restaurants []domain.Restaurant) error {
	return c.setJSON(ctx, c.restaurantsKey(), restaurants)
}

// GetMenu returns nil with no error on a cache miss.
func (c *CatalogCache) GetMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	payload, err := c.Client.Get(ctx, c.menuKey(restaurantID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *CatalogCache) SetMenu(ctx context.Context, restaurantID int, items []domain.MenuItem) error {
	return c.setJSON(ctx, c.menuKey(restaurantID), items)
}

func (c *CatalogCache) setJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}
