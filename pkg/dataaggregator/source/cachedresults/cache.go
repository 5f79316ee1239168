package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	Cache *cache.Cache[string]
}

func (c *Cache) Setup(client *redis.Client, expiration time.Duration) {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	c.Cache = cache.New[string](redisStore)
}

// Get decodes a cached JSON object into destination, reporting whether it was found
func (c *Cache) Get(ctx context.Context, key string, destination any) bool {
	cachedObject, err := c.Cache.Get(ctx, key)
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(cachedObject), destination) == nil
}

func (c *Cache) Set(ctx context.Context, key string, object any) error {
	objectJSON, err := json.Marshal(object)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(objectJSON))
}
