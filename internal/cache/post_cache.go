package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
)

const keyList = "posts:list:"

// PostCache caches per-owner post lists in Redis.
type PostCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPostCache returns a new PostCache.
func NewPostCache(rdb *redis.Client, ttl time.Duration) *PostCache {
	return &PostCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for the owner, or nil on miss.
func (c *PostCache) GetList(ctx context.Context, ownerID primitive.ObjectID) ([]dom.PostWithOwner, error) {
	b, err := c.rdb.Get(ctx, keyList+ownerID.Hex()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.PostWithOwner
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the owner's list in cache.
func (c *PostCache) SetList(ctx context.Context, ownerID primitive.ObjectID, list []dom.PostWithOwner) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList+ownerID.Hex(), b, c.ttl).Err()
}

// Invalidate drops the owner's cached list (cache invalidation on write).
func (c *PostCache) Invalidate(ctx context.Context, ownerID primitive.ObjectID) error {
	return c.rdb.Del(ctx, keyList+ownerID.Hex()).Err()
}
