package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listPrefix = "tpllist:"
	itemPrefix = "tplitem:"
)

// RedisCache holds serialized template lists and single records with
// independent TTLs. Invalidation scans by key prefix.
type RedisCache struct {
	client  *redis.Client
	ttlList time.Duration
	ttlItem time.Duration
}

func NewRedisCache(client *redis.Client, ttlList, ttlItem int) *RedisCache {
	return &RedisCache{
		client:  client,
		ttlList: time.Duration(ttlList) * time.Second,
		ttlItem: time.Duration(ttlItem) * time.Second,
	}
}

func (r *RedisCache) GetTemplateList(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, listPrefix+key).Bytes()
}

func (r *RedisCache) SetTemplateList(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, listPrefix+key, data, r.ttlList).Err()
}

func (r *RedisCache) GetTemplateItem(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, itemPrefix+key).Bytes()
}

func (r *RedisCache) SetTemplateItem(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, itemPrefix+key, data, r.ttlItem).Err()
}

func (r *RedisCache) InvalidateTemplateLists(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, listPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		// Best effort: a failed DEL only leaves a stale entry to expire.
		r.client.Del(ctx, iter.Val())
	}
	return iter.Err()
}

func (r *RedisCache) InvalidateTemplateItem(ctx context.Context, key string) error {
	return r.client.Del(ctx, itemPrefix+key).Err()
}
