package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON 泛型 JSON 缓存包装。load 返回 (nil, nil) 表示数据不存在，
// 会以 "null" 负缓存，避免不存在的 key 反复击穿回源。
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v) // nil -> "null"
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, e
	}
	return &out, nil
}
