package service

import (
	"context"
	"encoding/json"
	"time"

	"safetynet-alerts/internal/store"

	"go.uber.org/zap"
)

const viewKeyPrefix = "view:"

// ViewCache 聚合视图的短 TTL 缓存（coverage / phoneAlert）。
// 年龄按当天推导，TTL 必须远小于 24 小时；任何一种实体的变更都整体失效。
// nil *ViewCache 可用：所有操作退化为 no-op / miss。
type ViewCache struct {
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewViewCache(kv store.KV, ttl time.Duration, logger *zap.Logger) *ViewCache {
	return &ViewCache{kv: kv, ttl: ttl, logger: logger}
}

// GetJSON 命中时反序列化到 out 并返回 true
func (c *ViewCache) GetJSON(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}
	raw, err := c.kv.Get(ctx, viewKeyPrefix+key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.logger.Warn("dropping unreadable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.kv.Delete(ctx, viewKeyPrefix+key)
		return false
	}
	return true
}

func (c *ViewCache) PutJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, viewKeyPrefix+key, string(raw), c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 清空所有视图缓存（任何变更之后调用）
func (c *ViewCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.kv.ScanKeys(ctx, viewKeyPrefix+"*")
	if err != nil {
		c.logger.Warn("cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.kv.Delete(ctx, keys...); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
