package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"facility-readings/internal/store"

	"go.uber.org/zap"
)

// 各集合在 KV 中的固定 key（整集合 JSON blob）
const (
	KeyPoints      = "facility:points"
	KeyLists       = "facility:lists"
	KeyReadings    = "facility:readings"
	KeySubmissions = "facility:submissions"
	KeyUsers       = "facility:users"
)

var ErrNotFound = errors.New("not found")

// loadCollection 从 KV 读取整集合
// 首次运行（key 缺失）或内容损坏时回退为空集合：只记日志，绝不上抛崩溃
func loadCollection[T any](ctx context.Context, kv store.KV, key string, logger *zap.Logger) []T {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			logger.Warn("load collection failed, falling back to empty",
				zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("malformed collection, falling back to empty",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return items
}

// saveCollection 把整集合写回 KV（每次变更后的显式同步）
func saveCollection[T any](ctx context.Context, kv store.KV, key string, items []T, logger *zap.Logger) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, key, string(b), time.Duration(0)); err != nil {
		logger.Error("persist collection failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
