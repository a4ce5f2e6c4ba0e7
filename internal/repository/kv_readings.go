package repository

import (
	"context"
	"sync"

	"facility-readings/internal/domain"
	"facility-readings/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KVReadingsRepo 正式读数存储的 KV 实现（KeyReadings）
type KVReadingsRepo struct {
	mu       sync.RWMutex
	kv       store.KV
	logger   *zap.Logger
	readings []domain.BuildingReading
}

func NewKVReadingsRepo(ctx context.Context, kv store.KV, logger *zap.Logger) *KVReadingsRepo {
	return &KVReadingsRepo{
		kv:       kv,
		logger:   logger,
		readings: loadCollection[domain.BuildingReading](ctx, kv, KeyReadings, logger),
	}
}

func (r *KVReadingsRepo) AppendReadings(ctx context.Context, readings []domain.BuildingReading) ([]domain.BuildingReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appended := make([]domain.BuildingReading, 0, len(readings))
	for _, reading := range readings {
		reading.ReadingID = uuid.NewString()
		appended = append(appended, reading)
	}
	next := append(r.readings, appended...)
	if err := saveCollection(ctx, r.kv, KeyReadings, next, r.logger); err != nil {
		return nil, err
	}
	r.readings = next
	return appended, nil
}

func (r *KVReadingsRepo) ListReadings(ctx context.Context) ([]domain.BuildingReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.BuildingReading, len(r.readings))
	copy(out, r.readings)
	return out, nil
}

func (r *KVReadingsRepo) RemoveReading(ctx context.Context, readingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.readings {
		if r.readings[i].ReadingID != readingID {
			continue
		}
		r.readings = append(r.readings[:i], r.readings[i+1:]...)
		return saveCollection(ctx, r.kv, KeyReadings, r.readings, r.logger)
	}
	return ErrNotFound
}
