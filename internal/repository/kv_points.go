package repository

import (
	"context"
	"sync"
	"time"

	"facility-readings/internal/domain"
	"facility-readings/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KVPointsRepo 点位 Repository 的 KV 实现
// 集合常驻内存，每次变更后整体写回 KV（KeyPoints）
type KVPointsRepo struct {
	mu     sync.RWMutex
	kv     store.KV
	logger *zap.Logger
	points []domain.ReadingPoint
}

func NewKVPointsRepo(ctx context.Context, kv store.KV, logger *zap.Logger) *KVPointsRepo {
	return &KVPointsRepo{
		kv:     kv,
		logger: logger,
		points: loadCollection[domain.ReadingPoint](ctx, kv, KeyPoints, logger),
	}
}

func (r *KVPointsRepo) GetPoint(ctx context.Context, pointID string) (*domain.ReadingPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.points {
		if r.points[i].PointID == pointID {
			p := r.points[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *KVPointsRepo) ListPoints(ctx context.Context) ([]*domain.ReadingPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ReadingPoint, 0, len(r.points))
	for i := range r.points {
		p := r.points[i]
		out = append(out, &p)
	}
	return out, nil
}

func (r *KVPointsRepo) CreatePoint(ctx context.Context, point *domain.ReadingPoint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := *point
	p.PointID = uuid.NewString()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.points = append(r.points, p)
	if err := saveCollection(ctx, r.kv, KeyPoints, r.points, r.logger); err != nil {
		return "", err
	}
	return p.PointID, nil
}

func (r *KVPointsRepo) UpdatePoint(ctx context.Context, pointID string, patch PointPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.points {
		if r.points[i].PointID != pointID {
			continue
		}
		applyPointPatch(&r.points[i], patch)
		return saveCollection(ctx, r.kv, KeyPoints, r.points, r.logger)
	}
	return ErrNotFound
}

func (r *KVPointsRepo) DeletePoint(ctx context.Context, pointID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.points {
		if r.points[i].PointID != pointID {
			continue
		}
		r.points = append(r.points[:i], r.points[i+1:]...)
		return saveCollection(ctx, r.kv, KeyPoints, r.points, r.logger)
	}
	return ErrNotFound
}

func applyPointPatch(p *domain.ReadingPoint, patch PointPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Building != nil {
		p.Building = *patch.Building
	}
	if patch.Floor != nil {
		p.Floor = *patch.Floor
	}
	if patch.Room != nil {
		p.Room = *patch.Room
	}
	if patch.ReadingType != nil {
		p.ReadingType = *patch.ReadingType
	}
	if patch.Component != nil {
		p.Component = *patch.Component
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ValidationType != nil {
		p.ValidationType = *patch.ValidationType
	}
	if patch.MinValue != nil {
		p.MinValue = *patch.MinValue
	}
	if patch.MaxValue != nil {
		p.MaxValue = *patch.MaxValue
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
}
