package repository

import (
	"context"

	"facility-readings/internal/domain"
)

// PointPatch 点位部分更新（nil 字段不改动）
type PointPatch struct {
	Name           *string
	Building       *string
	Floor          *string
	Room           *string
	ReadingType    *string
	Component      *string
	Unit           *string
	Description    *string
	ValidationType *domain.ValidationType
	MinValue       **float64 // 外层 nil = 不改动；内层 nil = 清空下限
	MaxValue       **float64
	IsActive       *bool
}

// PointsRepository 点位 Repository 接口
type PointsRepository interface {
	// GetPoint 获取点位
	GetPoint(ctx context.Context, pointID string) (*domain.ReadingPoint, error)

	// ListPoints 全部点位（稳定顺序）
	ListPoints(ctx context.Context) ([]*domain.ReadingPoint, error)

	// CreatePoint 创建点位，返回新 ID
	CreatePoint(ctx context.Context, point *domain.ReadingPoint) (string, error)

	// UpdatePoint 部分更新
	UpdatePoint(ctx context.Context, pointID string, patch PointPatch) error

	// DeletePoint 硬删除（无软删除/版本化）
	DeletePoint(ctx context.Context, pointID string) error
}
