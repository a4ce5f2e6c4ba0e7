package repository

import (
	"context"

	"facility-readings/internal/domain"
)

// ListsRepository 点位清单 Repository 接口
type ListsRepository interface {
	// GetList 获取清单
	GetList(ctx context.Context, listID string) (*domain.ReadingPointList, error)

	// ListLists 全部清单（插入顺序）
	ListLists(ctx context.Context) ([]*domain.ReadingPointList, error)

	// CreateList 创建清单，返回新 ID
	CreateList(ctx context.Context, list *domain.ReadingPointList) (string, error)

	// UpdateList 整体替换（按 ListID 定位）
	UpdateList(ctx context.Context, list *domain.ReadingPointList) error

	// DeleteList 删除清单
	DeleteList(ctx context.Context, listID string) error
}
