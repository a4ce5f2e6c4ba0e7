package repository

import (
	"context"

	"facility-readings/internal/domain"
)

// ReadingsRepository 正式读数存储接口
// 插入有序；读数一经追加不可修改，只能按 ID 删除（删除无级联影响）
type ReadingsRepository interface {
	// AppendReadings 批量追加（原子：要么全部进入，要么全部不进入）
	// 存储负责分配 reading_id，其余字段原样保留
	AppendReadings(ctx context.Context, readings []domain.BuildingReading) ([]domain.BuildingReading, error)

	// ListReadings 全部读数（插入顺序）
	ListReadings(ctx context.Context) ([]domain.BuildingReading, error)

	// RemoveReading 按 ID 删除
	RemoveReading(ctx context.Context, readingID string) error
}
