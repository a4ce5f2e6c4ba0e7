package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"

	"go.uber.org/zap"
)

// ReadingFilter 读数查询过滤条件，各谓词取 AND
// Component 通过来源点位的 component 字段联查：无 point_id 的读数无条件通过该谓词
type ReadingFilter struct {
	ReadingType string
	Building    string
	Room        string
	Component   string
	Date        *domain.Date // 按自然日比较
}

// ReadingService 正式读数的查询投影与删除入口
// 表格默认按时间戳倒序（最新在前）；升/降序切换不改动底层存储顺序
type ReadingService struct {
	readings repository.ReadingsRepository
	points   repository.PointsRepository
	logger   *zap.Logger
}

func NewReadingService(readings repository.ReadingsRepository, points repository.PointsRepository, logger *zap.Logger) *ReadingService {
	return &ReadingService{
		readings: readings,
		points:   points,
		logger:   logger,
	}
}

// Query 过滤 + 排序后的读数视图
func (s *ReadingService) Query(ctx context.Context, filter ReadingFilter, ascending bool) ([]domain.BuildingReading, error) {
	all, err := s.readings.ListReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}

	out := make([]domain.BuildingReading, 0, len(all))
	for _, r := range all {
		if filter.ReadingType != "" && r.ReadingType != filter.ReadingType {
			continue
		}
		if filter.Building != "" && r.Building != filter.Building {
			continue
		}
		if filter.Room != "" && r.Room != filter.Room {
			continue
		}
		if filter.Component != "" && !s.matchesComponent(ctx, r, filter.Component) {
			continue
		}
		if filter.Date != nil && !domain.DateOf(r.Timestamp).Equal(*filter.Date) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// matchesComponent 组件谓词：联查来源点位
// 点位已被删除的读数无法解析组件，视为不匹配
func (s *ReadingService) matchesComponent(ctx context.Context, r domain.BuildingReading, component string) bool {
	if r.PointID == "" {
		return true
	}
	point, err := s.points.GetPoint(ctx, r.PointID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("component join failed", zap.String("point_id", r.PointID), zap.Error(err))
		}
		return false
	}
	return point.Component == component
}

// Remove 按 ID 删除读数（无级联影响）
func (s *ReadingService) Remove(ctx context.Context, readingID string) error {
	if err := s.readings.RemoveReading(ctx, readingID); err != nil {
		return fmt.Errorf("remove reading %s: %w", readingID, err)
	}
	s.logger.Info("reading removed", zap.String("reading_id", readingID))
	return nil
}
