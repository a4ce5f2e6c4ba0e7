package service

import (
	"context"
	"fmt"
	"strings"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"

	"go.uber.org/zap"
)

// PointService 点位管理（管理员操作）
type PointService struct {
	points repository.PointsRepository
	logger *zap.Logger
}

func NewPointService(points repository.PointsRepository, logger *zap.Logger) *PointService {
	return &PointService{points: points, logger: logger}
}

// CreatePointRequest 创建点位请求
type CreatePointRequest struct {
	Name           string                `json:"name"`
	Building       string                `json:"building"`
	Floor          string                `json:"floor"`
	Room           string                `json:"room"`
	ReadingType    string                `json:"reading_type"`
	Component      string                `json:"component,omitempty"`
	Unit           string                `json:"unit,omitempty"`
	Description    string                `json:"description,omitempty"`
	ValidationType domain.ValidationType `json:"validation_type"`
	MinValue       *float64              `json:"min_value,omitempty"`
	MaxValue       *float64              `json:"max_value,omitempty"`
}

// CreatePoint 创建点位
func (s *PointService) CreatePoint(ctx context.Context, req CreatePointRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", fmt.Errorf("name is required")
	}
	if req.Building == "" || req.Room == "" {
		return "", fmt.Errorf("building and room are required")
	}
	if req.ReadingType == "" {
		return "", fmt.Errorf("reading_type is required")
	}
	if !req.ValidationType.Valid() {
		return "", fmt.Errorf("invalid validation_type %q", req.ValidationType)
	}
	if req.MinValue != nil && req.MaxValue != nil && *req.MinValue > *req.MaxValue {
		return "", fmt.Errorf("min_value must not exceed max_value")
	}

	point := &domain.ReadingPoint{
		Name:           strings.TrimSpace(req.Name),
		Building:       req.Building,
		Floor:          req.Floor,
		Room:           req.Room,
		ReadingType:    req.ReadingType,
		Component:      req.Component,
		Unit:           req.Unit,
		Description:    req.Description,
		ValidationType: req.ValidationType,
		MinValue:       req.MinValue,
		MaxValue:       req.MaxValue,
		IsActive:       true,
	}
	id, err := s.points.CreatePoint(ctx, point)
	if err != nil {
		return "", fmt.Errorf("create point: %w", err)
	}
	s.logger.Info("point created", zap.String("point_id", id), zap.String("name", point.Name))
	return id, nil
}

// UpdatePoint 部分更新（nil 字段不改动）
func (s *PointService) UpdatePoint(ctx context.Context, pointID string, patch repository.PointPatch) error {
	if patch.ValidationType != nil && !patch.ValidationType.Valid() {
		return fmt.Errorf("invalid validation_type %q", *patch.ValidationType)
	}
	if err := s.points.UpdatePoint(ctx, pointID, patch); err != nil {
		return fmt.Errorf("update point %s: %w", pointID, err)
	}
	return nil
}

// DeletePoint 硬删除
func (s *PointService) DeletePoint(ctx context.Context, pointID string) error {
	if err := s.points.DeletePoint(ctx, pointID); err != nil {
		return fmt.Errorf("delete point %s: %w", pointID, err)
	}
	s.logger.Info("point deleted", zap.String("point_id", pointID))
	return nil
}

// GetPoint 查询点位
func (s *PointService) GetPoint(ctx context.Context, pointID string) (*domain.ReadingPoint, error) {
	return s.points.GetPoint(ctx, pointID)
}

// ListPoints 全部点位
func (s *PointService) ListPoints(ctx context.Context) ([]*domain.ReadingPoint, error) {
	return s.points.ListPoints(ctx)
}
