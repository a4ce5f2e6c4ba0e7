package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"

	"go.uber.org/zap"
)

// ListService 点位清单管理（管理员操作）
type ListService struct {
	lists  repository.ListsRepository
	points repository.PointsRepository
	logger *zap.Logger
}

func NewListService(lists repository.ListsRepository, points repository.PointsRepository, logger *zap.Logger) *ListService {
	return &ListService{lists: lists, points: points, logger: logger}
}

// CreateListRequest 创建清单请求
// ExpectedCompletionDate 为 "YYYY-MM-DD" 字符串，格式非法直接拒绝
type CreateListRequest struct {
	Name                   string   `json:"name"`
	PointIDs               []string `json:"point_ids"`
	ExpectedCompletionDate string   `json:"expected_completion_date,omitempty"`
	IsModel                bool     `json:"is_model"`
	CreatedBy              string   `json:"created_by"`
}

// CreateList 创建清单（点位引用逐一校验）
func (s *ListService) CreateList(ctx context.Context, req CreateListRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", fmt.Errorf("name is required")
	}
	for _, pointID := range req.PointIDs {
		if _, err := s.points.GetPoint(ctx, pointID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", &UnknownPointError{PointID: pointID}
			}
			return "", fmt.Errorf("lookup point %s: %w", pointID, err)
		}
	}

	list := &domain.ReadingPointList{
		Name:      strings.TrimSpace(req.Name),
		PointIDs:  req.PointIDs,
		IsModel:   req.IsModel,
		CreatedBy: req.CreatedBy,
	}
	if req.ExpectedCompletionDate != "" {
		date, err := domain.ParseDate(req.ExpectedCompletionDate)
		if err != nil {
			return "", err
		}
		list.ExpectedCompletionDate = &date
	}

	id, err := s.lists.CreateList(ctx, list)
	if err != nil {
		return "", fmt.Errorf("create list: %w", err)
	}
	s.logger.Info("list created", zap.String("list_id", id), zap.String("name", list.Name))
	return id, nil
}

// UpdateListRequest 更新清单请求（nil 字段不改动）
type UpdateListRequest struct {
	Name                   *string   `json:"name,omitempty"`
	PointIDs               *[]string `json:"point_ids,omitempty"`
	ExpectedCompletionDate *string   `json:"expected_completion_date,omitempty"` // 空串 = 清除日期
	IsModel                *bool     `json:"is_model,omitempty"`
}

// UpdateList 更新清单
func (s *ListService) UpdateList(ctx context.Context, listID string, req UpdateListRequest) error {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return fmt.Errorf("list %s: %w", listID, err)
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return fmt.Errorf("name is required")
		}
		list.Name = strings.TrimSpace(*req.Name)
	}
	if req.PointIDs != nil {
		for _, pointID := range *req.PointIDs {
			if _, err := s.points.GetPoint(ctx, pointID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return &UnknownPointError{PointID: pointID}
				}
				return fmt.Errorf("lookup point %s: %w", pointID, err)
			}
		}
		list.PointIDs = *req.PointIDs
	}
	if req.ExpectedCompletionDate != nil {
		if *req.ExpectedCompletionDate == "" {
			list.ExpectedCompletionDate = nil
		} else {
			date, err := domain.ParseDate(*req.ExpectedCompletionDate)
			if err != nil {
				return err
			}
			list.ExpectedCompletionDate = &date
		}
	}
	if req.IsModel != nil {
		list.IsModel = *req.IsModel
	}
	return s.lists.UpdateList(ctx, list)
}

// CopyList 复制清单（模板或普通清单均可作为复制源）
// 副本拿到全新 ID 和时间戳；expected_completion_date 重置为复制当天
func (s *ListService) CopyList(ctx context.Context, listID, createdBy string) (string, error) {
	src, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", listID, err)
	}

	today := domain.Today()
	pointIDs := make([]string, len(src.PointIDs))
	copy(pointIDs, src.PointIDs)

	dup := &domain.ReadingPointList{
		Name:                   src.Name + " (copy)",
		PointIDs:               pointIDs,
		ExpectedCompletionDate: &today,
		IsModel:                false,
		CreatedBy:              createdBy,
	}
	id, err := s.lists.CreateList(ctx, dup)
	if err != nil {
		return "", fmt.Errorf("copy list %s: %w", listID, err)
	}
	s.logger.Info("list copied",
		zap.String("source_list_id", listID), zap.String("list_id", id))
	return id, nil
}

// DeleteList 删除清单
func (s *ListService) DeleteList(ctx context.Context, listID string) error {
	if err := s.lists.DeleteList(ctx, listID); err != nil {
		return fmt.Errorf("delete list %s: %w", listID, err)
	}
	s.logger.Info("list deleted", zap.String("list_id", listID))
	return nil
}

// GetList 查询清单
func (s *ListService) GetList(ctx context.Context, listID string) (*domain.ReadingPointList, error) {
	return s.lists.GetList(ctx, listID)
}

// WorkableLists 可开工清单（排除模板与未到期清单，只留仍有未完成点位的）
func (s *ListService) WorkableLists(ctx context.Context, completedPointIDs map[string]bool, today domain.Date) ([]*domain.ReadingPointList, error) {
	all, err := s.lists.ListLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return IncompleteDueOrOverdueLists(all, completedPointIDs, today), nil
}

// ListLists 全部清单（管理视图，含模板）
func (s *ListService) ListLists(ctx context.Context) ([]*domain.ReadingPointList, error) {
	return s.lists.ListLists(ctx)
}
