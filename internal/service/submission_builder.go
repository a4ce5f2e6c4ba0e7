package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"facility-readings/internal/domain"
	"facility-readings/internal/notifier"
	"facility-readings/internal/repository"

	"go.uber.org/zap"
)

var (
	// ErrNoEntries 批次为空
	ErrNoEntries = errors.New("no entries to submit")
	// ErrNoListSelected 策略禁用单点录入且未选择清单
	ErrNoListSelected = errors.New("no list selected and ad-hoc points are disabled")
)

// UnknownPointError 批次内某条目引用了不存在的点位
// 整批中止，不做静默丢弃
type UnknownPointError struct {
	PointID string
}

func (e *UnknownPointError) Error() string {
	return fmt.Sprintf("unknown point %s", e.PointID)
}

// InvalidValueError 批次内某条目的值未通过校验
type InvalidValueError struct {
	PointID string
	Value   string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for point %s", e.Value, e.PointID)
}

// BuildReadings 把一组完成条目转换为正式读数记录
// 每条读数复制点位的位置/单位/类型，值为 SAT/UNSAT 字面量或解析后的数值，
// 整批共用同一个时间戳；任何条目引用未知点位时整批失败
func BuildReadings(entries []domain.PointCompletion, points map[string]*domain.ReadingPoint, timestamp time.Time) ([]domain.BuildingReading, error) {
	readings := make([]domain.BuildingReading, 0, len(entries))
	for _, entry := range entries {
		point, ok := points[entry.PointID]
		if !ok || point == nil {
			return nil, &UnknownPointError{PointID: entry.PointID}
		}

		var value domain.ReadingValue
		if point.ValidationType == domain.ValidationSatUnsat {
			value = domain.SatUnsatValue(entry.Value)
		} else {
			n, err := strconv.ParseFloat(entry.Value, 64)
			if err != nil {
				return nil, &InvalidValueError{PointID: entry.PointID, Value: entry.Value}
			}
			value = domain.NumberValue(n)
		}

		readings = append(readings, domain.BuildingReading{
			Building:    point.Building,
			Floor:       point.Floor,
			Room:        point.Room,
			ReadingType: point.ReadingType,
			Value:       value,
			Unit:        point.Unit,
			Timestamp:   timestamp,
			Notes:       entry.Notes,
			UserInfo:    entry.CompletedBy,
			PointID:     point.PointID,
		})
	}
	return readings, nil
}

// SubmissionService 提交构建器的策略层：
// 预检批次，构建读数，再按提交人角色决定直接入库还是进入审核
type SubmissionService struct {
	points      repository.PointsRepository
	readings    repository.ReadingsRepository
	submissions repository.SubmissionsRepository
	notifier    notifier.Notifier
	logger      *zap.Logger

	// AllowAdHocPoints 是否允许不选清单的单点提交（策略开关）
	AllowAdHocPoints bool
}

func NewSubmissionService(
	points repository.PointsRepository,
	readings repository.ReadingsRepository,
	submissions repository.SubmissionsRepository,
	n notifier.Notifier,
	allowAdHoc bool,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		points:           points,
		readings:         readings,
		submissions:      submissions,
		notifier:         n,
		AllowAdHocPoints: allowAdHoc,
		logger:           logger,
	}
}

// SubmitRequest 提交请求
type SubmitRequest struct {
	User     domain.User
	ListID   string
	ListName string
	Entries  []domain.PointCompletion
	Notes    string // 提交人备注
}

// SubmitResult 提交结果：二选一
// Committed 非空 = 直接入库；Submission 非空 = 进入审核（pending）
type SubmitResult struct {
	Committed  []domain.BuildingReading
	Submission *domain.ReviewSubmission
}

// RequiresReview 提交人角色是否需要审核
// admin / superadmin 直接入库，其余角色走审核流程
func RequiresReview(user domain.User) bool {
	return !user.HasRole(domain.RoleAdmin) && !user.HasRole(domain.RoleSuperAdmin)
}

// Submit 提交一批完成条目
// 预检失败返回校验错误（状态不变化），不做静默 no-op
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if !s.AllowAdHocPoints && req.ListID == "" {
		return nil, ErrNoListSelected
	}
	if len(req.Entries) == 0 {
		return nil, ErrNoEntries
	}

	points := make(map[string]*domain.ReadingPoint, len(req.Entries))
	for _, entry := range req.Entries {
		point, err := s.points.GetPoint(ctx, entry.PointID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &UnknownPointError{PointID: entry.PointID}
			}
			return nil, fmt.Errorf("lookup point %s: %w", entry.PointID, err)
		}
		if !IsValueValid(point, entry.Value) {
			return nil, &InvalidValueError{PointID: entry.PointID, Value: entry.Value}
		}
		points[entry.PointID] = point
	}

	readings, err := BuildReadings(req.Entries, points, time.Now())
	if err != nil {
		return nil, err
	}

	if !RequiresReview(req.User) {
		committed, err := s.readings.AppendReadings(ctx, readings)
		if err != nil {
			return nil, fmt.Errorf("commit readings: %w", err)
		}
		s.logger.Info("readings committed directly",
			zap.String("user_id", req.User.UserID),
			zap.Int("count", len(committed)))
		return &SubmitResult{Committed: committed}, nil
	}

	submission := &domain.ReviewSubmission{
		SubmitterID:   req.User.UserID,
		SubmitterName: req.User.DisplayName,
		ListID:        req.ListID,
		ListName:      req.ListName,
		Readings:      readings,
		Notes:         req.Notes,
		Status:        domain.SubmissionPending,
	}
	id, err := s.submissions.CreateSubmission(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	submission.SubmissionID = id

	// 通知只记结果，失败不回滚已落库的提交
	if err := s.notifier.SubmissionCreated(ctx, submission,
		[]domain.Role{domain.RoleReviewer, domain.RoleAdmin}, req.User.DisplayName); err != nil {
		s.logger.Warn("submission-created notification failed",
			zap.String("submission_id", id), zap.Error(err))
	}

	s.logger.Info("submission created",
		zap.String("submission_id", id),
		zap.String("user_id", req.User.UserID),
		zap.Int("count", len(readings)))
	return &SubmitResult{Submission: submission}, nil
}
