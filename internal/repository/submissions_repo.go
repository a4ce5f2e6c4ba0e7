package repository

import (
	"context"

	"facility-readings/internal/domain"
)

// SubmissionFilters 审核提交查询过滤器
type SubmissionFilters struct {
	Status      domain.SubmissionStatus // 为空则不过滤
	SubmitterID string
}

// SubmissionsRepository 审核提交 Repository 接口
type SubmissionsRepository interface {
	// GetSubmission 获取提交
	GetSubmission(ctx context.Context, submissionID string) (*domain.ReviewSubmission, error)

	// ListSubmissions 按过滤条件查询（插入顺序）
	ListSubmissions(ctx context.Context, filters SubmissionFilters) ([]*domain.ReviewSubmission, error)

	// CreateSubmission 创建提交，返回新 ID
	CreateSubmission(ctx context.Context, submission *domain.ReviewSubmission) (string, error)

	// UpdateSubmission 整体替换（按 SubmissionID 定位）
	UpdateSubmission(ctx context.Context, submission *domain.ReviewSubmission) error
}
