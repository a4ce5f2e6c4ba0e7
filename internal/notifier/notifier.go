package notifier

import (
	"context"

	"facility-readings/internal/domain"
)

// Notifier 通知协作方接口
// 返回值只用于日志：通知失败绝不回滚或阻塞触发它的状态变更
type Notifier interface {
	// SubmissionCreated 新 pending 提交创建时，通知审核角色
	SubmissionCreated(ctx context.Context, submission *domain.ReviewSubmission, recipientRoles []domain.Role, submitterName string) error

	// SubmissionReviewed 提交到达终态时，通知原提交人
	SubmissionReviewed(ctx context.Context, submission *domain.ReviewSubmission, submitterEmail, submitterName, reviewerName string) error
}

// Nop 空实现（通知未配置时使用）
type Nop struct{}

func (Nop) SubmissionCreated(ctx context.Context, submission *domain.ReviewSubmission, recipientRoles []domain.Role, submitterName string) error {
	return nil
}

func (Nop) SubmissionReviewed(ctx context.Context, submission *domain.ReviewSubmission, submitterEmail, submitterName, reviewerName string) error {
	return nil
}
