package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"facility-readings/internal/domain"
	"facility-readings/internal/notifier"
	"facility-readings/internal/repository"

	"go.uber.org/zap"
)

// ErrNotPending 对非 pending 提交派发审核动作：按错误拒绝，绝不静默重放
var ErrNotPending = errors.New("submission is not pending")

// ReviewService 审核状态机
// pending → approved | rejected | needs_revision，三个目标状态均为终态
// approve 额外把批次原子追加进正式读数存储：这是审核路径读数进入存储的唯一入口
type ReviewService struct {
	mu          sync.Mutex
	submissions repository.SubmissionsRepository
	readings    repository.ReadingsRepository
	users       repository.UsersRepository
	notifier    notifier.Notifier
	logger      *zap.Logger
}

func NewReviewService(
	submissions repository.SubmissionsRepository,
	readings repository.ReadingsRepository,
	users repository.UsersRepository,
	n notifier.Notifier,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		submissions: submissions,
		readings:    readings,
		users:       users,
		notifier:    n,
		logger:      logger,
	}
}

// ReviewRequest 审核请求
type ReviewRequest struct {
	SubmissionID string
	Action       domain.ReviewAction
	Reviewer     domain.User
	Comments     string // 可为空
}

// Review 对 pending 提交执行一次审核动作
// 修订请求不会链接后续的重新提交：原记录停留在 needs_revision 作永久审计
func (s *ReviewService) Review(ctx context.Context, req ReviewRequest) (*domain.ReviewSubmission, error) {
	status, ok := req.Action.Status()
	if !ok {
		return nil, fmt.Errorf("invalid review action %q", req.Action)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	submission, err := s.submissions.GetSubmission(ctx, req.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("submission %s: %w", req.SubmissionID, err)
	}
	if submission.Status != domain.SubmissionPending {
		return nil, fmt.Errorf("submission %s (status %s): %w",
			req.SubmissionID, submission.Status, ErrNotPending)
	}

	// approve 先落批次再落状态：批次进不了存储就不提交状态变更
	if status == domain.SubmissionApproved {
		if _, err := s.readings.AppendReadings(ctx, submission.Readings); err != nil {
			return nil, fmt.Errorf("append approved readings: %w", err)
		}
	}

	now := time.Now()
	submission.Status = status
	submission.ReviewerID = req.Reviewer.UserID
	submission.ReviewerName = req.Reviewer.DisplayName
	submission.ReviewedAt = &now
	submission.ReviewComments = req.Comments

	if err := s.submissions.UpdateSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("update submission %s: %w", req.SubmissionID, err)
	}

	s.logger.Info("submission reviewed",
		zap.String("submission_id", submission.SubmissionID),
		zap.String("status", string(status)),
		zap.String("reviewer_id", req.Reviewer.UserID))

	s.notifySubmitter(ctx, submission)
	return submission, nil
}

// notifySubmitter 终态通知原提交人（fire-and-forget：失败只记日志）
func (s *ReviewService) notifySubmitter(ctx context.Context, submission *domain.ReviewSubmission) {
	email := ""
	name := submission.SubmitterName
	if user, err := s.users.GetUser(ctx, submission.SubmitterID); err == nil {
		email = user.Email
		if name == "" {
			name = user.DisplayName
		}
	}
	if err := s.notifier.SubmissionReviewed(ctx, submission, email, name, submission.ReviewerName); err != nil {
		s.logger.Warn("submission-reviewed notification failed",
			zap.String("submission_id", submission.SubmissionID), zap.Error(err))
	}
}

// PendingSubmissions 待审核提交（插入顺序）
func (s *ReviewService) PendingSubmissions(ctx context.Context) ([]*domain.ReviewSubmission, error) {
	return s.submissions.ListSubmissions(ctx, repository.SubmissionFilters{
		Status: domain.SubmissionPending,
	})
}

// Submission 按 ID 查询提交
func (s *ReviewService) Submission(ctx context.Context, submissionID string) (*domain.ReviewSubmission, error) {
	return s.submissions.GetSubmission(ctx, submissionID)
}

// SubmissionsBySubmitter 某提交人的全部提交
func (s *ReviewService) SubmissionsBySubmitter(ctx context.Context, submitterID string) ([]*domain.ReviewSubmission, error) {
	return s.submissions.ListSubmissions(ctx, repository.SubmissionFilters{
		SubmitterID: submitterID,
	})
}
