package notifier

import (
	"context"
	"fmt"
	"time"

	"facility-readings/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebhookNotifier 把提交事件 POST 到外部通知服务（邮件投递在对端完成）
type WebhookNotifier struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewWebhookNotifier 创建 webhook 通知客户端
func NewWebhookNotifier(baseURL string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		logger:     logger,
	}
}

// submissionCreatedPayload 新提交事件
type submissionCreatedPayload struct {
	SubmissionID   string        `json:"submission_id"`
	ListName       string        `json:"list_name,omitempty"`
	SubmitterName  string        `json:"submitter_name"`
	ReadingCount   int           `json:"reading_count"`
	RecipientRoles []domain.Role `json:"recipient_roles"`
}

// submissionReviewedPayload 终态事件
type submissionReviewedPayload struct {
	SubmissionID   string                  `json:"submission_id"`
	Status         domain.SubmissionStatus `json:"status"`
	SubmitterEmail string                  `json:"submitter_email,omitempty"`
	SubmitterName  string                  `json:"submitter_name"`
	ReviewerName   string                  `json:"reviewer_name"`
	ReviewComments string                  `json:"review_comments,omitempty"`
}

func (n *WebhookNotifier) SubmissionCreated(ctx context.Context, submission *domain.ReviewSubmission, recipientRoles []domain.Role, submitterName string) error {
	payload := submissionCreatedPayload{
		SubmissionID:   submission.SubmissionID,
		ListName:       submission.ListName,
		SubmitterName:  submitterName,
		ReadingCount:   len(submission.Readings),
		RecipientRoles: recipientRoles,
	}
	return n.post(ctx, "/notifications/submission-created", payload)
}

func (n *WebhookNotifier) SubmissionReviewed(ctx context.Context, submission *domain.ReviewSubmission, submitterEmail, submitterName, reviewerName string) error {
	payload := submissionReviewedPayload{
		SubmissionID:   submission.SubmissionID,
		Status:         submission.Status,
		SubmitterEmail: submitterEmail,
		SubmitterName:  submitterName,
		ReviewerName:   reviewerName,
		ReviewComments: submission.ReviewComments,
	}
	return n.post(ctx, "/notifications/submission-reviewed", payload)
}

func (n *WebhookNotifier) post(ctx context.Context, path string, payload any) error {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)
	if err != nil {
		return fmt.Errorf("notify %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("notify %s: status %d", path, resp.StatusCode())
	}
	n.logger.Debug("notification delivered", zap.String("path", path))
	return nil
}
