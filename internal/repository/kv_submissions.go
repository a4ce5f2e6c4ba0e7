package repository

import (
	"context"
	"sync"
	"time"

	"facility-readings/internal/domain"
	"facility-readings/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KVSubmissionsRepo 审核提交 Repository 的 KV 实现（KeySubmissions）
type KVSubmissionsRepo struct {
	mu          sync.RWMutex
	kv          store.KV
	logger      *zap.Logger
	submissions []domain.ReviewSubmission
}

func NewKVSubmissionsRepo(ctx context.Context, kv store.KV, logger *zap.Logger) *KVSubmissionsRepo {
	return &KVSubmissionsRepo{
		kv:          kv,
		logger:      logger,
		submissions: loadCollection[domain.ReviewSubmission](ctx, kv, KeySubmissions, logger),
	}
}

func (r *KVSubmissionsRepo) GetSubmission(ctx context.Context, submissionID string) (*domain.ReviewSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.submissions {
		if r.submissions[i].SubmissionID == submissionID {
			s := r.submissions[i]
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (r *KVSubmissionsRepo) ListSubmissions(ctx context.Context, filters SubmissionFilters) ([]*domain.ReviewSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ReviewSubmission, 0, len(r.submissions))
	for i := range r.submissions {
		s := r.submissions[i]
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		if filters.SubmitterID != "" && s.SubmitterID != filters.SubmitterID {
			continue
		}
		out = append(out, &s)
	}
	return out, nil
}

func (r *KVSubmissionsRepo) CreateSubmission(ctx context.Context, submission *domain.ReviewSubmission) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := *submission
	s.SubmissionID = uuid.NewString()
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	r.submissions = append(r.submissions, s)
	if err := saveCollection(ctx, r.kv, KeySubmissions, r.submissions, r.logger); err != nil {
		return "", err
	}
	return s.SubmissionID, nil
}

func (r *KVSubmissionsRepo) UpdateSubmission(ctx context.Context, submission *domain.ReviewSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.submissions {
		if r.submissions[i].SubmissionID != submission.SubmissionID {
			continue
		}
		r.submissions[i] = *submission
		return saveCollection(ctx, r.kv, KeySubmissions, r.submissions, r.logger)
	}
	return ErrNotFound
}
