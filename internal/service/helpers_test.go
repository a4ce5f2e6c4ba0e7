package service_test

import (
	"context"
	"sync"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/store"

	"go.uber.org/zap"
)

func floatPtr(v float64) *float64 { return &v }

// rangePoint 构造 range 模式测试点位
func rangePoint(min, max *float64) *domain.ReadingPoint {
	return &domain.ReadingPoint{
		PointID:        "point-range",
		Name:           "Chiller Supply Temp",
		Building:       "B1",
		Floor:          "2F",
		Room:           "Mech Room 201",
		ReadingType:    "temperature",
		Component:      "chiller",
		Unit:           "degF",
		ValidationType: domain.ValidationRange,
		MinValue:       min,
		MaxValue:       max,
		IsActive:       true,
	}
}

// satUnsatPoint 构造 sat_unsat 模式测试点位
func satUnsatPoint() *domain.ReadingPoint {
	return &domain.ReadingPoint{
		PointID:        "point-sat",
		Name:           "Fire Damper Check",
		Building:       "B1",
		Floor:          "1F",
		Room:           "Corridor 101",
		ReadingType:    "inspection",
		ValidationType: domain.ValidationSatUnsat,
		IsActive:       true,
	}
}

// newTestRepos 基于内存 KV 的一整套 repo
func newTestRepos(ctx context.Context) (*repository.KVPointsRepo, *repository.KVListsRepo, *repository.KVReadingsRepo, *repository.KVSubmissionsRepo, *repository.KVUsersRepo) {
	kv := store.NewMemoryKV()
	logger := zap.NewNop()
	return repository.NewKVPointsRepo(ctx, kv, logger),
		repository.NewKVListsRepo(ctx, kv, logger),
		repository.NewKVReadingsRepo(ctx, kv, logger),
		repository.NewKVSubmissionsRepo(ctx, kv, logger),
		repository.NewKVUsersRepo(ctx, kv, logger)
}

// fakeNotifier 记录通知调用，用于断言 fire-and-forget 语义
type fakeNotifier struct {
	mu       sync.Mutex
	created  []string
	reviewed []string
	failWith error
}

func (f *fakeNotifier) SubmissionCreated(ctx context.Context, submission *domain.ReviewSubmission, recipientRoles []domain.Role, submitterName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, submission.SubmissionID)
	return f.failWith
}

func (f *fakeNotifier) SubmissionReviewed(ctx context.Context, submission *domain.ReviewSubmission, submitterEmail, submitterName, reviewerName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviewed = append(f.reviewed, submission.SubmissionID)
	return f.failWith
}

func (f *fakeNotifier) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeNotifier) reviewedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reviewed)
}
