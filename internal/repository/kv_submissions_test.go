package repository_test

import (
	"context"
	"testing"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSubmissionsRepo(t *testing.T) (context.Context, *repository.KVSubmissionsRepo) {
	t.Helper()
	ctx := context.Background()
	return ctx, repository.NewKVSubmissionsRepo(ctx, store.NewMemoryKV(), zap.NewNop())
}

func pendingSubmission(submitterID string) *domain.ReviewSubmission {
	return &domain.ReviewSubmission{
		SubmitterID: submitterID,
		Readings:    []domain.BuildingReading{{Building: "B1", Value: domain.NumberValue(15)}},
		Status:      domain.SubmissionPending,
	}
}

func TestSubmissionsRepoCreateAndGet(t *testing.T) {
	ctx, repo := newSubmissionsRepo(t)

	id, err := repo.CreateSubmission(ctx, pendingSubmission("u1"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetSubmission(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.SubmitterID)
	assert.False(t, got.SubmittedAt.IsZero())
	require.Len(t, got.Readings, 1)

	_, err = repo.GetSubmission(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmissionsRepoFilters(t *testing.T) {
	ctx, repo := newSubmissionsRepo(t)

	firstID, err := repo.CreateSubmission(ctx, pendingSubmission("u1"))
	require.NoError(t, err)
	_, err = repo.CreateSubmission(ctx, pendingSubmission("u2"))
	require.NoError(t, err)

	first, err := repo.GetSubmission(ctx, firstID)
	require.NoError(t, err)
	first.Status = domain.SubmissionApproved
	require.NoError(t, repo.UpdateSubmission(ctx, first))

	pending, err := repo.ListSubmissions(ctx, repository.SubmissionFilters{Status: domain.SubmissionPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "u2", pending[0].SubmitterID)

	byUser, err := repo.ListSubmissions(ctx, repository.SubmissionFilters{SubmitterID: "u1"})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, domain.SubmissionApproved, byUser[0].Status)

	all, err := repo.ListSubmissions(ctx, repository.SubmissionFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmissionsRepoUpdateUnknown(t *testing.T) {
	ctx, repo := newSubmissionsRepo(t)

	ghost := pendingSubmission("u1")
	ghost.SubmissionID = "ghost"
	assert.ErrorIs(t, repo.UpdateSubmission(ctx, ghost), repository.ErrNotFound)
}
