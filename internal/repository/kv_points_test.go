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

func testPoint(name string) *domain.ReadingPoint {
	return &domain.ReadingPoint{
		Name:           name,
		Building:       "B1",
		Floor:          "2F",
		Room:           "Mech Room 201",
		ReadingType:    "temperature",
		ValidationType: domain.ValidationRange,
		IsActive:       true,
	}
}

func TestPointsRepoPersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	logger := zap.NewNop()

	repo := repository.NewKVPointsRepo(ctx, kv, logger)
	id, err := repo.CreatePoint(ctx, testPoint("Chiller Supply Temp"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// 同一 KV 上重建 repo，模拟进程重启
	reloaded := repository.NewKVPointsRepo(ctx, kv, logger)
	point, err := reloaded.GetPoint(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Chiller Supply Temp", point.Name)
	assert.False(t, point.CreatedAt.IsZero())
}

func TestPointsRepoMalformedBlobFallsBackEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.KeyPoints, "{not-json", 0))

	repo := repository.NewKVPointsRepo(ctx, kv, zap.NewNop())
	points, err := repo.ListPoints(ctx)
	require.NoError(t, err)
	assert.Empty(t, points, "corrupt storage reads as empty, never crashes")

	// 坏数据之上仍可正常写入
	_, err = repo.CreatePoint(ctx, testPoint("Fresh Start"))
	require.NoError(t, err)
}

func TestPointsRepoPatchSemantics(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKVPointsRepo(ctx, store.NewMemoryKV(), zap.NewNop())

	p := testPoint("Boiler Pressure")
	min, max := 1.5, 3.0
	p.MinValue = &min
	p.MaxValue = &max
	id, err := repo.CreatePoint(ctx, p)
	require.NoError(t, err)

	newMax := 3.5
	maxPtr := &newMax
	inactive := false
	require.NoError(t, repo.UpdatePoint(ctx, id, repository.PointPatch{
		MaxValue: &maxPtr,
		IsActive: &inactive,
	}))

	got, err := repo.GetPoint(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3.5, *got.MaxValue)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.MinValue, "fields outside the patch keep their values")
	assert.Equal(t, 1.5, *got.MinValue)

	assert.ErrorIs(t, repo.UpdatePoint(ctx, "ghost", repository.PointPatch{}), repository.ErrNotFound)
}

func TestPointsRepoListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKVPointsRepo(ctx, store.NewMemoryKV(), zap.NewNop())

	id, err := repo.CreatePoint(ctx, testPoint("Chiller Supply Temp"))
	require.NoError(t, err)

	points, err := repo.ListPoints(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	points[0].Name = "mutated"

	got, err := repo.GetPoint(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Chiller Supply Temp", got.Name, "callers cannot mutate the cache through returned values")
}
