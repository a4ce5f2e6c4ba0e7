package repository_test

import (
	"context"
	"testing"
	"time"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testReading(notes string) domain.BuildingReading {
	return domain.BuildingReading{
		Building:    "B1",
		Room:        "Mech Room 201",
		ReadingType: "temperature",
		Value:       domain.NumberValue(15),
		Timestamp:   time.Now(),
		Notes:       notes,
	}
}

func TestReadingsRepoAppendAssignsIDs(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	repo := repository.NewKVReadingsRepo(ctx, kv, zap.NewNop())

	appended, err := repo.AppendReadings(ctx, []domain.BuildingReading{testReading("a"), testReading("b")})
	require.NoError(t, err)
	require.Len(t, appended, 2)
	assert.NotEmpty(t, appended[0].ReadingID)
	assert.NotEqual(t, appended[0].ReadingID, appended[1].ReadingID)

	// 追加写穿到 KV：重建后读数仍在
	reloaded := repository.NewKVReadingsRepo(ctx, kv, zap.NewNop())
	stored, err := reloaded.ListReadings(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestReadingsRepoAppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKVReadingsRepo(ctx, store.NewMemoryKV(), zap.NewNop())

	_, err := repo.AppendReadings(ctx, []domain.BuildingReading{testReading("first")})
	require.NoError(t, err)
	_, err = repo.AppendReadings(ctx, []domain.BuildingReading{testReading("second"), testReading("third")})
	require.NoError(t, err)

	stored, err := repo.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "first", stored[0].Notes)
	assert.Equal(t, "third", stored[2].Notes)
}

func TestReadingsRepoRemove(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	repo := repository.NewKVReadingsRepo(ctx, kv, zap.NewNop())

	appended, err := repo.AppendReadings(ctx, []domain.BuildingReading{testReading("keep"), testReading("drop")})
	require.NoError(t, err)

	require.NoError(t, repo.RemoveReading(ctx, appended[1].ReadingID))
	stored, err := repo.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "keep", stored[0].Notes)

	assert.ErrorIs(t, repo.RemoveReading(ctx, "ghost"), repository.ErrNotFound)

	// 删除后的状态同样持久化
	reloaded := repository.NewKVReadingsRepo(ctx, kv, zap.NewNop())
	stored, err = reloaded.ListReadings(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestReadingsRepoValueSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	repo := repository.NewKVReadingsRepo(ctx, kv, zap.NewNop())

	r := testReading("sat reading")
	r.Value = domain.SatUnsatValue(domain.ValueUnsat)
	_, err := repo.AppendReadings(ctx, []domain.BuildingReading{r, testReading("numeric")})
	require.NoError(t, err)

	reloaded := repository.NewKVReadingsRepo(ctx, kv, zap.NewNop())
	stored, err := reloaded.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].Value.IsSatUnsat())
	assert.Equal(t, domain.ValueUnsat, stored[0].Value.Text)
	assert.False(t, stored[1].Value.IsSatUnsat())
	assert.Equal(t, 15.0, stored[1].Value.Number)
}
