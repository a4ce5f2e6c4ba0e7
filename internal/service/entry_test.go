package service_test

import (
	"context"
	"testing"

	"facility-readings/internal/domain"
	"facility-readings/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEntryFixture(t *testing.T) (context.Context, *service.EntryService, *domain.ReadingPoint, *domain.ReadingPoint) {
	t.Helper()
	ctx := context.Background()
	points, lists, _, _, _ := newTestRepos(ctx)

	rp := rangePoint(floatPtr(10), floatPtr(20))
	id, err := points.CreatePoint(ctx, rp)
	require.NoError(t, err)
	rp.PointID = id

	sp := satUnsatPoint()
	id, err = points.CreatePoint(ctx, sp)
	require.NoError(t, err)
	sp.PointID = id

	return ctx, service.NewEntryService(points, lists, zap.NewNop()), rp, sp
}

func TestEntrySessionLifecycle(t *testing.T) {
	ctx, svc, rp, _ := newEntryFixture(t)
	user := domain.User{UserID: "u1", DisplayName: "Tech One", Roles: []domain.Role{domain.RoleUser}}

	sessionID, err := svc.StartSession(ctx, user, "")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	require.NoError(t, svc.UpdateEntry(ctx, sessionID, rp.PointID, "15", ""))
	entry, ok := svc.Entry(sessionID, rp.PointID)
	require.True(t, ok)
	assert.Equal(t, "15", entry.Value)

	svc.EndSession(sessionID)
	_, ok = svc.Entry(sessionID, rp.PointID)
	assert.False(t, ok, "ended session keeps no state")
	assert.ErrorIs(t, svc.MarkComplete(ctx, sessionID, rp.PointID, true), service.ErrSessionNotFound)
}

func TestMarkCompleteGating(t *testing.T) {
	ctx, svc, rp, sp := newEntryFixture(t)
	user := domain.User{UserID: "u1", Roles: []domain.Role{domain.RoleUser}}

	sessionID, err := svc.StartSession(ctx, user, "")
	require.NoError(t, err)

	// 越界数值：无注释不允许完成
	require.NoError(t, svc.UpdateEntry(ctx, sessionID, rp.PointID, "25", ""))
	assert.ErrorIs(t, svc.MarkComplete(ctx, sessionID, rp.PointID, true), service.ErrNotCompletable)

	require.NoError(t, svc.UpdateEntry(ctx, sessionID, rp.PointID, "25", "gauge reads high, replacement ordered"))
	require.NoError(t, svc.MarkComplete(ctx, sessionID, rp.PointID, true))

	// UNSAT 无注释同理
	require.NoError(t, svc.UpdateEntry(ctx, sessionID, sp.PointID, "UNSAT", ""))
	assert.ErrorIs(t, svc.MarkComplete(ctx, sessionID, sp.PointID, true), service.ErrNotCompletable)

	// 没有录入的点位不可直接标记完成
	assert.Error(t, svc.MarkComplete(ctx, sessionID, "no-entry", true))
}

func TestCompletedPointIsLocked(t *testing.T) {
	ctx, svc, rp, _ := newEntryFixture(t)
	user := domain.User{UserID: "u1", Roles: []domain.Role{domain.RoleUser}}

	sessionID, err := svc.StartSession(ctx, user, "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEntry(ctx, sessionID, rp.PointID, "15", ""))
	require.NoError(t, svc.MarkComplete(ctx, sessionID, rp.PointID, true))

	// 完成即锁定
	assert.ErrorIs(t, svc.UpdateEntry(ctx, sessionID, rp.PointID, "16", ""), service.ErrPointLocked)

	// 撤销完成解除锁定，值保持不变
	require.NoError(t, svc.MarkComplete(ctx, sessionID, rp.PointID, false))
	entry, ok := svc.Entry(sessionID, rp.PointID)
	require.True(t, ok)
	assert.Equal(t, "15", entry.Value)
	require.NoError(t, svc.UpdateEntry(ctx, sessionID, rp.PointID, "16", ""))

	// 重复撤销是无害操作
	require.NoError(t, svc.MarkComplete(ctx, sessionID, rp.PointID, false))
}

func TestListSessionRestrictsPoints(t *testing.T) {
	ctx := context.Background()
	points, lists, _, _, _ := newTestRepos(ctx)

	rp := rangePoint(floatPtr(10), floatPtr(20))
	inListID, err := points.CreatePoint(ctx, rp)
	require.NoError(t, err)
	outsideID, err := points.CreatePoint(ctx, satUnsatPoint())
	require.NoError(t, err)

	listID, err := lists.CreateList(ctx, &domain.ReadingPointList{
		Name:     "Morning Rounds",
		PointIDs: []string{inListID},
	})
	require.NoError(t, err)
	modelID, err := lists.CreateList(ctx, &domain.ReadingPointList{
		Name:     "Rounds Template",
		PointIDs: []string{inListID},
		IsModel:  true,
	})
	require.NoError(t, err)

	svc := service.NewEntryService(points, lists, zap.NewNop())
	user := domain.User{UserID: "u1", Roles: []domain.Role{domain.RoleUser}}

	// 模板清单不可开工
	_, err = svc.StartSession(ctx, user, modelID)
	assert.ErrorIs(t, err, service.ErrModelList)

	sessionID, err := svc.StartSession(ctx, user, listID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEntry(ctx, sessionID, inListID, "15", ""))
	assert.Error(t, svc.UpdateEntry(ctx, sessionID, outsideID, "SAT", ""),
		"points outside the list are rejected in a list session")
	assert.Error(t, svc.UpdateEntry(ctx, sessionID, "missing-point", "1", ""))
}

func TestCompletionsKeepEntryOrder(t *testing.T) {
	ctx, svc, rp, sp := newEntryFixture(t)
	user := domain.User{UserID: "u7", Roles: []domain.Role{domain.RoleUser}}

	sessionID, err := svc.StartSession(ctx, user, "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEntry(ctx, sessionID, sp.PointID, "SAT", ""))
	require.NoError(t, svc.UpdateEntry(ctx, sessionID, rp.PointID, "12", ""))
	require.NoError(t, svc.MarkComplete(ctx, sessionID, rp.PointID, true))
	require.NoError(t, svc.MarkComplete(ctx, sessionID, sp.PointID, true))

	completions, err := svc.Completions(sessionID)
	require.NoError(t, err)
	require.Len(t, completions, 2)
	assert.Equal(t, sp.PointID, completions[0].PointID, "ordered by first entry, not by completion time")
	assert.Equal(t, rp.PointID, completions[1].PointID)
	assert.Equal(t, "u7", completions[0].CompletedBy)
	assert.Equal(t, domain.CompletionAdHoc, completions[0].Source)
	assert.False(t, completions[0].CompletedAt.IsZero())

	ids, err := svc.CompletedPointIDs(sessionID)
	require.NoError(t, err)
	assert.True(t, ids[rp.PointID])
	assert.True(t, ids[sp.PointID])
}
