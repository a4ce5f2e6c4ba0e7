package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("entry session not found")
	// ErrPointLocked 点位已标记完成，值和注释被锁定（需先撤销完成）
	ErrPointLocked = errors.New("point is locked by completion")
	// ErrNotCompletable 校验未通过（值非法或缺少必填注释）
	ErrNotCompletable = errors.New("point cannot be marked complete")
	// ErrModelList 模板清单不可用于数据录入
	ErrModelList = errors.New("model template list is not workable")
)

// PointEntry 会话内单个点位的录入状态
type PointEntry struct {
	PointID string
	Value   string
	Notes   string
}

// entrySession 单个页签的录入工作区（纯内存，进程结束即消失）
type entrySession struct {
	sessionID string
	user      domain.User
	listID    string
	source    domain.CompletionSource
	startedAt time.Time

	entries   map[string]*PointEntry
	completed map[string]domain.PointCompletion
	order     []string // 点位首次录入顺序，保证批次构建稳定
}

// EntryService 完成跟踪器：管理录入会话、完成标记与锁定规则
// 只作用于提交前的进行中批次，不感知审核状态
type EntryService struct {
	mu       sync.Mutex
	points   repository.PointsRepository
	lists    repository.ListsRepository
	logger   *zap.Logger
	sessions map[string]*entrySession
}

func NewEntryService(points repository.PointsRepository, lists repository.ListsRepository, logger *zap.Logger) *EntryService {
	return &EntryService{
		points:   points,
		lists:    lists,
		logger:   logger,
		sessions: make(map[string]*entrySession),
	}
}

// StartSession 开启录入会话
// listID 为空表示单点录入；非空时清单必须存在且不能是模板清单
func (s *EntryService) StartSession(ctx context.Context, user domain.User, listID string) (string, error) {
	source := domain.CompletionAdHoc
	if listID != "" {
		list, err := s.lists.GetList(ctx, listID)
		if err != nil {
			return "", fmt.Errorf("list %s: %w", listID, err)
		}
		if list.IsModel {
			return "", ErrModelList
		}
		source = domain.CompletionFromList
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &entrySession{
		sessionID: uuid.NewString(),
		user:      user,
		listID:    listID,
		source:    source,
		startedAt: time.Now(),
		entries:   make(map[string]*PointEntry),
		completed: make(map[string]domain.PointCompletion),
	}
	s.sessions[sess.sessionID] = sess

	s.logger.Info("entry session started",
		zap.String("session_id", sess.sessionID),
		zap.String("user_id", user.UserID),
		zap.String("list_id", listID))
	return sess.sessionID, nil
}

// UpdateEntry 更新会话内某点位的值/注释
// 点位必须存在；清单会话只接受清单内的点位；已完成的点位被锁定，拒绝修改
func (s *EntryService) UpdateEntry(ctx context.Context, sessionID, pointID, value, notes string) error {
	if _, err := s.points.GetPoint(ctx, pointID); err != nil {
		return fmt.Errorf("point %s: %w", pointID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.listID != "" {
		list, err := s.lists.GetList(ctx, sess.listID)
		if err != nil {
			return fmt.Errorf("list %s: %w", sess.listID, err)
		}
		if !list.ContainsPoint(pointID) {
			return fmt.Errorf("point %s is not part of list %s", pointID, sess.listID)
		}
	}
	if _, locked := sess.completed[pointID]; locked {
		return ErrPointLocked
	}

	entry, ok := sess.entries[pointID]
	if !ok {
		entry = &PointEntry{PointID: pointID}
		sess.entries[pointID] = entry
		sess.order = append(sess.order, pointID)
	}
	entry.Value = value
	entry.Notes = notes
	return nil
}

// MarkComplete 标记/撤销点位完成
// 标记受 CanMarkComplete 门控；撤销总是允许，且不改动已录入的值
// 完成时间取标记当刻，不可追溯调整
func (s *EntryService) MarkComplete(ctx context.Context, sessionID, pointID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	if !completed {
		delete(sess.completed, pointID)
		return nil
	}

	entry, ok := sess.entries[pointID]
	if !ok {
		return fmt.Errorf("point %s has no entry in session", pointID)
	}
	point, err := s.points.GetPoint(ctx, pointID)
	if err != nil {
		return fmt.Errorf("point %s: %w", pointID, err)
	}
	if !CanMarkComplete(point, entry.Value, entry.Notes) {
		return ErrNotCompletable
	}

	sess.completed[pointID] = domain.PointCompletion{
		PointID:     pointID,
		CompletedAt: time.Now(),
		CompletedBy: sess.user.UserID,
		Value:       entry.Value,
		Notes:       entry.Notes,
		Source:      sess.source,
	}
	return nil
}

// Entry 读取会话内某点位的当前录入状态
func (s *EntryService) Entry(sessionID, pointID string) (*PointEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	entry, ok := sess.entries[pointID]
	if !ok {
		return nil, false
	}
	e := *entry
	return &e, true
}

// Completions 会话内全部完成记录（按录入顺序）
func (s *EntryService) Completions(sessionID string) ([]domain.PointCompletion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := make([]domain.PointCompletion, 0, len(sess.completed))
	for _, pointID := range sess.order {
		if c, ok := sess.completed[pointID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// CompletedPointIDs 会话内已完成点位的集合
func (s *EntryService) CompletedPointIDs(sessionID string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := make(map[string]bool, len(sess.completed))
	for pointID := range sess.completed {
		out[pointID] = true
	}
	return out, nil
}

// SessionInfo 会话的基础信息
type SessionInfo struct {
	SessionID string
	UserID    string
	ListID    string
	StartedAt time.Time
}

// Session 查询会话基础信息
func (s *EntryService) Session(sessionID string) (*SessionInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return &SessionInfo{
		SessionID: sess.sessionID,
		UserID:    sess.user.UserID,
		ListID:    sess.listID,
		StartedAt: sess.startedAt,
	}, true
}

// SessionUser 会话归属的用户
func (s *EntryService) SessionUser(sessionID string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.User{}, false
	}
	return sess.user, true
}

// EndSession 结束会话（页签关闭即丢弃，不跨页签共享）
func (s *EntryService) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
