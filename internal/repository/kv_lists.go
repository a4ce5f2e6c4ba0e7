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

// KVListsRepo 清单 Repository 的 KV 实现（KeyLists）
type KVListsRepo struct {
	mu     sync.RWMutex
	kv     store.KV
	logger *zap.Logger
	lists  []domain.ReadingPointList
}

func NewKVListsRepo(ctx context.Context, kv store.KV, logger *zap.Logger) *KVListsRepo {
	return &KVListsRepo{
		kv:     kv,
		logger: logger,
		lists:  loadCollection[domain.ReadingPointList](ctx, kv, KeyLists, logger),
	}
}

func (r *KVListsRepo) GetList(ctx context.Context, listID string) (*domain.ReadingPointList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.lists {
		if r.lists[i].ListID == listID {
			l := r.lists[i]
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (r *KVListsRepo) ListLists(ctx context.Context) ([]*domain.ReadingPointList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ReadingPointList, 0, len(r.lists))
	for i := range r.lists {
		l := r.lists[i]
		out = append(out, &l)
	}
	return out, nil
}

func (r *KVListsRepo) CreateList(ctx context.Context, list *domain.ReadingPointList) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := *list
	l.ListID = uuid.NewString()
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	r.lists = append(r.lists, l)
	if err := saveCollection(ctx, r.kv, KeyLists, r.lists, r.logger); err != nil {
		return "", err
	}
	return l.ListID, nil
}

func (r *KVListsRepo) UpdateList(ctx context.Context, list *domain.ReadingPointList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.lists {
		if r.lists[i].ListID != list.ListID {
			continue
		}
		l := *list
		l.CreatedAt = r.lists[i].CreatedAt
		l.UpdatedAt = time.Now()
		r.lists[i] = l
		return saveCollection(ctx, r.kv, KeyLists, r.lists, r.logger)
	}
	return ErrNotFound
}

func (r *KVListsRepo) DeleteList(ctx context.Context, listID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.lists {
		if r.lists[i].ListID != listID {
			continue
		}
		r.lists = append(r.lists[:i], r.lists[i+1:]...)
		return saveCollection(ctx, r.kv, KeyLists, r.lists, r.logger)
	}
	return ErrNotFound
}
