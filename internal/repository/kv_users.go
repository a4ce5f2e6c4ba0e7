package repository

import (
	"context"
	"sync"

	"facility-readings/internal/domain"
	"facility-readings/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KVUsersRepo 用户目录的 KV 实现（KeyUsers）
type KVUsersRepo struct {
	mu     sync.RWMutex
	kv     store.KV
	logger *zap.Logger
	users  []domain.User
}

func NewKVUsersRepo(ctx context.Context, kv store.KV, logger *zap.Logger) *KVUsersRepo {
	return &KVUsersRepo{
		kv:     kv,
		logger: logger,
		users:  loadCollection[domain.User](ctx, kv, KeyUsers, logger),
	}
}

func (r *KVUsersRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].UserID == userID {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *KVUsersRepo) ListUsers(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for i := range r.users {
		u := r.users[i]
		out = append(out, &u)
	}
	return out, nil
}

func (r *KVUsersRepo) ListUsersByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0)
	for i := range r.users {
		if r.users[i].HasRole(role) {
			u := r.users[i]
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *KVUsersRepo) UpsertUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	if u.UserID == "" {
		u.UserID = uuid.NewString()
		user.UserID = u.UserID
	}
	for i := range r.users {
		if r.users[i].UserID == u.UserID {
			r.users[i] = u
			return saveCollection(ctx, r.kv, KeyUsers, r.users, r.logger)
		}
	}
	r.users = append(r.users, u)
	return saveCollection(ctx, r.kv, KeyUsers, r.users, r.logger)
}
