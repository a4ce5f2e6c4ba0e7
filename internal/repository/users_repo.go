package repository

import (
	"context"

	"facility-readings/internal/domain"
)

// UsersRepository 用户目录接口（身份协作方）
// 核心只读；Upsert 仅供启动引导和管理面使用
type UsersRepository interface {
	// GetUser 按 ID 获取用户
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers 全部用户
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// ListUsersByRole 持有指定角色的用户
	ListUsersByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// UpsertUser 新增或按 ID 覆盖
	UpsertUser(ctx context.Context, user *domain.User) error
}
