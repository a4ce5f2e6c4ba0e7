package domain

// Role 角色（闭合枚举）
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleReviewer   Role = "reviewer"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleReviewer, RoleSuperAdmin:
		return true
	}
	return false
}

// User 身份协作方提供的用户信息
// 核心只读取 ID、显示名、邮箱和角色集合，不涉及凭据管理
type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Roles       []Role `json:"roles"`
}

// HasRole 是否持有指定角色
func (u User) HasRole(r Role) bool {
	for _, role := range u.Roles {
		if role == r {
			return true
		}
	}
	return false
}
