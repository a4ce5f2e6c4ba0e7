package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// currentUser 从 X-User-Id 头解析当前用户（身份协作方边界）
func currentUser(ctx context.Context, r *http.Request, users repository.UsersRepository) (domain.User, bool) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		return domain.User{}, false
	}
	user, err := users.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, false
	}
	return *user, true
}

// hasAnyRole 用户是否持有任一角色
func hasAnyRole(user domain.User, roles ...domain.Role) bool {
	for _, role := range roles {
		if user.HasRole(role) {
			return true
		}
	}
	return false
}

// failStatus 服务层错误到 HTTP 状态码的映射
func failStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotPending),
		errors.Is(err, service.ErrPointLocked):
		return http.StatusConflict
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
