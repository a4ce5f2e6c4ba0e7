package httpapi

import (
	"net/http"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/service"

	"go.uber.org/zap"
)

// ListsHandler 清单管理与待办选择器接口
type ListsHandler struct {
	svc    *service.ListService
	entry  *service.EntryService
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewListsHandler(svc *service.ListService, entry *service.EntryService, users repository.UsersRepository, logger *zap.Logger) *ListsHandler {
	return &ListsHandler{svc: svc, entry: entry, users: users, logger: logger}
}

func (h *ListsHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user, ok := currentUser(r.Context(), r, h.users)
	if !ok || !hasAnyRole(user, domain.RoleAdmin, domain.RoleSuperAdmin) {
		writeJSON(w, http.StatusForbidden, Fail("admin role required"))
		return domain.User{}, false
	}
	return user, true
}

// GET /admin/api/v1/lists
func (h *ListsHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.ListLists(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(lists))
}

// POST /admin/api/v1/lists
func (h *ListsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	var req service.CreateListRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.CreatedBy == "" {
		req.CreatedBy = user.UserID
	}
	id, err := h.svc.CreateList(r.Context(), req)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"list_id": id}))
}

// GET /admin/api/v1/lists/{id}
func (h *ListsHandler) Get(w http.ResponseWriter, r *http.Request, listID string) {
	list, err := h.svc.GetList(r.Context(), listID)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(list))
}

// PATCH /admin/api/v1/lists/{id}
func (h *ListsHandler) Update(w http.ResponseWriter, r *http.Request, listID string) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	var req service.UpdateListRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if err := h.svc.UpdateList(r.Context(), listID, req); err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"list_id": listID}))
}

// POST /admin/api/v1/lists/{id}/copy
func (h *ListsHandler) Copy(w http.ResponseWriter, r *http.Request, listID string) {
	user, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	id, err := h.svc.CopyList(r.Context(), listID, user.UserID)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"list_id": id}))
}

// DELETE /admin/api/v1/lists/{id}
func (h *ListsHandler) Delete(w http.ResponseWriter, r *http.Request, listID string) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	if err := h.svc.DeleteList(r.Context(), listID); err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"list_id": listID}))
}

// GET /data/api/v1/lists/workable?session_id=...
// 待办选择器：到期/逾期且仍有未完成点位的清单（模板永不出现）
func (h *ListsHandler) Workable(w http.ResponseWriter, r *http.Request) {
	completed := map[string]bool{}
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		ids, err := h.entry.CompletedPointIDs(sessionID)
		if err == nil {
			completed = ids
		}
	}
	lists, err := h.svc.WorkableLists(r.Context(), completed, domain.Today())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(lists))
}
