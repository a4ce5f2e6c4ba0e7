package httpapi

import (
	"net/http"

	"facility-readings/internal/repository"
	"facility-readings/internal/service"

	"go.uber.org/zap"
)

// EntryHandler 数据录入接口：会话、录入、完成标记、提交
type EntryHandler struct {
	entry       *service.EntryService
	submissions *service.SubmissionService
	lists       repository.ListsRepository
	users       repository.UsersRepository
	logger      *zap.Logger
}

func NewEntryHandler(
	entry *service.EntryService,
	submissions *service.SubmissionService,
	lists repository.ListsRepository,
	users repository.UsersRepository,
	logger *zap.Logger,
) *EntryHandler {
	return &EntryHandler{
		entry:       entry,
		submissions: submissions,
		lists:       lists,
		users:       users,
		logger:      logger,
	}
}

// POST /data/api/v1/entry/sessions  {list_id?}
func (h *EntryHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context(), r, h.users)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Fail("unknown user"))
		return
	}
	var body struct {
		ListID string `json:"list_id"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	sessionID, err := h.entry.StartSession(r.Context(), user, body.ListID)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"session_id": sessionID}))
}

// POST /data/api/v1/entry/sessions/{id}/entries  {point_id, value, notes}
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		PointID string `json:"point_id"`
		Value   string `json:"value"`
		Notes   string `json:"notes"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if err := h.entry.UpdateEntry(r.Context(), sessionID, body.PointID, body.Value, body.Notes); err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"point_id": body.PointID}))
}

// POST /data/api/v1/entry/sessions/{id}/complete  {point_id, completed}
func (h *EntryHandler) MarkComplete(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		PointID   string `json:"point_id"`
		Completed bool   `json:"completed"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if err := h.entry.MarkComplete(r.Context(), sessionID, body.PointID, body.Completed); err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"point_id":  body.PointID,
		"completed": body.Completed,
	}))
}

// POST /data/api/v1/entry/sessions/{id}/submit  {notes?}
// 收集会话内全部完成条目，按提交人角色直接入库或进入审核
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request, sessionID string) {
	user, ok := h.entry.SessionUser(sessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("entry session not found"))
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	entries, err := h.entry.Completions(sessionID)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}

	req := service.SubmitRequest{
		User:    user,
		Entries: entries,
		Notes:   body.Notes,
	}
	if info, ok := h.entry.Session(sessionID); ok && info.ListID != "" {
		req.ListID = info.ListID
		if list, err := h.lists.GetList(r.Context(), info.ListID); err == nil {
			req.ListName = list.Name
		}
	}

	result, err := h.submissions.Submit(r.Context(), req)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}

	// 提交成功后会话结束（无论直接入库还是进入审核）
	h.entry.EndSession(sessionID)

	if result.Submission != nil {
		writeJSON(w, http.StatusOK, Ok(map[string]any{
			"submission_id": result.Submission.SubmissionID,
			"status":        result.Submission.Status,
		}))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"committed": len(result.Committed),
	}))
}

// DELETE /data/api/v1/entry/sessions/{id}
func (h *EntryHandler) EndSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	h.entry.EndSession(sessionID)
	writeJSON(w, http.StatusOK, Ok(map[string]string{"session_id": sessionID}))
}
