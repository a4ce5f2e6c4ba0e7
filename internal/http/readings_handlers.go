package httpapi

import (
	"net/http"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/service"

	"go.uber.org/zap"
)

// ReadingsHandler 正式读数查询/删除/导出接口（管理视图）
type ReadingsHandler struct {
	svc    *service.ReadingService
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewReadingsHandler(svc *service.ReadingService, users repository.UsersRepository, logger *zap.Logger) *ReadingsHandler {
	return &ReadingsHandler{svc: svc, users: users, logger: logger}
}

// parseFilter 查询参数 → 过滤条件
// date 参数格式非法时返回错误而不是静默忽略
func parseFilter(r *http.Request) (service.ReadingFilter, bool, error) {
	q := r.URL.Query()
	filter := service.ReadingFilter{
		ReadingType: q.Get("reading_type"),
		Building:    q.Get("building"),
		Room:        q.Get("room"),
		Component:   q.Get("component"),
	}
	if ds := q.Get("date"); ds != "" {
		date, err := domain.ParseDate(ds)
		if err != nil {
			return filter, false, err
		}
		filter.Date = &date
	}
	ascending := q.Get("sort") == "asc"
	return filter, ascending, nil
}

// GET /admin/api/v1/readings?reading_type&building&room&component&date&sort=asc|desc
func (h *ReadingsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ascending, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	readings, err := h.svc.Query(r.Context(), filter, ascending)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(readings))
}

// DELETE /admin/api/v1/readings/{id}
func (h *ReadingsHandler) Delete(w http.ResponseWriter, r *http.Request, readingID string) {
	user, ok := currentUser(r.Context(), r, h.users)
	if !ok || !hasAnyRole(user, domain.RoleAdmin, domain.RoleSuperAdmin) {
		writeJSON(w, http.StatusForbidden, Fail("admin role required"))
		return
	}
	if err := h.svc.Remove(r.Context(), readingID); err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"reading_id": readingID}))
}

// GET /admin/api/v1/readings/export — 当前过滤视图导出为 Excel
func (h *ReadingsHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, ascending, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	readings, err := h.svc.Query(r.Context(), filter, ascending)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	data, err := GenerateReadingsExport(readings)
	if err != nil {
		h.logger.Error("readings export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("export failed"))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="readings.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
