package httpapi

import (
	"net/http"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/service"

	"go.uber.org/zap"
)

// PointsHandler 点位管理接口（管理员）
type PointsHandler struct {
	svc    *service.PointService
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewPointsHandler(svc *service.PointService, users repository.UsersRepository, logger *zap.Logger) *PointsHandler {
	return &PointsHandler{svc: svc, users: users, logger: logger}
}

func (h *PointsHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := currentUser(r.Context(), r, h.users)
	if !ok || !hasAnyRole(user, domain.RoleAdmin, domain.RoleSuperAdmin) {
		writeJSON(w, http.StatusForbidden, Fail("admin role required"))
		return false
	}
	return true
}

// GET /admin/api/v1/points
func (h *PointsHandler) List(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.ListPoints(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(points))
}

// POST /admin/api/v1/points
func (h *PointsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req service.CreatePointRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	id, err := h.svc.CreatePoint(r.Context(), req)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"point_id": id}))
}

// GET /admin/api/v1/points/{id}
func (h *PointsHandler) Get(w http.ResponseWriter, r *http.Request, pointID string) {
	point, err := h.svc.GetPoint(r.Context(), pointID)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(point))
}

// updatePointBody PATCH 体：nil 字段不改动
// clear_min_value / clear_max_value 用于显式清除边界
type updatePointBody struct {
	Name           *string  `json:"name"`
	Building       *string  `json:"building"`
	Floor          *string  `json:"floor"`
	Room           *string  `json:"room"`
	ReadingType    *string  `json:"reading_type"`
	Component      *string  `json:"component"`
	Unit           *string  `json:"unit"`
	Description    *string  `json:"description"`
	ValidationType *string  `json:"validation_type"`
	MinValue       *float64 `json:"min_value"`
	MaxValue       *float64 `json:"max_value"`
	ClearMinValue  bool     `json:"clear_min_value"`
	ClearMaxValue  bool     `json:"clear_max_value"`
	IsActive       *bool    `json:"is_active"`
}

// PATCH /admin/api/v1/points/{id}
func (h *PointsHandler) Update(w http.ResponseWriter, r *http.Request, pointID string) {
	if !h.requireAdmin(w, r) {
		return
	}
	var body updatePointBody
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	patch := repository.PointPatch{
		Name:        body.Name,
		Building:    body.Building,
		Floor:       body.Floor,
		Room:        body.Room,
		ReadingType: body.ReadingType,
		Component:   body.Component,
		Unit:        body.Unit,
		Description: body.Description,
		IsActive:    body.IsActive,
	}
	if body.ValidationType != nil {
		vt := domain.ValidationType(*body.ValidationType)
		patch.ValidationType = &vt
	}
	if body.ClearMinValue {
		var cleared *float64
		patch.MinValue = &cleared
	} else if body.MinValue != nil {
		patch.MinValue = &body.MinValue
	}
	if body.ClearMaxValue {
		var cleared *float64
		patch.MaxValue = &cleared
	} else if body.MaxValue != nil {
		patch.MaxValue = &body.MaxValue
	}

	if err := h.svc.UpdatePoint(r.Context(), pointID, patch); err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"point_id": pointID}))
}

// DELETE /admin/api/v1/points/{id}
func (h *PointsHandler) Delete(w http.ResponseWriter, r *http.Request, pointID string) {
	if !h.requireAdmin(w, r) {
		return
	}
	if err := h.svc.DeletePoint(r.Context(), pointID); err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"point_id": pointID}))
}
