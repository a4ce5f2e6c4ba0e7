package httpapi

import (
	"net/http"

	"facility-readings/internal/domain"
	"facility-readings/internal/repository"
	"facility-readings/internal/service"

	"go.uber.org/zap"
)

// SubmissionsHandler 审核工作台接口
type SubmissionsHandler struct {
	review *service.ReviewService
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewSubmissionsHandler(review *service.ReviewService, users repository.UsersRepository, logger *zap.Logger) *SubmissionsHandler {
	return &SubmissionsHandler{review: review, users: users, logger: logger}
}

// GET /review/api/v1/submissions?submitter_id=...
// 默认返回待审核（pending）提交
func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if submitterID := r.URL.Query().Get("submitter_id"); submitterID != "" {
		submissions, err := h.review.SubmissionsBySubmitter(r.Context(), submitterID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(submissions))
		return
	}
	submissions, err := h.review.PendingSubmissions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(submissions))
}

// GET /review/api/v1/submissions/{id}
func (h *SubmissionsHandler) Get(w http.ResponseWriter, r *http.Request, submissionID string) {
	submission, err := h.review.Submission(r.Context(), submissionID)
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(submission))
}

// POST /review/api/v1/submissions/{id}/review  {action, comments?}
// action: approve | reject | request_revision
func (h *SubmissionsHandler) Review(w http.ResponseWriter, r *http.Request, submissionID string) {
	reviewer, ok := currentUser(r.Context(), r, h.users)
	if !ok || !hasAnyRole(reviewer, domain.RoleReviewer, domain.RoleAdmin, domain.RoleSuperAdmin) {
		writeJSON(w, http.StatusForbidden, Fail("reviewer role required"))
		return
	}
	var body struct {
		Action   string `json:"action"`
		Comments string `json:"comments"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	submission, err := h.review.Review(r.Context(), service.ReviewRequest{
		SubmissionID: submissionID,
		Action:       domain.ReviewAction(body.Action),
		Reviewer:     reviewer,
		Comments:     body.Comments,
	})
	if err != nil {
		writeJSON(w, failStatus(err), Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(submission))
}
