package domain

import "time"

// SubmissionStatus 审核状态（闭合枚举）
// pending 是唯一非终态；其余三个状态不再接受任何审核动作
// needs_revision 不会回到 pending：修订走全新提交，原记录永久留存作审计
type SubmissionStatus string

const (
	SubmissionPending       SubmissionStatus = "pending"
	SubmissionApproved      SubmissionStatus = "approved"
	SubmissionRejected      SubmissionStatus = "rejected"
	SubmissionNeedsRevision SubmissionStatus = "needs_revision"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected, SubmissionNeedsRevision:
		return true
	}
	return false
}

// Terminal 是否为终态
func (s SubmissionStatus) Terminal() bool {
	return s.Valid() && s != SubmissionPending
}

// ReviewAction 审核动作
type ReviewAction string

const (
	ReviewApprove         ReviewAction = "approve"
	ReviewReject          ReviewAction = "reject"
	ReviewRequestRevision ReviewAction = "request_revision"
)

// Status 审核动作对应的目标状态
func (a ReviewAction) Status() (SubmissionStatus, bool) {
	switch a {
	case ReviewApprove:
		return SubmissionApproved, true
	case ReviewReject:
		return SubmissionRejected, true
	case ReviewRequestRevision:
		return SubmissionNeedsRevision, true
	}
	return "", false
}

// ReviewSubmission 等待审核的读数批次
type ReviewSubmission struct {
	SubmissionID  string            `json:"submission_id"`
	SubmitterID   string            `json:"submitter_id"`
	SubmitterName string            `json:"submitter_name,omitempty"`
	SubmittedAt   time.Time         `json:"submitted_at"`
	ListID        string            `json:"list_id,omitempty"`
	ListName      string            `json:"list_name,omitempty"`
	Readings      []BuildingReading `json:"readings"`
	Notes         string            `json:"notes,omitempty"` // 提交人备注
	Status        SubmissionStatus  `json:"status"`

	// 审核完成后填充
	ReviewerID     string     `json:"reviewer_id,omitempty"`
	ReviewerName   string     `json:"reviewer_name,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewComments string     `json:"review_comments,omitempty"`
}
