package domain

import "time"

// CompletionSource 完成记录来源（清单流程 / 单点录入）
// 两种来源共用同一套完成规则，该标记仅作审计用途
type CompletionSource string

const (
	CompletionFromList CompletionSource = "list"
	CompletionAdHoc    CompletionSource = "ad_hoc"
)

// PointCompletion 点位完成记录
// 仅存在于录入会话内；批次到达终态后其数据并入对应的 BuildingReading
type PointCompletion struct {
	PointID     string           `json:"point_id"`
	CompletedAt time.Time        `json:"completed_at"`
	CompletedBy string           `json:"completed_by,omitempty"`
	Value       string           `json:"value"`
	Notes       string           `json:"notes,omitempty"`
	Source      CompletionSource `json:"source,omitempty"`
}
