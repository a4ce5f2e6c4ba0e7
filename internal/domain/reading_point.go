package domain

import "time"

// ValidationType 点位校验模式（闭合枚举）
type ValidationType string

const (
	// ValidationRange 数值范围校验（min/max 可选）
	ValidationRange ValidationType = "range"
	// ValidationSatUnsat SAT/UNSAT 二元判定
	ValidationSatUnsat ValidationType = "sat_unsat"
)

func (v ValidationType) Valid() bool {
	return v == ValidationRange || v == ValidationSatUnsat
}

// ReadingPoint 点位领域模型：建筑位置 + 指标的定义，由管理员维护
// reading_type 是开放字符串（管理员可自定义类型），不做闭合枚举
type ReadingPoint struct {
	PointID        string         `json:"point_id"`
	Name           string         `json:"name"`
	Building       string         `json:"building"`
	Floor          string         `json:"floor"`
	Room           string         `json:"room"`
	ReadingType    string         `json:"reading_type"`
	Component      string         `json:"component,omitempty"` // 所属系统/部件（可选）
	Unit           string         `json:"unit,omitempty"`
	Description    string         `json:"description,omitempty"`
	ValidationType ValidationType `json:"validation_type"`
	MinValue       *float64       `json:"min_value,omitempty"` // 仅 range 模式有意义，nil = 无下限
	MaxValue       *float64       `json:"max_value,omitempty"` // nil = 无上限
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
}
