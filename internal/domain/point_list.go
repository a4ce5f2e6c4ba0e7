package domain

import "time"

// ReadingPointList 点位清单：按插入顺序的点位ID集合，可带期望完成日期
// is_model = true 表示模板清单：只作为复制源，绝不能被选中进行数据录入
type ReadingPointList struct {
	ListID                 string    `json:"list_id"`
	Name                   string    `json:"name"`
	PointIDs               []string  `json:"point_ids"`
	ExpectedCompletionDate *Date     `json:"expected_completion_date,omitempty"`
	IsModel                bool      `json:"is_model"`
	CreatedBy              string    `json:"created_by"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ContainsPoint 清单是否包含指定点位
func (l *ReadingPointList) ContainsPoint(pointID string) bool {
	for _, id := range l.PointIDs {
		if id == pointID {
			return true
		}
	}
	return false
}
