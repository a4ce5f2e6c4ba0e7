package service

import (
	"fmt"

	"facility-readings/internal/domain"
)

// ListAvailability 清单可用性判定结果
type ListAvailability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// IsListAvailable 清单当前是否可开工
// 无期望完成日期的清单总是可用；有日期的清单在到期当天及之后可用
// 未到期的清单给出人类可读的原因
func IsListAvailable(list *domain.ReadingPointList, today domain.Date) ListAvailability {
	if list.ExpectedCompletionDate == nil || list.ExpectedCompletionDate.IsZero() {
		return ListAvailability{Available: true}
	}
	if list.ExpectedCompletionDate.After(today) {
		return ListAvailability{
			Available: false,
			Reason:    fmt.Sprintf("available on %s", list.ExpectedCompletionDate.String()),
		}
	}
	return ListAvailability{Available: true}
}

// IncompleteDueOrOverdueLists 待办选择器数据源：
// 可用（到期/逾期/无日期）、非模板、且仍有至少一个未完成点位的清单
func IncompleteDueOrOverdueLists(lists []*domain.ReadingPointList, completedPointIDs map[string]bool, today domain.Date) []*domain.ReadingPointList {
	out := make([]*domain.ReadingPointList, 0, len(lists))
	for _, list := range lists {
		if list.IsModel {
			continue
		}
		if !IsListAvailable(list, today).Available {
			continue
		}
		for _, pointID := range list.PointIDs {
			if !completedPointIDs[pointID] {
				out = append(out, list)
				break
			}
		}
	}
	return out
}
