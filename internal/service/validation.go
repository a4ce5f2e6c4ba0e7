package service

import (
	"math"
	"strconv"
	"strings"

	"facility-readings/internal/domain"
)

// 校验引擎：判定录入值是否可接受、是否必须附注释
// 纯函数，不抛异常：无法解析的输入一律返回 false，由调用方保持"不可完成"状态

// IsValueValid 录入值是否合法（可录入）
// sat_unsat 模式：仅字面量 "SAT"/"UNSAT" 合法
// range 模式：可解析为有限数值且不等于 0（0 是"未填"哨兵值）即合法，越界仍算合法
func IsValueValid(point *domain.ReadingPoint, rawValue string) bool {
	switch point.ValidationType {
	case domain.ValidationSatUnsat:
		return rawValue == domain.ValueSat || rawValue == domain.ValueUnsat
	case domain.ValidationRange:
		v, ok := parseFinite(rawValue)
		return ok && v != 0
	}
	return false
}

// IsInRange 数值是否落在点位的 min/max 区间内
// 缺失的边界按 ±∞ 处理：min/max 都未设置时任何有限数值都在区间内
// sat_unsat 模式没有区间概念，合法值视为在区间内
func IsInRange(point *domain.ReadingPoint, rawValue string) bool {
	if point.ValidationType == domain.ValidationSatUnsat {
		return IsValueValid(point, rawValue)
	}
	v, ok := parseFinite(rawValue)
	if !ok {
		return false
	}
	if point.MinValue != nil && v < *point.MinValue {
		return false
	}
	if point.MaxValue != nil && v > *point.MaxValue {
		return false
	}
	return true
}

// RequiresComment 该录入值完成前是否必须附非空注释
// UNSAT 一律要求注释；range 模式下合法但越界的数值也要求注释
func RequiresComment(point *domain.ReadingPoint, rawValue string) bool {
	switch point.ValidationType {
	case domain.ValidationSatUnsat:
		return rawValue == domain.ValueUnsat
	case domain.ValidationRange:
		return IsValueValid(point, rawValue) && !IsInRange(point, rawValue)
	}
	return false
}

// CanMarkComplete 点位是否可被标记完成
// 合法值 + （不要求注释，或注释非空白）
func CanMarkComplete(point *domain.ReadingPoint, rawValue, notes string) bool {
	if !IsValueValid(point, rawValue) {
		return false
	}
	if RequiresComment(point, rawValue) && strings.TrimSpace(notes) == "" {
		return false
	}
	return true
}

func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
