package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SAT/UNSAT 字面量（sat_unsat 模式下的唯一合法值）
const (
	ValueSat   = "SAT"
	ValueUnsat = "UNSAT"
)

// ReadingValue 读数值的联合类型：有限数值，或字面量 "SAT"/"UNSAT"
// Text 非空时表示 SAT/UNSAT 读数，Number 无意义
type ReadingValue struct {
	Number float64
	Text   string
}

// NumberValue 构造数值读数
func NumberValue(v float64) ReadingValue {
	return ReadingValue{Number: v}
}

// SatUnsatValue 构造 SAT/UNSAT 读数
func SatUnsatValue(s string) ReadingValue {
	return ReadingValue{Text: s}
}

// IsSatUnsat 是否为 SAT/UNSAT 读数
func (v ReadingValue) IsSatUnsat() bool { return v.Text != "" }

func (v ReadingValue) String() string {
	if v.IsSatUnsat() {
		return v.Text
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

// MarshalJSON 数值序列化为 JSON number，SAT/UNSAT 序列化为字符串
func (v ReadingValue) MarshalJSON() ([]byte, error) {
	if v.IsSatUnsat() {
		return json.Marshal(v.Text)
	}
	return json.Marshal(v.Number)
}

// UnmarshalJSON 兼容 number 与 "SAT"/"UNSAT" 两种形态
func (v *ReadingValue) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*v = ReadingValue{Number: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("reading value must be a number or SAT/UNSAT: %w", err)
	}
	if s != ValueSat && s != ValueUnsat {
		return fmt.Errorf("invalid reading value %q", s)
	}
	*v = ReadingValue{Text: s}
	return nil
}

// BuildingReading 一条已提交的正式读数
// 进入正式存储后不可修改，只能整条删除（无 update 语义）
type BuildingReading struct {
	ReadingID   string       `json:"reading_id"`
	Building    string       `json:"building"`
	Floor       string       `json:"floor"`
	Room        string       `json:"room"`
	ReadingType string       `json:"reading_type"`
	Value       ReadingValue `json:"value"`
	Unit        string       `json:"unit,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	Notes       string       `json:"notes,omitempty"`
	UserInfo    string       `json:"user_info,omitempty"` // 录入人自由文本（可选）
	PointID     string       `json:"point_id,omitempty"`  // 回指来源点位（可选）
}
