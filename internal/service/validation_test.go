package service_test

import (
	"testing"

	"facility-readings/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestIsValueValidRange(t *testing.T) {
	point := rangePoint(floatPtr(10), floatPtr(20))

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"in range", "15", true},
		{"below range still valid", "5", true},
		{"above range still valid", "25", true},
		{"negative valid", "-3.5", true},
		{"zero is the empty sentinel", "0", false},
		{"empty string", "", false},
		{"not a number", "abc", false},
		{"sat literal rejected on range point", "SAT", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsValueValid(point, tt.value))
		})
	}
}

func TestIsValueValidSatUnsat(t *testing.T) {
	point := satUnsatPoint()

	assert.True(t, service.IsValueValid(point, "SAT"))
	assert.True(t, service.IsValueValid(point, "UNSAT"))
	assert.False(t, service.IsValueValid(point, "sat"), "literals are case sensitive")
	assert.False(t, service.IsValueValid(point, "15"))
	assert.False(t, service.IsValueValid(point, ""))
}

func TestIsInRange(t *testing.T) {
	tests := []struct {
		name  string
		min   *float64
		max   *float64
		value string
		want  bool
	}{
		{"inside", floatPtr(10), floatPtr(20), "15", true},
		{"at min boundary", floatPtr(10), floatPtr(20), "10", true},
		{"at max boundary", floatPtr(10), floatPtr(20), "20", true},
		{"below min", floatPtr(10), floatPtr(20), "9.9", false},
		{"above max", floatPtr(10), floatPtr(20), "20.1", false},
		{"no min treats low as in range", nil, floatPtr(20), "-100", true},
		{"no max treats high as in range", floatPtr(10), nil, "9999", true},
		{"no bounds at all", nil, nil, "42", true},
		{"unparseable never in range", floatPtr(10), floatPtr(20), "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsInRange(rangePoint(tt.min, tt.max), tt.value))
		})
	}
}

func TestRequiresComment(t *testing.T) {
	rp := rangePoint(floatPtr(10), floatPtr(20))
	sp := satUnsatPoint()

	assert.False(t, service.RequiresComment(rp, "15"), "in-range value needs no comment")
	assert.True(t, service.RequiresComment(rp, "25"), "out-of-range value needs a comment")
	assert.True(t, service.RequiresComment(rp, "5"))
	assert.False(t, service.RequiresComment(rp, "abc"), "invalid input is not the comment gate's business")

	assert.False(t, service.RequiresComment(sp, "SAT"))
	assert.True(t, service.RequiresComment(sp, "UNSAT"))
}

func TestCanMarkComplete(t *testing.T) {
	rp := rangePoint(floatPtr(10), floatPtr(20))
	sp := satUnsatPoint()

	// 越界数值：无注释不可完成，补注释后可完成
	assert.False(t, service.CanMarkComplete(rp, "25", ""))
	assert.False(t, service.CanMarkComplete(rp, "25", "   "), "whitespace notes do not count")
	assert.True(t, service.CanMarkComplete(rp, "25", "sensor drifting, work order filed"))

	assert.True(t, service.CanMarkComplete(rp, "15", ""))
	assert.False(t, service.CanMarkComplete(rp, "0", "zero is never a reading"))
	assert.False(t, service.CanMarkComplete(rp, "", ""))

	assert.True(t, service.CanMarkComplete(sp, "SAT", ""))
	assert.False(t, service.CanMarkComplete(sp, "UNSAT", ""))
	assert.True(t, service.CanMarkComplete(sp, "UNSAT", "damper stuck open"))
}
