package domain_test

import (
	"encoding/json"
	"testing"

	"facility-readings/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingValueJSON(t *testing.T) {
	b, err := json.Marshal(domain.NumberValue(15.5))
	require.NoError(t, err)
	assert.Equal(t, "15.5", string(b), "numeric values stay JSON numbers")

	b, err = json.Marshal(domain.SatUnsatValue(domain.ValueUnsat))
	require.NoError(t, err)
	assert.Equal(t, `"UNSAT"`, string(b))

	var v domain.ReadingValue
	require.NoError(t, json.Unmarshal([]byte("42"), &v))
	assert.False(t, v.IsSatUnsat())
	assert.Equal(t, 42.0, v.Number)

	require.NoError(t, json.Unmarshal([]byte(`"SAT"`), &v))
	assert.True(t, v.IsSatUnsat())
	assert.Equal(t, domain.ValueSat, v.Text)

	// SAT/UNSAT 之外的字符串不合法
	assert.Error(t, json.Unmarshal([]byte(`"MAYBE"`), &v))
	assert.Error(t, json.Unmarshal([]byte(`true`), &v))
}

func TestReadingValueString(t *testing.T) {
	assert.Equal(t, "15.5", domain.NumberValue(15.5).String())
	assert.Equal(t, "15", domain.NumberValue(15).String())
	assert.Equal(t, "UNSAT", domain.SatUnsatValue(domain.ValueUnsat).String())
}

func TestSubmissionStatusTransitions(t *testing.T) {
	assert.False(t, domain.SubmissionPending.Terminal())
	assert.True(t, domain.SubmissionApproved.Terminal())
	assert.True(t, domain.SubmissionRejected.Terminal())
	assert.True(t, domain.SubmissionNeedsRevision.Terminal())
	assert.False(t, domain.SubmissionStatus("draft").Valid())

	status, ok := domain.ReviewApprove.Status()
	require.True(t, ok)
	assert.Equal(t, domain.SubmissionApproved, status)
	status, ok = domain.ReviewRequestRevision.Status()
	require.True(t, ok)
	assert.Equal(t, domain.SubmissionNeedsRevision, status)
	_, ok = domain.ReviewAction("escalate").Status()
	assert.False(t, ok)
}
