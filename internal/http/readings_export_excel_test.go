package httpapi_test

import (
	"bytes"
	"testing"
	"time"

	"facility-readings/internal/domain"
	httpapi "facility-readings/internal/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateReadingsExport(t *testing.T) {
	readings := []domain.BuildingReading{
		{
			Building:    "B1",
			Floor:       "2F",
			Room:        "Mech Room 201",
			ReadingType: "temperature",
			Value:       domain.NumberValue(15.5),
			Unit:        "degF",
			Timestamp:   time.Date(2026, 8, 26, 9, 30, 0, 0, time.UTC),
			Notes:       "morning round",
			UserInfo:    "Tech One",
		},
		{
			Building:    "B1",
			Room:        "Corridor 101",
			ReadingType: "inspection",
			Value:       domain.SatUnsatValue(domain.ValueUnsat),
			Timestamp:   time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
		},
	}

	data, err := httpapi.GenerateReadingsExport(readings)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Readings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, httpapi.ReadingsExportHeader, rows[0])
	assert.Equal(t, "15.5", rows[1][4])
	assert.Equal(t, "degF", rows[1][5])
	assert.Equal(t, "UNSAT", rows[2][4])
}

func TestGenerateReadingsExportEmpty(t *testing.T) {
	data, err := httpapi.GenerateReadingsExport(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Readings")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
