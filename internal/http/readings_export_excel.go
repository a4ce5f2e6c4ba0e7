package httpapi

import (
	"bytes"
	"fmt"

	"facility-readings/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ReadingsExportHeader 读数导出表头
var ReadingsExportHeader = []string{
	"Building",
	"Floor",
	"Room",
	"Reading Type",
	"Value",
	"Unit",
	"Timestamp",
	"Notes",
	"Recorded By",
}

// GenerateReadingsExport 生成读数导出 Excel 文件
// readings 为空时只生成表头
func GenerateReadingsExport(readings []domain.BuildingReading) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Readings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ReadingsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, reading := range readings {
		row := i + 2
		values := []any{
			reading.Building,
			reading.Floor,
			reading.Room,
			reading.ReadingType,
			reading.Value.String(),
			reading.Unit,
			reading.Timestamp.Format("2006-01-02 15:04:05"),
			reading.Notes,
			reading.UserInfo,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
