package export

import (
	"time"

	"go-nexushr/internal/employee"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Personal"

var xlsxColumnWidths = []float64{30, 25, 20, 20, 10, 10, 15}

func WriteXLSX(records []employee.EmployeeResponse, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", headerStyle); err != nil {
		return nil, err
	}

	date := reportDate(now)
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.ID,
			r.Name,
			orMissing(r.Role),
			orMissing(r.Department),
			percent(r.Workload),
			LocalizedStatus(r.Status),
			date,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	for i, width := range xlsxColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
