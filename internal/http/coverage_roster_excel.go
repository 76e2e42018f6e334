package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"safetynet-alerts/internal/service"

	"github.com/xuri/excelize/v2"
)

// CoverageRosterHeader 覆盖名单导出表头
var CoverageRosterHeader = []string{
	"First Name",
	"Last Name",
	"Address",
	"Phone",
}

// GenerateCoverageRosterExport 生成某站号覆盖名单的 Excel 文件
func GenerateCoverageRosterExport(stationNumber string, coverage *service.CoveredPersonsListDTO) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Station " + stationNumber
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range CoverageRosterHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "B", 18)
	_ = f.SetColWidth(sheetName, "C", "C", 32)
	_ = f.SetColWidth(sheetName, "D", "D", 16)

	for i, p := range coverage.CoveredPersons {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.FirstName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.LastName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.Address)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Phone)
	}

	// 汇总行：儿童/成人计数 + 导出时间
	summaryRow := len(coverage.CoveredPersons) + 3
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow),
		fmt.Sprintf("Children: %d / Adults: %d", coverage.ChildCount, coverage.AdultsCount))
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1),
		"Exported: "+time.Now().Format("2006-01-02 15:04:05"))

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
