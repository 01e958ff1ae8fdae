package httpapi

import (
	"bytes"
	"fmt"
	"strings"

	"mindtrack-chi/internal/fusion"
	"mindtrack-chi/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	monthlySheet = "CHI Monthly"
	summarySheet = "Summary"
)

var monthlyHeaders = []string{"Date", "Day", "CHI Score", "Risk Level"}

// GenerateMonthlyReport 生成月视图 Excel（每天一行 + 汇总页）
func GenerateMonthlyReport(summary *models.MonthlySummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("summary is required")
	}

	f := excelize.NewFile()

	index, err := f.NewSheet(monthlySheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
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

	// 风险等级单元格按颜色区分
	riskStyles := make(map[models.RiskLevel]int, 3)
	for _, level := range []models.RiskLevel{models.RiskLow, models.RiskModerate, models.RiskHigh} {
		style, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: strings.TrimPrefix(fusion.RiskDescriptor(level).Hex, "#")},
		})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create risk style: %w", err)
		}
		riskStyles[level] = style
	}

	// 写入表头
	for col, header := range monthlyHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(monthlySheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(monthlySheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}
	if err := f.SetColWidth(monthlySheet, "A", "A", 14); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(monthlySheet, "B", "D", 12); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	// 写入数据，从第2行开始
	for i, day := range summary.Days {
		row := i + 2
		values := []interface{}{day.Date, day.Day, day.CHIScore, string(day.RiskLevel)}
		for col, value := range values {
			if err := setCellValue(f, monthlySheet, col+1, row, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, col+1, err)
			}
		}
		if style, ok := riskStyles[day.RiskLevel]; ok {
			cell, _ := excelize.CoordinatesToCellName(4, row)
			if err := f.SetCellStyle(monthlySheet, cell, cell, style); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set risk style: %w", err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(monthlySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	// 汇总页
	rows := [][]interface{}{
		{"Month", summary.Month},
		{"Year", summary.Year},
		{"Start Date", summary.StartDate},
		{"End Date", summary.EndDate},
		{"Average CHI", summary.Stats.AvgCHI},
		{"Average Sleep (h)", summary.Stats.AvgSleep},
		{"Average HRV", summary.Stats.AvgHRV},
		{"Average Stress", summary.Stats.AvgStress},
		{"Low Risk Days", summary.RiskCounts.Low},
		{"Moderate Risk Days", summary.RiskCounts.Moderate},
		{"High Risk Days", summary.RiskCounts.High},
		{"Longest Low Streak", summary.LongestLowStreak},
		{"Previous Average CHI", summary.Comparison.PreviousAvgCHI},
		{"Change (%)", summary.Comparison.Percentage},
		{"Direction", string(summary.Comparison.Direction)},
	}
	for i, kv := range rows {
		for col, value := range kv {
			if err := setCellValue(f, summarySheet, col+1, i+1, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set summary cell at row %d: %w", i+1, err)
			}
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

// setCellValue 设置单元格值
func setCellValue(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
