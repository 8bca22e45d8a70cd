package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel rendition of the estimate and returns the
// file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars by the format.
	sheetName := data.ProjectName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]

	widths := []float64{40, 14, 8, 8, 14, 10, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header block ────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.ProjectName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	meta := []struct {
		label string
		value string
	}{
		{"Estimate Number", data.EstimateNumber},
		{"Client Name", data.ClientName},
		{"Client Phone", data.ClientPhone},
		{"Client Email", data.ClientEmail},
		{"Estimate Date", data.EstimateDate},
	}
	row := 2
	for _, m := range meta {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, m.label)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(m.value))
		f.SetCellStyle(sheetName, "A"+rowStr, "B"+rowStr, subtitleStyle)
		row++
	}
	row++ // blank row after metadata

	// ── Sections ────────────────────────────────────────────────────────

	for _, sec := range data.Sections {
		rowStr := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge section title: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(sec.Title))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
		row++

		rowStr = fmt.Sprintf("%d", row)
		for i, h := range itemHeaderFields {
			f.SetCellValue(sheetName, columns[i]+rowStr, h)
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, headerStyle)
		row++

		for _, r := range sec.Rows {
			rowStr = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.Description))
			f.SetCellValue(sheetName, "B"+rowStr, r.Category)
			f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Qty))
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Unit))
			f.SetCellValue(sheetName, "E"+rowStr, FormatUSD(r.UnitCost))
			f.SetCellValue(sheetName, "F"+rowStr, taxableLabel(r.Taxable))
			f.SetCellValue(sheetName, "G"+rowStr, FormatUSD(r.LineTotal))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			row++
		}

		rowStr = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "F"+rowStr, "Subtotal:")
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "G"+rowStr, FormatUSD(sec.Subtotal))
		f.SetCellStyle(sheetName, "G"+rowStr, "G"+rowStr, summaryValueStyle)
		row++

		if sec.Notes != "" {
			rowStr = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+rowStr, "Notes: "+sanitizeExcelCell(sec.Notes))
			f.SetCellStyle(sheetName, "A"+rowStr, "A"+rowStr, subtitleStyle)
			row++
		}
		row++ // blank row between sections
	}

	// ── Summary ─────────────────────────────────────────────────────────

	summary := []struct {
		label string
		value string
	}{
		{fmt.Sprintf("Sales Tax (%s%%)", formatNumber(data.Rates.TaxPct)), FormatUSD(data.Totals.Tax)},
		{fmt.Sprintf("Overhead (%s%%)", formatNumber(data.Rates.OverheadPct)), FormatUSD(data.Totals.Overhead)},
		{fmt.Sprintf("Profit (%s%%)", formatNumber(data.Rates.ProfitPct)), FormatUSD(data.Totals.Profit)},
		{fmt.Sprintf("Contingency (%s%%)", formatNumber(data.Rates.ContingencyPct)), FormatUSD(data.Totals.Contingency)},
	}

	rowStr := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+rowStr, "SUBTOTAL:")
	f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryLabelStyle)
	f.SetCellValue(sheetName, "G"+rowStr, FormatUSD(data.Totals.Subtotal))
	f.SetCellStyle(sheetName, "G"+rowStr, "G"+rowStr, summaryValueStyle)
	row++

	for _, s := range summary {
		rowStr = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "F"+rowStr, s.label)
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "G"+rowStr, s.value)
		f.SetCellStyle(sheetName, "G"+rowStr, "G"+rowStr, summaryValueStyle)
		row++
	}

	rowStr = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+rowStr, "TOTAL:")
	f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryLabelStyle)
	f.SetCellValue(sheetName, "G"+rowStr, FormatUSD(data.Totals.Total))
	f.SetCellStyle(sheetName, "G"+rowStr, "G"+rowStr, summaryValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell guards against formula injection when a cell value
// starts with a character Excel would interpret.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#CCCCCC", Style: 1}
	}
	return borders
}
