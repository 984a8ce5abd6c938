package workbook

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Template"

// templateExample is the sample row shown under the header.
var templateExample = []any{
	"John Doe", "Software Engineer", "12345678901234", "AA", "1234567", "1990-01-01",
	"salary", "monthly", 5000000, "2024-01-01", 12,
	24, 15, 1.5,
	3, 3, 5, 126, 14, 14,
}

// WriteTemplate writes an import workbook with the header row and one example
// employee.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return err
	}
	header := make([]any, len(ImportColumns))
	for i, col := range ImportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetSheetRow(templateSheet, "A2", &templateExample); err != nil {
		return err
	}

	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return err
	}
	// pinfl and passportNumber keep leading zeros as text.
	if err := f.SetColStyle(templateSheet, "C", textStyle); err != nil {
		return err
	}
	if err := f.SetColStyle(templateSheet, "E", textStyle); err != nil {
		return err
	}

	if err := headerStyle(f, templateSheet, 1, len(ImportColumns)); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(ImportColumns))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(templateSheet, "A", last, 18); err != nil {
		return err
	}
	return f.Write(w)
}

func headerStyle(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E7FF"}},
	})
	if err != nil {
		return err
	}
	from, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}
