package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hrpay/internal/domain/payroll"
)

const reportSheet = "Salary Report"

// WriteReport writes the salary report as a single-sheet workbook: a title row,
// the header, one row per calculation and a totals row. Amounts are rounded to
// whole units like the CSV export.
func WriteReport(w io.Writer, report payroll.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}
	cols := len(payroll.ReportHeaders) + 1

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	if err := f.SetCellValue(reportSheet, "A1", fmt.Sprintf("Salary report %s to %s", report.StartMonth, report.EndMonth)); err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	header := []any{payroll.ReportHeaders[0], "Month"}
	for _, h := range payroll.ReportHeaders[1:] {
		header = append(header, h)
	}
	if err := f.SetSheetRow(reportSheet, "A3", &header); err != nil {
		return err
	}
	if err := headerStyle(f, reportSheet, 3, cols); err != nil {
		return err
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return err
	}

	row := 4
	for _, calc := range report.Calculations {
		r := payroll.NewReportRow(calc)
		if err := setAmountRow(f, row, []any{r.Employee, calc.Month}, r.Values()); err != nil {
			return err
		}
		row++
	}
	totals := payroll.NewReportRow(payroll.SalaryCalculation{EmployeeName: "Total", Amounts: report.Totals})
	if err := setAmountRow(f, row, []any{totals.Employee, ""}, totals.Values()); err != nil {
		return err
	}
	if err := headerStyle(f, reportSheet, row, 2); err != nil {
		return err
	}

	first, _ := excelize.CoordinatesToCellName(3, 4)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	if err := f.SetCellStyle(reportSheet, first, last, amountStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 28); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(cols)
	if err := f.SetColWidth(reportSheet, "B", lastCol, 15); err != nil {
		return err
	}
	if err := f.SetPanes(reportSheet, &excelize.Panes{
		Freeze: true, YSplit: 3, TopLeftCell: "A4", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}
	return f.Write(w)
}

func setAmountRow(f *excelize.File, row int, lead []any, values []int64) error {
	cells := lead
	for _, v := range values {
		cells = append(cells, v)
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(reportSheet, cell, &cells)
}
