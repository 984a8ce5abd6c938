package workbook

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
)

func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	rows, err := ParseEmployees(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.Line)
	assert.Empty(t, row.Issues)
	assert.Equal(t, "John Doe", row.Employee.Name)
	assert.Equal(t, "12345678901234", row.Employee.PINFL)
	assert.Equal(t, core.PaymentTypeSalary, row.Employee.PaymentType)
	assert.Equal(t, 5000000.0, row.Employee.Rate)
	assert.Equal(t, 126, row.Employee.Agreement.PaidLeaves.Maternity)
	assert.Equal(t, 1.5, row.Employee.Agreement.OvertimeRate)

	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, core.ValidateEmployee(core.NormalizeEmployee(row.Employee), today))
}

func buildWorkbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func headerRow() []any {
	out := make([]any, len(ImportColumns))
	for i, col := range ImportColumns {
		out[i] = col
	}
	return out
}

func TestParseEmployeesReportsCellIssues(t *testing.T) {
	buf := buildWorkbook(t,
		headerRow(),
		[]any{"Jane Roe", "Analyst", "98765432109876", "AB", "7654321", 32874,
			"hourly", "bimonthly", "fifty", "2024-02-01", 12, 20, 10, 2, 1.5, 0, 0, 0, 0, 0},
		[]any{},
		[]any{"Bob Stone"},
	)

	rows, err := ParseEmployees(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "1990-01-01", first.Employee.DateOfBirth)
	assert.Equal(t, []core.Issue{
		{Field: "agreement.paidLeaves.marriage", Reason: "must be a whole number"},
		{Field: "rate", Reason: "must be a number"},
	}, first.Issues)

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "Bob Stone", rows[1].Employee.Name)
	assert.Empty(t, rows[1].Issues)
}

func TestParseEmployeesHeaderMatching(t *testing.T) {
	header := headerRow()
	header[0] = "  NAME "
	rows, err := ParseEmployees(buildWorkbook(t, header))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = ParseEmployees(buildWorkbook(t, []any{"name", "position"}))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = ParseEmployees(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	calc := payroll.SalaryCalculation{
		EmployeeName: "John Smith",
		Month:        "2024-03",
		Amounts: payroll.Amounts{
			BaseSalary:  5000000,
			GrossSalary: 5000000.4,
			NetSalary:   4355000.5,
		},
	}
	report := payroll.Report{
		StartMonth:   "2024-03",
		EndMonth:     "2024-03",
		Calculations: []payroll.SalaryCalculation{calc},
		Totals:       calc.Amounts,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Salary report 2024-03 to 2024-03", rows[0][0])
	assert.Equal(t, []string{"Employee", "Month", "Base Salary"}, rows[2][:3])
	assert.Equal(t, "John Smith", rows[3][0])
	assert.Equal(t, "2024-03", rows[3][1])
	assert.Equal(t, "5000000", rows[3][2])
	assert.Equal(t, "4355001", rows[3][len(rows[3])-1])
	assert.Equal(t, "Total", rows[4][0])
}
