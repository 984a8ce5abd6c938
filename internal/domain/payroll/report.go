package payroll

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// ReportRow is one exported calculation with every amount rounded to a whole
// currency unit.
type ReportRow struct {
	Employee     string `csv:"Employee"`
	BaseSalary   int64  `csv:"Base Salary"`
	OvertimePay  int64  `csv:"Overtime Pay"`
	VacationPay  int64  `csv:"Vacation Pay"`
	SickLeavePay int64  `csv:"Sick Leave Pay"`
	Bonuses      int64  `csv:"Bonuses"`
	Deductions   int64  `csv:"Deductions"`
	GrossSalary  int64  `csv:"Gross Salary"`
	IncomeTax    int64  `csv:"Income Tax"`
	SocialTax    int64  `csv:"Social Tax"`
	INPSTax      int64  `csv:"INPS Tax"`
	NetSalary    int64  `csv:"Net Salary"`
}

// ReportHeaders is the column order of ReportRow.
var ReportHeaders = []string{
	"Employee", "Base Salary", "Overtime Pay", "Vacation Pay", "Sick Leave Pay", "Bonuses",
	"Deductions", "Gross Salary", "Income Tax", "Social Tax", "INPS Tax", "Net Salary",
}

// Round rounds half away from zero to a whole unit.
func Round(value float64) int64 {
	return decimal.NewFromFloat(value).Round(0).IntPart()
}

func NewReportRow(calc SalaryCalculation) ReportRow {
	return ReportRow{
		Employee:     calc.EmployeeName,
		BaseSalary:   Round(calc.BaseSalary),
		OvertimePay:  Round(calc.OvertimePay),
		VacationPay:  Round(calc.VacationPay),
		SickLeavePay: Round(calc.SickLeavePay),
		Bonuses:      Round(calc.Bonuses),
		Deductions:   Round(calc.Deductions),
		GrossSalary:  Round(calc.GrossSalary),
		IncomeTax:    Round(calc.IncomeTax),
		SocialTax:    Round(calc.SocialTax),
		INPSTax:      Round(calc.PensionAmount),
		NetSalary:    Round(calc.NetSalary),
	}
}

func (r ReportRow) Values() []int64 {
	return []int64{
		r.BaseSalary, r.OvertimePay, r.VacationPay, r.SickLeavePay, r.Bonuses, r.Deductions,
		r.GrossSalary, r.IncomeTax, r.SocialTax, r.INPSTax, r.NetSalary,
	}
}

func ReportRows(calcs []SalaryCalculation) []ReportRow {
	rows := make([]ReportRow, 0, len(calcs))
	for _, calc := range calcs {
		rows = append(rows, NewReportRow(calc))
	}
	return rows
}

// WriteCSV writes the header row followed by one row per calculation.
func WriteCSV(w io.Writer, calcs []SalaryCalculation) error {
	return gocsv.Marshal(ReportRows(calcs), w)
}
