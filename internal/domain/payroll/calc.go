package payroll

import (
	"strings"
	"time"

	"hrpay/internal/domain/core"
)

// Calendar holds the fixed month shape used to convert between hourly, daily
// and monthly pay. Division is always by these constants, never by the real
// number of working days in a month.
type Calendar struct {
	WorkDaysPerMonth int
	WorkHoursPerDay  int
}

var DefaultCalendar = Calendar{WorkDaysPerMonth: 22, WorkHoursPerDay: 8}

// ComputeTaxes splits amount into income, social and pension tax. Deductions
// are never taxed. Social tax is computed on the full amount; income tax on the
// amount net of pension.
func ComputeTaxes(amount float64, emp core.Employee, kind core.RecordType) core.Taxes {
	if kind == core.RecordTypeDeduction {
		return core.Taxes{}
	}
	pension := amount * (emp.INPSTaxRate / 100)
	social := amount * (emp.SocialTaxRate / 100)
	taxable := amount - pension
	return core.Taxes{
		IncomeTax:  taxable * (emp.TaxRate / 100),
		SocialTax:  social,
		PensionTax: pension,
	}
}

// BaseSalary is one pay cycle's base: the monthly equivalent, halved for
// bimonthly payees.
func (c Calendar) BaseSalary(emp core.Employee) float64 {
	base := emp.Rate
	if emp.PaymentType == core.PaymentTypeHourly {
		base = emp.Rate * float64(c.WorkHoursPerDay) * float64(c.WorkDaysPerMonth)
	}
	if emp.PaymentFrequency == core.PaymentFrequencyBimonthly {
		base /= 2
	}
	return base
}

func (c Calendar) HourlyRate(emp core.Employee, base float64) float64 {
	if emp.PaymentType == core.PaymentTypeHourly {
		return emp.Rate
	}
	return base / float64(c.WorkDaysPerMonth*c.WorkHoursPerDay)
}

func (c Calendar) DailyRate(base float64) float64 {
	return base / float64(c.WorkDaysPerMonth)
}

// SelectRecords keeps the employee's records dated within month (YYYY-MM).
func SelectRecords(employeeID string, recs []core.Record, month string) []core.Record {
	prefix := month + "-"
	out := make([]core.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.EmployeeID == employeeID && strings.HasPrefix(rec.Date, prefix) {
			out = append(out, rec)
		}
	}
	return out
}

// ComputeSalary derives the salary breakdown for one employee and month. It
// never fails and never rounds; inputs are trusted.
func (c Calendar) ComputeSalary(emp core.Employee, recs []core.Record, month string, now time.Time) SalaryCalculation {
	selected := SelectRecords(emp.ID, recs, month)

	var a Amounts
	a.BaseSalary = c.BaseSalary(emp)
	daily := c.DailyRate(a.BaseSalary)

	var overtimeHours float64
	for _, rec := range selected {
		switch ev := rec.Event.(type) {
		case core.Overtime:
			overtimeHours += ev.Hours
		case core.Leave:
			if !ev.IsPaid {
				continue
			}
			pay := float64(ev.Days) * daily
			switch ev.LeaveType {
			case core.LeaveVacation:
				a.VacationPay += pay
			case core.LeaveSick:
				a.SickLeavePay += pay
			case core.LeaveUnpaid:
			default:
				a.OtherPaidLeavePay += pay
			}
		case core.Bonus:
			a.Bonuses += ev.Amount
		case core.Deduction:
			a.Deductions += ev.Amount
		}
	}
	a.OvertimePay = overtimeHours * c.HourlyRate(emp, a.BaseSalary) * emp.Agreement.OvertimeRate

	a.GrossSalary = a.BaseSalary + a.OvertimePay + a.VacationPay + a.SickLeavePay + a.OtherPaidLeavePay + a.Bonuses
	taxes := ComputeTaxes(a.GrossSalary, emp, core.RecordTypeSalary)
	a.IncomeTax = taxes.IncomeTax
	a.SocialTax = taxes.SocialTax
	a.PensionAmount = taxes.PensionTax
	a.NetSalary = a.GrossSalary - a.IncomeTax - a.PensionAmount - a.Deductions

	return SalaryCalculation{
		ID:           CalculationID(emp.ID, month),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Month:        month,
		Amounts:      a,
		CalculatedAt: now,
	}
}

// ComputeSalary runs the default calendar at the current time.
func ComputeSalary(emp core.Employee, recs []core.Record, month string) SalaryCalculation {
	return DefaultCalendar.ComputeSalary(emp, recs, month, time.Now().UTC())
}

func CalculationID(employeeID, month string) string {
	return employeeID + "-" + month
}
