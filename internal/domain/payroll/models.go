package payroll

import "time"

type Amounts struct {
	BaseSalary        float64 `json:"baseSalary"`
	OvertimePay       float64 `json:"overtimePay"`
	VacationPay       float64 `json:"vacationPay"`
	SickLeavePay      float64 `json:"sickLeavePay"`
	OtherPaidLeavePay float64 `json:"otherPaidLeavePay"`
	Bonuses           float64 `json:"bonuses"`
	Deductions        float64 `json:"deductions"`
	GrossSalary       float64 `json:"grossSalary"`
	IncomeTax         float64 `json:"incomeTax"`
	SocialTax         float64 `json:"socialTax"`
	PensionAmount     float64 `json:"pensionAmount"`
	NetSalary         float64 `json:"netSalary"`
}

func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		BaseSalary:        a.BaseSalary + b.BaseSalary,
		OvertimePay:       a.OvertimePay + b.OvertimePay,
		VacationPay:       a.VacationPay + b.VacationPay,
		SickLeavePay:      a.SickLeavePay + b.SickLeavePay,
		OtherPaidLeavePay: a.OtherPaidLeavePay + b.OtherPaidLeavePay,
		Bonuses:           a.Bonuses + b.Bonuses,
		Deductions:        a.Deductions + b.Deductions,
		GrossSalary:       a.GrossSalary + b.GrossSalary,
		IncomeTax:         a.IncomeTax + b.IncomeTax,
		SocialTax:         a.SocialTax + b.SocialTax,
		PensionAmount:     a.PensionAmount + b.PensionAmount,
		NetSalary:         a.NetSalary + b.NetSalary,
	}
}

// SalaryCalculation is a snapshot for one employee and month. ID is
// "<employeeId>-<month>"; recalculating replaces it.
type SalaryCalculation struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Month        string `json:"month"`
	Amounts
	CalculatedAt time.Time `json:"calculatedAt"`
}

type Report struct {
	StartMonth   string              `json:"startMonth"`
	EndMonth     string              `json:"endMonth"`
	Calculations []SalaryCalculation `json:"calculations"`
	Totals       Amounts             `json:"totals"`
}
