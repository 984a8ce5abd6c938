package core

type Employee struct {
	ID               string           `json:"id"`
	Name             string           `json:"name" validate:"required,min=2"`
	Position         string           `json:"position" validate:"required,min=2"`
	PINFL            string           `json:"pinfl" validate:"required,len=14,digits"`
	PassportSeries   string           `json:"passportSeries" validate:"required,len=2,alpha,uppercase"`
	PassportNumber   string           `json:"passportNumber" validate:"required,len=7,digits"`
	DateOfBirth      string           `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	PaymentType      PaymentType      `json:"paymentType" validate:"required,oneof=salary hourly"`
	PaymentFrequency PaymentFrequency `json:"paymentFrequency" validate:"required,oneof=monthly bimonthly"`
	Rate             float64          `json:"rate" validate:"gte=0"`
	StartDate        string           `json:"startDate" validate:"required,datetime=2006-01-02"`
	TaxRate          float64          `json:"taxRate" validate:"gte=0,lte=100"`
	SocialTaxRate    float64          `json:"socialTaxRate"`
	INPSTaxRate      float64          `json:"inpsTaxRate"`
	Agreement        Agreement        `json:"agreement"`
}

type Agreement struct {
	VacationDaysPerYear int        `json:"vacationDaysPerYear" validate:"gte=0,lte=365"`
	SickLeavePerYear    int        `json:"sickLeavePerYear" validate:"gte=0,lte=365"`
	OvertimeRate        float64    `json:"overtimeRate" validate:"gte=1"`
	PaidLeaves          PaidLeaves `json:"paidLeaves"`
}

type PaidLeaves struct {
	Marriage    int `json:"marriage" validate:"gte=0"`
	Bereavement int `json:"bereavement" validate:"gte=0"`
	Paternity   int `json:"paternity" validate:"gte=0"`
	Maternity   int `json:"maternity" validate:"gte=0"`
	Study       int `json:"study" validate:"gte=0"`
	Military    int `json:"military" validate:"gte=0"`
}

// Allowance returns the annual day allowance for a leave type. Unpaid leave has
// no allowance and reports ok=false.
func (a Agreement) Allowance(leaveType LeaveType) (int, bool) {
	switch leaveType {
	case LeaveVacation:
		return a.VacationDaysPerYear, true
	case LeaveSick:
		return a.SickLeavePerYear, true
	case LeaveMarriage:
		return a.PaidLeaves.Marriage, true
	case LeaveBereavement:
		return a.PaidLeaves.Bereavement, true
	case LeavePaternity:
		return a.PaidLeaves.Paternity, true
	case LeaveMaternity:
		return a.PaidLeaves.Maternity, true
	case LeaveStudy:
		return a.PaidLeaves.Study, true
	case LeaveMilitary:
		return a.PaidLeaves.Military, true
	}
	return 0, false
}

// Taxes is the withholding split for one amount. PensionTax is the INPS
// contribution.
type Taxes struct {
	IncomeTax  float64 `json:"incomeTax"`
	SocialTax  float64 `json:"socialTax"`
	PensionTax float64 `json:"inpsTax"`
}
