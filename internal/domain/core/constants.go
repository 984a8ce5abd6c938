package core

type PaymentType string

const (
	PaymentTypeSalary PaymentType = "salary"
	PaymentTypeHourly PaymentType = "hourly"
)

type PaymentFrequency string

const (
	PaymentFrequencyMonthly   PaymentFrequency = "monthly"
	PaymentFrequencyBimonthly PaymentFrequency = "bimonthly"
)

type RecordType string

const (
	RecordTypeLeave     RecordType = "leave"
	RecordTypeOvertime  RecordType = "overtime"
	RecordTypeBonus     RecordType = "bonus"
	RecordTypeDeduction RecordType = "deduction"

	// RecordTypeSalary is never stored; it tags a gross salary amount passed to
	// the tax computation.
	RecordTypeSalary RecordType = "salary"
)

var RecordTypes = []RecordType{RecordTypeLeave, RecordTypeOvertime, RecordTypeBonus, RecordTypeDeduction}

type LeaveType string

const (
	LeaveVacation    LeaveType = "vacation"
	LeaveSick        LeaveType = "sick"
	LeaveMarriage    LeaveType = "marriage"
	LeaveBereavement LeaveType = "bereavement"
	LeavePaternity   LeaveType = "paternity"
	LeaveMaternity   LeaveType = "maternity"
	LeaveStudy       LeaveType = "study"
	LeaveMilitary    LeaveType = "military"
	LeaveUnpaid      LeaveType = "unpaid"
)

// PaidLeaveTypes lists every leave type that carries an annual allowance, in
// display order.
var PaidLeaveTypes = []LeaveType{
	LeaveVacation, LeaveSick, LeaveMarriage, LeaveBereavement,
	LeavePaternity, LeaveMaternity, LeaveStudy, LeaveMilitary,
}

func IsRecordType(value string) bool {
	for _, t := range RecordTypes {
		if string(t) == value {
			return true
		}
	}
	return false
}

func IsLeaveType(value string) bool {
	if LeaveType(value) == LeaveUnpaid {
		return true
	}
	for _, t := range PaidLeaveTypes {
		if string(t) == value {
			return true
		}
	}
	return false
}
