package core

import "encoding/json"

// Record is one dated payroll event. The kind-specific data lives in Event,
// which is one of Leave, Overtime, Bonus or Deduction.
type Record struct {
	ID          string
	EmployeeID  string
	Date        string
	Description string
	Taxes       *Taxes
	Event       Event
}

type Event interface {
	Type() RecordType
	sealed()
}

type Leave struct {
	LeaveType LeaveType
	StartDate string
	EndDate   string
	Days      int
	IsPaid    bool
	Amount    *float64
}

// Overtime carries worked hours, not currency.
type Overtime struct {
	Hours float64
}

type Bonus struct {
	Amount float64
}

type Deduction struct {
	Amount float64
}

func (Leave) Type() RecordType     { return RecordTypeLeave }
func (Overtime) Type() RecordType  { return RecordTypeOvertime }
func (Bonus) Type() RecordType     { return RecordTypeBonus }
func (Deduction) Type() RecordType { return RecordTypeDeduction }

func (Leave) sealed()     {}
func (Overtime) sealed()  {}
func (Bonus) sealed()     {}
func (Deduction) sealed() {}

func (r Record) Type() RecordType {
	if r.Event == nil {
		return ""
	}
	return r.Event.Type()
}

// Amount is the record's numeric value: hours for overtime, currency for
// bonus and deduction, the computed pay for leave (zero when unset).
func (r Record) Amount() float64 {
	switch ev := r.Event.(type) {
	case Leave:
		if ev.Amount != nil {
			return *ev.Amount
		}
	case Overtime:
		return ev.Hours
	case Bonus:
		return ev.Amount
	case Deduction:
		return ev.Amount
	}
	return 0
}

type recordJSON struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Type        RecordType `json:"type"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Amount      *float64   `json:"amount,omitempty"`
	LeaveType   LeaveType  `json:"leaveType,omitempty"`
	StartDate   string     `json:"startDate,omitempty"`
	EndDate     string     `json:"endDate,omitempty"`
	Days        *int       `json:"days,omitempty"`
	IsPaid      *bool      `json:"isPaid,omitempty"`
	Taxes       *Taxes     `json:"taxes,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Type:        r.Type(),
		Date:        r.Date,
		Description: r.Description,
		Taxes:       r.Taxes,
	}
	switch ev := r.Event.(type) {
	case Leave:
		days, paid := ev.Days, ev.IsPaid
		out.LeaveType = ev.LeaveType
		out.StartDate = ev.StartDate
		out.EndDate = ev.EndDate
		out.Days = &days
		out.IsPaid = &paid
		out.Amount = ev.Amount
	case Overtime, Bonus, Deduction:
		amount := r.Amount()
		out.Amount = &amount
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat discriminated shape. An unknown or missing
// type leaves Event nil so validation can report it against the field.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Record{
		ID:          in.ID,
		EmployeeID:  in.EmployeeID,
		Date:        in.Date,
		Description: in.Description,
		Taxes:       in.Taxes,
	}
	var amount float64
	if in.Amount != nil {
		amount = *in.Amount
	}
	switch in.Type {
	case RecordTypeLeave:
		leave := Leave{
			LeaveType: in.LeaveType,
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Amount:    in.Amount,
		}
		if in.Days != nil {
			leave.Days = *in.Days
		}
		if in.IsPaid != nil {
			leave.IsPaid = *in.IsPaid
		}
		r.Event = leave
	case RecordTypeOvertime:
		r.Event = Overtime{Hours: amount}
	case RecordTypeBonus:
		r.Event = Bonus{Amount: amount}
	case RecordTypeDeduction:
		r.Event = Deduction{Amount: amount}
	}
	return nil
}
