package payroll

import "errors"

var (
	ErrInvalidMonth  = errors.New("month must be in YYYY-MM format")
	ErrInvalidRange  = errors.New("end month before start month")
	ErrRangeTooLarge = errors.New("report range exceeds the maximum number of months")
)
