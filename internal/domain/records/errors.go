package records

import "errors"

var ErrInvalidType = errors.New("invalid record type")
