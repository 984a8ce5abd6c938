package core

import "strings"

// MaskIdentity hides all but the trailing characters of the PINFL and passport
// number. Used wherever an employee is written to logs.
func MaskIdentity(emp Employee) Employee {
	emp.PINFL = maskTail(emp.PINFL, 4)
	emp.PassportNumber = maskTail(emp.PassportNumber, 2)
	return emp
}

func maskTail(value string, keep int) string {
	if len(value) <= keep {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-keep) + value[len(value)-keep:]
}
