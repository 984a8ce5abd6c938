package core

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

const minEmployeeAge = 16

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateStruct runs tag validation and converts failures to field issues
// keyed by their JSON path.
func ValidateStruct(value any) []Issue {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Field: "", Reason: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Field: fieldPath(fe), Reason: reason(fe)})
	}
	return issues
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "digits":
		return "must contain only digits"
	case "alpha":
		return "must contain only letters"
	case "uppercase":
		return "must be uppercase"
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

// NormalizeEmployee trims text fields and upper-cases the passport series.
func NormalizeEmployee(emp Employee) Employee {
	emp.Name = strings.TrimSpace(emp.Name)
	emp.Position = strings.TrimSpace(emp.Position)
	emp.PINFL = strings.TrimSpace(emp.PINFL)
	emp.PassportSeries = strings.ToUpper(strings.TrimSpace(emp.PassportSeries))
	emp.PassportNumber = strings.TrimSpace(emp.PassportNumber)
	emp.DateOfBirth = strings.TrimSpace(emp.DateOfBirth)
	emp.StartDate = strings.TrimSpace(emp.StartDate)
	emp.PaymentType = PaymentType(strings.ToLower(strings.TrimSpace(string(emp.PaymentType))))
	emp.PaymentFrequency = PaymentFrequency(strings.ToLower(strings.TrimSpace(string(emp.PaymentFrequency))))
	return emp
}

// ValidateEmployee checks an employee against the agreement rules. today is the
// reference date for age and future-date checks.
func ValidateEmployee(emp Employee, today time.Time) []Issue {
	issues := ValidateStruct(emp)

	if dob, err := time.Parse(DateLayout, emp.DateOfBirth); err == nil {
		if dob.After(today) {
			issues = append(issues, Issue{Field: "dateOfBirth", Reason: "cannot be in the future"})
		} else if ageOn(dob, today) < minEmployeeAge {
			issues = append(issues, Issue{Field: "dateOfBirth", Reason: fmt.Sprintf("employee must be at least %d years old", minEmployeeAge)})
		}
	}
	if start, err := time.Parse(DateLayout, emp.StartDate); err == nil && start.After(today) {
		issues = append(issues, Issue{Field: "startDate", Reason: "cannot be in the future"})
	}

	SortIssues(issues)
	return issues
}

func ageOn(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Field == issues[j].Field {
			return issues[i].Reason < issues[j].Reason
		}
		return issues[i].Field < issues[j].Field
	})
}
