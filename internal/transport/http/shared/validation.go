package shared

import (
	"net/http"
	"strings"

	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/transport/http/api"
)

// Validator collects issues for query and path parameters. Bodies are
// validated by the domain services.
type Validator struct {
	issues []core.Issue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]core.Issue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, core.Issue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == strings.ToLower(strings.TrimSpace(candidate)) {
			return
		}
	}
	v.Add(field, reason)
}

// Month reports an issue unless raw is a YYYY-MM month.
func (v *Validator) Month(field, raw string) bool {
	if _, err := payroll.ParseMonth(strings.TrimSpace(raw)); err != nil {
		v.Add(field, "must be a valid month in YYYY-MM format")
		return false
	}
	return true
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []core.Issue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]core.Issue, len(v.issues))
	copy(out, v.issues)
	core.SortIssues(out)
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []core.Issue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}
