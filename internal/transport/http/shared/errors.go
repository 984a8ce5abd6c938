package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/records"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
)

// DecodeJSON reads the request body into dst. On failure it writes the error
// response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	requestID := requestctx.GetRequestID(r.Context())
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return false
	}
	return true
}

// WriteError maps a domain error to its HTTP response. Unknown errors are
// logged and reported as 500 with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error, message string) {
	requestID := requestctx.GetRequestID(r.Context())

	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		FailValidation(w, requestID, verr.Issues)
	case errors.Is(err, core.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, core.ErrEmployeeExists):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	case errors.Is(err, payroll.ErrInvalidMonth):
		FailValidation(w, requestID, []core.Issue{{Field: "month", Reason: "must be a valid month in YYYY-MM format"}})
	case errors.Is(err, payroll.ErrInvalidRange):
		FailValidation(w, requestID, []core.Issue{{Field: "endMonth", Reason: "must not be before startMonth"}})
	case errors.Is(err, payroll.ErrRangeTooLarge):
		FailValidation(w, requestID, []core.Issue{{Field: "endMonth", Reason: "range must not exceed 24 months"}})
	case errors.Is(err, records.ErrInvalidType):
		FailValidation(w, requestID, []core.Issue{{Field: "type", Reason: "must be one of: leave, overtime, bonus, deduction"}})
	default:
		requestctx.Logger(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(message)
		api.Fail(w, http.StatusInternalServerError, "internal_error", message, requestID)
	}
}
