package employeeshandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
	"hrpay/internal/domain/workbook"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EmployeeService interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]core.Employee, error)
	Get(ctx context.Context, employeeID string) (core.Employee, error)
	Create(ctx context.Context, emp core.Employee) (core.Employee, error)
	Update(ctx context.Context, employeeID string, emp core.Employee) (core.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	ImportMany(ctx context.Context, rows []core.ImportRow) ([]core.ImportResult, error)
}

type RecordLister interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]core.Record, error)
}

type Handler struct {
	Employees EmployeeService
	Records   RecordLister
	Metrics   *metrics.Collector
	Audit     shared.AuditRecorder
	MaxUpload int64
	Now       func() time.Time
}

func NewHandler(employees EmployeeService, records RecordLister, collector *metrics.Collector, maxUpload int64) *Handler {
	return &Handler{
		Employees: employees,
		Records:   records,
		Metrics:   collector,
		MaxUpload: maxUpload,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/import", h.handleImport)
		r.Get("/import/template", h.handleTemplate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/leave-balances", h.handleLeaveBalances)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Employees.Count(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "failed to list employees")
		return
	}
	employees, err := h.Employees.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, err, "failed to list employees")
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, employees, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load employee")
		return
	}
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload core.Employee
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	emp, err := h.Employees.Create(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create employee")
		return
	}
	shared.Audit(r, h.Audit, audit.ActionCreate, audit.EntityEmployee, emp.ID, core.MaskIdentity(emp))
	api.Created(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload core.Employee
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	emp, err := h.Employees.Update(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update employee")
		return
	}
	shared.Audit(r, h.Audit, audit.ActionUpdate, audit.EntityEmployee, emp.ID, core.MaskIdentity(emp))
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Employees.Delete(r.Context(), employeeID); err != nil {
		shared.WriteError(w, r, err, "failed to delete employee")
		return
	}
	shared.Audit(r, h.Audit, audit.ActionDelete, audit.EntityEmployee, employeeID, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLeaveBalances(w http.ResponseWriter, r *http.Request) {
	year := h.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			v := shared.NewValidator()
			v.Add("year", "must be a four-digit year")
			v.Reject(w, requestctx.GetRequestID(r.Context()))
			return
		}
		year = parsed
	}

	employeeID := chi.URLParam(r, "employeeID")
	emp, err := h.Employees.Get(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load employee")
		return
	}
	recs, err := h.Records.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load records")
		return
	}
	api.Success(w, map[string]any{
		"employeeId": employeeID,
		"year":       year,
		"balances":   leave.Balances(emp, recs, year),
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	if err := r.ParseMultipartForm(h.MaxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "expected multipart form with a file field", requestID)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		shared.FailValidation(w, requestID, []core.Issue{{Field: "file", Reason: "is required"}})
		return
	}
	defer file.Close()

	rows, err := workbook.ParseEmployees(file)
	if err != nil {
		shared.FailValidation(w, requestID, []core.Issue{{Field: "file", Reason: err.Error()}})
		return
	}
	results, err := h.Employees.ImportMany(r.Context(), rows)
	if err != nil {
		shared.WriteError(w, r, err, "failed to import employees")
		return
	}

	created := 0
	for _, res := range results {
		if res.Created {
			created++
			shared.Audit(r, h.Audit, audit.ActionImport, audit.EntityEmployee, res.EmployeeID, map[string]int{"line": res.Line})
		}
	}
	if h.Metrics != nil {
		h.Metrics.RecordImport(created)
	}
	api.Success(w, map[string]any{
		"created": created,
		"failed":  len(results) - created,
		"results": results,
	}, requestID)
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	api.Attachment(w, xlsxContentType, "employee-import-template.xlsx")
	if err := workbook.WriteTemplate(w); err != nil {
		requestctx.Logger(r.Context()).Error().Err(err).Msg("write import template failed")
	}
}
