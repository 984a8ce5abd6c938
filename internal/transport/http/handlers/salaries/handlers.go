package salarieshandler

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/workbook"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

var reportFormats = []string{"json", "csv", "xlsx"}

type SalaryService interface {
	Calculate(ctx context.Context, employeeID, month string) (payroll.SalaryCalculation, error)
	CalculateMonth(ctx context.Context, month string) ([]payroll.SalaryCalculation, error)
	ListByMonth(ctx context.Context, month string) ([]payroll.SalaryCalculation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]payroll.SalaryCalculation, error)
	Report(ctx context.Context, startMonth, endMonth string) (payroll.Report, error)
	Preview(ctx context.Context, employeeID, month string) (core.Employee, payroll.SalaryCalculation, error)
}

type Handler struct {
	Salaries SalaryService
	Payslip  payroll.PayslipOptions
	Audit    shared.AuditRecorder
}

func NewHandler(salaries SalaryService, payslip payroll.PayslipOptions) *Handler {
	return &Handler{Salaries: salaries, Payslip: payslip}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Get("/report", h.handleReport)
		r.Get("/month/{month}", h.handleListByMonth)
		r.Get("/employee/{employeeID}", h.handleListByEmployee)
		r.Get("/employee/{employeeID}/month/{month}/payslip", h.handlePayslip)
	})
}

type calculateRequest struct {
	EmployeeID string `json:"employeeId"`
	Month      string `json:"month"`
}

// handleCalculate runs the payroll engine for one employee when employeeId is
// set, otherwise for every employee.
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var payload calculateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.EmployeeID = strings.TrimSpace(payload.EmployeeID)
	payload.Month = strings.TrimSpace(payload.Month)

	v := shared.NewValidator()
	if payload.Month == "" {
		v.Add("month", "is required")
	} else {
		v.Month("month", payload.Month)
	}
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	if payload.EmployeeID != "" {
		calc, err := h.Salaries.Calculate(r.Context(), payload.EmployeeID, payload.Month)
		if err != nil {
			shared.WriteError(w, r, err, "failed to calculate salary")
			return
		}
		h.auditCalculation(r, calc)
		api.Success(w, calc, requestctx.GetRequestID(r.Context()))
		return
	}
	calcs, err := h.Salaries.CalculateMonth(r.Context(), payload.Month)
	if err != nil {
		shared.WriteError(w, r, err, "failed to calculate salaries")
		return
	}
	for _, calc := range calcs {
		h.auditCalculation(r, calc)
	}
	api.Success(w, nonNil(calcs), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) auditCalculation(r *http.Request, calc payroll.SalaryCalculation) {
	shared.Audit(r, h.Audit, audit.ActionCalculate, audit.EntitySalary, calc.ID, map[string]any{
		"employeeId": calc.EmployeeID,
		"month":      calc.Month,
		"netSalary":  calc.NetSalary,
	})
}

func (h *Handler) handleListByMonth(w http.ResponseWriter, r *http.Request) {
	calcs, err := h.Salaries.ListByMonth(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list salaries")
		return
	}
	api.Success(w, nonNil(calcs), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	calcs, err := h.Salaries.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list salaries")
		return
	}
	api.Success(w, nonNil(calcs), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startMonth := strings.TrimSpace(q.Get("startMonth"))
	endMonth := strings.TrimSpace(q.Get("endMonth"))
	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		format = "json"
	}

	v := shared.NewValidator()
	if startMonth == "" {
		v.Add("startMonth", "is required")
	} else {
		v.Month("startMonth", startMonth)
	}
	if endMonth == "" {
		v.Add("endMonth", "is required")
	} else {
		v.Month("endMonth", endMonth)
	}
	v.Enum("format", format, reportFormats, "must be one of: json, csv, xlsx")
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	report, err := h.Salaries.Report(r.Context(), startMonth, endMonth)
	if err != nil {
		shared.WriteError(w, r, err, "failed to build report")
		return
	}

	filename := "salary-report-" + startMonth + "-to-" + endMonth
	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case "csv":
		contentType = csvContentType
		filename += ".csv"
		err = payroll.WriteCSV(&buf, report.Calculations)
	case "xlsx":
		contentType = xlsxContentType
		filename += ".xlsx"
		err = workbook.WriteReport(&buf, report)
	default:
		api.Success(w, report, requestctx.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		shared.WriteError(w, r, err, "failed to export report")
		return
	}
	api.Attachment(w, contentType, filename)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month := chi.URLParam(r, "month")
	emp, calc, err := h.Salaries.Preview(r.Context(), employeeID, month)
	if err != nil {
		shared.WriteError(w, r, err, "failed to calculate payslip")
		return
	}

	var buf bytes.Buffer
	if err := payroll.RenderPayslip(&buf, emp, calc, h.Payslip); err != nil {
		shared.WriteError(w, r, err, "failed to render payslip")
		return
	}
	api.Attachment(w, pdfContentType, "payslip-"+employeeID+"-"+month+".pdf")
	_, _ = w.Write(buf.Bytes())
}

func nonNil(calcs []payroll.SalaryCalculation) []payroll.SalaryCalculation {
	if calcs == nil {
		return []payroll.SalaryCalculation{}
	}
	return calcs
}
