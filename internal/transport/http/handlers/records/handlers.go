package recordshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

type RecordService interface {
	Create(ctx context.Context, rec core.Record) (core.Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]core.Record, error)
	ListForMonth(ctx context.Context, employeeID, month string) ([]core.Record, error)
	ListByType(ctx context.Context, recordType string) ([]core.Record, error)
}

type Handler struct {
	Records RecordService
	Audit   shared.AuditRecorder
}

func NewHandler(records RecordService) *Handler {
	return &Handler{Records: records}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/records", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/employee/{employeeID}", h.handleListByEmployee)
		r.Get("/type/{type}", h.handleListByType)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload core.Record
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	rec, err := h.Records.Create(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create record")
		return
	}
	shared.Audit(r, h.Audit, audit.ActionCreate, audit.EntityRecord, rec.ID, rec)
	api.Created(w, rec, requestctx.GetRequestID(r.Context()))
}

// handleListByEmployee narrows to one month when ?month=YYYY-MM is given.
func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	var (
		recs []core.Record
		err  error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		v := shared.NewValidator()
		v.Month("month", month)
		if v.Reject(w, requestctx.GetRequestID(r.Context())) {
			return
		}
		recs, err = h.Records.ListForMonth(r.Context(), employeeID, month)
	} else {
		recs, err = h.Records.ListByEmployee(r.Context(), employeeID)
	}
	if err != nil {
		shared.WriteError(w, r, err, "failed to list records")
		return
	}
	api.Success(w, nonNil(recs), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleListByType(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Records.ListByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list records")
		return
	}
	api.Success(w, nonNil(recs), requestctx.GetRequestID(r.Context()))
}

func nonNil(recs []core.Record) []core.Record {
	if recs == nil {
		return []core.Record{}
	}
	return recs
}
