package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/requestctx"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Details struct {
			Fields []core.Issue `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var out envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestValidatorSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("startMonth", " ", "is required")
	v.Month("endMonth", "2024-13")
	v.Enum("format", "PDF", []string{"json", "csv"}, "must be one of: json, csv")
	v.Enum("other", "CSV", []string{"json", "csv"}, "unused")

	require.True(t, v.HasIssues())
	assert.Equal(t, []core.Issue{
		{Field: "endMonth", Reason: "must be a valid month in YYYY-MM format"},
		{Field: "format", Reason: "must be one of: json, csv"},
		{Field: "startMonth", Reason: "is required"},
	}, v.Issues())

	rec := httptest.NewRecorder()
	assert.True(t, v.Reject(rec, "req"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decode(t, rec).Error.Details.Fields, 3)
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&core.ValidationError{Issues: []core.Issue{{Field: "name", Reason: "is required"}}}, http.StatusBadRequest, "validation_error"},
		{fmt.Errorf("wrap: %w", core.ErrEmployeeNotFound), http.StatusNotFound, "not_found"},
		{core.ErrEmployeeExists, http.StatusConflict, "conflict"},
		{payroll.ErrInvalidRange, http.StatusBadRequest, "validation_error"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		WriteError(rec, req, tc.err, "request failed")
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, tc.code, decode(t, rec).Error.Code)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst map[string]any
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.False(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, "invalid_payload", decode(t, rec).Error.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"0123456789"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 4)
	assert.False(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	assert.True(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, 1.0, dst["a"])
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=-2", nil)
	p := ParsePagination(req, 50, 200)
	assert.Equal(t, Pagination{Limit: 200, Offset: 0}, p)

	req = httptest.NewRequest(http.MethodGet, "/?limit=x&offset=10", nil)
	assert.Equal(t, Pagination{Limit: 50, Offset: 10}, ParsePagination(req, 50, 200))
}

func TestAuditFillsRequestFields(t *testing.T) {
	svc := audit.New(audit.NewMemoryStore())
	req := httptest.NewRequest(http.MethodPost, "/api/records", nil)
	req.RemoteAddr = "192.0.2.7:5123"
	req = req.WithContext(requestctx.WithRequestID(req.Context(), "req-42"))

	Audit(req, svc, audit.ActionCreate, audit.EntityRecord, "rec-1", map[string]int{"amount": 100})
	Audit(req, nil, audit.ActionCreate, audit.EntityRecord, "rec-2", nil)

	events, err := svc.List(context.Background(), audit.Filter{}, true, 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "rec-1", events[0].EntityID)
	assert.Equal(t, "req-42", events[0].RequestID)
	assert.Equal(t, "192.0.2.7", events[0].IP)
	assert.JSONEq(t, `{"amount":100}`, string(events[0].Details))
}
