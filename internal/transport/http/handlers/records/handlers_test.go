package recordshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/records"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Details struct {
			Fields []core.Issue `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func newRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	employees := core.NewService(core.NewMemoryStore(), 12, 1)
	employees.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	emp, err := employees.Create(context.Background(), core.Employee{
		Name:             "John Smith",
		Position:         "Software Engineer",
		PINFL:            "12345678901234",
		PassportSeries:   "AA",
		PassportNumber:   "1234567",
		DateOfBirth:      "1990-01-01",
		PaymentType:      core.PaymentTypeSalary,
		PaymentFrequency: core.PaymentFrequencyMonthly,
		Rate:             5500000,
		StartDate:        "2023-01-01",
		TaxRate:          12,
		Agreement:        core.Agreement{VacationDaysPerYear: 21, SickLeavePerYear: 14, OvertimeRate: 1.5},
	})
	require.NoError(t, err)

	svc := records.NewService(records.NewMemoryStore(), employees, payroll.DefaultCalendar)
	r := chi.NewRouter()
	r.Route("/api", NewHandler(svc).RegisterRoutes)
	return r, emp.ID
}

func do(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestCreateLeaveRecord(t *testing.T) {
	router, empID := newRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/records", `{
		"employeeId": "`+empID+`",
		"type": "leave",
		"leaveType": "vacation",
		"startDate": "2024-03-01",
		"endDate": "2024-03-05",
		"days": 1,
		"isPaid": false
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "leave", body["type"])
	assert.Equal(t, "2024-03-01", body["date"])
	assert.Equal(t, 5.0, body["days"])
	assert.Equal(t, true, body["isPaid"])
	assert.InDelta(t, 1250000.0, body["amount"], 1e-6)
	assert.NotEmpty(t, body["id"])
	assert.Contains(t, body, "taxes")
}

func TestCreateRecordValidation(t *testing.T) {
	router, empID := newRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/records", `{"employeeId":"`+empID+`","type":"gift","date":"2024-03-01","amount":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "type", env.Error.Details.Fields[0].Field)

	rec, env = do(t, router, http.MethodPost, "/api/records", `{"employeeId":"`+empID+`","type":"bonus","date":"2024-03-01","amount":-5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amount", env.Error.Details.Fields[0].Field)

	rec, env = do(t, router, http.MethodPost, "/api/records", `{"employeeId":"nobody","type":"bonus","date":"2024-03-01","amount":5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error.Code)

	rec, env = do(t, router, http.MethodPost, "/api/records", `[`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_payload", env.Error.Code)
}

func TestListRecords(t *testing.T) {
	router, empID := newRouter(t)
	for _, body := range []string{
		`{"employeeId":"` + empID + `","type":"bonus","date":"2024-03-10","amount":1000000}`,
		`{"employeeId":"` + empID + `","type":"overtime","date":"2024-04-02","amount":8}`,
	} {
		rec, _ := do(t, router, http.MethodPost, "/api/records", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, env := do(t, router, http.MethodGet, "/api/records/employee/"+empID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)

	rec, env = do(t, router, http.MethodGet, "/api/records/employee/"+empID+"?month=2024-04", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var april []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &april))
	require.Len(t, april, 1)
	assert.Equal(t, "overtime", april[0]["type"])

	rec, _ = do(t, router, http.MethodGet, "/api/records/employee/"+empID+"?month=April", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/records/type/deduction", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, env = do(t, router, http.MethodGet, "/api/records/type/gift", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/records/employee/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
