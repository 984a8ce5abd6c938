package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hrpay/internal/app/server"
	"hrpay/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		DataEncryptionKey:  "0123456789abcdef0123456789abcdef",
		Environment:        "test",
		MigrationsDir:      "../../../../migrations",
		RunMigrations:      true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
		WorkDaysPerMonth:   22,
		WorkHoursPerDay:    8,
		SocialTaxRate:      12,
		INPSTaxRate:        1,
		PayrollWorkers:     2,
		Currency:           "UZS",
		ReportLocale:       "en",
	}
}

func TestPayrollJourneyInMemory(t *testing.T) {
	runJourney(t, testConfig(""))
}

func TestPayrollJourneyPostgres(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	runJourney(t, testConfig(dbURL))
}

func runJourney(t *testing.T, cfg config.Config) {
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	pinfl := fmt.Sprintf("%014d", time.Now().UnixNano()%1e14)
	var emp struct {
		ID string `json:"id"`
	}
	call(t, client, http.MethodPost, ts.URL+"/api/employees", map[string]any{
		"name":             "Journey Worker",
		"position":         "Analyst",
		"pinfl":            pinfl,
		"passportSeries":   "AC",
		"passportNumber":   "7654321",
		"dateOfBirth":      "1992-04-10",
		"paymentType":      "salary",
		"paymentFrequency": "monthly",
		"rate":             5000000,
		"startDate":        "2023-01-01",
		"taxRate":          12,
		"agreement": map[string]any{
			"vacationDaysPerYear": 24,
			"sickLeavePerYear":    15,
			"overtimeRate":        1.5,
		},
	}, http.StatusCreated, &emp)

	for _, rec := range []map[string]any{
		{"type": "leave", "leaveType": "vacation", "startDate": "2024-03-01", "endDate": "2024-03-05"},
		{"type": "overtime", "date": "2024-03-15", "amount": 8},
		{"type": "bonus", "date": "2024-03-10", "amount": 1000000},
		{"type": "deduction", "date": "2024-03-25", "amount": 100000},
	} {
		rec["employeeId"] = emp.ID
		call(t, client, http.MethodPost, ts.URL+"/api/records", rec, http.StatusCreated, nil)
	}

	var calc struct {
		GrossSalary float64 `json:"grossSalary"`
		NetSalary   float64 `json:"netSalary"`
	}
	call(t, client, http.MethodPost, ts.URL+"/api/salaries/calculate", map[string]any{
		"employeeId": emp.ID,
		"month":      "2024-03",
	}, http.StatusOK, &calc)

	// base 5,000,000 + overtime 8h x 28,409.09 x 1.5 + vacation 5 x 227,272.73 + bonus 1,000,000
	wantGross := 5000000 + 8*(5000000.0/176)*1.5 + 5*(5000000.0/22) + 1000000
	if diff := calc.GrossSalary - wantGross; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("expected gross %.2f, got %.2f", wantGross, calc.GrossSalary)
	}
	wantNet := wantGross - (wantGross-wantGross*0.01)*0.12 - wantGross*0.01 - 100000
	if diff := calc.NetSalary - wantNet; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("expected net %.2f, got %.2f", wantNet, calc.NetSalary)
	}

	var stored []json.RawMessage
	call(t, client, http.MethodGet, ts.URL+"/api/salaries/employee/"+emp.ID, nil, http.StatusOK, &stored)
	if len(stored) != 1 {
		t.Fatalf("expected one stored calculation, got %d", len(stored))
	}

	call(t, client, http.MethodDelete, ts.URL+"/api/employees/"+emp.ID, nil, http.StatusNoContent, nil)
	call(t, client, http.MethodGet, ts.URL+"/api/records/employee/"+emp.ID, nil, http.StatusNotFound, nil)

	var byMonth []json.RawMessage
	call(t, client, http.MethodGet, ts.URL+"/api/salaries/month/2024-03", nil, http.StatusOK, &byMonth)
	for _, raw := range byMonth {
		if bytes.Contains(raw, []byte(emp.ID)) {
			t.Fatal("expected calculations to be removed with the employee")
		}
	}
}

func call(t *testing.T, client *http.Client, method, url string, body any, wantStatus int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		t.Fatalf("%s %s: expected %d, got %d (%v)", method, url, wantStatus, resp.StatusCode, env.Error)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}
