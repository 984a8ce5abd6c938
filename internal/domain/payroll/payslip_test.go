package payroll

import (
	"bytes"
	"testing"
)

func TestFormatAmountGroupsDigits(t *testing.T) {
	p := NewPrinter("en")
	if got := FormatAmount(p, 5177200.4); got != "5,177,200" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatAmount(NewPrinter("not a locale!"), 1000); got != "1,000" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestRenderPayslip(t *testing.T) {
	emp := salariedEmployee()
	calc := DefaultCalendar.ComputeSalary(emp, nil, "2024-03", fixedNow)

	var buf bytes.Buffer
	if err := RenderPayslip(&buf, emp, calc, PayslipOptions{Currency: "UZS", Locale: "en"}); err != nil {
		t.Fatalf("RenderPayslip: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected a PDF document, got %q", buf.Bytes()[:min(buf.Len(), 8)])
	}
}
