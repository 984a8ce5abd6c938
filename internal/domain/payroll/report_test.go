package payroll

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := map[float64]int64{
		0.5:        1,
		1.49:       1,
		2.5:        3,
		-2.5:       -3,
		1136363.64: 1136364,
		0:          0,
	}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Fatalf("Round(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	calc := SalaryCalculation{
		EmployeeName: "John Smith",
		Month:        "2024-03",
		Amounts: Amounts{
			BaseSalary:    5000000,
			VacationPay:   1136363.636,
			OvertimePay:   340909.09,
			Bonuses:       1000000,
			GrossSalary:   7477272.73,
			IncomeTax:     888000.4,
			SocialTax:     897272.7,
			PensionAmount: 74772.73,
			NetSalary:     6514499.6,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []SalaryCalculation{calc}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %q", buf.String())
	}
	if lines[0] != strings.Join(ReportHeaders, ",") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "John Smith,5000000,340909,1136364,0,1000000,0,7477273,888000,897273,74773,6514500" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestReportRowValuesOrder(t *testing.T) {
	row := ReportRow{BaseSalary: 1, OvertimePay: 2, NetSalary: 11}
	values := row.Values()
	if len(values) != len(ReportHeaders)-1 || values[0] != 1 || values[1] != 2 || values[10] != 11 {
		t.Fatalf("unexpected values %v", values)
	}
}
