package workbook

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"hrpay/internal/domain/core"
)

var (
	ErrEmptyWorkbook  = errors.New("workbook has no rows")
	ErrMissingColumns = errors.New("workbook is missing columns")
)

// ImportColumns is the header row expected on the first sheet of an employee
// import, in template order.
var ImportColumns = []string{
	"name", "position", "pinfl", "passportSeries", "passportNumber", "dateOfBirth",
	"paymentType", "paymentFrequency", "rate", "startDate", "taxRate",
	"vacationDays", "sickLeaveDays", "overtimeRate",
	"marriageLeave", "bereavementLeave", "paternityLeave", "maternityLeave", "studyLeave", "militaryLeave",
}

// ParseEmployees reads employees from the first sheet of an xlsx workbook.
// Columns are matched by header name, case-insensitively. Cells that cannot be
// converted are reported as issues on the row instead of failing the import.
func ParseEmployees(r io.Reader) ([]core.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, col := range ImportColumns {
		if _, ok := index[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	out := []core.ImportRow{}
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		p := rowParser{cells: cells, index: index}
		out = append(out, p.employee(i+2))
	}
	return out, nil
}

type rowParser struct {
	cells  []string
	index  map[string]int
	issues []core.Issue
}

func (p *rowParser) employee(line int) core.ImportRow {
	emp := core.Employee{
		Name:             p.text("name"),
		Position:         p.text("position"),
		PINFL:            p.text("pinfl"),
		PassportSeries:   p.text("passportSeries"),
		PassportNumber:   p.text("passportNumber"),
		DateOfBirth:      p.date("dateOfBirth"),
		PaymentType:      core.PaymentType(p.text("paymentType")),
		PaymentFrequency: core.PaymentFrequency(p.text("paymentFrequency")),
		Rate:             p.number("rate", "rate"),
		StartDate:        p.date("startDate"),
		TaxRate:          p.number("taxRate", "taxRate"),
		Agreement: core.Agreement{
			VacationDaysPerYear: p.integer("vacationDays", "agreement.vacationDaysPerYear"),
			SickLeavePerYear:    p.integer("sickLeaveDays", "agreement.sickLeavePerYear"),
			OvertimeRate:        p.number("overtimeRate", "agreement.overtimeRate"),
			PaidLeaves: core.PaidLeaves{
				Marriage:    p.integer("marriageLeave", "agreement.paidLeaves.marriage"),
				Bereavement: p.integer("bereavementLeave", "agreement.paidLeaves.bereavement"),
				Paternity:   p.integer("paternityLeave", "agreement.paidLeaves.paternity"),
				Maternity:   p.integer("maternityLeave", "agreement.paidLeaves.maternity"),
				Study:       p.integer("studyLeave", "agreement.paidLeaves.study"),
				Military:    p.integer("militaryLeave", "agreement.paidLeaves.military"),
			},
		},
	}
	core.SortIssues(p.issues)
	return core.ImportRow{Line: line, Employee: emp, Issues: p.issues}
}

func (p *rowParser) text(column string) string {
	i := p.index[strings.ToLower(column)]
	if i >= len(p.cells) {
		return ""
	}
	return strings.TrimSpace(p.cells[i])
}

// date accepts either an ISO date or an Excel date serial.
func (p *rowParser) date(column string) string {
	value := p.text(column)
	if value == "" {
		return ""
	}
	if _, err := time.Parse(core.DateLayout, value); err == nil {
		return value
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(core.DateLayout)
		}
	}
	return value
}

func (p *rowParser) number(column, field string) float64 {
	value := p.text(column)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(value, " ", ""), 64)
	if err != nil {
		p.issues = append(p.issues, core.Issue{Field: field, Reason: "must be a number"})
		return 0
	}
	return n
}

func (p *rowParser) integer(column, field string) int {
	value := p.text(column)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n != math.Trunc(n) {
		p.issues = append(p.issues, core.Issue{Field: field, Reason: "must be a whole number"})
		return 0
	}
	return int(n)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
