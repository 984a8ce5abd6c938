package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hrpay/internal/domain/core"
)

type PayslipOptions struct {
	Currency string
	Locale   string
}

type payslipLine struct {
	label  string
	amount float64
	bold   bool
}

// NewPrinter returns a printer for locale, falling back to English for tags
// that cannot be parsed.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// FormatAmount rounds to a whole unit and groups digits for the printer's
// locale.
func FormatAmount(p *message.Printer, amount float64) string {
	return p.Sprintf("%d", Round(amount))
}

// RenderPayslip writes a one-page PDF payslip for calc to w.
func RenderPayslip(w io.Writer, emp core.Employee, calc SalaryCalculation, opts PayslipOptions) error {
	p := NewPrinter(opts.Locale)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Payslip "+calc.Month, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Employee: %s", emp.Name)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Position: %s", emp.Position)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", calc.Month))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Payment: %s, %s", emp.PaymentType, emp.PaymentFrequency))
	pdf.Ln(12)

	lines := []payslipLine{
		{label: "Base salary", amount: calc.BaseSalary},
		{label: "Overtime pay", amount: calc.OvertimePay},
		{label: "Vacation pay", amount: calc.VacationPay},
		{label: "Sick leave pay", amount: calc.SickLeavePay},
		{label: "Other paid leave", amount: calc.OtherPaidLeavePay},
		{label: "Bonuses", amount: calc.Bonuses},
		{label: "Gross salary", amount: calc.GrossSalary, bold: true},
		{label: "Income tax", amount: -calc.IncomeTax},
		{label: "INPS", amount: -calc.PensionAmount},
		{label: "Deductions", amount: -calc.Deductions},
		{label: "Net salary", amount: calc.NetSalary, bold: true},
	}
	for _, line := range lines {
		style := ""
		if line.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(100, 8, line.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, tr(FormatAmount(p, line.amount)+" "+opts.Currency), "B", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Employer social tax (not deducted): %s %s", FormatAmount(p, calc.SocialTax), opts.Currency)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Calculated at %s", calc.CalculatedAt.Format("2006-01-02 15:04 MST")))

	return pdf.Output(w)
}
