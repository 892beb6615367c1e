// Package output renders calculation results as pretty tables, CSV or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/datetime"
	"github.com/iwvelando/calcsuite/pkg/format"
	"github.com/iwvelando/calcsuite/pkg/loans"
	"github.com/iwvelando/calcsuite/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type rowKind int

const (
	kindText rowKind = iota
	kindMoney
	kindNumber
	kindInt
	kindPercent
)

// Row is one labelled value in a result table.
type Row struct {
	Label    string
	kind     rowKind
	text     string
	num      float64
	decimals int
}

// Text is a row holding a string.
func Text(label, value string) Row { return Row{Label: label, kind: kindText, text: value} }

// Money is a row holding a currency amount.
func Money(label string, value float64) Row { return Row{Label: label, kind: kindMoney, num: value} }

// Number is a row holding a decimal value shown with the given precision.
func Number(label string, value float64, decimals int) Row {
	return Row{Label: label, kind: kindNumber, num: value, decimals: decimals}
}

// Int is a row holding a count.
func Int(label string, value int64) Row { return Row{Label: label, kind: kindInt, num: float64(value)} }

// Percent is a row holding a percentage.
func Percent(label string, value float64) Row { return Row{Label: label, kind: kindPercent, num: value} }

// Printer writes results in one output format.
type Printer struct {
	w      io.Writer
	format string
	symbol string
	p      *message.Printer
}

// NewPrinter creates a printer for the given output format.
func NewPrinter(w io.Writer, outputFormat, currencySymbol string) (*Printer, error) {
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return nil, err
	}
	return &Printer{
		w:      w,
		format: outputFormat,
		symbol: currencySymbol,
		p:      message.NewPrinter(language.English),
	}, nil
}

// Format returns the printer's output format.
func (pr *Printer) Format() string {
	return pr.format
}

// Result writes a single calculation result. JSON output encodes value;
// the other formats render rows.
func (pr *Printer) Result(title string, value interface{}, rows []Row) error {
	switch pr.format {
	case constants.OutputFormatJSON:
		return pr.json(value)
	case constants.OutputFormatCSV:
		return pr.csvRows(rows)
	default:
		return pr.prettyRows(title, rows)
	}
}

// Schedule writes a loan summary followed by its installments.
func (pr *Printer) Schedule(summary loans.Summary, schedule loans.Schedule) error {
	switch pr.format {
	case constants.OutputFormatJSON:
		return pr.json(struct {
			Summary      loans.Summary  `json:"summary"`
			Installments loans.Schedule `json:"installments"`
		}{summary, schedule})
	case constants.OutputFormatCSV:
		return pr.csvSchedule(schedule)
	default:
		if err := pr.prettyRows("Loan summary", SummaryRows(summary)); err != nil {
			return err
		}
		return pr.prettySchedule(schedule)
	}
}

// SummaryRows describes a loan summary.
func SummaryRows(s loans.Summary) []Row {
	return []Row{
		Money("Principal", s.Principal),
		Percent("Annual rate", s.AnnualRatePercent),
		Int("Term (months)", int64(s.TermMonths)),
		Money("Monthly EMI", s.EMI),
		Money("Total interest", s.TotalInterest),
		Money("Total payment", s.TotalPayment),
		Percent("Interest share", s.InterestPercent),
	}
}

func (pr *Printer) json(value interface{}) error {
	enc := json.NewEncoder(pr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func (pr *Printer) pretty(r Row) string {
	switch r.kind {
	case kindMoney:
		return format.Currency(r.num, pr.symbol)
	case kindNumber:
		return pr.p.Sprintf(fmt.Sprintf("%%.%df", r.decimals), r.num)
	case kindInt:
		return pr.p.Sprintf("%d", int64(r.num))
	case kindPercent:
		return format.Percent(r.num)
	default:
		return r.text
	}
}

func raw(r Row) string {
	switch r.kind {
	case kindMoney:
		return fmt.Sprintf("%.2f", r.num)
	case kindNumber:
		return fmt.Sprintf("%.*f", r.decimals, r.num)
	case kindInt:
		return fmt.Sprintf("%d", int64(r.num))
	case kindPercent:
		return fmt.Sprintf("%.4f", r.num)
	default:
		return r.text
	}
}

func (pr *Printer) prettyRows(title string, rows []Row) error {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n", title)
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s | %s\n", width, r.Label, pr.pretty(r))
	}
	_, err := io.WriteString(pr.w, b.String())
	return err
}

func (pr *Printer) csvRows(rows []Row) error {
	var b strings.Builder
	b.WriteString(`"field","value"` + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s\n", quote(r.Label), quote(raw(r)))
	}
	_, err := io.WriteString(pr.w, b.String())
	return err
}

func (pr *Printer) prettySchedule(schedule loans.Schedule) error {
	var b strings.Builder
	b.WriteString("\n--- Amortization schedule ---\n")
	b.WriteString("Period | Due date   | Payment        | Principal      | Interest       | Balance\n")
	b.WriteString("______ | __________ | ______________ | ______________ | ______________ | _______\n")
	for _, inst := range schedule {
		due := "-"
		if inst.DueDate != nil {
			due = datetime.FormatDate(*inst.DueDate)
		}
		fmt.Fprintf(&b, "%6d | %-10s | %14s | %14s | %14s | %s\n",
			inst.Period, due,
			format.Currency(inst.Payment, pr.symbol),
			format.Currency(inst.Principal, pr.symbol),
			format.Currency(inst.Interest, pr.symbol),
			format.Currency(inst.RemainingBalance, pr.symbol),
		)
	}
	_, err := io.WriteString(pr.w, b.String())
	return err
}

func (pr *Printer) csvSchedule(schedule loans.Schedule) error {
	var b strings.Builder
	b.WriteString(`"period","dueDate","payment","principal","interest","remainingBalance"` + "\n")
	for _, inst := range schedule {
		due := ""
		if inst.DueDate != nil {
			due = datetime.FormatDate(*inst.DueDate)
		}
		fmt.Fprintf(&b, `"%d","%s","%.2f","%.2f","%.2f","%.2f"`+"\n",
			inst.Period, due, inst.Payment, inst.Principal, inst.Interest, inst.RemainingBalance)
	}
	_, err := io.WriteString(pr.w, b.String())
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
