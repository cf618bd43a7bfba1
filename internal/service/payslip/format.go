package payslip

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// en-MY grouping (1,234,567.89), no currency symbol inside table cells.
var currencyPrinter = message.NewPrinter(language.MustParse("en-MY"))

// FormatAmount renders a currency value with exactly two decimals and
// thousands separators.
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return currencyPrinter.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatQuantity renders an item quantity without trailing zeros.
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}

var malayMonths = [...]string{
	"Januari", "Februari", "Mac", "April", "Mei", "Jun",
	"Julai", "Ogos", "September", "Oktober", "November", "Disember",
}

// MonthName returns the Malay month name, or empty for out-of-range values.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return malayMonths[month-1]
}

// leaveLabel humanizes a snake_case leave token: "cuti_tahunan" prints as
// "Cuti Tahunan".
func leaveLabel(leaveType string) string {
	parts := strings.Split(leaveType, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
