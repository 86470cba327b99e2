// Package view holds the render nodes and formatting helpers shared by the
// HTML templates and the terminal output.
package view

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is the taka sign prefixed to every amount.
const Currency = "৳"

var printer = message.NewPrinter(language.English)

// Grouped formats an amount with thousands separators and at most two
// fraction digits: 1500 -> "1,500", 45000.5 -> "45,000.5".
func Grouped(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// Money is Grouped with the currency sign.
func Money(d decimal.Decimal) string {
	return Currency + Grouped(d)
}

// Fixed2 renders an amount with exactly two decimals, as used in line totals.
func Fixed2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ShortDate is the month/day/year form used in report headers.
func ShortDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// Clock is the time of day shown in the today's sales table, "-" when the
// server sent no usable time.
func Clock(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("3:04:05 PM")
}
