// Package report builds the end-of-day summary text that staff paste into the
// owner's chat.
package report

import (
	"fmt"
	"strings"
	"time"

	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/view"
)

// DefaultShopName is used in the header when none is configured.
const DefaultShopName = "Coffee Shop"

const unknown = "Unknown"

func nameOr(s *string) string {
	if s == nil || *s == "" {
		return unknown
	}
	return *s
}

// GenerateSummaryText renders the daily report for date. Missing category or
// payment names print as "Unknown"; the payment section is left out when
// there is no payment data.
func GenerateSummaryText(sum *models.DashboardSummary, date time.Time, shopName string) string {
	if shopName == "" {
		shopName = DefaultShopName
	}
	if sum == nil {
		sum = &models.DashboardSummary{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s Daily Report - %s\n\n", shopName, view.ShortDate(date))

	b.WriteString("📈 SUMMARY:\n")
	fmt.Fprintf(&b, "• Today's Sales: %s\n", view.Money(sum.TodayTotal))
	fmt.Fprintf(&b, "• Transactions: %d\n", sum.TodayCount)
	fmt.Fprintf(&b, "• Monthly Revenue: %s\n\n", view.Money(sum.MonthlyTotal))

	b.WriteString("📋 CATEGORY BREAKDOWN:\n")
	if len(sum.CategoryBreakdown) == 0 {
		b.WriteString("• No category data available\n")
	}
	for _, c := range sum.CategoryBreakdown {
		fmt.Fprintf(&b, "• %s: %d sales (%s)\n", nameOr(c.CategoryName), c.Count, view.Money(c.Total))
	}

	if len(sum.PaymentBreakdown) > 0 {
		b.WriteString("\n💳 PAYMENT METHODS:\n")
		for _, p := range sum.PaymentBreakdown {
			fmt.Fprintf(&b, "• %s: %d transactions (%s)\n", nameOr(p.PaymentMethodName), p.Count, view.Money(p.Total))
		}
	}
	return b.String()
}
