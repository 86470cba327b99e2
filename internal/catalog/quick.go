package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/notify"
)

// QuickAction is a one-tap sale button.
type QuickAction struct {
	Name  string
	Price decimal.Decimal
	Icon  string
}

// Title is the button text.
func (q QuickAction) Title() string {
	return q.Icon + " " + q.Name
}

var icons = []struct {
	keys []string
	icon string
}{
	{[]string{"coffee"}, "☕"},
	{[]string{"tea", "chai"}, "🍵"},
	{[]string{"samosa"}, "🥟"},
	{[]string{"burger"}, "🍔"},
	{[]string{"fries"}, "🍟"},
	{[]string{"cake"}, "🍰"},
	{[]string{"ice cream"}, "🍦"},
	{[]string{"cola", "sprite", "pepsi"}, "🥤"},
	{[]string{"water"}, "💧"},
}

// Icon picks an emoji for a product by substring of its name.
func Icon(name string) string {
	lower := strings.ToLower(name)
	for _, ic := range icons {
		for _, k := range ic.keys {
			if strings.Contains(lower, k) {
				return ic.icon
			}
		}
	}
	return "📦"
}

// LoadQuickActions fetches the products flagged for quick sale.
func (l *Loader) LoadQuickActions(ctx context.Context, n *notify.Notifier) ([]QuickAction, error) {
	products, err := l.src.QuickActions(ctx)
	if err != nil {
		n.Warn(MsgQuickActionsFailed, err)
		return nil, fmt.Errorf("load quick actions: %w", err)
	}
	l.logger.Debug("quick actions loaded", zap.Int("count", len(products)))
	return quickActions(products), nil
}

func quickActions(products []models.Product) []QuickAction {
	out := make([]QuickAction, 0, len(products))
	for _, p := range products {
		out = append(out, QuickAction{Name: p.Name, Price: p.Price, Icon: Icon(p.Name)})
	}
	return out
}
