// Package dashboard renders the summary counters, the stock table and today's
// sales from server data. Nothing here is cached between loads.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"go-pos-dashboard/internal/inventory"
	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/view"
)

const (
	MsgDashboardFailed  = "Failed to load dashboard data"
	MsgCountFailed      = "Failed to load today's sales count"
	MsgStockFailed      = "Failed to load stock data"
	MsgTodaySalesFailed = "Failed to load today's sales"

	EmptyStock      = "No stockable products found"
	EmptyTodaySales = "No sales today"
)

// Source is the part of the API gateway the presenter reads from.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	DashboardData(ctx context.Context) (*models.DashboardSummary, error)
	TodaySalesCount(ctx context.Context) (*models.TodaySalesCount, error)
	TodaysSales(ctx context.Context) ([]models.SaleRecord, error)
}

// Stats are the three counters at the top of the dashboard.
type Stats struct {
	TodaySales        string `json:"today_sales"`
	TodayTransactions string `json:"today_transactions"`
	MonthlyRevenue    string `json:"monthly_revenue"`
}

func emptyStats() Stats {
	return Stats{TodaySales: "0", TodayTransactions: "0", MonthlyRevenue: "0"}
}

func (s *Stats) applySummary(sum *models.DashboardSummary) {
	s.TodaySales = view.Grouped(sum.TodayTotal)
	s.TodayTransactions = strconv.Itoa(sum.TodayCount)
	s.MonthlyRevenue = view.Grouped(sum.MonthlyTotal)
}

// applyCount overrides today's figures with the dedicated count endpoint,
// which also carries the currency sign.
func (s *Stats) applyCount(c *models.TodaySalesCount) {
	s.TodaySales = view.Money(c.TodayTotal)
	s.TodayTransactions = strconv.Itoa(c.TodayCount)
}

func (s Stats) Items() []view.Stat {
	return []view.Stat{
		{Label: "Today's Sales", Value: s.TodaySales},
		{Label: "Transactions", Value: s.TodayTransactions},
		{Label: "Monthly Revenue", Value: s.MonthlyRevenue},
	}
}

type Presenter struct {
	src    Source
	loc    *time.Location
	logger *zap.Logger
}

func NewPresenter(src Source, loc *time.Location, logger *zap.Logger) *Presenter {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{src: src, loc: loc, logger: logger}
}

func (p *Presenter) LoadDashboardData(ctx context.Context, n *notify.Notifier) (*models.DashboardSummary, error) {
	sum, err := p.src.DashboardData(ctx)
	if err != nil {
		n.Error(MsgDashboardFailed, err)
		return nil, fmt.Errorf("load dashboard data: %w", err)
	}
	return sum, nil
}

func (p *Presenter) LoadTodaySalesCount(ctx context.Context, n *notify.Notifier) (*models.TodaySalesCount, error) {
	count, err := p.src.TodaySalesCount(ctx)
	if err != nil {
		n.Error(MsgCountFailed, err)
		return nil, fmt.Errorf("load today's sales count: %w", err)
	}
	return count, nil
}

// LoadStockData fetches the products and renders the stock table.
func (p *Presenter) LoadStockData(ctx context.Context, n *notify.Notifier) (view.Table, error) {
	products, err := p.src.Products(ctx)
	if err != nil {
		n.Error(MsgStockFailed, err)
		return StockTable(nil), fmt.Errorf("load stock data: %w", err)
	}
	return StockTable(products), nil
}

func (p *Presenter) LoadTodaysSales(ctx context.Context, n *notify.Notifier) (view.Table, error) {
	sales, err := p.src.TodaysSales(ctx)
	if err != nil {
		n.Error(MsgTodaySalesFailed, err)
		return SalesTable(nil, p.loc), fmt.Errorf("load today's sales: %w", err)
	}
	p.logger.Debug("today's sales loaded", zap.Int("count", len(sales)))
	return SalesTable(sales, p.loc), nil
}

// StockTable has one row per stockable product; instant products are left out.
func StockTable(products []models.Product) view.Table {
	t := view.Table{
		Headers: []string{"Product", "Category", "Stock", "Status"},
		Empty:   EmptyStock,
	}
	for _, pr := range products {
		if !pr.IsStockable() {
			continue
		}
		st := inventory.Classify(pr)
		t.Rows = append(t.Rows, view.Row{
			Class: st.Class(),
			Cells: []view.Cell{
				{Text: pr.Name},
				{Text: pr.CategoryName},
				{Text: strconv.Itoa(pr.StockQuantity)},
				{Text: st.Label(), Class: "status-badge " + st.Class()},
			},
		})
	}
	return t
}

// SalesTable renders today's sales with times in loc.
func SalesTable(sales []models.SaleRecord, loc *time.Location) view.Table {
	t := view.Table{
		Headers: []string{"Time", "Product", "Qty", "Total"},
		Empty:   EmptyTodaySales,
	}
	for _, s := range sales {
		t.Rows = append(t.Rows, view.Row{
			Cells: []view.Cell{
				{Text: view.Clock(s.CreatedAt.In(loc))},
				{Text: s.DisplayName()},
				{Text: strconv.Itoa(s.Quantity)},
				{Text: view.Currency + view.Fixed2(s.TotalAmount)},
			},
		})
	}
	return t
}
