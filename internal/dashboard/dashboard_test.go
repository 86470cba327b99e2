package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/inventory"
	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/notify"
)

// fakeAPI serves both the catalog and the presenter and counts calls.
type fakeAPI struct {
	mu       sync.Mutex
	calls    map[string]int
	products []models.Product
	summary  *models.DashboardSummary
	count    *models.TodaySalesCount
	sales    []models.SaleRecord
	failing  map[string]bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls: map[string]int{},
		products: []models.Product{
			{ID: 1, Name: "Tea", Price: decimal.NewFromInt(20), CategoryName: "Hot Drinks", ProductType: models.Instant},
			{ID: 2, Name: "Samosa", Price: decimal.NewFromInt(15), CategoryName: "Snacks", ProductType: models.Stockable, StockQuantity: 0, MinStockLevel: 5},
			{ID: 3, Name: "Cola", Price: decimal.NewFromInt(40), CategoryName: "Cold Drinks", ProductType: models.Stockable, StockQuantity: 4, MinStockLevel: 6},
			{ID: 4, Name: "Cake", Price: decimal.NewFromInt(120), CategoryName: "Bakery", ProductType: models.Stockable, StockQuantity: 30, MinStockLevel: 6},
		},
		summary: &models.DashboardSummary{
			TodayTotal:   decimal.NewFromInt(1500),
			TodayCount:   10,
			MonthlyTotal: decimal.NewFromInt(45000),
		},
		count:   &models.TodaySalesCount{TodayCount: 11, TodayTotal: decimal.NewFromInt(1520)},
		failing: map[string]bool{},
	}
}

func (f *fakeAPI) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if f.failing[name] {
		return errors.New("HTTP error! status: 500")
	}
	return nil
}

func (f *fakeAPI) Products(context.Context) ([]models.Product, error) {
	return f.products, f.hit("products")
}

func (f *fakeAPI) QuickActions(context.Context) ([]models.Product, error) {
	return f.products[:1], f.hit("quick")
}

func (f *fakeAPI) PaymentMethods(context.Context) ([]models.PaymentMethod, error) {
	return []models.PaymentMethod{{ID: 1, Name: "Cash"}, {ID: 2, Name: "bKash"}}, f.hit("payments")
}

func (f *fakeAPI) DashboardData(context.Context) (*models.DashboardSummary, error) {
	if err := f.hit("dashboard"); err != nil {
		return nil, err
	}
	return f.summary, nil
}

func (f *fakeAPI) TodaySalesCount(context.Context) (*models.TodaySalesCount, error) {
	if err := f.hit("count"); err != nil {
		return nil, err
	}
	return f.count, nil
}

func (f *fakeAPI) TodaysSales(context.Context) ([]models.SaleRecord, error) {
	return f.sales, f.hit("today")
}

func newBoard(api *fakeAPI) *Board {
	return NewBoard(
		catalog.NewLoader(api, inventory.DefaultWarnAt, nil),
		NewPresenter(api, time.UTC, nil),
	)
}

func TestStockTable(t *testing.T) {
	tbl := StockTable(newFakeAPI().products)
	require.Len(t, tbl.Rows, 3, "instant products are not listed")

	assert.Equal(t, [][]string{
		{"Samosa", "Snacks", "0", "Out of Stock"},
		{"Cola", "Cold Drinks", "4", "Low Stock"},
		{"Cake", "Bakery", "30", "In Stock"},
	}, tbl.Text())
	assert.Equal(t, "stock-out", tbl.Rows[0].Class)
	assert.Equal(t, "stock-low", tbl.Rows[1].Class)
	assert.Equal(t, "stock-ok", tbl.Rows[2].Class)
	assert.Equal(t, "status-badge stock-ok", tbl.Rows[2].Cells[3].Class)
}

func TestStockTable_Empty(t *testing.T) {
	tbl := StockTable([]models.Product{{Name: "Tea", ProductType: models.Instant}})
	assert.True(t, tbl.IsEmpty())
	assert.Equal(t, EmptyStock, tbl.Empty)
}

func TestSalesTable(t *testing.T) {
	sales := []models.SaleRecord{
		{ProductName: "Tea", Quantity: 2, TotalAmount: decimal.NewFromInt(40), CreatedAt: models.Timestamp{Time: time.Date(2026, 10, 16, 3, 15, 0, 0, time.UTC)}},
		{ItemName: "Legacy Bun", Quantity: 1, TotalAmount: decimal.RequireFromString("12.5"), CreatedAt: models.Timestamp{Time: time.Date(2026, 10, 16, 4, 0, 30, 0, time.UTC)}},
	}
	dhaka := time.FixedZone("BST", 6*3600)

	tbl := SalesTable(sales, dhaka)
	assert.Equal(t, [][]string{
		{"9:15:00 AM", "Tea", "2", "৳40.00"},
		{"10:00:30 AM", "Legacy Bun", "1", "৳12.50"},
	}, tbl.Text())

	empty := SalesTable(nil, dhaka)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, EmptyTodaySales, empty.Empty)
}

func TestBoard_Load(t *testing.T) {
	api := newFakeAPI()
	n := notify.New(nil)

	snap, err := newBoard(api).Load(context.Background(), n, TabDashboard)
	require.NoError(t, err)
	assert.Empty(t, n.Active())

	assert.Len(t, snap.Catalog.Entries(), 4)
	assert.Equal(t, 1, snap.Payments.Default())
	assert.Len(t, snap.QuickActions, 1)
	assert.Len(t, snap.Stock.Rows, 3)

	// the count endpoint wins for today's figures
	assert.Equal(t, Stats{TodaySales: "৳1,520", TodayTransactions: "11", MonthlyRevenue: "45,000"}, snap.Stats)
	assert.Equal(t, 0, api.calls["today"])
}

func TestBoard_LoadTodayTab(t *testing.T) {
	api := newFakeAPI()
	_, err := newBoard(api).Load(context.Background(), notify.New(nil), TabToday)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls["today"])
}

func TestBoard_RefreshIsIdempotent(t *testing.T) {
	api := newFakeAPI()
	b := newBoard(api)

	first, err := b.Refresh(context.Background(), notify.New(nil))
	require.NoError(t, err)
	second, err := b.Refresh(context.Background(), notify.New(nil))
	require.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Stock, second.Stock)
	assert.Equal(t, first.Catalog.Entries(), second.Catalog.Entries())
	assert.Equal(t, first.Payments, second.Payments)

	for _, name := range []string{"products", "payments", "dashboard", "count"} {
		assert.Equal(t, 2, api.calls[name], name)
	}
	assert.Equal(t, 0, api.calls["quick"])
}

func TestBoard_PartialFailure(t *testing.T) {
	api := newFakeAPI()
	api.failing["dashboard"] = true
	n := notify.New(nil)

	snap, err := newBoard(api).Load(context.Background(), n, TabSales)
	require.Error(t, err)

	// other parts still render
	assert.Len(t, snap.Catalog.Entries(), 4)
	assert.Equal(t, "0", snap.Stats.MonthlyRevenue)
	assert.Equal(t, "৳1,520", snap.Stats.TodaySales)

	toasts := n.Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, MsgDashboardFailed, toasts[0].Message)
	assert.Equal(t, notify.Error, toasts[0].Kind)
}

func TestNormalizeTab(t *testing.T) {
	assert.Equal(t, TabToday, NormalizeTab("today"))
	assert.Equal(t, TabSales, NormalizeTab(""))
	assert.Equal(t, TabSales, NormalizeTab("admin"))
}
