package dashboard

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/view"
)

// Tabs of the dashboard page.
const (
	TabSales     = "sales"
	TabToday     = "today"
	TabDashboard = "dashboard"
	TabReports   = "reports"
)

// NormalizeTab maps unknown values to the sales tab.
func NormalizeTab(tab string) string {
	switch tab {
	case TabSales, TabToday, TabDashboard, TabReports:
		return tab
	default:
		return TabSales
	}
}

// Snapshot is everything one page render needs.
type Snapshot struct {
	Catalog      *catalog.Catalog
	Payments     catalog.PaymentOptions
	QuickActions []catalog.QuickAction
	Summary      *models.DashboardSummary
	Stats        Stats
	Stock        view.Table
	TodaySales   view.Table
}

// Board composes the catalog loader and the presenter into page loads.
type Board struct {
	loader    *catalog.Loader
	presenter *Presenter
}

func NewBoard(loader *catalog.Loader, presenter *Presenter) *Board {
	return &Board{loader: loader, presenter: presenter}
}

func (b *Board) Presenter() *Presenter {
	return b.presenter
}

func (b *Board) Loader() *catalog.Loader {
	return b.loader
}

// Load runs the initial page load in parallel. Every part that fails has
// already produced a toast; the joined error is for logging only.
func (b *Board) Load(ctx context.Context, n *notify.Notifier, tab string) (*Snapshot, error) {
	snap, errs := b.base(ctx, n, true, tab == TabToday)
	return snap, errors.Join(errs...)
}

// Refresh reloads products, payment methods, dashboard data and today's
// count after a sale. Stock rows are rebuilt from the same product list.
// Calling it twice against unchanged server data yields equal snapshots.
func (b *Board) Refresh(ctx context.Context, n *notify.Notifier) (*Snapshot, error) {
	snap, errs := b.base(ctx, n, false, false)
	return snap, errors.Join(errs...)
}

func (b *Board) base(ctx context.Context, n *notify.Notifier, withQuick, withToday bool) (*Snapshot, []error) {
	snap := &Snapshot{Stats: emptyStats()}
	var (
		g       errgroup.Group
		count   *models.TodaySalesCount
		errCat  error
		errPay  error
		errSum  error
		errCnt  error
		errQck  error
		errTday error
	)

	g.Go(func() error {
		snap.Catalog, errCat = b.loader.LoadProducts(ctx, n)
		return nil
	})
	g.Go(func() error {
		snap.Payments, errPay = b.loader.LoadPaymentMethods(ctx, n)
		return nil
	})
	g.Go(func() error {
		snap.Summary, errSum = b.presenter.LoadDashboardData(ctx, n)
		return nil
	})
	g.Go(func() error {
		count, errCnt = b.presenter.LoadTodaySalesCount(ctx, n)
		return nil
	})
	if withQuick {
		g.Go(func() error {
			snap.QuickActions, errQck = b.loader.LoadQuickActions(ctx, n)
			return nil
		})
	}
	if withToday {
		g.Go(func() error {
			snap.TodaySales, errTday = b.presenter.LoadTodaysSales(ctx, n)
			return nil
		})
	} else {
		snap.TodaySales = SalesTable(nil, b.presenter.loc)
	}
	_ = g.Wait()

	// counters apply in page order: dashboard data first, then the count
	if snap.Summary != nil {
		snap.Stats.applySummary(snap.Summary)
	}
	if count != nil {
		snap.Stats.applyCount(count)
	}
	if errCat != nil {
		n.Error(MsgStockFailed, nil)
	}
	snap.Stock = StockTable(snap.Catalog.Products())

	return snap, []error{errCat, errPay, errSum, errCnt, errQck, errTday}
}
