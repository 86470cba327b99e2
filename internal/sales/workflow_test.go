package sales

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-dashboard/internal/apiclient"
	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/inventory"
	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/notify"
)

type fakeCreator struct {
	calls    int
	payloads []models.SalePayload
	err      error
}

func (f *fakeCreator) CreateSale(_ context.Context, sale models.SalePayload) (*models.SaleRecord, error) {
	f.calls++
	f.payloads = append(f.payloads, sale)
	if f.err != nil {
		return nil, f.err
	}
	return &models.SaleRecord{ID: 77, Quantity: sale.Quantity}, nil
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context, *notify.Notifier) (*dashboard.Snapshot, error) {
	f.calls++
	return &dashboard.Snapshot{}, f.err
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Product{
		{ID: 1, Name: "Tea", Price: decimal.RequireFromString("20.00"), CategoryName: "Hot Drinks", ProductType: models.Instant},
		{ID: 2, Name: "Samosa", Price: decimal.RequireFromString("15.00"), CategoryName: "Snacks", ProductType: models.Stockable, StockQuantity: 3, MinStockLevel: 5},
		{ID: 3, Name: "Cake", Price: decimal.RequireFromString("120.00"), CategoryName: "Bakery", ProductType: models.Stockable, StockQuantity: 0, MinStockLevel: 2},
	}, inventory.DefaultWarnAt)
}

func validDraft() Draft {
	return Draft{Product: "2", Quantity: "2", UnitPrice: "15.00", PaymentMethod: "1"}
}

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		qty, price, want string
	}{
		{"3", "12.5", "37.50"},
		{"1", "20", "20.00"},
		{"", "20", "0.00"},
		{"abc", "20", "0.00"},
		{"2", "x", "0.00"},
		{"2", "0.333", "0.67"},
		{" 4 ", " 2.25 ", "9.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateTotal(tt.qty, tt.price), "%q x %q", tt.qty, tt.price)
	}
	assert.Equal(t, "37.50", Draft{Quantity: "3", UnitPrice: "12.5"}.Total())
}

func TestValidate_RequiredFields(t *testing.T) {
	cat := testCatalog()
	for _, d := range []Draft{
		{Quantity: "1", UnitPrice: "20", PaymentMethod: "1"},
		{Product: "1", UnitPrice: "20", PaymentMethod: "1"},
		{Product: "1", Quantity: "1", PaymentMethod: "1"},
		{Product: "1", Quantity: "1", UnitPrice: "20", PaymentMethod: "  "},
	} {
		_, err := Validate(cat, d)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "%+v", d)
		assert.Equal(t, MsgRequired, verr.Message)
	}
}

func TestValidate_Malformed(t *testing.T) {
	cat := testCatalog()
	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"non-numeric product", Draft{Product: "tea", Quantity: "1", UnitPrice: "20", PaymentMethod: "1"}, "product"},
		{"fractional quantity", Draft{Product: "1", Quantity: "1.5", UnitPrice: "20", PaymentMethod: "1"}, "quantity"},
		{"zero quantity", Draft{Product: "1", Quantity: "0", UnitPrice: "20", PaymentMethod: "1"}, "quantity"},
		{"bad price", Draft{Product: "1", Quantity: "1", UnitPrice: "twenty", PaymentMethod: "1"}, "unit_price"},
		{"unknown product", Draft{Product: "42", Quantity: "1", UnitPrice: "20", PaymentMethod: "1"}, "product"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(cat, tt.draft)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidate_BuildsPayload(t *testing.T) {
	d := validDraft()
	d.CustomerName = "  Rahim "
	payload, err := Validate(testCatalog(), d)
	require.NoError(t, err)
	assert.Equal(t, models.SalePayload{
		Product: 2, Quantity: 2, UnitPrice: 15, PaymentMethod: 1, CustomerName: "Rahim",
	}, payload)
}

func TestValidate_InstantProductSkipsStock(t *testing.T) {
	_, err := Validate(testCatalog(), Draft{Product: "1", Quantity: "500", UnitPrice: "20", PaymentMethod: "1"})
	assert.NoError(t, err)
}

func TestSubmit_InsufficientStockNeverCallsCreate(t *testing.T) {
	creator := &fakeCreator{}
	refresher := &fakeRefresher{}
	w := NewWorkflow(creator, refresher, nil)
	n := notify.New(nil)

	d := validDraft()
	d.Quantity = "5"
	res, err := w.Submit(context.Background(), testCatalog(), d, n)

	var serr *StockError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 3, serr.Available)
	assert.Equal(t, 5, serr.Requested)
	assert.Equal(t, "Insufficient stock! Available: 3, Requested: 5", serr.Error())
	assert.Equal(t, 0, creator.calls)
	assert.Equal(t, 0, refresher.calls)
	assert.Equal(t, d, res.Draft, "draft is preserved")

	last, _ := n.Last()
	assert.Equal(t, notify.Error, last.Kind)
	assert.Equal(t, serr.Error(), last.Message)
}

func TestSubmit_OutOfStockNeverCallsCreate(t *testing.T) {
	creator := &fakeCreator{}
	w := NewWorkflow(creator, nil, nil)

	_, err := w.Submit(context.Background(), testCatalog(), Draft{Product: "3", Quantity: "1", UnitPrice: "120", PaymentMethod: "1"}, notify.New(nil))
	var serr *StockError
	require.True(t, errors.As(err, &serr))
	assert.True(t, serr.OutOfStock)
	assert.Equal(t, 0, creator.calls)
}

func TestSubmit_SuccessResetsAndRefreshes(t *testing.T) {
	creator := &fakeCreator{}
	refresher := &fakeRefresher{}
	w := NewWorkflow(creator, refresher, nil)
	n := notify.New(nil)

	res, err := w.Submit(context.Background(), testCatalog(), validDraft(), n)
	require.NoError(t, err)

	assert.Equal(t, 1, creator.calls)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, Draft{}, res.Draft)
	assert.Equal(t, 77, res.Sale.ID)
	assert.NotNil(t, res.Snapshot)

	last, _ := n.Last()
	assert.Equal(t, notify.Success, last.Kind)
	assert.Equal(t, MsgSaleAdded, last.Message)
}

func TestSubmit_RefreshFailureStillSucceeds(t *testing.T) {
	w := NewWorkflow(&fakeCreator{}, &fakeRefresher{err: errors.New("partial")}, nil)
	_, err := w.Submit(context.Background(), testCatalog(), validDraft(), notify.New(nil))
	assert.NoError(t, err)
}

func TestSubmit_RemoteFailure(t *testing.T) {
	t.Run("generic message", func(t *testing.T) {
		creator := &fakeCreator{err: &apiclient.NetworkError{Method: "POST", URL: "/api/sales/", Err: errors.New("refused")}}
		refresher := &fakeRefresher{}
		n := notify.New(nil)

		res, err := NewWorkflow(creator, refresher, nil).Submit(context.Background(), testCatalog(), validDraft(), n)
		require.Error(t, err)
		assert.True(t, apiclient.IsRequestFailure(err))
		assert.Equal(t, validDraft(), res.Draft)
		assert.Equal(t, 0, refresher.calls)

		last, _ := n.Last()
		assert.Equal(t, MsgSaleFailed, last.Message)
	})

	t.Run("server message is shown", func(t *testing.T) {
		creator := &fakeCreator{err: &apiclient.HTTPError{Status: http.StatusBadRequest, Message: "Invalid payment method"}}
		n := notify.New(nil)

		_, err := NewWorkflow(creator, nil, nil).Submit(context.Background(), testCatalog(), validDraft(), n)
		require.Error(t, err)
		assert.False(t, errors.Is(err, &StockError{}))

		last, _ := n.Last()
		assert.Equal(t, "Invalid payment method", last.Message)
	})

	t.Run("server stock rejection becomes StockError", func(t *testing.T) {
		creator := &fakeCreator{err: &apiclient.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "Insufficient stock for 'Samosa'! Available: 1, Requested: 2",
		}}
		n := notify.New(nil)

		_, err := NewWorkflow(creator, nil, nil).Submit(context.Background(), testCatalog(), validDraft(), n)
		var serr *StockError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, 1, serr.Available)
		assert.Equal(t, 2, serr.Requested)

		var httpErr *apiclient.HTTPError
		assert.True(t, errors.As(err, &httpErr), "server error stays reachable")

		last, _ := n.Last()
		assert.Equal(t, "Insufficient stock for 'Samosa'! Available: 1, Requested: 2", last.Message)
	})

	t.Run("server out of stock", func(t *testing.T) {
		creator := &fakeCreator{err: &apiclient.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "Product 'Samosa' is out of stock! Please restock before selling.",
		}}
		_, err := NewWorkflow(creator, nil, nil).Submit(context.Background(), testCatalog(), validDraft(), notify.New(nil))
		var serr *StockError
		require.True(t, errors.As(err, &serr))
		assert.True(t, serr.OutOfStock)
	})
}

func TestQuickSale(t *testing.T) {
	n := notify.New(nil)
	f := QuickSale(testCatalog(), "Tea", "20", n)

	assert.Equal(t, "1", f.Draft.Product)
	assert.Equal(t, "1", f.Draft.Quantity)
	assert.Equal(t, "20.00", f.Draft.Total())
	assert.Equal(t, dashboard.TabSales, f.Tab)
	assert.Equal(t, FocusQuantity, f.Focus)
	assert.Equal(t, []string{"Category: Hot Drinks", "Instant Product"}, f.Selection.Info)
}

func TestQuickSale_LowStockWarns(t *testing.T) {
	n := notify.New(nil)
	f := QuickSale(testCatalog(), "samosa", "15", n)
	assert.Equal(t, "2", f.Draft.Product)
	assert.Equal(t, "15.00", f.Draft.Total())

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Warning, last.Kind)
}

func TestQuickSale_OutOfStockAndUnknown(t *testing.T) {
	n := notify.New(nil)
	f := QuickSale(testCatalog(), "Cake", "120", n)
	assert.Equal(t, "", f.Draft.Product)
	assert.Equal(t, "0.00", f.Draft.Total())
	last, _ := n.Last()
	assert.Equal(t, notify.Error, last.Kind)

	f = QuickSale(testCatalog(), "Lassi", "60", notify.New(nil))
	assert.Equal(t, "", f.Draft.Product)
	assert.Equal(t, "60.00", f.Draft.Total())
}

func TestPick(t *testing.T) {
	d, sel := Pick(testCatalog(), Draft{Product: "1", Quantity: "3"}, notify.New(nil))
	assert.Equal(t, "20.00", d.UnitPrice)
	assert.Equal(t, "60.00", d.Total())
	assert.Equal(t, 1, sel.ProductID())

	d, _ = Pick(testCatalog(), Draft{Product: "3", Quantity: "3"}, notify.New(nil))
	assert.Equal(t, "", d.Product)
}
