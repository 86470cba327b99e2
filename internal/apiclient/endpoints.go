package apiclient

import (
	"bytes"
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/models"
)

// Shop API endpoints, relative to /api.
const (
	EndpointProducts        = "/products/"
	EndpointQuickActions    = "/products/quick_actions/"
	EndpointPaymentMethods  = "/payment-methods/"
	EndpointDashboardData   = "/dashboard-data/"
	EndpointTodaySalesCount = "/today-sales-count/"
	EndpointTodaysSales     = "/sales/today/"
	EndpointSales           = "/sales/"
)

func list[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	raw, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// Products lists the active catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	return list[models.Product](ctx, c, EndpointProducts)
}

// QuickActions lists the products flagged for one-tap sale.
func (c *Client) QuickActions(ctx context.Context) ([]models.Product, error) {
	return list[models.Product](ctx, c, EndpointQuickActions)
}

func (c *Client) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	return list[models.PaymentMethod](ctx, c, EndpointPaymentMethods)
}

func (c *Client) TodaysSales(ctx context.Context) ([]models.SaleRecord, error) {
	return list[models.SaleRecord](ctx, c, EndpointTodaysSales)
}

func (c *Client) DashboardData(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if err := c.Request(ctx, http.MethodGet, EndpointDashboardData, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) TodaySalesCount(ctx context.Context) (*models.TodaySalesCount, error) {
	var count models.TodaySalesCount
	if err := c.Request(ctx, http.MethodGet, EndpointTodaySalesCount, nil, &count); err != nil {
		return nil, err
	}
	return &count, nil
}

// CreateSale posts a new sale. Any 2xx means the sale exists on the server;
// the echoed record is decoded best effort, so a body that does not fit
// SaleRecord leaves the fields taken from sale.
func (c *Client) CreateSale(ctx context.Context, sale models.SalePayload) (*models.SaleRecord, error) {
	raw, err := c.do(ctx, http.MethodPost, EndpointSales, sale)
	if err != nil {
		return nil, err
	}
	created := models.SaleRecord{
		Quantity:  sale.Quantity,
		UnitPrice: decimal.NewFromFloat(sale.UnitPrice),
		TotalAmount: decimal.NewFromFloat(sale.UnitPrice).
			Mul(decimal.NewFromInt(int64(sale.Quantity))).Round(2),
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &created, nil
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		c.logger.Warn("sale created but response not understood",
			zap.Int("product", sale.Product),
			zap.Error(err))
	}
	return &created, nil
}

// Ping checks that the shop origin answers at all. Any HTTP response counts as
// reachable; only transport failures report false.
func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.origin+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
