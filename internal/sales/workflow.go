// Package sales validates sale drafts against the loaded catalog, submits them
// to the shop API and triggers the post-sale refresh.
package sales

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/apiclient"
	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/inventory"
	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/notify"
)

const (
	MsgRequired      = "Please fill in all required fields"
	MsgSelectOptions = "Please select a product and payment method"
	MsgBadQuantity   = "Quantity must be a whole number greater than zero"
	MsgBadPrice      = "Unit price must be a valid amount"
	MsgSaleAdded     = "Sale added successfully! 🎉"
	MsgSaleFailed    = "Failed to add sale. Please try again."
)

// Draft holds the sale form exactly as typed.
type Draft struct {
	Product       string `form:"product" json:"product"`
	Quantity      string `form:"quantity" json:"quantity"`
	UnitPrice     string `form:"unit_price" json:"unit_price"`
	PaymentMethod string `form:"payment_method" json:"payment_method"`
	CustomerName  string `form:"customer_name" json:"customer_name"`
	CustomerPhone string `form:"customer_phone" json:"customer_phone"`
	Notes         string `form:"notes" json:"notes"`
}

// Total is the computed line total shown next to the form.
func (d Draft) Total() string {
	return CalculateTotal(d.Quantity, d.UnitPrice)
}

// ProductID is 0 when no product is chosen or the value is not a number.
func (d Draft) ProductID() int {
	id, _ := strconv.Atoi(strings.TrimSpace(d.Product))
	return id
}

func (d Draft) PaymentMethodID() int {
	id, _ := strconv.Atoi(strings.TrimSpace(d.PaymentMethod))
	return id
}

func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// CalculateTotal multiplies quantity by unit price and rounds to two
// decimals. Fields that are not numbers count as zero.
func CalculateTotal(quantity, price string) string {
	q, _ := parseAmount(quantity)
	p, _ := parseAmount(price)
	return q.Mul(p).StringFixed(2)
}

// Creator posts a sale to the shop API.
type Creator interface {
	CreateSale(ctx context.Context, sale models.SalePayload) (*models.SaleRecord, error)
}

// Refresher reloads the page state after a successful sale.
type Refresher interface {
	Refresh(ctx context.Context, n *notify.Notifier) (*dashboard.Snapshot, error)
}

// Result is the outcome of a submission. Draft is the form to render next:
// empty after a success, unchanged after a failure.
type Result struct {
	Sale     *models.SaleRecord
	Draft    Draft
	Snapshot *dashboard.Snapshot
}

type Workflow struct {
	creator   Creator
	refresher Refresher
	logger    *zap.Logger
}

func NewWorkflow(creator Creator, refresher Refresher, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{creator: creator, refresher: refresher, logger: logger}
}

// Validate checks the draft against the catalog and builds the request body.
// It never talks to the network.
func Validate(cat *catalog.Catalog, d Draft) (models.SalePayload, error) {
	const op = "sales.Validate"

	if strings.TrimSpace(d.Product) == "" || strings.TrimSpace(d.Quantity) == "" ||
		strings.TrimSpace(d.UnitPrice) == "" || strings.TrimSpace(d.PaymentMethod) == "" {
		return models.SalePayload{}, &ValidationError{Op: op, Message: MsgRequired}
	}

	productID, paymentID := d.ProductID(), d.PaymentMethodID()
	if productID <= 0 || paymentID <= 0 {
		return models.SalePayload{}, &ValidationError{Op: op, Field: "product", Message: MsgSelectOptions}
	}
	qty, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil || qty <= 0 {
		return models.SalePayload{}, &ValidationError{Op: op, Field: "quantity", Message: MsgBadQuantity}
	}
	price, ok := parseAmount(d.UnitPrice)
	if !ok || price.IsNegative() {
		return models.SalePayload{}, &ValidationError{Op: op, Field: "unit_price", Message: MsgBadPrice}
	}

	entry, found := cat.Lookup(productID)
	if !found {
		return models.SalePayload{}, &ValidationError{Op: op, Field: "product", Message: MsgSelectOptions}
	}
	if p := entry.Product; p.IsStockable() {
		if !inventory.Sellable(p) {
			return models.SalePayload{}, &StockError{
				Op: op, Product: p.Name, Available: p.StockQuantity, Requested: qty,
				OutOfStock: true, Message: catalog.MsgOutOfStock,
			}
		}
		if qty > p.StockQuantity {
			return models.SalePayload{}, &StockError{
				Op: op, Product: p.Name, Available: p.StockQuantity, Requested: qty,
			}
		}
	}

	return models.SalePayload{
		Product:       productID,
		Quantity:      qty,
		UnitPrice:     price.InexactFloat64(),
		PaymentMethod: paymentID,
		CustomerName:  strings.TrimSpace(d.CustomerName),
		CustomerPhone: strings.TrimSpace(d.CustomerPhone),
		Notes:         strings.TrimSpace(d.Notes),
	}, nil
}

// Submit validates and posts the draft. Validation and stock failures show an
// error toast and return before any request. A successful sale resets the
// draft and reloads products, payment methods and the dashboard counters.
func (w *Workflow) Submit(ctx context.Context, cat *catalog.Catalog, d Draft, n *notify.Notifier) (Result, error) {
	const op = "sales.Submit"

	payload, err := Validate(cat, d)
	if err != nil {
		n.Error(err.Error(), nil)
		return Result{Draft: d}, err
	}

	created, err := w.creator.CreateSale(ctx, payload)
	if err != nil {
		msg, ok := apiclient.ServerMessage(err)
		if !ok {
			msg = MsgSaleFailed
		}
		n.Error(msg, err)
		return Result{Draft: d}, fmt.Errorf("%s: %w", op, stockRejection(op, err))
	}

	w.logger.Info("sale created",
		zap.Int("product", payload.Product),
		zap.Int("quantity", payload.Quantity),
		zap.Int("payment_method", payload.PaymentMethod),
	)
	n.Success(MsgSaleAdded)

	res := Result{Sale: created}
	if w.refresher != nil {
		snap, rerr := w.refresher.Refresh(ctx, n)
		if rerr != nil {
			w.logger.Warn("refresh after sale incomplete", zap.Error(rerr))
		}
		res.Snapshot = snap
	}
	return res, nil
}
