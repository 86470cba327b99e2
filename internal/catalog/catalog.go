// Package catalog turns the remote product and payment-method lists into the
// selectable options of the sale form and applies the selection policy.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/inventory"
	"go-pos-dashboard/internal/models"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/view"
)

var (
	// ErrOutOfStock is returned when a stockable product with nothing on hand
	// is picked. The selection is cleared.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrUnknownProduct is returned for an id that is not in the loaded catalog.
	ErrUnknownProduct = errors.New("product not in catalog")
)

const (
	MsgOutOfStock      = "This product is out of stock! Please restock before selling."
	MsgDisabledProduct = "This product is out of stock! Please select another product."
	MsgLowStock        = "Low stock warning!"

	MsgProductsFailed       = "Failed to load products"
	MsgPaymentMethodsFailed = "Failed to load payment methods"
	MsgQuickActionsFailed   = "Failed to load quick actions"

	placeholder = "Select Product"
	priceSep    = " - " + view.Currency
)

// Source is the part of the API gateway the loader reads from.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	QuickActions(ctx context.Context) ([]models.Product, error)
	PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
}

// Entry is one product option with the metadata the form needs without a
// second round trip.
type Entry struct {
	Product  models.Product
	Label    string
	Disabled bool
	Status   inventory.Status
}

// Name is the label with the price suffix removed, used for name lookups.
// Names may themselves contain " - ".
func (e Entry) Name() string {
	if i := strings.LastIndex(e.Label, priceSep); i >= 0 {
		return e.Label[:i]
	}
	return e.Label
}

func newEntry(p models.Product) Entry {
	e := Entry{
		Product: p,
		Label:   fmt.Sprintf("%s - %s%s", p.Name, view.Currency, p.Price.StringFixed(2)),
		Status:  inventory.Classify(p),
	}
	switch e.Status {
	case inventory.OutOfStock:
		e.Label += " (OUT OF STOCK)"
		e.Disabled = true
	case inventory.LowStock:
		e.Label += fmt.Sprintf(" (LOW STOCK: %d)", p.StockQuantity)
	}
	return e
}

// Catalog is an immutable snapshot of the product list.
type Catalog struct {
	entries []Entry
	byID    map[int]int
	warnAt  int
}

func New(products []models.Product, warnAt int) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(products)),
		byID:    make(map[int]int, len(products)),
		warnAt:  warnAt,
	}
	for _, p := range products {
		c.byID[p.ID] = len(c.entries)
		c.entries = append(c.entries, newEntry(p))
	}
	return c
}

func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Products returns the raw products in server order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Product
	}
	return out
}

func (c *Catalog) Lookup(id int) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// FindByName matches the product name part of the label, ignoring case.
func (c *Catalog) FindByName(name string) (Entry, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, e := range c.entries {
		if strings.ToLower(e.Name()) == want {
			return e, true
		}
	}
	return Entry{}, false
}

// Options renders the product select, starting with the empty placeholder.
func (c *Catalog) Options(selectedID int) []view.Option {
	opts := make([]view.Option, 0, len(c.entries)+1)
	opts = append(opts, view.Option{Value: "", Label: placeholder, Selected: selectedID == 0})
	for _, e := range c.entries {
		opts = append(opts, view.Option{
			Value:    strconv.Itoa(e.Product.ID),
			Label:    e.Label,
			Disabled: e.Disabled,
			Selected: e.Product.ID == selectedID && !e.Disabled,
		})
	}
	return opts
}

// Selection is the outcome of picking a product in the sale form.
type Selection struct {
	Entry   Entry
	Price   decimal.Decimal
	Info    []string
	Warning inventory.Warning
}

// ProductID is 0 for a cleared selection.
func (s Selection) ProductID() int {
	return s.Entry.Product.ID
}

// Select applies the selection policy: out of stock clears the selection with
// an error toast, low stock warns, instant products are never checked.
func (c *Catalog) Select(id int, n *notify.Notifier) (Selection, error) {
	e, ok := c.Lookup(id)
	if !ok {
		return Selection{}, ErrUnknownProduct
	}
	if e.Disabled {
		n.Error(MsgDisabledProduct, nil)
		return Selection{}, ErrOutOfStock
	}

	p := e.Product
	sel := Selection{
		Entry:   e,
		Price:   p.Price,
		Info:    []string{"Category: " + p.CategoryName},
		Warning: inventory.SelectionWarning(p, c.warnAt),
	}
	if p.IsStockable() {
		sel.Info = append(sel.Info, fmt.Sprintf("Available Stock: %d", p.StockQuantity))
	} else {
		sel.Info = append(sel.Info, "Instant Product")
	}

	switch sel.Warning {
	case inventory.Block:
		n.Error(MsgOutOfStock, nil)
		return Selection{}, ErrOutOfStock
	case inventory.WarnLow:
		n.Warn(MsgLowStock, nil)
	}
	return sel, nil
}

// PaymentOptions are the payment methods in server order; the first is the
// default.
type PaymentOptions struct {
	Methods []models.PaymentMethod
}

// Default is the id preselected in a fresh form, 0 when there are none.
func (p PaymentOptions) Default() int {
	if len(p.Methods) == 0 {
		return 0
	}
	return p.Methods[0].ID
}

func (p PaymentOptions) Has(id int) bool {
	for _, m := range p.Methods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Options renders the payment select with selectedID chosen, falling back to
// the first method.
func (p PaymentOptions) Options(selectedID int) []view.Option {
	if !p.Has(selectedID) {
		selectedID = p.Default()
	}
	opts := make([]view.Option, 0, len(p.Methods))
	for _, m := range p.Methods {
		opts = append(opts, view.Option{
			Value:    strconv.Itoa(m.ID),
			Label:    m.Name,
			Selected: m.ID == selectedID,
		})
	}
	return opts
}

// Loader fetches catalog data through the gateway.
type Loader struct {
	src    Source
	warnAt int
	logger *zap.Logger
}

func NewLoader(src Source, warnAt int, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{src: src, warnAt: warnAt, logger: logger}
}

// LoadProducts fetches the products. On failure a warning toast is shown and
// an empty catalog is returned together with the error.
func (l *Loader) LoadProducts(ctx context.Context, n *notify.Notifier) (*Catalog, error) {
	products, err := l.src.Products(ctx)
	if err != nil {
		n.Warn(MsgProductsFailed, err)
		return New(nil, l.warnAt), fmt.Errorf("load products: %w", err)
	}
	l.logger.Debug("products loaded", zap.Int("count", len(products)))
	return New(products, l.warnAt), nil
}

func (l *Loader) LoadPaymentMethods(ctx context.Context, n *notify.Notifier) (PaymentOptions, error) {
	methods, err := l.src.PaymentMethods(ctx)
	if err != nil {
		n.Warn(MsgPaymentMethodsFailed, err)
		return PaymentOptions{}, fmt.Errorf("load payment methods: %w", err)
	}
	l.logger.Debug("payment methods loaded", zap.Int("count", len(methods)))
	return PaymentOptions{Methods: methods}, nil
}
