// Package inventory holds the stock status policy shared by the catalog and the
// stock table, so both always agree on what "low" and "out" mean.
package inventory

import "go-pos-dashboard/internal/models"

type Status int

const (
	// NotTracked is the status of instant products.
	NotTracked Status = iota
	InStock
	LowStock
	OutOfStock
)

// DefaultWarnAt is the quantity at or below which selecting a product warns.
const DefaultWarnAt = 5

// Classify compares the on-hand quantity against the product's own threshold.
func Classify(p models.Product) Status {
	if !p.IsStockable() {
		return NotTracked
	}
	switch {
	case p.StockQuantity <= 0:
		return OutOfStock
	case p.StockQuantity <= p.MinStockLevel:
		return LowStock
	default:
		return InStock
	}
}

// Sellable is false only for stockable products with nothing on hand.
func Sellable(p models.Product) bool {
	return Classify(p) != OutOfStock
}

func (s Status) Label() string {
	switch s {
	case OutOfStock:
		return "Out of Stock"
	case LowStock:
		return "Low Stock"
	case InStock:
		return "In Stock"
	default:
		return "Instant Product"
	}
}

// Class is the CSS class used on stock rows and badges.
func (s Status) Class() string {
	switch s {
	case OutOfStock:
		return "stock-out"
	case LowStock:
		return "stock-low"
	case InStock:
		return "stock-ok"
	default:
		return ""
	}
}

func (s Status) String() string {
	return s.Label()
}

// Warning is the tier applied when a product is picked in the sale form.
type Warning int

const (
	NoWarning Warning = iota
	WarnLow
	Block
)

// SelectionWarning applies the three-tier selection policy. It uses a fixed
// quantity (warnAt) rather than the product threshold, matching the sale form.
func SelectionWarning(p models.Product, warnAt int) Warning {
	if !p.IsStockable() {
		return NoWarning
	}
	switch {
	case p.StockQuantity <= 0:
		return Block
	case p.StockQuantity <= warnAt:
		return WarnLow
	default:
		return NoWarning
	}
}
