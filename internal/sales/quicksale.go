package sales

import (
	"strconv"
	"strings"

	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/notify"
)

// FocusQuantity names the input that gets focus after a quick sale.
const FocusQuantity = "quantity"

// Form is a prepared sale form.
type Form struct {
	Draft     Draft
	Selection catalog.Selection
	Tab       string
	Focus     string
}

// QuickSale prepares the sale form from a quick-action button. The product
// whose name matches case-insensitively is selected through the normal
// selection policy and the quantity is set to 1. When nothing matches, price
// is prefilled and the product stays unselected.
func QuickSale(cat *catalog.Catalog, name, price string, n *notify.Notifier) Form {
	f := Form{
		Draft: Draft{Quantity: "1"},
		Tab:   dashboard.TabSales,
		Focus: FocusQuantity,
	}

	entry, ok := cat.FindByName(name)
	if !ok {
		f.Draft.UnitPrice = strings.TrimSpace(price)
		return f
	}
	sel, err := cat.Select(entry.Product.ID, n)
	if err != nil {
		return f
	}
	f.Selection = sel
	f.Draft.Product = strconv.Itoa(sel.ProductID())
	f.Draft.UnitPrice = sel.Price.StringFixed(2)
	return f
}

// Pick applies a product selection to an existing draft, keeping quantity
// and the optional fields. A rejected product clears the selection.
func Pick(cat *catalog.Catalog, d Draft, n *notify.Notifier) (Draft, catalog.Selection) {
	id := d.ProductID()
	if id == 0 {
		d.Product = ""
		return d, catalog.Selection{}
	}
	sel, err := cat.Select(id, n)
	if err != nil {
		d.Product = ""
		return d, catalog.Selection{}
	}
	d.UnitPrice = sel.Price.StringFixed(2)
	return d, sel
}
