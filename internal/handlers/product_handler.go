package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pos-dashboard/internal/catalog"
)

// ProductOption is one entry of the sale form's product list.
type ProductOption struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Label         string `json:"label"`
	Price         string `json:"price"`
	Category      string `json:"category"`
	ProductType   string `json:"product_type"`
	StockQuantity int    `json:"stock_quantity"`
	Status        string `json:"status"`
	Disabled      bool   `json:"disabled"`
}

func productOptions(cat *catalog.Catalog) []ProductOption {
	entries := cat.Entries()
	out := make([]ProductOption, 0, len(entries))
	for _, e := range entries {
		out = append(out, ProductOption{
			ID:            e.Product.ID,
			Name:          e.Product.Name,
			Label:         e.Label,
			Price:         e.Product.Price.StringFixed(2),
			Category:      e.Product.CategoryName,
			ProductType:   string(e.Product.ProductType),
			StockQuantity: e.Product.StockQuantity,
			Status:        e.Status.Label(),
			Disabled:      e.Disabled,
		})
	}
	return out
}

// --- GET: /ui/products ---
func (h *Handler) GetProducts(c *gin.Context) {
	n := h.notifier()
	cat, err := h.board.Loader().LoadProducts(requestCtx(c), n)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": catalog.MsgProductsFailed, "toasts": n.Active()})
		return
	}
	c.JSON(http.StatusOK, productOptions(cat))
}

// --- GET: /ui/payment-methods ---
func (h *Handler) GetPaymentMethods(c *gin.Context) {
	n := h.notifier()
	opts, err := h.board.Loader().LoadPaymentMethods(requestCtx(c), n)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": catalog.MsgPaymentMethodsFailed, "toasts": n.Active()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"methods": opts.Methods, "default": opts.Default()})
}

// --- GET: /ui/quick-actions ---
func (h *Handler) GetQuickActions(c *gin.Context) {
	n := h.notifier()
	actions, err := h.board.Loader().LoadQuickActions(requestCtx(c), n)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": catalog.MsgQuickActionsFailed, "toasts": n.Active()})
		return
	}
	out := make([]gin.H, 0, len(actions))
	for _, a := range actions {
		out = append(out, gin.H{"name": a.Name, "price": a.Price.StringFixed(2), "icon": a.Icon, "title": a.Title()})
	}
	c.JSON(http.StatusOK, out)
}
