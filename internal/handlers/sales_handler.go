package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/inventory"
	"go-pos-dashboard/internal/sales"
)

// Index renders the dashboard with the initial page load.
func (h *Handler) Index(c *gin.Context) {
	n := h.notifier()
	ctx := requestCtx(c)
	tab := dashboard.NormalizeTab(c.Query("tab"))
	sess := h.session(c)

	snap, err := h.board.Load(ctx, n, tab)
	if err != nil {
		h.logger.Warn("page load incomplete", zap.Error(err))
	}
	h.render(c, http.StatusOK, h.newPage(c, sess, tab, snap), n)
}

// QuickSale opens the sales tab with the quick-action product preselected.
func (h *Handler) QuickSale(c *gin.Context) {
	n := h.notifier()
	ctx := requestCtx(c)
	sess := h.session(c)

	snap, err := h.board.Load(ctx, n, dashboard.TabSales)
	if err != nil {
		h.logger.Warn("page load incomplete", zap.Error(err))
	}
	form := sales.QuickSale(snap.Catalog, c.Query("name"), c.Query("price"), n)

	p := h.newPage(c, sess, form.Tab, snap)
	p.fillForm(snap, form.Draft, form.Selection)
	p.Focus = form.Focus
	h.render(c, http.StatusOK, p, n)
}

// CreateSale handles the sale form post. A success renders a fresh form
// over the refreshed data; a failure keeps what the user typed.
func (h *Handler) CreateSale(c *gin.Context) {
	var d sales.Draft
	if err := c.ShouldBind(&d); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	n := h.notifier()
	ctx := requestCtx(c)
	sess := h.session(c)

	cat, _ := h.board.Loader().LoadProducts(ctx, n)
	res, err := h.sales.Submit(ctx, cat, d, n)
	if err != nil {
		snap, lerr := h.board.Load(ctx, n, dashboard.TabSales)
		if lerr != nil {
			h.logger.Warn("page load incomplete", zap.Error(lerr))
		}
		p := h.newPage(c, sess, dashboard.TabSales, snap)
		p.fillForm(snap, res.Draft, catalog.Selection{})
		h.render(c, statusFor(err), p, n)
		return
	}

	snap := res.Snapshot
	if snap == nil {
		snap, _ = h.board.Load(ctx, n, dashboard.TabSales)
	} else {
		snap.QuickActions, _ = h.board.Loader().LoadQuickActions(ctx, n)
	}
	h.render(c, http.StatusOK, h.newPage(c, sess, dashboard.TabSales, snap), n)
}

// UISelect applies the selection policy for the product picked in the form.
func (h *Handler) UISelect(c *gin.Context) {
	n := h.notifier()
	ctx := requestCtx(c)

	var d sales.Draft
	d.Product = c.Query("product")
	if d.ProductID() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product is required"})
		return
	}

	cat, err := h.board.Loader().LoadProducts(ctx, n)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": catalog.MsgProductsFailed, "toasts": n.Active()})
		return
	}
	sel, err := cat.Select(d.ProductID(), n)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": toastMessage(n, err), "toasts": n.Active()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product": sel.ProductID(),
		"price":   sel.Price.StringFixed(2),
		"info":    sel.Info,
		"low":     sel.Warning == inventory.WarnLow,
		"toasts":  n.Active(),
	})
}

// UICreateSale is the JSON form of CreateSale.
func (h *Handler) UICreateSale(c *gin.Context) {
	var d sales.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	n := h.notifier()
	ctx := requestCtx(c)

	cat, _ := h.board.Loader().LoadProducts(ctx, n)
	res, err := h.sales.Submit(ctx, cat, d, n)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": toastMessage(n, err), "toasts": n.Active()})
		return
	}
	out := gin.H{"sale": res.Sale, "toasts": n.Active()}
	if res.Snapshot != nil {
		out["stats"] = res.Snapshot.Stats
		out["stock"] = res.Snapshot.Stock.Text()
	}
	c.JSON(http.StatusCreated, out)
}
