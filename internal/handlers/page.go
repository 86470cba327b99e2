package handlers

import (
	"github.com/gin-gonic/gin"

	"go-pos-dashboard/internal/auth"
	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/middleware"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/report"
	"go-pos-dashboard/internal/sales"
	"go-pos-dashboard/internal/session"
	"go-pos-dashboard/internal/view"
)

// TabLink is one entry of the tab bar.
type TabLink struct {
	Name   string
	Title  string
	Icon   string
	Active bool
}

var tabs = []TabLink{
	{Name: dashboard.TabSales, Title: "Add Sale", Icon: "💰"},
	{Name: dashboard.TabToday, Title: "Today", Icon: "📋"},
	{Name: dashboard.TabDashboard, Title: "Dashboard", Icon: "📊"},
	{Name: dashboard.TabReports, Title: "Reports", Icon: "📄"},
}

// Page is the data behind index.html.
type Page struct {
	ShopName      string
	Tab           string
	Tabs          []TabLink
	Toasts        []notify.Toast
	Status        session.ConnStatus
	BannerAllowed bool
	Installed     bool
	User          string
	IsAdmin       bool
	CSRFToken     string

	Draft          sales.Draft
	Total          string
	Focus          string
	ProductOptions []view.Option
	PaymentOptions []view.Option
	ProductInfo    []string

	QuickActions []catalog.QuickAction
	Stats        []view.Stat
	Stock        view.Table
	TodaySales   view.Table
	Summary      string
}

func freshDraft() sales.Draft {
	return sales.Draft{Quantity: "1"}
}

func (h *Handler) newPage(c *gin.Context, sess *session.Session, tab string, snap *dashboard.Snapshot) *Page {
	p := &Page{
		ShopName:      h.cfg.ShopName,
		Tab:           tab,
		Status:        sess.Status(),
		BannerAllowed: sess.BannerAllowed(),
		Installed:     sess.Installed(),
		User:          c.GetString(middleware.KeyPhone),
		IsAdmin:       c.GetString(middleware.KeyRole) == auth.RoleAdmin,
		CSRFToken:     csrfToken(c),

		QuickActions: snap.QuickActions,
		Stats:        snap.Stats.Items(),
		Stock:        snap.Stock,
		TodaySales:   snap.TodaySales,
		Summary:      report.GenerateSummaryText(snap.Summary, h.now().In(h.loc), h.cfg.ShopName),
	}
	for _, t := range tabs {
		t.Active = t.Name == tab
		p.Tabs = append(p.Tabs, t)
	}
	p.fillForm(snap, freshDraft(), catalog.Selection{})
	return p
}

// fillForm renders d into the sale form. sel carries the product info line
// when a product was just picked.
func (p *Page) fillForm(snap *dashboard.Snapshot, d sales.Draft, sel catalog.Selection) {
	p.Draft = d
	p.Total = d.Total()
	p.ProductOptions = snap.Catalog.Options(d.ProductID())
	p.PaymentOptions = snap.Payments.Options(d.PaymentMethodID())
	p.ProductInfo = sel.Info
}

// render writes the page with whatever toasts the request produced.
func (h *Handler) render(c *gin.Context, status int, p *Page, n *notify.Notifier) {
	p.Toasts = n.Active()
	c.HTML(status, "index.html", p)
}
