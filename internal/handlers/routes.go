package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-pos-dashboard/internal/auth"
	"go-pos-dashboard/internal/middleware"
	"go-pos-dashboard/web"
)

// Register mounts CORS and every route on r. Templates must already be set.
func (h *Handler) Register(r *gin.Engine) {
	tokens := h.auth.Tokens()

	// engine level so preflights reach it before routing
	if origins := nonEmpty(h.cfg.AllowedOrigins); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-CSRFToken"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", Health)
	r.GET("/manifest.json", h.Manifest)
	r.GET("/service-worker.js", h.ServiceWorker)
	r.GET("/browserconfig.xml", BrowserConfig)
	r.StaticFS("/static", web.Static())
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	// --- FEATURE FLAG: staff registration ---
	if h.cfg.AllowRegistration {
		r.POST("/register", h.RegisterUser)
		h.logger.Warn("registration route is OPEN, disable ALLOW_REGISTRATION in production")
	}

	// --- DASHBOARD PAGES ---
	pages := r.Group("/")
	pages.Use(middleware.AuthMiddleware(tokens, "/login"))
	{
		pages.GET("/", h.Index)
		pages.GET("/quick-sale", h.QuickSale)
		pages.POST("/sales", h.CreateSale)
		pages.GET("/stock", h.StockFragment)
		pages.GET("/today", h.TodayFragment)
		pages.GET("/reports", h.ReportsFragment)
		pages.GET("/reports/summary.txt", h.SummaryDownload)
		pages.GET("/status", h.GetSystemStatus)
		pages.POST("/banner/dismiss", h.DismissBanner)
		pages.POST("/banner/installed", h.Installed)
	}

	// --- JSON FACADE ---
	ui := r.Group("/ui")
	ui.Use(middleware.AuthMiddleware(tokens, ""))
	{
		ui.GET("/products", h.GetProducts)
		ui.GET("/select", h.UISelect)
		ui.GET("/payment-methods", h.GetPaymentMethods)
		ui.GET("/quick-actions", h.GetQuickActions)
		ui.GET("/dashboard", h.GetDashboard)
		ui.GET("/stock", h.GetStock)
		ui.GET("/today", h.GetTodaySales)
		ui.GET("/summary", h.GetSummary)
		ui.POST("/sales", h.UICreateSale)
	}

	// --- ADMIN ONLY ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(tokens, ""))
	api.Use(middleware.RequireRole(auth.RoleAdmin))
	{
		api.POST("/ask", h.AskAI)
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
