package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/report"
)

// fragmentStatus is 502 when the fragment fell back to its empty state
// because the shop API failed.
func fragmentStatus(err error) int {
	if err != nil {
		return statusFor(err)
	}
	return http.StatusOK
}

// --- GET: /stock --- the stock table fragment of the dashboard tab.
func (h *Handler) StockFragment(c *gin.Context) {
	table, err := h.board.Presenter().LoadStockData(requestCtx(c), h.notifier())
	c.HTML(fragmentStatus(err), "table.html", table)
}

// --- GET: /today --- today's sales, loaded when the tab is opened.
func (h *Handler) TodayFragment(c *gin.Context) {
	table, err := h.board.Presenter().LoadTodaysSales(requestCtx(c), h.notifier())
	c.HTML(fragmentStatus(err), "table.html", table)
}

func (h *Handler) summaryText(c *gin.Context, n *notify.Notifier) (string, error) {
	sum, err := h.board.Presenter().LoadDashboardData(requestCtx(c), n)
	return report.GenerateSummaryText(sum, h.now().In(h.loc), h.cfg.ShopName), err
}

// --- GET: /reports ---
func (h *Handler) ReportsFragment(c *gin.Context) {
	text, err := h.summaryText(c, h.notifier())
	c.HTML(fragmentStatus(err), "reports.html", gin.H{"Summary": text})
}

// --- GET: /reports/summary.txt --- the same text as a download.
func (h *Handler) SummaryDownload(c *gin.Context) {
	text, err := h.summaryText(c, h.notifier())
	if err != nil {
		c.String(statusFor(err), dashboard.MsgDashboardFailed)
		return
	}
	name := fmt.Sprintf("daily-report-%s.txt", h.now().In(h.loc).Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.String(http.StatusOK, "%s", text)
}

// --- GET: /ui/dashboard ---
func (h *Handler) GetDashboard(c *gin.Context) {
	n := h.notifier()
	snap, err := h.board.Refresh(requestCtx(c), n)
	if err != nil {
		h.logger.Warn("dashboard refresh incomplete", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":   snap.Stats,
		"summary": snap.Summary,
		"toasts":  n.Active(),
	})
}

// --- GET: /ui/stock ---
func (h *Handler) GetStock(c *gin.Context) {
	n := h.notifier()
	table, err := h.board.Presenter().LoadStockData(requestCtx(c), n)
	c.JSON(fragmentStatus(err), gin.H{"headers": table.Headers, "rows": table.Text(), "empty": table.Empty, "toasts": n.Active()})
}

// --- GET: /ui/today ---
func (h *Handler) GetTodaySales(c *gin.Context) {
	n := h.notifier()
	table, err := h.board.Presenter().LoadTodaysSales(requestCtx(c), n)
	c.JSON(fragmentStatus(err), gin.H{"headers": table.Headers, "rows": table.Text(), "empty": table.Empty, "toasts": n.Active()})
}

// --- GET: /ui/summary ---
func (h *Handler) GetSummary(c *gin.Context) {
	n := h.notifier()
	text, err := h.summaryText(c, n)
	c.JSON(fragmentStatus(err), gin.H{"text": text, "toasts": n.Active()})
}
