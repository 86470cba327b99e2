package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/session"
	"go-pos-dashboard/internal/utils"
	"go-pos-dashboard/web"
)

// Health reports that the dashboard process itself is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "online"})
}

// GetSystemStatus probes the shop origin for the connection indicator and
// reports which device this server is running on.
func (h *Handler) GetSystemStatus(c *gin.Context) {
	sess := h.session(c)
	st := sess.Probe(c.Request.Context(), h.client)
	c.JSON(http.StatusOK, gin.H{
		"online":     st.Online,
		"text":       st.Text,
		"class":      st.Class,
		"device_id":  utils.GetDeviceID(),
		"device_key": sess.DeviceKey(),
	})
}

func (h *Handler) Manifest(c *gin.Context) {
	c.Header("Content-Type", "application/manifest+json")
	c.JSON(http.StatusOK, session.NewManifest(h.cfg.ShopName))
}

// ServiceWorker serves the worker from the site root. It never caches.
func (h *Handler) ServiceWorker(c *gin.Context) {
	script, err := web.ServiceWorker()
	if err != nil {
		h.logger.Error("service worker missing", zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Header("Service-Worker-Allowed", "/")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", script)
}

func BrowserConfig(c *gin.Context) {
	c.XML(http.StatusOK, session.NewBrowserConfig())
}

// DismissBanner hides the install banner on this device for good.
func (h *Handler) DismissBanner(c *gin.Context) {
	sess := h.session(c)
	if err := sess.DismissBanner(c.Request.Context()); err != nil {
		h.logger.Error("failed to save banner preference", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}

// Installed confirms a completed install to the page.
func (h *Handler) Installed(c *gin.Context) {
	n := h.notifier()
	sess := h.session(c)
	sess.MarkInstalled()
	n.Success(session.MsgInstalled)
	c.JSON(http.StatusOK, gin.H{"installed": sess.Installed(), "toasts": n.Active()})
}
