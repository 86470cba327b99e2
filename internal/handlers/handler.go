// Package handlers serves the dashboard pages, the JSON facade under /ui and
// the staff login. Every handler is a thin shell over the packages that own
// the behavior; nothing here talks to the shop API directly except /status.
package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/ai"
	"go-pos-dashboard/internal/apiclient"
	"go-pos-dashboard/internal/auth"
	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/config"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/sales"
	"go-pos-dashboard/internal/session"
	"go-pos-dashboard/internal/view"
)

const (
	// DeviceCookie identifies the browser for the banner preference.
	DeviceCookie = "pos_device"
	// CSRFCookie and CSRFField are the names the shop backend uses.
	CSRFCookie = "csrftoken"
	CSRFField  = "csrfmiddlewaretoken"

	deviceCookieAge = 365 * 24 * 60 * 60
)

// Deps are the collaborators wired by main.
type Deps struct {
	Config  *config.Config
	Client  *apiclient.Client
	Board   *dashboard.Board
	Sales   *sales.Workflow
	Banners session.BannerStore
	Auth    *auth.Service
	Agent   *ai.Agent
	Logger  *zap.Logger
}

type Handler struct {
	cfg     *config.Config
	client  *apiclient.Client
	board   *dashboard.Board
	sales   *sales.Workflow
	banners session.BannerStore
	auth    *auth.Service
	agent   *ai.Agent
	logger  *zap.Logger
	loc     *time.Location
	now     func() time.Time
}

func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cfg:     d.Config,
		client:  d.Client,
		board:   d.Board,
		sales:   d.Sales,
		banners: d.Banners,
		auth:    d.Auth,
		agent:   d.Agent,
		logger:  logger.Named("handlers"),
		loc:     d.Config.Location(),
		now:     time.Now,
	}
}

// TemplateFuncs are available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":  view.Money,
		"fixed2": view.Fixed2,
	}
}

func (h *Handler) notifier() *notify.Notifier {
	return notify.New(h.logger)
}

// csrfToken forwards whatever token the browser presented so the shop API
// can check it: header first, then the form field, then the cookie.
func csrfToken(c *gin.Context) string {
	if token := c.GetHeader(apiclient.CSRFHeader); token != "" {
		return token
	}
	if token := c.PostForm(CSRFField); token != "" {
		return token
	}
	token, _ := c.Cookie(CSRFCookie)
	return token
}

func requestCtx(c *gin.Context) context.Context {
	return apiclient.WithCSRFToken(c.Request.Context(), csrfToken(c))
}

// deviceKey returns the browser's device id, issuing one on first visit.
func deviceKey(c *gin.Context) string {
	if key, err := c.Cookie(DeviceCookie); err == nil && key != "" {
		return key
	}
	key := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(DeviceCookie, key, deviceCookieAge, "/", "", false, true)
	return key
}

func (h *Handler) session(c *gin.Context) *session.Session {
	sess, err := session.New(c.Request.Context(), deviceKey(c), h.banners)
	if err != nil {
		h.logger.Warn("banner preference unavailable", zap.Error(err))
	}
	if c.Query("source") == "pwa" {
		sess.MarkInstalled()
	}
	return sess
}

// statusFor maps workflow errors onto response codes.
func statusFor(err error) int {
	var validation *sales.ValidationError
	var stock *sales.StockError
	switch {
	case errors.As(err, &validation), errors.As(err, &stock), errors.Is(err, catalog.ErrOutOfStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrUnknownProduct):
		return http.StatusNotFound
	case apiclient.IsRequestFailure(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// toastMessage is what the user was told about err.
func toastMessage(n *notify.Notifier, err error) string {
	if t, ok := n.Last(); ok {
		return t.Message
	}
	return err.Error()
}
