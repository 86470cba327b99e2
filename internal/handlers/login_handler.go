package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/auth"
	"go-pos-dashboard/internal/middleware"
)

type LoginRequest struct {
	Phone    string `json:"phone" form:"phone" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterRequest struct {
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEJSON)
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"ShopName": h.cfg.ShopName})
}

// Login accepts the login form or a JSON body. Forms get the token as an
// HttpOnly cookie and a redirect to the dashboard; JSON clients get it back.
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	// 1. Validate input
	if err := c.ShouldBind(&input); err != nil {
		h.loginFailed(c, http.StatusBadRequest, input.Phone, "Please enter your phone number and password.")
		return
	}

	// 2. Verify credentials and issue the token
	token, user, err := h.auth.Login(c.Request.Context(), input.Phone, input.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInactiveAccount):
		h.loginFailed(c, http.StatusUnauthorized, input.Phone, err.Error())
		return
	case err != nil:
		h.logger.Error("login failed", zap.Error(err))
		h.loginFailed(c, http.StatusInternalServerError, input.Phone, "Login failed. Please try again.")
		return
	}
	h.logger.Info("staff logged in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"role":  user.Role,
			"phone": user.Phone,
		})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.auth.Tokens().TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) loginFailed(c *gin.Context, status int, phone, msg string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.HTML(status, "login.html", gin.H{"ShopName": h.cfg.ShopName, "Error": msg, "Phone": phone})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// RegisterUser creates a staff account. Only routed when registration is enabled.
func (h *Handler) RegisterUser(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), input.Phone, input.Password, input.FirstName, input.LastName)
	switch {
	case errors.Is(err, auth.ErrPhoneTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, auth.ErrPhoneRequired), errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!", "user": user})
}
