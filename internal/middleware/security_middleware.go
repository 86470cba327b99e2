package middleware

import (
	"net/http"
	"strings"

	"go-pos-dashboard/internal/auth"

	"github.com/gin-gonic/gin"
)

// TokenCookie holds the staff session token for browser requests.
const TokenCookie = "pos_token"

// Context keys set by AuthMiddleware.
const (
	KeyUserID = "userID"
	KeyRole   = "role"
	KeyPhone  = "phone"
)

func tokenFrom(c *gin.Context) (string, bool) {
	// 1. "Authorization: Bearer <token>" wins over the cookie
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return "", false
		}
		return tokenString, true
	}
	// 2. Browser pages carry it in the HttpOnly cookie
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// AuthMiddleware checks if the user has a valid JWT token. Pages are
// redirected to loginPath; JSON routes (loginPath == "") get a 401.
func AuthMiddleware(tokens *auth.TokenIssuer, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		deny := func(msg string) {
			if loginPath != "" {
				c.Redirect(http.StatusSeeOther, loginPath)
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			}
			c.Abort()
		}

		tokenString, ok := tokenFrom(c)
		if !ok {
			deny("Authorization header is required")
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			deny("Invalid or expired token")
			return
		}

		// Store user info in the context for the next handler (or AI agent) to use
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyPhone, claims.Phone)

		c.Next()
	}
}

// RequireRole is a secondary guard that checks for specific permissions
func RequireRole(allowedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(KeyRole)
		if !exists || role != allowedRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
