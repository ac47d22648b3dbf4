package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/pkg/jwt"
	"github.com/hillcrest-academy/core/internal/pkg/response"
	"github.com/hillcrest-academy/core/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	ContextAdminID   = "adminID"
	ContextSessionID = "sessionID"
)

// Auth requires a valid JWT bound to an active admin session.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c)
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			response.Unauthorized(c)
			return
		}

		active, err := session.IsActive(db, claims.AdminID, claims.SessionID)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		if !active {
			response.Unauthorized(c)
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Next()
	}
}

// OptionalAuth resolves admin identity when a valid token is present but
// never rejects the request. Handlers use IsAdmin to widen their view for
// authenticated callers.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		active, err := session.IsActive(db, claims.AdminID, claims.SessionID)
		if err != nil || !active {
			c.Next()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Next()
	}
}

// IsAdmin reports whether the request carries an authenticated admin.
func IsAdmin(c *gin.Context) bool {
	return AdminID(c) != ""
}

// AdminID returns the authenticated admin id set by Auth.
func AdminID(c *gin.Context) string {
	v, _ := c.Get(ContextAdminID)
	s, _ := v.(string)
	return s
}

// SessionID returns the authenticated session id set by Auth.
func SessionID(c *gin.Context) string {
	v, _ := c.Get(ContextSessionID)
	s, _ := v.(string)
	return s
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(header)
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
