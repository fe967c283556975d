// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/services"
)

// -------------- authentication middleware --------------

// AuthRequired ensures a valid session exists before any dashboard route
// runs. How it works:
// - Reads the stored token from the cookie session.
// - Derives the user id from it; a missing or malformed token means no session.
// - Without a session, redirects to "/login" and aborts; otherwise the
//   derived user id is placed on the context under "userID".
// Usage:
//
//	protected := router.Group("/", middleware.AuthRequired)
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	raw := session.Get(services.TokenKey)

	token, ok := raw.(string)
	if !ok || token == "" {
		logger.Warn.Printf("AuthRequired: no token in session for %s, redirecting to /login", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	userID, ok := services.DeriveUserID(token)
	if !ok {
		// a stale or tampered cookie is treated as logged out, never a crash
		logger.Warn.Printf("AuthRequired: malformed token in session, redirecting to /login")
		session.Clear()
		_ = session.Save()
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set("userID", userID)
	logger.Debug.Printf("[AuthRequired] user %d authenticated - proceeding with request", userID)
	c.Next()
}
