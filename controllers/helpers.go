// Package controllers file: controllers/helpers.go
package controllers

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/tanzeelak/tea-rater-frontend/logger"
)

// session keys shared by the dashboard handlers
const (
	flashKindKey   = "flashKind"
	flashMsgKey    = "flashMsg"
	submitTokenKey = "submitToken"
)

// currentUserID reads the user id placed on the context by AuthRequired.
func currentUserID(c *gin.Context) int {
	return c.GetInt("userID")
}

// ------------------ flash messages ------------------

// setFlash stores a transient notification; it is shown once on the next
// render and then cleared, mirroring the auto-dismissing banners.
func setFlash(c *gin.Context, kind, msg string) {
	session := sessions.Default(c)
	session.Set(flashKindKey, kind)
	session.Set(flashMsgKey, msg)
	if err := session.Save(); err != nil {
		logger.Error.Printf("setFlash: error saving session: %v", err)
	}
}

// takeFlash returns and clears the pending notification, if any.
func takeFlash(c *gin.Context) (kind, msg string) {
	session := sessions.Default(c)
	kind, _ = session.Get(flashKindKey).(string)
	msg, _ = session.Get(flashMsgKey).(string)
	if kind != "" || msg != "" {
		session.Delete(flashKindKey)
		session.Delete(flashMsgKey)
		if err := session.Save(); err != nil {
			logger.Error.Printf("takeFlash: error saving session: %v", err)
		}
	}
	return kind, msg
}

// ------------------ duplicate-submit guard ------------------

// issueSubmitToken hands a one-time token to a form. The matching POST
// must return it; the token rotates before the upstream call, so a rapid
// double-submit cannot create duplicate ratings.
func issueSubmitToken(c *gin.Context) string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		logger.Error.Printf("issueSubmitToken: %v", err)
		return ""
	}
	token := hex.EncodeToString(buf)

	session := sessions.Default(c)
	session.Set(submitTokenKey, token)
	if err := session.Save(); err != nil {
		logger.Error.Printf("issueSubmitToken: error saving session: %v", err)
	}
	return token
}

// consumeSubmitToken checks the posted token against the session and
// burns it. A mismatch means the same form was already submitted while a
// request was outstanding.
func consumeSubmitToken(c *gin.Context) bool {
	posted := c.PostForm("submit_token")
	session := sessions.Default(c)
	expected, _ := session.Get(submitTokenKey).(string)

	if posted == "" || expected == "" || posted != expected {
		logger.Warn.Printf("consumeSubmitToken: rejecting duplicate or stale submission for %s", c.Request.URL.Path)
		return false
	}

	session.Delete(submitTokenKey)
	if err := session.Save(); err != nil {
		logger.Error.Printf("consumeSubmitToken: error saving session: %v", err)
	}
	return true
}
