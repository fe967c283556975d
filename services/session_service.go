// Package services: services/session_service.go
package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/models"
)

// TokenKey is the storage key the auth token lives under in the browser
// session. It is the only piece of client state that survives a restart.
const TokenKey = "authToken"

// SessionServiceInterface owns the authenticated identity: storing the
// token, deriving the user id from it, and the login/register/logout
// round trips.
type SessionServiceInterface interface {
	Current(c *gin.Context) models.Session
	Login(ctx context.Context, username string) (string, error)
	Register(ctx context.Context, username string) (string, error)
	Logout(ctx context.Context)
	StoreToken(c *gin.Context, token string) error
	ClearToken(c *gin.Context)
}

// SessionService is the production implementation, backed by the cookie
// session and the upstream API.
type SessionService struct {
	api TeaAPIInterface
}

// NewSessionService wires the session service to an API client.
func NewSessionService(api TeaAPIInterface) *SessionService {
	return &SessionService{api: api}
}

// ------------------ identity derivation ------------------

// DeriveUserID parses the numeric identity out of a token of the form
// "user-<n>". Any other value, including garbage a stale cookie might
// hold, yields ok=false rather than a panic.
func DeriveUserID(token string) (int, bool) {
	const prefix = "user-"
	if !strings.HasPrefix(token, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(token, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Current projects the stored token into a Session. A missing or
// malformed token means "no valid session", never an error.
func (s *SessionService) Current(c *gin.Context) models.Session {
	session := sessions.Default(c)
	raw := session.Get(TokenKey)
	token, ok := raw.(string)
	if !ok || token == "" {
		return models.Session{}
	}
	userID, ok := DeriveUserID(token)
	if !ok {
		logger.Warn.Printf("Current: malformed token %q in session, treating as logged out", token)
		return models.Session{}
	}
	return models.Session{Token: token, UserID: userID}
}

// ------------------ auth round trips ------------------

// Login exchanges a username for a token. The prior session is untouched
// on failure; callers only store the token on success.
func (s *SessionService) Login(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrValidationFailed
	}
	return s.api.Login(ctx, username)
}

// Register creates a new user upstream, same contract as Login.
func (s *SessionService) Register(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrValidationFailed
	}
	return s.api.RegisterUser(ctx, username)
}

// Logout notifies upstream and swallows any failure: the user-visible
// effect (a cleared session) is guaranteed regardless of server outcome.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		logger.Warn.Printf("Logout: upstream logout failed, clearing local session anyway: %v", err)
	}
}

// ------------------ token storage ------------------

// StoreToken persists the token in the cookie session.
func (s *SessionService) StoreToken(c *gin.Context, token string) error {
	session := sessions.Default(c)
	session.Set(TokenKey, token)
	return session.Save()
}

// ClearToken wipes the whole session. Save errors are logged and ignored;
// local logout always wins.
func (s *SessionService) ClearToken(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("ClearToken: error saving cleared session: %v", err)
	}
}
