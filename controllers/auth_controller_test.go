// controllers/auth_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPerformLogin_Success(t *testing.T) {
	app := setupTestApp(t)
	app.api.On("Login", mock.Anything, "alice").Return("user-7", nil)

	w := do(app, "POST", "/login", "username=alice", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies(), "session cookie must be set")
	app.api.AssertExpectations(t)
}

// An empty username never reaches the network
func TestPerformLogin_EmptyUsername(t *testing.T) {
	app := setupTestApp(t)

	w := do(app, "POST", "/login", "username=++", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	app.api.AssertNotCalled(t, "Login")
}

func TestPerformLogin_UpstreamFailure(t *testing.T) {
	app := setupTestApp(t)
	app.api.On("Login", mock.Anything, "alice").Return("", errors.New("no such user"))

	w := do(app, "POST", "/login", "username=alice", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Login failed!")
}

func TestPerformRegister_Success(t *testing.T) {
	app := setupTestApp(t)
	app.api.On("RegisterUser", mock.Anything, "bob").Return("user-9", nil)

	w := do(app, "POST", "/register", "username=bob", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

// Logout clears the local session even when the upstream call fails
func TestLogout_ClearsSessionDespiteUpstreamFailure(t *testing.T) {
	app := setupTestApp(t)
	app.api.On("Logout", mock.Anything).Return(errors.New("upstream down"))

	cookies := loginCookies(t, app, 7)

	w := do(app, "GET", "/logout", "", cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// the cleared cookie no longer grants access to protected routes
	cookies = mergeCookies(cookies, w)
	w = do(app, "GET", "/", "", cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	app.api.AssertExpectations(t)
}

func TestShowLoginPage_RedirectsWhenAlreadyLoggedIn(t *testing.T) {
	app := setupTestApp(t)
	cookies := loginCookies(t, app, 3)

	w := do(app, "GET", "/login", "", cookies)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
