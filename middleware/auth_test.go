// File: middleware/auth_test.go
//go:build unit
// +build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanzeelak/tea-rater-frontend/middleware"
	"github.com/tanzeelak/tea-rater-frontend/services"
)

// newAuthRouter builds a router with one protected route that echoes the
// derived user id, plus a seeding route for planting session tokens.
func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))

	router.GET("/seed", func(c *gin.Context) {
		session := sessions.Default(c)
		if token := c.Query("token"); token != "" {
			session.Set(services.TokenKey, token)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "seeded")
	})

	protected := router.Group("/", middleware.AuthRequired)
	protected.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "user %d", c.GetInt("userID"))
	})
	return router
}

func seed(t *testing.T, router *gin.Engine, token string) []*http.Cookie {
	req := httptest.NewRequest("GET", "/seed?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_NoSession(t *testing.T) {
	router := newAuthRouter()

	w := get(router, "/whoami", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthRequired_ValidToken(t *testing.T) {
	router := newAuthRouter()
	cookies := seed(t, router, "user-42")

	w := get(router, "/whoami", cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user 42", w.Body.String())
}

func TestAuthRequired_MalformedToken(t *testing.T) {
	router := newAuthRouter()

	for _, token := range []string{"garbage", "user-", "user-abc", "admin-7"} {
		cookies := seed(t, router, token)
		w := get(router, "/whoami", cookies)

		assert.Equal(t, http.StatusFound, w.Code, "token %q", token)
		assert.Equal(t, "/login", w.Header().Get("Location"), "token %q", token)
	}
}

// A tampered cookie is cleared, so the next request carries no token.
func TestAuthRequired_ClearsMalformedSession(t *testing.T) {
	router := newAuthRouter()
	cookies := seed(t, router, "user-abc")

	first := get(router, "/whoami", cookies)
	require.Equal(t, http.StatusFound, first.Code)

	cleared := first.Result().Cookies()
	require.NotEmpty(t, cleared, "rejection rewrites the session cookie")

	second := get(router, "/whoami", cleared)
	assert.Equal(t, http.StatusFound, second.Code)
	assert.Equal(t, "/login", second.Header().Get("Location"))
}
