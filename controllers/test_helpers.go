// file: controllers/test_helpers.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/tanzeelak/tea-rater-frontend/middleware"
	"github.com/tanzeelak/tea-rater-frontend/services"
)

// testApp bundles the wired controllers with the services they share so
// tests can inspect the flight service directly.
type testApp struct {
	router  *gin.Engine
	api     *services.MockTeaAPI
	flights *services.FlightService
}

// setupTestApp builds a router with session middleware, dummy templates,
// and the full protected route set wired over a mock upstream API.
func setupTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))

	api := new(services.MockTeaAPI)
	sessionService := services.NewSessionService(api)
	flightService := services.NewFlightService(api)

	auth := NewAuthController(sessionService)
	dashboard := NewDashboardController(sessionService, flightService, api)
	rating := NewRatingController(flightService, api)
	tea := NewTeaController(flightService, api)

	router.GET("/login", auth.ShowLoginPage)
	router.POST("/login", auth.PerformLogin)
	router.GET("/register", auth.ShowRegisterPage)
	router.POST("/register", auth.PerformRegister)
	router.GET("/logout", auth.Logout)

	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.GET("/", dashboard.Index)
		protected.GET("/summary", dashboard.ShowSummary)
		protected.GET("/flights/:id", dashboard.ShowFlight)
		protected.GET("/flights/:id/rate/:teaID", rating.ShowRatingForm)
		protected.POST("/flights/:id/rate/:teaID", rating.SubmitRating)
		protected.GET("/rate/:teaID", rating.ShowRatingForm)
		protected.POST("/rate/:teaID", rating.SubmitRating)
		protected.GET("/ratings/:id/edit", rating.ShowEditForm)
		protected.POST("/ratings/:id/edit", rating.SubmitEdit)
		protected.GET("/create-flight", rating.ShowCreateFlight)
		protected.POST("/create-flight", rating.CreateFlight)
		protected.GET("/cancel-flow", rating.CancelFlow)
		protected.GET("/register-tea", tea.ShowRegisterTea)
		protected.POST("/register-tea", tea.RegisterTea)
	}

	return &testApp{router: router, api: api, flights: flightService}
}

// createDummyTemplates writes minimal templates so renders do not panic.
// Each exposes just enough fields for assertions.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"login.html":         `<html><body>login {{.Error}}</body></html>`,
		"register.html":      `<html><body>register {{.Error}}</body></html>`,
		"dashboard.html":     `<html><body>{{if .Error}}{{.Error}}{{else}}{{.FlashMsg}} flights={{len .Flights}} user={{.Username}}{{end}}</body></html>`,
		"flight.html":        `<html><body>{{if .Error}}{{.Error}}{{else}}{{.FlashMsg}} rated={{len .Rated}} unrated={{len .Unrated}}{{end}}</body></html>`,
		"rating_form.html":   `<html><body>{{.FlashMsg}} mode={{.Mode}} token={{.SubmitToken}} step={{.FlowStep}}</body></html>`,
		"create_flight.html": `<html><body>{{.FlashMsg}} token={{.SubmitToken}}</body></html>`,
		"register_tea.html":  `<html><body>{{.Error}} token={{.SubmitToken}}</body></html>`,
		"summary.html":       `<html><body>{{if .Error}}{{.Error}}{{else}}rows={{len .Summary}}{{end}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// sessionCookies seeds the given session values through a helper route
// and returns the resulting cookies for subsequent requests.
func sessionCookies(t *testing.T, router *gin.Engine, data map[string]interface{}) []*http.Cookie {
	route := "/test-session-seed"
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}
	return cookies
}

// loginCookies returns cookies for a logged-in user.
func loginCookies(t *testing.T, app *testApp, userID int) []*http.Cookie {
	return sessionCookies(t, app.router, map[string]interface{}{
		services.TokenKey: tokenFor(userID),
	})
}

func tokenFor(userID int) string {
	return "user-" + strconv.Itoa(userID)
}

// do performs a request with cookies and returns the recorder.
func do(app *testApp, method, path string, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

// mergeCookies layers cookies from a response over the ones a test has
// been carrying, mimicking a browser.
func mergeCookies(existing []*http.Cookie, w *httptest.ResponseRecorder) []*http.Cookie {
	fresh := w.Result().Cookies()
	if len(fresh) == 0 {
		return existing
	}
	byName := make(map[string]*http.Cookie)
	for _, c := range existing {
		byName[c.Name] = c
	}
	for _, c := range fresh {
		byName[c.Name] = c
	}
	merged := make([]*http.Cookie, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	return merged
}
