// controllers/dashboard_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tanzeelak/tea-rater-frontend/models"
)

func stockDashboard(app *testApp, userID int) {
	ratings := []models.RatingWithTeaName{
		{Rating: models.Rating{ID: 1, UserID: userID, TeaID: 10, TastingID: 1, Rating: 8}, TeaName: "Sencha"},
		{Rating: models.Rating{ID: 2, UserID: userID, TeaID: 11, TastingID: 1, Rating: 6}, TeaName: "Gyokuro"},
	}
	app.api.On("GetUserRatings", mock.Anything, userID).Return(ratings, nil)
	app.api.On("GetTeas", mock.Anything, userID).Return([]models.Tea{{ID: 10, TeaName: "Sencha"}}, nil)
	app.api.On("GetAllTeas", mock.Anything).Return([]models.Tea{
		{ID: 10, TeaName: "Sencha"},
		{ID: 11, TeaName: "Gyokuro"},
		{ID: 12, TeaName: "Hojicha"},
	}, nil)
	app.api.On("GetTastings", mock.Anything).Return([]models.Tasting{
		{ID: 1, Name: "Morning Flight"},
		{ID: 2, Name: "Evening Flight"},
	}, nil)
}

func TestIndex_RendersFlights(t *testing.T) {
	app := setupTestApp(t)
	stockDashboard(app, 7)
	app.api.On("GetUser", mock.Anything, 7).Return(models.User{ID: 7, Name: "alice"}, nil)

	cookies := loginCookies(t, app, 7)
	w := do(app, "GET", "/", "", cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flights=2")
	assert.Contains(t, w.Body.String(), "user=alice")
}

// A failed greeting fetch never blocks the dashboard
func TestIndex_GreetingFailureTolerated(t *testing.T) {
	app := setupTestApp(t)
	stockDashboard(app, 7)
	app.api.On("GetUser", mock.Anything, 7).Return(models.User{}, errors.New("user service down"))

	cookies := loginCookies(t, app, 7)
	w := do(app, "GET", "/", "", cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flights=2")
}

// When any of the four reads fails the whole render aborts
func TestIndex_AggregateLoadFailure(t *testing.T) {
	app := setupTestApp(t)
	app.api.On("GetUserRatings", mock.Anything, 7).Return([]models.RatingWithTeaName{}, nil)
	app.api.On("GetTeas", mock.Anything, 7).Return([]models.Tea{}, nil)
	app.api.On("GetAllTeas", mock.Anything).Return([]models.Tea{}, nil)
	app.api.On("GetTastings", mock.Anything).Return([]models.Tasting{}, errors.New("tastings down"))

	cookies := loginCookies(t, app, 7)
	w := do(app, "GET", "/", "", cookies)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load")
	assert.NotContains(t, w.Body.String(), "flights=", "no partial dashboard is rendered")
}

// The flight view splits all teas into rated and unrated
func TestShowFlight_PartitionsTeas(t *testing.T) {
	app := setupTestApp(t)
	stockDashboard(app, 7)

	cookies := loginCookies(t, app, 7)
	w := do(app, "GET", "/flights/1", "", cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	// flight 1 has ratings for teas 10 and 11; tea 12 remains unrated
	assert.Contains(t, w.Body.String(), "rated=2")
	assert.Contains(t, w.Body.String(), "unrated=1")
}

func TestShowFlight_EmptyFlight(t *testing.T) {
	app := setupTestApp(t)
	stockDashboard(app, 7)

	cookies := loginCookies(t, app, 7)
	w := do(app, "GET", "/flights/2", "", cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rated=0")
	assert.Contains(t, w.Body.String(), "unrated=3")
}

func TestShowFlight_UnknownFlight(t *testing.T) {
	app := setupTestApp(t)
	stockDashboard(app, 7)

	cookies := loginCookies(t, app, 7)
	w := do(app, "GET", "/flights/999", "", cookies)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", Health)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestShowSummary(t *testing.T) {
	app := setupTestApp(t)
	app.api.On("GetSummary", mock.Anything).Return([]models.TeaSummary{
		{TeaName: "Sencha", Provider: "Ito En", AvgRating: 7.5, NumRated: 4},
	}, nil)

	cookies := loginCookies(t, app, 7)
	w := do(app, "GET", "/summary", "", cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rows=1")
}
