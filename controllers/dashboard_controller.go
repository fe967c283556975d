// Package controllers file: controllers/dashboard_controller.go
// The dashboard controller owns the flight list and flight detail views
// and decides which of them renders for a request.
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/models"
	"github.com/tanzeelak/tea-rater-frontend/services"
	"github.com/tanzeelak/tea-rater-frontend/websocket"
)

var (
	// ApplicationURL and WebsocketURL are injected once at startup and
	// handed to templates.
	ApplicationURL string
	WebsocketURL   string
)

// SetConfig sets the global application and WebSocket URLs.
func SetConfig(appURL, wsURL string) {
	ApplicationURL = appURL
	WebsocketURL = wsURL
	logger.Info.Printf("SetConfig: ApplicationURL=%s, WebsocketURL=%s", appURL, wsURL)
}

// Health responds to load balancer health checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// DashboardController renders the flight list and flight detail pages.
type DashboardController struct {
	Sessions services.SessionServiceInterface
	Flights  services.FlightServiceInterface
	API      services.TeaAPIInterface
}

// NewDashboardController wires the controller to its services.
func NewDashboardController(sessions services.SessionServiceInterface, flights services.FlightServiceInterface, api services.TeaAPIInterface) *DashboardController {
	return &DashboardController{Sessions: sessions, Flights: flights, API: api}
}

// ------------------ listing view ------------------

// Index renders the flight dashboard: every flight with its computed
// average, plus the tea lists. If the aggregate load fails the page shows
// only an error; partial data is never rendered.
func (dc *DashboardController) Index(c *gin.Context) {
	userID := currentUserID(c)

	start := time.Now()
	dash, err := dc.Flights.LoadDashboard(c.Request.Context(), userID)
	websocket.PublishDashboardLoadLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		logger.Error.Printf("Index: dashboard load failed for user %d: %v", userID, err)
		c.HTML(http.StatusBadGateway, "dashboard.html", gin.H{
			"Error": "Failed to load your dashboard. Please try again.",
		})
		return
	}

	// greeting is best-effort; a missing name never blocks the render
	var username string
	if user, err := dc.API.GetUser(c.Request.Context(), userID); err == nil {
		username = user.Name
	} else {
		logger.Warn.Printf("Index: could not fetch user %d for greeting: %v", userID, err)
	}

	flashKind, flashMsg := takeFlash(c)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Username":      username,
		"Flights":       dash.Flights,
		"AvailableTeas": dash.AvailableTeas,
		"FlashKind":     flashKind,
		"FlashMsg":      flashMsg,
		"RefreshSeq":    dc.Flights.RefreshSeq(userID),
		"WebsocketURL":  WebsocketURL,
	})
}

// ------------------ flight detail view ------------------

// ShowFlight renders one flight: its ratings, and the rated/unrated
// split of the full tea set so every tea offers either an edit or a rate
// action.
func (dc *DashboardController) ShowFlight(c *gin.Context) {
	userID := currentUserID(c)
	flightID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	dash, err := dc.Flights.LoadDashboard(c.Request.Context(), userID)
	if err != nil {
		logger.Error.Printf("ShowFlight: dashboard load failed for user %d: %v", userID, err)
		c.HTML(http.StatusBadGateway, "flight.html", gin.H{
			"Error": "Failed to load this flight. Please try again.",
		})
		return
	}

	var flight *models.TeaFlight
	for i := range dash.Flights {
		if dash.Flights[i].ID == flightID {
			flight = &dash.Flights[i]
			break
		}
	}
	if flight == nil {
		logger.Warn.Printf("ShowFlight: flight %d not found for user %d", flightID, userID)
		setFlash(c, "error", "That flight does not exist.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	rated, unrated := models.PartitionTeas(dash.AllTeas, flight.Ratings)

	// pair each rated tea with its rating so the template can link edits
	type ratedTea struct {
		Tea    models.Tea
		Rating models.RatingWithTeaName
	}
	ratedRows := make([]ratedTea, 0, len(rated))
	for _, tea := range rated {
		if r, ok := models.RatingForTea(flight.Ratings, tea.ID); ok {
			ratedRows = append(ratedRows, ratedTea{Tea: tea, Rating: r})
		}
	}

	flashKind, flashMsg := takeFlash(c)
	c.HTML(http.StatusOK, "flight.html", gin.H{
		"Flight":       flight,
		"Rated":        ratedRows,
		"Unrated":      unrated,
		"FlashKind":    flashKind,
		"FlashMsg":     flashMsg,
		"WebsocketURL": WebsocketURL,
	})
}

// ------------------ flight sharing ------------------

// FlightQRCode returns a QR code PNG pointing at the flight detail page.
func (dc *DashboardController) FlightQRCode(c *gin.Context) {
	flightID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "unknown flight")
		return
	}

	png, err := services.GenerateFlightQRCode(flightID, 300, qrcode.Encode)
	if err != nil {
		logger.Error.Printf("FlightQRCode: error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename=\"flight.png\"")
	if _, err := c.Writer.Write(png); err != nil {
		logger.Error.Printf("FlightQRCode: error writing QR code bytes: %v", err)
	}
}

// ------------------ community summary ------------------

// ShowSummary renders the community-wide per-tea averages.
func (dc *DashboardController) ShowSummary(c *gin.Context) {
	summary, err := dc.API.GetSummary(c.Request.Context())
	if err != nil {
		logger.Error.Printf("ShowSummary: summary load failed: %v", err)
		c.HTML(http.StatusBadGateway, "summary.html", gin.H{
			"Error": "Failed to load the summary. Please try again.",
		})
		return
	}
	c.HTML(http.StatusOK, "summary.html", gin.H{"Summary": summary})
}

// ------------------ refresh socket ------------------

// RefreshUpdates upgrades to a websocket that pushes refresh signals for
// the logged-in user's dashboards.
func (dc *DashboardController) RefreshUpdates(c *gin.Context) {
	websocket.ServeWs(c.Writer, c.Request, currentUserID(c))
}
